// Package importer brings entries from other journals into compass: Daylio
// CSV exports and the data files of earlier compass installs.
package importer

import (
	"fmt"
	"io"
	"strings"

	"compass/internal/content"
	"compass/internal/storage"
)

// ImportResult counts what an import did.
type ImportResult struct {
	Imported int      // entries written
	Skipped  int      // duplicates, existing days, unparseable rows
	Errors   []string // one line per rejected entry
}

func (r *ImportResult) add(other *ImportResult) {
	r.Imported += other.Imported
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}

func (r *ImportResult) reject(format string, args ...any) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// PreviewEntry is one entry as it would be imported.
type PreviewEntry struct {
	Kind    string // "emotion", "letter" or "note"
	Date    string
	Emotion storage.Emotion
	Text    string
}

// Options tunes an import.
type Options struct {
	// Overwrite replaces calendar days that already have an entry.
	Overwrite bool
}

// Importer reads one export format.
type Importer interface {
	Import(reader io.Reader, store *storage.Storage, opts Options) (*ImportResult, error)
	Preview(reader io.Reader) ([]PreviewEntry, error)
	Name() string
}

// GetImporter returns the importer for format, or nil.
func GetImporter(format string) Importer {
	switch strings.ToLower(format) {
	case "daylio":
		return &DaylioImporter{}
	case "calendar":
		return &CalendarImporter{}
	case "letters":
		return &LettersImporter{}
	case "moodlog":
		return &MoodLogImporter{}
	default:
		return nil
	}
}

func SupportedFormats() []string {
	return []string{"daylio", "calendar", "letters", "moodlog"}
}

// Emotion names written by the first, Korean-language release.
var legacyEmotions = map[string]storage.Emotion{
	"행복": storage.EmotionHappy,
	"평온": storage.EmotionCalm,
	"무기력": storage.EmotionLethargic,
	"불안": storage.EmotionAnxious,
	"슬픔": storage.EmotionSad,
	"화남": storage.EmotionAngry,
	"희망": storage.EmotionHopeful,
	"감사": storage.EmotionGrateful,
}

// ParseEmotionName accepts an English emotion name in any case or a
// legacy Korean one.
func ParseEmotionName(s string) (storage.Emotion, bool) {
	if e, ok := storage.ParseEmotion(s); ok {
		return e, true
	}
	e, ok := legacyEmotions[strings.TrimSpace(s)]
	return e, ok
}

func colorOr(color string, e storage.Emotion) string {
	color = strings.TrimSpace(color)
	if content.ValidColor(color) {
		return strings.ToUpper(color)
	}
	return storage.DefaultColor(e)
}
