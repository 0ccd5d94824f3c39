package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"compass/internal/logger"
	"compass/internal/storage"
)

// CalendarImporter reads an emotion_calendar.json from another install.
// Korean emotion names from the first release are translated.
type CalendarImporter struct{}

func (c *CalendarImporter) Name() string {
	return "calendar"
}

func (c *CalendarImporter) Import(reader io.Reader, store *storage.Storage, opts Options) (*ImportResult, error) {
	cal, result, err := c.parse(reader)
	if err != nil {
		return nil, err
	}
	n, err := store.MergeCalendar(cal, opts.Overwrite)
	if err != nil {
		return nil, err
	}
	result.Imported = n
	result.Skipped += len(cal) - n
	return result, nil
}

func (c *CalendarImporter) Preview(reader io.Reader) ([]PreviewEntry, error) {
	cal, _, err := c.parse(reader)
	if err != nil {
		return nil, err
	}
	out := make([]PreviewEntry, 0, len(cal))
	for _, date := range cal.Dates() {
		e := cal[date]
		out = append(out, PreviewEntry{Kind: "emotion", Date: date, Emotion: e.Emotion, Text: e.Note})
	}
	return out, nil
}

type rawCalendarEntry struct {
	Emotion   string `json:"emotion"`
	Note      string `json:"note"`
	Color     string `json:"color"`
	Timestamp string `json:"timestamp"`
}

func (c *CalendarImporter) parse(reader io.Reader) (storage.Calendar, *ImportResult, error) {
	var raw map[string]rawCalendarEntry
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	dates := make([]string, 0, len(raw))
	for date := range raw {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := &ImportResult{}
	cal := make(storage.Calendar, len(raw))
	for _, date := range dates {
		r := raw[date]
		if _, err := time.Parse(storage.DateLayout, date); err != nil {
			result.reject("%s: invalid date", date)
			continue
		}
		emotion, ok := ParseEmotionName(r.Emotion)
		if !ok {
			result.reject("%s: unknown emotion %q", date, r.Emotion)
			continue
		}
		note := strings.TrimSpace(r.Note)
		if note == "" {
			result.reject("%s: empty note", date)
			continue
		}
		cal[date] = storage.CalendarEntry{
			Emotion:   emotion,
			Note:      note,
			Color:     colorOr(r.Color, emotion),
			Timestamp: r.Timestamp,
		}
	}
	return cal, result, nil
}

// LettersImporter reads a future_letters.json. Letters already present (by
// id) are skipped; letters without an id get a fresh one.
type LettersImporter struct{}

func (l *LettersImporter) Name() string {
	return "letters"
}

func (l *LettersImporter) Import(reader io.Reader, store *storage.Storage, _ Options) (*ImportResult, error) {
	letters, result, err := l.parse(reader)
	if err != nil {
		return nil, err
	}
	n, err := store.MergeLetters(letters)
	if err != nil {
		return nil, err
	}
	result.Imported = n
	result.Skipped += len(letters) - n
	return result, nil
}

func (l *LettersImporter) Preview(reader io.Reader) ([]PreviewEntry, error) {
	letters, _, err := l.parse(reader)
	if err != nil {
		return nil, err
	}
	out := make([]PreviewEntry, 0, len(letters))
	for _, lt := range letters {
		out = append(out, PreviewEntry{Kind: "letter", Date: lt.DeliveryDate, Text: lt.Content})
	}
	return out, nil
}

func (l *LettersImporter) parse(reader io.Reader) ([]storage.Letter, *ImportResult, error) {
	var in storage.LetterStore
	if err := json.NewDecoder(reader).Decode(&in); err != nil {
		return nil, nil, fmt.Errorf("failed to parse letters: %w", err)
	}

	result := &ImportResult{}
	out := make([]storage.Letter, 0, len(in.Letters))
	for i, lt := range in.Letters {
		if strings.TrimSpace(lt.Content) == "" {
			result.reject("letter %d: empty content", i+1)
			continue
		}
		if _, err := time.Parse(storage.DateLayout, lt.DeliveryDate); err != nil {
			result.reject("letter %d: invalid delivery date %q", i+1, lt.DeliveryDate)
			continue
		}
		if lt.ID == "" {
			lt.ID = uuid.NewString()
		}
		out = append(out, lt)
	}
	return out, result, nil
}

// MoodLogImporter reads a records.txt mood log. Timestamped lines already in
// the log (same timestamp and text) are skipped. Lines without a timestamp
// are always appended, repeats included.
type MoodLogImporter struct{}

func (m *MoodLogImporter) Name() string {
	return "moodlog"
}

func (m *MoodLogImporter) Import(reader io.Reader, store *storage.Storage, _ Options) (*ImportResult, error) {
	entries, err := m.parse(reader)
	if err != nil {
		return nil, err
	}

	existing := make(map[storage.MoodEntry]bool)
	for _, e := range store.LoadMoodLog() {
		if e.Timestamp != "" {
			existing[e] = true
		}
	}

	result := &ImportResult{}
	var fresh []storage.MoodEntry
	for _, e := range entries {
		if e.Timestamp != "" {
			if existing[e] {
				result.Skipped++
				continue
			}
			existing[e] = true
		}
		fresh = append(fresh, e)
	}

	if err := store.AppendMoodEntries(fresh); err != nil {
		return nil, err
	}
	result.Imported = len(fresh)
	return result, nil
}

func (m *MoodLogImporter) Preview(reader io.Reader) ([]PreviewEntry, error) {
	entries, err := m.parse(reader)
	if err != nil {
		return nil, err
	}
	out := make([]PreviewEntry, 0, len(entries))
	for _, e := range entries {
		date, _, _ := strings.Cut(e.Timestamp, " ")
		out = append(out, PreviewEntry{Kind: "note", Date: date, Text: e.Text})
	}
	return out, nil
}

func (m *MoodLogImporter) parse(reader io.Reader) ([]storage.MoodEntry, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read mood log: %w", err)
	}
	return storage.ParseMoodLog(data), nil
}

// ImportDir imports every data file found in dir, the layout written by an
// earlier install. Missing files are skipped.
func ImportDir(dir string, store *storage.Storage, opts Options) (*ImportResult, error) {
	sources := []struct {
		file     string
		importer Importer
	}{
		{storage.CalendarFile, &CalendarImporter{}},
		{storage.LettersFile, &LettersImporter{}},
		{storage.MoodLogFile, &MoodLogImporter{}},
	}

	total := &ImportResult{}
	found := 0
	for _, src := range sources {
		path := filepath.Join(dir, src.file)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return total, err
		}
		found++

		result, err := src.importer.Import(f, store, opts)
		f.Close()
		if err != nil {
			return total, fmt.Errorf("%s: %w", src.file, err)
		}
		logger.Info("imported", "file", path, "imported", result.Imported, "skipped", result.Skipped)
		total.add(result)
	}

	if found == 0 {
		return nil, fmt.Errorf("no compass data files in %s", dir)
	}
	return total, nil
}
