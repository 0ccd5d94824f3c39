// Package storage keeps the journal's record collections: the emotion
// calendar, the future letters, the append-only mood log and the seeded
// insight and content tables. Each collection is loaded whole and saved whole.
//
// Loads never fail. A missing file yields the collection default (persisted
// for the JSON collections) and a malformed file is set aside as
// <file>.corrupt.<timestamp> and replaced by its last good .bak copy or the
// default. Saves return their error to the caller.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"compass/internal/logger"
)

// File names inside the data directory.
const (
	CalendarFile = "emotion_calendar.json"
	LettersFile  = "future_letters.json"
	MoodLogFile  = "records.txt"
	InsightsFile = "data/insights.json"
	ContentsFile = "data/contents.json"
)

// DataFiles lists every collection file, in backup order.
var DataFiles = []string{CalendarFile, LettersFile, MoodLogFile, InsightsFile, ContentsFile}

var (
	ErrEmptyContent   = errors.New("text is required")
	ErrUnknownOffset  = errors.New("unknown delivery offset")
	ErrUnknownEmotion = errors.New("unknown emotion")
	ErrLetterNotFound = errors.New("letter not found")
)

// SaveContext describes a save for semantic commit messages such as
// "Record emotion: 2026-10-19 happy".
type SaveContext struct {
	Filename  string // the file written, e.g. "emotion_calendar.json"
	Operation string // "record", "write", "read", "append", "import"
	ItemType  string // "emotion", "letter", "note"
	ItemName  string // human-readable detail, already truncated
}

// Storage handles all record I/O.
type Storage struct {
	mu                sync.Mutex
	backend           Backend
	dataDir           string
	onSave            func(filename string)
	onSaveWithContext func(ctx SaveContext)
	now               func() time.Time // injectable clock for deterministic tests
}

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	maxCommitDetailLen = 50
)

// New opens the data directory, creating it and the default files if needed.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := NewWithBackend(DirBackend{Dir: dataDir})
	s.dataDir = dataDir
	s.initFiles()
	return s, nil
}

// NewWithBackend returns a Storage over an arbitrary backend. Files are
// created lazily on first load.
func NewWithBackend(b Backend) *Storage {
	return &Storage{backend: b, now: time.Now}
}

// SetNowFunc overrides the clock used by time-dependent storage operations.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Today returns the calendar key for the storage clock's current day.
func (s *Storage) Today() string {
	return s.Now().Format(DateLayout)
}

// SetOnSave registers a callback run after every successful file write.
func (s *Storage) SetOnSave(fn func(filename string)) {
	s.onSave = fn
}

// SetOnSaveWithContext registers a callback run after each completed
// operation, with enough detail for a meaningful commit message.
func (s *Storage) SetOnSaveWithContext(fn func(ctx SaveContext)) {
	s.onSaveWithContext = fn
}

// GetDataDir returns the data directory, or "" for non-disk backends.
func (s *Storage) GetDataDir() string {
	return s.dataDir
}

// initFiles loads every JSON collection once so that missing files are
// written with their defaults.
func (s *Storage) initFiles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadCalendar()
	s.loadLetters()
	s.loadInsights()
	s.loadContents()
}

func (s *Storage) notifySaveWithContext(ctx SaveContext) {
	if s.onSaveWithContext != nil {
		s.onSaveWithContext(ctx)
	}
}

func (s *Storage) notifySave(filename string) {
	if s.onSave != nil {
		s.onSave(filename)
	}
}

// truncateForCommit truncates a string for use in commit messages.
func truncateForCommit(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeJSON replaces filename with v. The previous contents, if they are
// valid JSON, are kept as filename.bak first.
func (s *Storage) writeJSON(filename string, v any) error {
	data, err := encodeJSON(v)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filename, err)
	}

	if prev, err := s.backend.Read(filename); err == nil && json.Valid(prev) {
		if err := s.backend.Write(filename+".bak", prev); err != nil {
			logger.Debug("backup before save failed", "file", filename, "err", err)
		}
	}

	if err := s.backend.Write(filename, data); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	s.notifySave(filename)
	return nil
}

// loadJSON decodes filename into a fresh def(). It never fails: see the
// package comment for the fallback rules.
func loadJSON[T any](s *Storage, filename string, def func() T) T {
	data, err := s.backend.Read(filename)
	if err != nil {
		v := def()
		if !errors.Is(err, ErrNotExist) {
			logger.Warn("read failed, using defaults", "file", filename, "err", err)
			return v
		}
		if err := s.writeJSON(filename, v); err != nil {
			logger.Warn("could not persist default", "file", filename, "err", err)
		} else {
			logger.Info("initialized", "file", filename)
		}
		return v
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return recoverJSON(s, filename, data, def, fmt.Errorf("%s is empty", filename))
	}

	v := def()
	if err := json.Unmarshal(data, &v); err != nil {
		return recoverJSON(s, filename, data, def, fmt.Errorf("parse %s: %w", filename, err))
	}
	return v
}

func recoverJSON[T any](s *Storage, filename string, broken []byte, def func() T, cause error) T {
	if len(bytes.TrimSpace(broken)) > 0 {
		corrupt := fmt.Sprintf("%s.corrupt.%s", filename, s.Now().Format("20060102-150405"))
		if err := s.backend.Write(corrupt, broken); err != nil {
			logger.Warn("could not preserve corrupt file", "file", filename, "err", err)
		}
	}
	_ = s.backend.Remove(filename)

	if bak, err := s.backend.Read(filename + ".bak"); err == nil {
		v := def()
		if err := json.Unmarshal(bak, &v); err == nil {
			logger.Warn("recovered from backup", "file", filename, "cause", cause)
			if err := s.writeJSON(filename, v); err != nil {
				logger.Warn("could not rewrite recovered file", "file", filename, "err", err)
			}
			return v
		}
	}

	logger.Warn("reset to defaults", "file", filename, "cause", cause)
	v := def()
	if err := s.writeJSON(filename, v); err != nil {
		logger.Warn("could not persist default", "file", filename, "err", err)
	}
	return v
}
