package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"compass/internal/logger"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// FormatMoodLine renders one mood-log line, including the trailing newline.
// Line breaks inside text are folded into spaces to keep one entry per line.
func FormatMoodLine(e MoodEntry) string {
	text := lineBreaks.Replace(e.Text)
	if e.Timestamp == "" {
		return text + "\n"
	}
	return fmt.Sprintf("[%s] %s\n", e.Timestamp, text)
}

// ParseMoodLine splits a "[YYYY-MM-DD HH:MM:SS] text" line. Lines without a
// valid prefix are returned whole with an empty timestamp.
func ParseMoodLine(line string) MoodEntry {
	line = strings.TrimRight(line, "\r\n")
	const prefixLen = len("[2006-01-02 15:04:05]")
	if len(line) >= prefixLen && line[0] == '[' && line[prefixLen-1] == ']' {
		ts := line[1 : prefixLen-1]
		if _, err := time.Parse(TimestampLayout, ts); err == nil {
			return MoodEntry{
				Timestamp: ts,
				Text:      strings.TrimPrefix(line[prefixLen:], " "),
			}
		}
	}
	return MoodEntry{Text: line}
}

// ParseMoodLog parses a whole log, skipping blank lines. Lines have no
// length limit.
func ParseMoodLog(data []byte) []MoodEntry {
	entries := []MoodEntry{}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		entries = append(entries, ParseMoodLine(string(line)))
	}
	return entries
}

func (s *Storage) loadMoodLog() []MoodEntry {
	data, err := s.backend.Read(MoodLogFile)
	if err != nil {
		if !errors.Is(err, ErrNotExist) {
			logger.Warn("read failed, using empty log", "file", MoodLogFile, "err", err)
		}
		return []MoodEntry{}
	}
	return ParseMoodLog(data)
}

// LoadMoodLog returns every mood-log entry, oldest first.
func (s *Storage) LoadMoodLog() []MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadMoodLog()
}

// SaveMoodLog rewrites the whole log from entries.
func (s *Storage) SaveMoodLog(entries []MoodEntry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(FormatMoodLine(e))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Write(MoodLogFile, []byte(b.String())); err != nil {
		return fmt.Errorf("write %s: %w", MoodLogFile, err)
	}
	s.notifySave(MoodLogFile)
	return nil
}

// AppendMood appends text to the log, stamped with the storage clock.
func (s *Storage) AppendMood(text string) (MoodEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return MoodEntry{}, fmt.Errorf("mood note: %w", ErrEmptyContent)
	}
	entry := MoodEntry{Timestamp: s.Now().Format(TimestampLayout), Text: text}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Append(MoodLogFile, []byte(FormatMoodLine(entry))); err != nil {
		return MoodEntry{}, fmt.Errorf("append %s: %w", MoodLogFile, err)
	}
	s.notifySave(MoodLogFile)

	s.notifySaveWithContext(SaveContext{
		Filename:  MoodLogFile,
		Operation: "append",
		ItemType:  "note",
		ItemName:  truncateForCommit(text, maxCommitDetailLen),
	})
	return entry, nil
}

// AppendMoodEntries appends pre-stamped entries in one write.
func (s *Storage) AppendMoodEntries(entries []MoodEntry) error {
	if len(entries) == 0 {
		return nil
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(FormatMoodLine(e))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Append(MoodLogFile, []byte(b.String())); err != nil {
		return fmt.Errorf("append %s: %w", MoodLogFile, err)
	}
	s.notifySave(MoodLogFile)

	s.notifySaveWithContext(SaveContext{
		Filename:  MoodLogFile,
		Operation: "import",
		ItemType:  "note",
		ItemName:  fmt.Sprintf("%d notes", len(entries)),
	})
	return nil
}

// RecentMoods returns up to n entries, newest first.
func (s *Storage) RecentMoods(n int) []MoodEntry {
	return LastMoods(s.LoadMoodLog(), n)
}

// LastMoods returns the last n entries of log in reverse order.
func LastMoods(log []MoodEntry, n int) []MoodEntry {
	if n <= 0 {
		return []MoodEntry{}
	}
	if n > len(log) {
		n = len(log)
	}
	out := make([]MoodEntry, 0, n)
	for i := len(log) - 1; i >= len(log)-n; i-- {
		out = append(out, log[i])
	}
	return out
}
