package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

func (s *Storage) loadCalendar() Calendar {
	cal := loadJSON(s, CalendarFile, func() Calendar { return Calendar{} })
	if cal == nil {
		cal = Calendar{}
	}
	return cal
}

// LoadCalendar reads the emotion calendar.
func (s *Storage) LoadCalendar() Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCalendar()
}

// SaveCalendar replaces the emotion calendar.
func (s *Storage) SaveCalendar(cal Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(CalendarFile, cal)
}

// GetEntry returns the entry recorded for date (YYYY-MM-DD).
func (s *Storage) GetEntry(date string) (CalendarEntry, bool) {
	entry, ok := s.LoadCalendar()[date]
	return entry, ok
}

// RecordEmotion stores today's entry, replacing any earlier one for the day.
// An empty color selects the emotion's palette colour.
func (s *Storage) RecordEmotion(emotion Emotion, note, color string) (CalendarEntry, error) {
	return s.RecordEmotionOn(s.Today(), emotion, note, color)
}

// RecordEmotionOn stores the entry for an explicit date.
func (s *Storage) RecordEmotionOn(date string, emotion Emotion, note, color string) (CalendarEntry, error) {
	note = strings.TrimSpace(note)
	color = strings.TrimSpace(color)

	if _, err := time.Parse(DateLayout, date); err != nil {
		return CalendarEntry{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	if DefaultColor(emotion) == "" {
		return CalendarEntry{}, fmt.Errorf("%w: %q", ErrUnknownEmotion, emotion)
	}
	if note == "" {
		return CalendarEntry{}, fmt.Errorf("note: %w", ErrEmptyContent)
	}
	if color == "" {
		color = DefaultColor(emotion)
	}

	entry := CalendarEntry{
		Emotion:   emotion,
		Note:      note,
		Color:     color,
		Timestamp: s.Now().Format(TimestampLayout),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cal := s.loadCalendar()
	cal[date] = entry
	if err := s.writeJSON(CalendarFile, cal); err != nil {
		return CalendarEntry{}, err
	}

	s.notifySaveWithContext(SaveContext{
		Filename:  CalendarFile,
		Operation: "record",
		ItemType:  "emotion",
		ItemName:  date + " " + string(emotion),
	})
	return entry, nil
}

// MergeCalendar writes every entry of in into the calendar. Existing days are
// overwritten only when overwrite is set. It returns the number of days
// written.
func (s *Storage) MergeCalendar(in Calendar, overwrite bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal := s.loadCalendar()
	n := 0
	for date, entry := range in {
		if _, exists := cal[date]; exists && !overwrite {
			continue
		}
		cal[date] = entry
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.writeJSON(CalendarFile, cal); err != nil {
		return 0, err
	}

	s.notifySaveWithContext(SaveContext{
		Filename:  CalendarFile,
		Operation: "import",
		ItemType:  "emotion",
		ItemName:  fmt.Sprintf("%d days", n),
	})
	return n, nil
}

// Dates returns the well-formed calendar keys, oldest first.
func (c Calendar) Dates() []string {
	dates := make([]string, 0, len(c))
	for key := range c {
		if _, err := time.Parse(DateLayout, key); err == nil {
			dates = append(dates, key)
		}
	}
	sort.Strings(dates)
	return dates
}

// dayOf truncates t to its calendar day, expressed in UTC so that day
// arithmetic is immune to DST shifts.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streak counts the consecutive recorded days ending today. A calendar
// without an entry for today has a streak of 0. Malformed keys are skipped.
// A key after today sorts first and ends the walk, so the streak is 0.
func Streak(cal Calendar, today time.Time) int {
	if len(cal) == 0 {
		return 0
	}
	day := dayOf(today)

	keys := make([]time.Time, 0, len(cal))
	for key := range cal {
		d, err := time.Parse(DateLayout, key)
		if err != nil {
			continue
		}
		keys = append(keys, d)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].After(keys[j]) })

	streak := 0
	for _, d := range keys {
		if !d.Equal(day.AddDate(0, 0, -streak)) {
			break
		}
		streak++
	}
	return streak
}

// Streak reports the current streak using the storage clock.
func (s *Storage) Streak() int {
	return Streak(s.LoadCalendar(), s.Now())
}
