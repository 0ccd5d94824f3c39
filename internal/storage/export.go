package storage

import (
	"encoding/csv"
	"strings"
)

// ExportCalendarCSV renders the calendar as CSV, oldest day first.
func (s *Storage) ExportCalendarCSV() (string, error) {
	return CalendarCSV(s.LoadCalendar())
}

// CalendarCSV renders cal as CSV with a header row.
func CalendarCSV(cal Calendar) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"date", "emotion", "color", "note", "timestamp"}); err != nil {
		return "", err
	}
	for _, date := range cal.Dates() {
		e := cal[date]
		if err := w.Write([]string{date, string(e.Emotion), e.Color, e.Note, e.Timestamp}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// ExportLettersJSON renders the letter store as indented JSON.
func (s *Storage) ExportLettersJSON() ([]byte, error) {
	return encodeJSON(s.LoadLetters())
}

// ExportCalendarJSON renders the calendar as indented JSON.
func (s *Storage) ExportCalendarJSON() ([]byte, error) {
	return encodeJSON(s.LoadCalendar())
}

// ExportMoodLog renders the log in its on-disk line format.
func (s *Storage) ExportMoodLog() string {
	var b strings.Builder
	for _, e := range s.LoadMoodLog() {
		b.WriteString(FormatMoodLine(e))
	}
	return b.String()
}
