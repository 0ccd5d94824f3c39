package storage

import (
	"strings"
	"testing"
	"time"
)

// FuzzCalendarJSON checks that any calendar file content loads to a usable
// map without panicking.
func FuzzCalendarJSON(f *testing.F) {
	f.Add(`{}`)
	f.Add(`{"2024-01-01":{"emotion":"happy","note":"n","color":"#FFD700","timestamp":"2024-01-01 10:00:00"}}`)
	f.Add(``)
	f.Add(`{`)
	f.Add(`null`)
	f.Add(`[]`)
	f.Add(`{"2024-01-01":null}`)
	f.Add(`{"not-a-date":{"emotion":42}}`)

	f.Fuzz(func(t *testing.T, jsonData string) {
		store, mem := createMemStorage(t)
		if err := mem.Write(CalendarFile, []byte(jsonData)); err != nil {
			t.Skip("cannot write file")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("LoadCalendar panicked with JSON: %q, panic: %v", jsonData, r)
			}
		}()

		cal := store.LoadCalendar()
		if cal == nil {
			t.Fatal("LoadCalendar returned nil map")
		}
		_ = Streak(cal, time.Now())
	})
}

// FuzzLettersJSON checks the letter store the same way.
func FuzzLettersJSON(f *testing.F) {
	f.Add(`{"letters":[]}`)
	f.Add(`{"letters":[{"id":"a","delivery_date":"2024-01-08","is_read":false,"read_date":null}]}`)
	f.Add(`{}`)
	f.Add(`{"letters":null}`)
	f.Add(`{"letters":[null]}`)
	f.Add(`{"letters":[{"delivery_date":"garbage"}]}`)

	f.Fuzz(func(t *testing.T, jsonData string) {
		store, mem := createMemStorage(t)
		if err := mem.Write(LettersFile, []byte(jsonData)); err != nil {
			t.Skip("cannot write file")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("LoadLetters panicked with JSON: %q, panic: %v", jsonData, r)
			}
		}()

		store.LoadLetters()
		d, w := store.Mailbox()
		if store.NewLetterCount() > len(d) {
			t.Error("more new letters than deliverable ones")
		}
		if len(d)+len(w) != len(store.LoadLetters().Letters) {
			t.Error("partition lost letters")
		}
	})
}

// FuzzMoodLine checks that a formatted line parses back to the same entry.
func FuzzMoodLine(f *testing.F) {
	f.Add("2024-01-03 09:30:00", "lighter now")
	f.Add("", "plain")
	f.Add("2024-01-03 09:30:00", "[2024-01-03 09:30:00] nested")
	f.Add("2024-01-03 09:30:00", "마음이 가벼워졌어요")

	f.Fuzz(func(t *testing.T, ts, text string) {
		if _, err := time.Parse(TimestampLayout, ts); err != nil {
			ts = ""
		}
		if strings.ContainsAny(text, "\r\n") || strings.TrimSpace(text) == "" {
			return
		}
		if ts == "" && ParseMoodLine(text).Timestamp != "" {
			return
		}
		if ts != "" && strings.HasPrefix(text, " ") {
			return
		}

		in := MoodEntry{Timestamp: ts, Text: text}
		got := ParseMoodLine(FormatMoodLine(in))
		if got != in {
			t.Errorf("round trip %+v -> %+v", in, got)
		}
	})
}
