package storage

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}

func calendarWith(dates ...string) Calendar {
	cal := Calendar{}
	for _, d := range dates {
		cal[d] = CalendarEntry{Emotion: EmotionCalm, Note: "n", Color: "#87CEEB"}
	}
	return cal
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		cal   Calendar
		today string
		want  int
	}{
		{"empty", Calendar{}, "2024-01-03", 0},
		{"nil", nil, "2024-01-03", 0},
		{"today absent", calendarWith("2024-01-01", "2024-01-02"), "2024-01-03", 0},
		{"three days", calendarWith("2024-01-01", "2024-01-02", "2024-01-03"), "2024-01-03", 3},
		{"gap before run", calendarWith("2023-12-30", "2024-01-01", "2024-01-02", "2024-01-03"), "2024-01-03", 3},
		{"only today", calendarWith("2024-01-03", "2024-01-01"), "2024-01-03", 1},
		{"across leap day", calendarWith("2024-02-28", "2024-02-29", "2024-03-01"), "2024-03-01", 3},
		{"malformed keys skipped", calendarWith("garbage", "2024-13-01", "2024-01-02", "2024-01-03"), "2024-01-03", 2},
		{"future key ends the walk", calendarWith("2024-01-04", "2024-01-02", "2024-01-03"), "2024-01-03", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.cal, day(tt.today)); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreak_LongRun(t *testing.T) {
	cal := Calendar{}
	today := day("2024-12-31")
	for i := 0; i < 400; i++ {
		cal[today.AddDate(0, 0, -i).Format(DateLayout)] = CalendarEntry{Emotion: EmotionHappy}
	}
	if got := Streak(cal, today); got != 400 {
		t.Errorf("Streak() = %d, want 400", got)
	}
}

func TestStorageStreak_UsesClock(t *testing.T) {
	store, _ := createMemStorage(t)
	for _, d := range []string{"2024-01-02", "2024-01-03"} {
		if _, err := store.RecordEmotionOn(d, EmotionHappy, "good", ""); err != nil {
			t.Fatal(err)
		}
	}
	if got := store.Streak(); got != 2 {
		t.Errorf("Streak() = %d, want 2", got)
	}

	store.SetNowFunc(func() time.Time { return day("2024-01-04") })
	if got := store.Streak(); got != 0 {
		t.Errorf("Streak() next day = %d, want 0", got)
	}
}

func TestRecordEmotion(t *testing.T) {
	store, _ := createMemStorage(t)

	entry, err := store.RecordEmotion(EmotionHappy, "  sunny walk  ", "")
	if err != nil {
		t.Fatalf("RecordEmotion() error = %v", err)
	}
	if entry.Color != "#FFD700" {
		t.Errorf("Color = %q, want palette default", entry.Color)
	}
	if entry.Note != "sunny walk" {
		t.Errorf("Note = %q, want trimmed", entry.Note)
	}
	if entry.Timestamp != "2024-01-03 09:30:00" {
		t.Errorf("Timestamp = %q", entry.Timestamp)
	}

	got, ok := store.GetEntry("2024-01-03")
	if !ok || got != entry {
		t.Errorf("GetEntry() = %+v, %v", got, ok)
	}
}

func TestRecordEmotion_LastWriteWins(t *testing.T) {
	store, _ := createMemStorage(t)

	if _, err := store.RecordEmotion(EmotionSad, "morning", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RecordEmotion(EmotionGrateful, "evening", "#ABCDEF"); err != nil {
		t.Fatal(err)
	}

	cal := store.LoadCalendar()
	if len(cal) != 1 {
		t.Fatalf("len(calendar) = %d, want 1", len(cal))
	}
	e := cal["2024-01-03"]
	if e.Emotion != EmotionGrateful || e.Note != "evening" || e.Color != "#ABCDEF" {
		t.Errorf("entry = %+v", e)
	}
}

func TestRecordEmotion_Validation(t *testing.T) {
	store, _ := createMemStorage(t)

	tests := []struct {
		name    string
		date    string
		emotion Emotion
		note    string
		wantErr error
	}{
		{"unknown emotion", "2024-01-03", Emotion("bored"), "hmm", ErrUnknownEmotion},
		{"empty note", "2024-01-03", EmotionCalm, "", ErrEmptyContent},
		{"whitespace note", "2024-01-03", EmotionCalm, " \t\n", ErrEmptyContent},
		{"bad date", "03/01/2024", EmotionCalm, "ok", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.RecordEmotionOn(tt.date, tt.emotion, tt.note, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if cal := store.LoadCalendar(); len(cal) != 0 {
		t.Errorf("calendar changed by rejected input: %+v", cal)
	}
}

func TestGetEntry_Missing(t *testing.T) {
	store, _ := createMemStorage(t)
	if _, ok := store.GetEntry("2024-01-01"); ok {
		t.Error("GetEntry() ok = true for empty calendar")
	}
}

func TestMergeCalendar(t *testing.T) {
	store, _ := createMemStorage(t)
	if _, err := store.RecordEmotionOn("2024-01-01", EmotionHappy, "mine", ""); err != nil {
		t.Fatal(err)
	}

	in := Calendar{
		"2024-01-01": {Emotion: EmotionSad, Note: "imported"},
		"2024-01-02": {Emotion: EmotionCalm, Note: "imported"},
	}
	n, err := store.MergeCalendar(in, false)
	if err != nil {
		t.Fatalf("MergeCalendar() error = %v", err)
	}
	if n != 1 {
		t.Errorf("MergeCalendar() = %d, want 1", n)
	}
	cal := store.LoadCalendar()
	if cal["2024-01-01"].Note != "mine" {
		t.Error("existing day overwritten without overwrite flag")
	}

	n, err = store.MergeCalendar(in, true)
	if err != nil || n != 2 {
		t.Fatalf("MergeCalendar(overwrite) = %d, %v", n, err)
	}
	if store.LoadCalendar()["2024-01-01"].Note != "imported" {
		t.Error("overwrite flag ignored")
	}
}

func TestCalendarDates(t *testing.T) {
	cal := calendarWith("2024-01-02", "bad", "2023-12-31", "2024-01-01")
	got := cal.Dates()
	want := []string{"2023-12-31", "2024-01-01", "2024-01-02"}
	if len(got) != len(want) {
		t.Fatalf("Dates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dates()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseEmotion(t *testing.T) {
	tests := []struct {
		in     string
		want   Emotion
		wantOK bool
	}{
		{"happy", EmotionHappy, true},
		{" Grateful ", EmotionGrateful, true},
		{"ANXIOUS", EmotionAnxious, true},
		{"bored", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseEmotion(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseEmotion(%q) = %q, %v", tt.in, got, ok)
		}
	}

	for _, e := range Emotions {
		if DefaultColor(e) == "" {
			t.Errorf("no default colour for %s", e)
		}
	}
	if len(Emotions) != 8 {
		t.Errorf("len(Emotions) = %d, want 8", len(Emotions))
	}
}
