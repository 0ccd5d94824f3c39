package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"compass/internal/storage"
)

// DaylioImporter reads Daylio's CSV backup export
// (full_date,date,weekday,time,mood,activities,note_title,note).
type DaylioImporter struct{}

func (d *DaylioImporter) Name() string {
	return "daylio"
}

// Five-point Daylio moods. Custom moods named after a compass emotion are
// accepted as is.
var daylioMoods = map[string]storage.Emotion{
	"rad":   storage.EmotionHappy,
	"good":  storage.EmotionCalm,
	"meh":   storage.EmotionLethargic,
	"bad":   storage.EmotionAnxious,
	"awful": storage.EmotionSad,
}

func mapDaylioMood(mood string) (storage.Emotion, bool) {
	if e, ok := daylioMoods[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return e, true
	}
	return ParseEmotionName(mood)
}

type daylioRow struct {
	date    string
	emotion storage.Emotion
	note    string
}

func (d *DaylioImporter) Import(reader io.Reader, store *storage.Storage, opts Options) (*ImportResult, error) {
	rows, result, err := d.parse(reader)
	if err != nil {
		return nil, err
	}

	stamp := store.Now().Format(storage.TimestampLayout)
	cal := make(storage.Calendar, len(rows))
	for _, r := range rows {
		cal[r.date] = storage.CalendarEntry{
			Emotion:   r.emotion,
			Note:      r.note,
			Color:     storage.DefaultColor(r.emotion),
			Timestamp: stamp,
		}
	}

	n, err := store.MergeCalendar(cal, opts.Overwrite)
	if err != nil {
		return nil, err
	}
	result.Imported = n
	result.Skipped += len(cal) - n
	return result, nil
}

func (d *DaylioImporter) Preview(reader io.Reader) ([]PreviewEntry, error) {
	rows, _, err := d.parse(reader)
	if err != nil {
		return nil, err
	}
	out := make([]PreviewEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, PreviewEntry{Kind: "emotion", Date: r.date, Emotion: r.emotion, Text: r.note})
	}
	return out, nil
}

// parse returns one row per day, oldest first. Daylio lists newest entries
// first, so the first row seen for a day is the one kept.
func (d *DaylioImporter) parse(reader io.Reader) ([]daylioRow, *ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"full_date", "mood"} {
		if _, ok := colIndex[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	field := func(record []string, col string) string {
		if idx, ok := colIndex[col]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	result := &ImportResult{}
	byDate := make(map[string]daylioRow)
	line := 1

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line++

		date := field(record, "full_date")
		if _, err := time.Parse(storage.DateLayout, date); err != nil {
			result.reject("line %d: invalid date %q", line, date)
			continue
		}
		mood := field(record, "mood")
		emotion, ok := mapDaylioMood(mood)
		if !ok {
			result.reject("line %d: unknown mood %q", line, mood)
			continue
		}
		if _, seen := byDate[date]; seen {
			result.Skipped++
			continue
		}

		byDate[date] = daylioRow{date: date, emotion: emotion, note: daylioNote(field(record, "note_title"), field(record, "note"), field(record, "activities"), mood)}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]daylioRow, 0, len(dates))
	for _, date := range dates {
		rows = append(rows, byDate[date])
	}
	return rows, result, nil
}

// daylioNote picks the calendar note: title and note text when present,
// then the activity list, then the mood itself.
func daylioNote(title, note, activities, mood string) string {
	note = strings.Join(strings.Fields(note), " ")
	switch {
	case title != "" && note != "":
		return title + ": " + note
	case note != "":
		return note
	case title != "":
		return title
	case activities != "":
		return strings.ReplaceAll(activities, " | ", ", ")
	default:
		return "Imported from Daylio (" + strings.ToLower(mood) + ")"
	}
}
