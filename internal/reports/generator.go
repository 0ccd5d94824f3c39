package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"compass/internal/storage"
)

// Generator creates reports from storage data.
type Generator struct {
	store *storage.Storage
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Storage) *Generator {
	return &Generator{store: store}
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthPrefix returns "YYYY-MM-" for matching date keys and timestamps.
func monthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d-", year, int(month))
}

type tally struct {
	counts    map[storage.Emotion]int
	firstSeen map[storage.Emotion]string
}

func newTally() *tally {
	return &tally{counts: map[storage.Emotion]int{}, firstSeen: map[storage.Emotion]string{}}
}

func (t *tally) add(date string, e storage.Emotion) {
	t.counts[e]++
	if first, ok := t.firstSeen[e]; !ok || date < first {
		t.firstSeen[e] = date
	}
}

// ranked orders emotions by count, ties going to the emotion recorded first.
func (t *tally) ranked() []EmotionCount {
	out := make([]EmotionCount, 0, len(t.counts))
	for e, n := range t.counts {
		out = append(out, EmotionCount{Emotion: e, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		fi, fj := t.firstSeen[out[i].Emotion], t.firstSeen[out[j].Emotion]
		if fi != fj {
			return fi < fj
		}
		return out[i].Emotion < out[j].Emotion
	})
	return out
}

// MonthlySummary buckets the calendar entries of (year, month). Keys that do
// not parse as dates are skipped. The completion rate is measured against
// the whole month, even one still in progress, and is not clamped.
func MonthlySummary(cal storage.Calendar, year int, month time.Month) MonthSummary {
	days := DaysInMonth(year, month)
	t := newTally()
	count := 0
	for key, entry := range cal {
		d, err := time.Parse(storage.DateLayout, key)
		if err != nil || d.Year() != year || d.Month() != month {
			continue
		}
		count++
		t.add(key, entry.Emotion)
	}

	ranked := t.ranked()
	s := MonthSummary{
		Year:           year,
		Month:          month,
		DaysInMonth:    days,
		Count:          count,
		CompletionRate: float64(count) / float64(days) * 100,
		ByEmotion:      ranked,
	}
	if len(ranked) > 0 {
		s.ModeEmotion = ranked[0].Emotion
	}
	return s
}

// Distribution counts every well-formed calendar day by emotion, most
// frequent first.
func Distribution(cal storage.Calendar) []EmotionCount {
	t := newTally()
	for _, key := range cal.Dates() {
		t.add(key, cal[key].Emotion)
	}
	return t.ranked()
}

// GenerateMonthly builds the report for one month.
func (g *Generator) GenerateMonthly(year int, month time.Month) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	now := g.store.Now()
	cal := g.store.LoadCalendar()
	prefix := monthPrefix(year, month)

	days := []DayEntry{}
	for _, key := range cal.Dates() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		e := cal[key]
		d, _ := time.Parse(storage.DateLayout, key)
		days = append(days, DayEntry{
			Date:      key,
			Weekday:   d.Weekday().String(),
			Emotion:   e.Emotion,
			Note:      e.Note,
			Color:     e.Color,
			Timestamp: e.Timestamp,
		})
	}

	written := []LetterRef{}
	delivered := []LetterRef{}
	for _, l := range g.store.LoadLetters().Letters {
		if strings.HasPrefix(l.WriteDate, prefix) {
			written = append(written, refOf(l))
		}
		if strings.HasPrefix(l.DeliveryDate, prefix) && l.Deliverable(now) {
			delivered = append(delivered, refOf(l))
		}
	}

	moods := []storage.MoodEntry{}
	for _, m := range g.store.LoadMoodLog() {
		if strings.HasPrefix(m.Timestamp, prefix) {
			moods = append(moods, m)
		}
	}

	return &MonthlyReport{
		Summary:          MonthlySummary(cal, year, month),
		Streak:           storage.Streak(cal, now),
		Days:             days,
		LettersWritten:   written,
		LettersDelivered: delivered,
		Moods:            moods,
		GeneratedAt:      now,
	}, nil
}

// GenerateOverview builds the all-time statistics.
func (g *Generator) GenerateOverview() (*Overview, error) {
	now := g.store.Now()
	cal := g.store.LoadCalendar()
	dates := cal.Dates()
	dist := Distribution(cal)

	o := &Overview{
		TotalDays:    len(dates),
		Streak:       storage.Streak(cal, now),
		Distribution: dist,
		Letters:      SummarizeLetters(g.store.LoadLetters().Letters, now),
		MoodEntries:  len(g.store.LoadMoodLog()),
		GeneratedAt:  now,
	}
	if len(dates) > 0 {
		o.FirstDate = dates[0]
		o.LastDate = dates[len(dates)-1]
	}
	if len(dist) > 0 {
		o.ModeEmotion = dist[0].Emotion
	}
	return o, nil
}

// SummarizeLetters counts letters by delivery and read state.
func SummarizeLetters(letters []storage.Letter, today time.Time) LetterSummary {
	deliverable, waiting := storage.PartitionLetters(letters, today)
	return LetterSummary{
		Total:     len(letters),
		Delivered: len(deliverable),
		Unread:    storage.CountNew(letters, today),
		Waiting:   len(waiting),
	}
}

func refOf(l storage.Letter) LetterRef {
	return LetterRef{ID: l.ID, WriteDate: l.WriteDate, DeliveryDate: l.DeliveryDate, IsRead: l.IsRead}
}

// MonthGrid lays out a month as Monday-first weeks. Days outside the month
// are 0.
func MonthGrid(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	days := DaysInMonth(year, month)

	var grid [][7]int
	var week [7]int
	col := offset
	for d := 1; d <= days; d++ {
		week[col] = d
		col++
		if col == 7 {
			grid = append(grid, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		grid = append(grid, week)
	}
	return grid
}
