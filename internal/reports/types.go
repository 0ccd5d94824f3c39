// Package reports derives monthly and all-time summaries from the emotion
// calendar, the letters and the mood log.
package reports

import (
	"time"

	"compass/internal/storage"
)

// EmotionCount is the number of days recorded with one emotion.
type EmotionCount struct {
	Emotion storage.Emotion `json:"emotion"`
	Count   int             `json:"count"`
}

// MonthSummary aggregates the calendar entries of one month.
type MonthSummary struct {
	Year           int             `json:"year"`
	Month          time.Month      `json:"month"`
	DaysInMonth    int             `json:"days_in_month"`
	Count          int             `json:"count"`
	ModeEmotion    storage.Emotion `json:"mode_emotion,omitempty"`
	CompletionRate float64         `json:"completion_rate"` // percent of the full month
	ByEmotion      []EmotionCount  `json:"by_emotion"`
}

// DayEntry is one recorded calendar day.
type DayEntry struct {
	Date      string          `json:"date"`
	Weekday   string          `json:"weekday"`
	Emotion   storage.Emotion `json:"emotion"`
	Note      string          `json:"note"`
	Color     string          `json:"color"`
	Timestamp string          `json:"timestamp"`
}

// LetterSummary counts letters by state.
type LetterSummary struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Unread    int `json:"unread"`
	Waiting   int `json:"waiting"`
}

// LetterRef describes a letter without its content. Letters stay sealed in
// reports.
type LetterRef struct {
	ID           string `json:"id"`
	WriteDate    string `json:"write_date"`
	DeliveryDate string `json:"delivery_date"`
	IsRead       bool   `json:"is_read"`
}

// MonthlyReport contains everything recorded in one month.
type MonthlyReport struct {
	Summary          MonthSummary        `json:"summary"`
	Streak           int                 `json:"streak"`
	Days             []DayEntry          `json:"days"`
	LettersWritten   []LetterRef         `json:"letters_written"`
	LettersDelivered []LetterRef         `json:"letters_delivered"`
	Moods            []storage.MoodEntry `json:"moods"`
	GeneratedAt      time.Time           `json:"generated_at"`
}

// Overview contains all-time statistics.
type Overview struct {
	TotalDays    int             `json:"total_days"`
	FirstDate    string          `json:"first_date,omitempty"`
	LastDate     string          `json:"last_date,omitempty"`
	ModeEmotion  storage.Emotion `json:"mode_emotion,omitempty"`
	Streak       int             `json:"streak"`
	Distribution []EmotionCount  `json:"distribution"`
	Letters      LetterSummary   `json:"letters"`
	MoodEntries  int             `json:"mood_entries"`
	GeneratedAt  time.Time       `json:"generated_at"`
}
