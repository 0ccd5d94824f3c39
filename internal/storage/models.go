package storage

import (
	"strings"
	"time"
)

const (
	// DateLayout is the key format of the calendar and the letter dates.
	DateLayout = "2006-01-02"
	// TimestampLayout is used for entry timestamps and the mood log prefix.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Emotion is one of the fixed calendar emotions.
type Emotion string

const (
	EmotionHappy     Emotion = "happy"
	EmotionCalm      Emotion = "calm"
	EmotionLethargic Emotion = "lethargic"
	EmotionAnxious   Emotion = "anxious"
	EmotionSad       Emotion = "sad"
	EmotionAngry     Emotion = "angry"
	EmotionHopeful   Emotion = "hopeful"
	EmotionGrateful  Emotion = "grateful"
)

// Emotions lists the calendar emotions in display order.
var Emotions = []Emotion{
	EmotionHappy,
	EmotionCalm,
	EmotionLethargic,
	EmotionAnxious,
	EmotionSad,
	EmotionAngry,
	EmotionHopeful,
	EmotionGrateful,
}

var defaultColors = map[Emotion]string{
	EmotionHappy:     "#FFD700",
	EmotionCalm:      "#87CEEB",
	EmotionLethargic: "#A9A9A9",
	EmotionAnxious:   "#FF6B6B",
	EmotionSad:       "#4169E1",
	EmotionAngry:     "#FF4500",
	EmotionHopeful:   "#98FB98",
	EmotionGrateful:  "#DDA0DD",
}

// DefaultColor returns the palette colour for e, or "" for an unknown emotion.
func DefaultColor(e Emotion) string {
	return defaultColors[e]
}

// ParseEmotion matches s case-insensitively against the fixed emotion set.
func ParseEmotion(s string) (Emotion, bool) {
	e := Emotion(strings.ToLower(strings.TrimSpace(s)))
	_, ok := defaultColors[e]
	return e, ok
}

// CalendarEntry is the single record kept for one calendar day.
type CalendarEntry struct {
	Emotion   Emotion `json:"emotion"`
	Note      string  `json:"note"`
	Color     string  `json:"color"`
	Timestamp string  `json:"timestamp"` // TimestampLayout
}

// Calendar maps a YYYY-MM-DD key to that day's entry.
type Calendar map[string]CalendarEntry

// Letter is a letter to the future self.
type Letter struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	WriteDate    string  `json:"write_date"`    // DateLayout
	DeliveryDate string  `json:"delivery_date"` // DateLayout
	IsRead       bool    `json:"is_read"`
	ReadDate     *string `json:"read_date"` // TimestampLayout, null until read
	WriteTime    string  `json:"write_time"` // TimestampLayout
}

// LetterStore is the on-disk shape of future_letters.json.
type LetterStore struct {
	Letters []Letter `json:"letters"`
}

// MoodEntry is one line of the mood log. Timestamp is empty for lines that
// carry no bracketed prefix.
type MoodEntry struct {
	Timestamp string
	Text      string
}

// Time parses the entry timestamp in the local zone.
func (m MoodEntry) Time() (time.Time, bool) {
	if m.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TimestampLayout, m.Timestamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// InsightReply is the canned answer for a metaphor keyword.
type InsightReply struct {
	Response     string `json:"response"`
	NextQuestion string `json:"next_question"`
}

// InsightSet holds the keyword replies for one exploration emotion.
type InsightSet struct {
	Keywords map[string]InsightReply `json:"keywords"`
}

// Insights maps an exploration emotion key ("lethargy", "anxiety") to its replies.
type Insights map[string]InsightSet

// ContentItem is one recommended piece of content.
type ContentItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Duration    string   `json:"duration"`
}

// ContentLibrary maps an exploration emotion key to its recommendations.
type ContentLibrary map[string][]ContentItem
