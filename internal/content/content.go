// Package content holds the static text the journal shows around the data:
// exploration prompts, insight messages, recommended content and the
// emotion palette.
package content

import (
	"fmt"
	"regexp"
	"strings"

	"compass/internal/storage"
)

// MaxRecommendations caps how many items the insight step shows.
const MaxRecommendations = 3

// ExploreEmotion is one of the feelings the guided reflection covers.
type ExploreEmotion struct {
	Key   string // "lethargy", "anxiety"
	Name  string
	Emoji string
}

// ExploreEmotions lists the reflection choices in display order.
var ExploreEmotions = []ExploreEmotion{
	{Key: storage.ExploreLethargy, Name: "Lethargy", Emoji: "😴"},
	{Key: storage.ExploreAnxiety, Name: "Anxiety", Emoji: "😰"},
}

// LookupExplore returns the exploration emotion for key.
func LookupExplore(key string) (ExploreEmotion, bool) {
	for _, e := range ExploreEmotions {
		if e.Key == key {
			return e, true
		}
	}
	return ExploreEmotion{}, false
}

// Step prompts for the guided reflection.
const (
	ChooseEmotionPrompt = "What are you feeling right now?"
	WordIntro           = "That sounds hard. Shall we look at it a little more closely?"
	WordPrompt          = "If you had to describe this feeling in one word, what would it be?"
	WordPlaceholder     = "e.g. a stone, fog, a heavy load..."
	TimingPrompt        = "When did you start feeling this way?"
	TimingPlaceholder   = "Time, situation, what set it off..."
	ClosingPrompt       = "Having come this far, how would you put your heart into one sentence?"
	ClosingPlaceholder  = "e.g. It is still heavy, but feeling understood made it a little lighter"
	ClosingSaved        = "Recorded. Well done for facing yourself today."
)

// WordEcho is shown at the start of the timing step.
func WordEcho(word string) string {
	return fmt.Sprintf("So it feels like '%s'.", word)
}

var insightTemplates = map[string]string{
	storage.ExploreLethargy: "You are feeling a lethargy like '%s'.\n\n" +
		"A feeling like this can be a signal to pause and look after yourself. " +
		"Just as a phone needs charging when its battery runs low, " +
		"your heart may need some time to recharge right now.\n\n" +
		"Start small. Even the smallest thing you can do today. " +
		"That will be your first small win. ✨",
	storage.ExploreAnxiety: "You are feeling an anxiety like '%s'.\n\n" +
		"Anxiety is proof that you care about something. " +
		"If you did not care at all, you would not be anxious.\n\n" +
		"Focus on what you can do in this moment. " +
		"The future is made of small choices in the present. " +
		"Take a deep breath and go one step at a time. 🌱",
}

// Insight returns the supportive message for emotion with the user's word
// substituted. Unknown emotions get the anxiety message.
func Insight(emotion, word string) string {
	tmpl, ok := insightTemplates[emotion]
	if !ok {
		tmpl = insightTemplates[storage.ExploreAnxiety]
	}
	return fmt.Sprintf(tmpl, word)
}

// DefaultRecommendations is used when the content store has nothing for an
// emotion.
func DefaultRecommendations() storage.ContentLibrary {
	const url = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	return storage.ContentLibrary{
		storage.ExploreLethargy: {
			{
				Title:       "5 ways to climb out of lethargy",
				Description: "Practical ideas for days when there is no energy and no motivation.",
				URL:         url,
				Tags:        []string{"#lethargy", "#practical", "#under5min"},
				Duration:    "4m 30s",
			},
			{
				Title:       "The power of small habits",
				Description: "Why starting with small habits beats waiting for a big change.",
				URL:         url,
				Tags:        []string{"#habits", "#selfgrowth"},
				Duration:    "8m 15s",
			},
		},
		storage.ExploreAnxiety: {
			{
				Title:       "Breathing exercises for anxious moments",
				Description: "Learn a breathing technique that takes the edge off anxiety.",
				URL:         url,
				Tags:        []string{"#anxiety", "#breathing", "#practical"},
				Duration:    "6m 20s",
			},
			{
				Title:       "Calming a worried mind",
				Description: "A psychological approach to stepping out of excessive worry.",
				URL:         url,
				Tags:        []string{"#worry", "#psychology"},
				Duration:    "7m 45s",
			},
		},
	}
}

// Recommendations returns up to MaxRecommendations items for emotion from
// lib, falling back to the built-in defaults when lib has none.
func Recommendations(lib storage.ContentLibrary, emotion string) []storage.ContentItem {
	items := lib[emotion]
	if len(items) == 0 {
		items = DefaultRecommendations()[emotion]
	}
	if len(items) > MaxRecommendations {
		items = items[:MaxRecommendations]
	}
	return items
}

var emotionEmoji = map[storage.Emotion]string{
	storage.EmotionHappy:     "😊",
	storage.EmotionCalm:      "😌",
	storage.EmotionLethargic: "😴",
	storage.EmotionAnxious:   "😰",
	storage.EmotionSad:       "😢",
	storage.EmotionAngry:     "😠",
	storage.EmotionHopeful:   "🌱",
	storage.EmotionGrateful:  "🙏",
}

// EmotionLabel renders an emotion with its emoji, e.g. "😊 happy".
func EmotionLabel(e storage.Emotion) string {
	if emoji, ok := emotionEmoji[e]; ok {
		return emoji + " " + string(e)
	}
	return string(e)
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor reports whether s is a #RRGGBB colour.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// Palette maps each calendar emotion to its colour. Valid overrides (from
// config) replace the defaults; invalid ones are ignored.
type Palette map[storage.Emotion]string

// NewPalette builds the palette from the defaults plus overrides.
func NewPalette(overrides map[string]string) Palette {
	p := make(Palette, len(storage.Emotions))
	for _, e := range storage.Emotions {
		p[e] = storage.DefaultColor(e)
	}
	for name, color := range overrides {
		e, ok := storage.ParseEmotion(name)
		color = strings.TrimSpace(color)
		if ok && ValidColor(color) {
			p[e] = strings.ToUpper(color)
		}
	}
	return p
}

// Color returns the palette colour for e.
func (p Palette) Color(e storage.Emotion) string {
	if c, ok := p[e]; ok {
		return c
	}
	return storage.DefaultColor(e)
}
