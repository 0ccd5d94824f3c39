package content

import (
	"strings"
	"testing"

	"compass/internal/storage"
)

func TestInsight_SubstitutesWord(t *testing.T) {
	tests := []struct {
		emotion string
		word    string
		want    string
	}{
		{storage.ExploreLethargy, "stone", "lethargy like 'stone'"},
		{storage.ExploreAnxiety, "wind", "anxiety like 'wind'"},
		{"unknown", "fog", "anxiety like 'fog'"},
	}
	for _, tt := range tests {
		got := Insight(tt.emotion, tt.word)
		if !strings.Contains(got, tt.want) {
			t.Errorf("Insight(%q, %q) = %q, want it to contain %q", tt.emotion, tt.word, got, tt.want)
		}
	}
}

func TestInsight_PercentInWord(t *testing.T) {
	got := Insight(storage.ExploreLethargy, "100%")
	if !strings.Contains(got, "'100%'") {
		t.Errorf("Insight() = %q", got)
	}
}

func TestRecommendations(t *testing.T) {
	t.Run("store content wins", func(t *testing.T) {
		lib := storage.ContentLibrary{storage.ExploreAnxiety: {{Title: "Mine"}}}
		got := Recommendations(lib, storage.ExploreAnxiety)
		if len(got) != 1 || got[0].Title != "Mine" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("missing key falls back", func(t *testing.T) {
		lib := storage.ContentLibrary{storage.ExploreAnxiety: {{Title: "Mine"}}}
		got := Recommendations(lib, storage.ExploreLethargy)
		if len(got) != 2 || got[1].Title != "The power of small habits" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("nil library falls back", func(t *testing.T) {
		if got := Recommendations(nil, storage.ExploreAnxiety); len(got) != 2 {
			t.Errorf("got %d items", len(got))
		}
	})

	t.Run("capped at three", func(t *testing.T) {
		lib := storage.ContentLibrary{storage.ExploreLethargy: {{Title: "1"}, {Title: "2"}, {Title: "3"}, {Title: "4"}}}
		got := Recommendations(lib, storage.ExploreLethargy)
		if len(got) != MaxRecommendations || got[2].Title != "3" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("unknown emotion", func(t *testing.T) {
		if got := Recommendations(nil, "joy"); len(got) != 0 {
			t.Errorf("got %+v", got)
		}
	})
}

func TestLookupExplore(t *testing.T) {
	if e, ok := LookupExplore("anxiety"); !ok || e.Name != "Anxiety" {
		t.Errorf("LookupExplore(anxiety) = %+v, %v", e, ok)
	}
	if _, ok := LookupExplore("joy"); ok {
		t.Error("LookupExplore(joy) ok")
	}
}

func TestNewPalette(t *testing.T) {
	p := NewPalette(map[string]string{
		"Happy":   "#00ff00",
		"sad":     "blue",
		"nothing": "#123456",
	})

	if got := p.Color(storage.EmotionHappy); got != "#00FF00" {
		t.Errorf("happy = %s, want override", got)
	}
	if got := p.Color(storage.EmotionSad); got != "#4169E1" {
		t.Errorf("sad = %s, want default for invalid override", got)
	}
	if got := p.Color(storage.EmotionGrateful); got != "#DDA0DD" {
		t.Errorf("grateful = %s", got)
	}
	if len(p) != len(storage.Emotions) {
		t.Errorf("palette has %d entries", len(p))
	}
}

func TestEmotionLabel(t *testing.T) {
	for _, e := range storage.Emotions {
		if label := EmotionLabel(e); !strings.HasSuffix(label, string(e)) || label == string(e) {
			t.Errorf("EmotionLabel(%s) = %q", e, label)
		}
	}
	if got := EmotionLabel("bored"); got != "bored" {
		t.Errorf("EmotionLabel(bored) = %q", got)
	}
}
