package storage

import "strings"

// Exploration emotion keys used by the insight and content tables.
const (
	ExploreLethargy = "lethargy"
	ExploreAnxiety  = "anxiety"
)

const placeholderURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// SeedInsights is written to data/insights.json when the file is missing.
func SeedInsights() Insights {
	return Insights{
		ExploreLethargy: {
			Keywords: map[string]InsightReply{
				"stone": {
					Response:     "It sounds like you are dragging a heavy stone around with you.",
					NextQuestion: "When is a moment you could set that heavy stone down, even briefly?",
				},
			},
		},
		ExploreAnxiety: {
			Keywords: map[string]InsightReply{
				"wind": {
					Response:     "Your heart feels unsteady, like it is being shaken by the wind.",
					NextQuestion: "When does your heart feel most settled?",
				},
			},
		},
	}
}

// SeedContents is written to data/contents.json when the file is missing.
func SeedContents() ContentLibrary {
	return ContentLibrary{
		ExploreLethargy: {
			{
				Title:       "5 ways to climb out of lethargy",
				Description: "Practical ideas for days when there is no energy and no motivation.",
				URL:         placeholderURL,
				Tags:        []string{"#lethargy", "#practical", "#under5min"},
				Duration:    "4m 30s",
			},
		},
		ExploreAnxiety: {
			{
				Title:       "Breathing exercises for anxious moments",
				Description: "Learn a breathing technique that takes the edge off anxiety.",
				URL:         placeholderURL,
				Tags:        []string{"#anxiety", "#breathing", "#practical"},
				Duration:    "6m 20s",
			},
		},
	}
}

func (s *Storage) loadInsights() Insights {
	v := loadJSON(s, InsightsFile, SeedInsights)
	if v == nil {
		v = Insights{}
	}
	return v
}

func (s *Storage) loadContents() ContentLibrary {
	v := loadJSON(s, ContentsFile, SeedContents)
	if v == nil {
		v = ContentLibrary{}
	}
	return v
}

// LoadInsights reads the keyword reply table, seeding it when absent.
func (s *Storage) LoadInsights() Insights {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadInsights()
}

// LoadContents reads the recommendation table, seeding it when absent.
func (s *Storage) LoadContents() ContentLibrary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadContents()
}

// Lookup returns the reply for word under emotion, matching the keyword
// anywhere in word.
func (in Insights) Lookup(emotion, word string) (InsightReply, bool) {
	set, ok := in[emotion]
	if !ok {
		return InsightReply{}, false
	}
	if r, ok := set.Keywords[word]; ok {
		return r, true
	}
	best := ""
	for kw := range set.Keywords {
		if kw != "" && containsFold(word, kw) && len(kw) > len(best) {
			best = kw
		}
	}
	if best == "" {
		return InsightReply{}, false
	}
	return set.Keywords[best], true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
