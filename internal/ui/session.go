package ui

import (
	"errors"
	"strings"

	"compass/internal/content"
)

// Page identifies one screen of the app.
type Page int

const (
	PageHome Page = iota
	PageExplore
	PageCalendar
	PageLetters
)

// pages lists the pages in tab order.
var pages = []Page{PageHome, PageExplore, PageCalendar, PageLetters}

func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageExplore:
		return "Explore"
	case PageCalendar:
		return "Calendar"
	case PageLetters:
		return "Letters"
	}
	return "Unknown"
}

// ExploreStep is the position inside the guided reflection.
type ExploreStep int

const (
	StepChooseEmotion ExploreStep = iota
	StepWord
	StepTiming
	StepInsight
)

var (
	errEmptyAnswer    = errors.New("please write something first")
	errUnknownExplore = errors.New("unknown emotion")
)

// Session is the navigation state of one app run: the current page and the
// progress of the reflection.
type Session struct {
	Page     Page
	ChatStep ExploreStep
	Emotion  string // exploration key, "" until chosen
	Answers  map[ExploreStep]string
}

// NewSession starts on the home page.
func NewSession() Session {
	return Session{Page: PageHome, Answers: map[ExploreStep]string{}}
}

// Navigate switches page. Entering Explore always starts a fresh reflection.
func (s *Session) Navigate(p Page) {
	if p == PageExplore {
		s.ResetExplore()
	}
	s.Page = p
}

// Next moves to the page after the current one, wrapping around.
func (s *Session) Next() {
	for i, p := range pages {
		if p == s.Page {
			s.Navigate(pages[(i+1)%len(pages)])
			return
		}
	}
	s.Navigate(PageHome)
}

// ResetExplore clears the reflection state.
func (s *Session) ResetExplore() {
	s.ChatStep = StepChooseEmotion
	s.Emotion = ""
	s.Answers = map[ExploreStep]string{}
}

// ChooseEmotion selects the feeling to reflect on and moves to the word step.
func (s *Session) ChooseEmotion(key string) error {
	if _, ok := content.LookupExplore(key); !ok {
		return errUnknownExplore
	}
	s.Emotion = key
	s.ChatStep = StepWord
	return nil
}

// Answer records the reply to the current question and advances. Only the
// word and timing steps take answers; the closing sentence goes to the mood
// log instead.
func (s *Session) Answer(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errEmptyAnswer
	}
	switch s.ChatStep {
	case StepWord:
		s.Answers[StepWord] = text
		s.ChatStep = StepTiming
	case StepTiming:
		s.Answers[StepTiming] = text
		s.ChatStep = StepInsight
	default:
		return errors.New("nothing to answer at this step")
	}
	return nil
}

// Word is the metaphor the user chose.
func (s *Session) Word() string {
	return s.Answers[StepWord]
}

// Finish ends the reflection and returns home.
func (s *Session) Finish() {
	s.ResetExplore()
	s.Page = PageHome
}
