package ui

import (
	"testing"

	"compass/internal/storage"
)

func TestSession_Defaults(t *testing.T) {
	s := NewSession()
	if s.Page != PageHome {
		t.Errorf("Page = %v, want Home", s.Page)
	}
	if s.ChatStep != StepChooseEmotion || s.Emotion != "" {
		t.Errorf("explore state = %v/%q, want a fresh reflection", s.ChatStep, s.Emotion)
	}
}

func TestSession_NextWraps(t *testing.T) {
	s := NewSession()
	want := []Page{PageExplore, PageCalendar, PageLetters, PageHome}
	for _, p := range want {
		s.Next()
		if s.Page != p {
			t.Fatalf("Next() = %v, want %v", s.Page, p)
		}
	}
}

func TestSession_ReflectionFlow(t *testing.T) {
	s := NewSession()
	s.Navigate(PageExplore)

	if err := s.ChooseEmotion("boredom"); err == nil {
		t.Error("unknown emotion should be rejected")
	}
	if err := s.ChooseEmotion(storage.ExploreLethargy); err != nil {
		t.Fatalf("ChooseEmotion: %v", err)
	}
	if s.ChatStep != StepWord {
		t.Fatalf("step = %v, want StepWord", s.ChatStep)
	}

	if err := s.Answer("   "); err == nil {
		t.Error("blank answer should be rejected")
	}
	if s.ChatStep != StepWord {
		t.Error("blank answer should not advance")
	}

	if err := s.Answer(" stone "); err != nil {
		t.Fatalf("Answer word: %v", err)
	}
	if s.Word() != "stone" {
		t.Errorf("Word() = %q, want trimmed %q", s.Word(), "stone")
	}
	if err := s.Answer("since Monday"); err != nil {
		t.Fatalf("Answer timing: %v", err)
	}
	if s.ChatStep != StepInsight {
		t.Fatalf("step = %v, want StepInsight", s.ChatStep)
	}
	if err := s.Answer("more"); err == nil {
		t.Error("the insight step takes no answer")
	}

	s.Finish()
	if s.Page != PageHome || s.ChatStep != StepChooseEmotion || s.Word() != "" {
		t.Errorf("Finish should reset and go home, got %+v", s)
	}
}

func TestSession_NavigateResetsReflection(t *testing.T) {
	s := NewSession()
	s.Navigate(PageExplore)
	_ = s.ChooseEmotion(storage.ExploreAnxiety)
	_ = s.Answer("wind")

	s.Navigate(PageLetters)
	if s.ChatStep != StepTiming {
		t.Error("leaving explore keeps the reflection")
	}

	s.Navigate(PageExplore)
	if s.ChatStep != StepChooseEmotion || s.Emotion != "" || len(s.Answers) != 0 {
		t.Errorf("entering explore should start over, got %+v", s)
	}
}
