package ui

import (
	"strings"
	"testing"
	"time"

	"compass/internal/config"
	"compass/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// fixedNow is the clock used by test storages.
var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)

// setupTest prepares the test environment for deterministic rendering.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory
// and a fixed clock.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	store.SetNowFunc(func() time.Time { return fixedNow })
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// createTestApp builds an app without onboarding, sized to width x 40.
func createTestApp(t *testing.T, store *storage.Storage, width int) *App {
	t.Helper()
	app := NewApp(store, createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		ShowOnboarding:        false,
		NarrowLayoutThreshold: 80,
	})
	app.Update(tea.WindowSizeMsg{Width: width, Height: 40})
	return app
}

// runCmd executes cmd and feeds the resulting app messages back into app,
// following batches. Commands that block, such as ticks and cursor blinks,
// are abandoned after a short wait.
func runCmd(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			runCmd(app, c)
		}
	case calendarLoadedMsg, lettersLoadedMsg, moodsLoadedMsg, contentLoadedMsg,
		emotionRecordedMsg, letterWrittenMsg, letterReadMsg, moodSavedMsg,
		syncStatusMsg, navigateMsg, statusMsg:
		_, next := app.Update(m)
		runCmd(app, next)
	}
}

// press sends keys to the app and runs the resulting commands.
func press(app *App, keys ...string) {
	for _, k := range keys {
		_, cmd := app.Update(keyMsg(k))
		runCmd(app, cmd)
	}
}

// typeText sends each rune of s as a key press.
func typeText(app *App, s string) {
	for _, r := range s {
		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		runCmd(app, cmd)
	}
}

// keyMsg builds the tea.KeyMsg for a key name such as "enter" or "j".
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
