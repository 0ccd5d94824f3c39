package ui

import (
	"testing"

	"compass/internal/config"
)

func newTestHelpOverlay(cfg *config.KeysConfig) *HelpOverlay {
	return NewHelpOverlay(createTestStyles(), NewGlobalKeyMap(cfg), NewPageKeyMap(cfg), NewInputKeyMap(cfg))
}

func TestHelpOverlay_ContentStructure(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(&config.KeysConfig{})
	help.SetSize(100, 50)

	output := help.View()

	sections := []string{
		"Global",
		"Home",
		"Explore",
		"Calendar",
		"Letters",
		"Input Mode",
	}
	for _, section := range sections {
		if !contains(output, section) {
			t.Errorf("help overlay should contain section: %s", section)
		}
	}

	keybindings := []string{
		"tab",
		"?",
		"q",
		"1 / 2 / 3 / 4",
		"ctrl+s",
		"enter",
		"esc",
	}
	for _, key := range keybindings {
		if !contains(output, key) {
			t.Errorf("help overlay should mention key: %s", key)
		}
	}
}

func TestHelpOverlay_ShowsCustomKeys(t *testing.T) {
	setupTest(t)

	help := newTestHelpOverlay(&config.KeysConfig{Record: "R", Write: "ctrl+w"})
	help.SetSize(100, 50)

	output := help.View()
	if !contains(output, "R") || !contains(output, "ctrl+w") {
		t.Error("help overlay should list remapped keys")
	}
}

func TestApp_HelpToggle(t *testing.T) {
	setupTest(t)
	app := createTestApp(t, createTestStorage(t), 100)

	if app.showHelp {
		t.Error("showHelp should be false initially")
	}

	press(app, "?")
	if !app.showHelp {
		t.Fatal("? should open help")
	}
	if !contains(app.View(), "Keyboard Shortcuts") {
		t.Error("view should show help overlay content")
	}

	press(app, "esc")
	if app.showHelp {
		t.Error("esc should close help")
	}
	if contains(app.View(), "Keyboard Shortcuts") {
		t.Error("view should not show help after closing")
	}
}

func TestApp_HelpOverlayBlocksInput(t *testing.T) {
	setupTest(t)
	app := createTestApp(t, createTestStorage(t), 100)

	press(app, "?", "3", "tab")

	if app.session.Page != PageHome {
		t.Errorf("page changed to %v while help was shown", app.session.Page)
	}
	if !app.showHelp {
		t.Error("other keys should not close help")
	}
}

func TestApp_ContextualHelp(t *testing.T) {
	setupTest(t)
	app := createTestApp(t, createTestStorage(t), 100)

	tests := []struct {
		name      string
		page      Page
		expectKey string
	}{
		{"home help", PageHome, "open"},
		{"explore help", PageExplore, "select"},
		{"calendar help", PageCalendar, "record"},
		{"letters help", PageLetters, "write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.navigate(tt.page, false)

			helpBar := app.renderHelpBar()
			if !contains(helpBar, tt.expectKey) {
				t.Errorf("help bar for %v should contain %q, got %q", tt.page, tt.expectKey, helpBar)
			}
			if !contains(helpBar, "help") {
				t.Error("help bar should mention ?")
			}
		})
	}
}

func TestApp_InputModeHelp(t *testing.T) {
	setupTest(t)
	app := createTestApp(t, createTestStorage(t), 100)

	press(app, "4", "w")
	if !app.letters.IsEditing() {
		t.Fatal("w should open the letter editor")
	}

	helpBar := app.renderHelpBar()
	if !contains(helpBar, "send") || !contains(helpBar, "cancel") {
		t.Errorf("help bar should show writing help, got %q", helpBar)
	}
	if contains(helpBar, "[tab] page") {
		t.Error("page switching is disabled while writing")
	}
}
