package ui

import (
	"testing"

	"compass/internal/config"
	"compass/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStyles_UsesThemeColors(t *testing.T) {
	theme := &config.ThemeConfig{
		Primary:    "#FF0000", // Red
		Accent:     "#00FF00", // Green
		Muted:      "#0000FF", // Blue
		Background: "#000000", // Black
		Text:       "#FFFFFF", // White
	}

	styles := NewStylesFromTheme(theme)

	if styles.ColorPrimary != lipgloss.Color("#FF0000") {
		t.Errorf("ColorPrimary = %v, want #FF0000", styles.ColorPrimary)
	}
	if styles.ColorAccent != lipgloss.Color("#00FF00") {
		t.Errorf("ColorAccent = %v, want #00FF00", styles.ColorAccent)
	}
	if styles.ColorMuted != lipgloss.Color("#0000FF") {
		t.Errorf("ColorMuted = %v, want #0000FF", styles.ColorMuted)
	}
	if styles.ColorBg != lipgloss.Color("#000000") {
		t.Errorf("ColorBg = %v, want #000000", styles.ColorBg)
	}
	if styles.ColorText != lipgloss.Color("#FFFFFF") {
		t.Errorf("ColorText = %v, want #FFFFFF", styles.ColorText)
	}
}

func TestNewStyles_UsesDefaults(t *testing.T) {
	styles := NewStylesFromTheme(&config.ThemeConfig{})

	if styles.ColorPrimary != lipgloss.Color("#4A90E2") {
		t.Errorf("ColorPrimary = %v, want default #4A90E2", styles.ColorPrimary)
	}
	if styles.ColorAccent != lipgloss.Color("#7B68EE") {
		t.Errorf("ColorAccent = %v, want default #7B68EE", styles.ColorAccent)
	}
	if styles.ColorMuted != lipgloss.Color("#6B7280") {
		t.Errorf("ColorMuted = %v, want default #6B7280", styles.ColorMuted)
	}
	if got := styles.Palette.Color(storage.EmotionHappy); got != "#FFD700" {
		t.Errorf("happy colour = %s, want #FFD700", got)
	}
}

func TestNewStyles_ComponentStylesInitialized(t *testing.T) {
	styles := NewStylesFromTheme(&config.ThemeConfig{Primary: "#FF0000"})

	if styles.TitleStyle.GetBackground() != lipgloss.Color("#FF0000") {
		t.Error("TitleStyle should use Primary color for background")
	}
	if styles.PaneFocusedStyle.GetBorderTopForeground() != lipgloss.Color("#FF0000") {
		t.Error("PaneFocusedStyle should use Primary color for border")
	}
	if styles.PaneTitleStyle.GetForeground() != lipgloss.Color("#FF0000") {
		t.Error("PaneTitleStyle should use Primary color for foreground")
	}
}

func TestNewStyles_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Primary = "#123456"
	cfg.EmotionColors = map[string]string{
		"Sad":   "#112233",
		"happy": "not-a-colour",
	}

	styles := NewStyles(cfg)

	if styles.ColorPrimary != lipgloss.Color("#123456") {
		t.Errorf("ColorPrimary = %v, want #123456", styles.ColorPrimary)
	}
	if got := styles.Palette.Color(storage.EmotionSad); got != "#112233" {
		t.Errorf("sad colour = %s, want override #112233", got)
	}
	if got := styles.Palette.Color(storage.EmotionHappy); got != "#FFD700" {
		t.Errorf("invalid override should keep default, got %s", got)
	}
}

func TestDayStyle_FallsBackToPalette(t *testing.T) {
	styles := createTestStyles()

	valid := styles.DayStyle(storage.CalendarEntry{Emotion: storage.EmotionCalm, Color: "#ABCDEF"})
	if valid.GetBackground() != lipgloss.Color("#ABCDEF") {
		t.Errorf("background = %v, want the entry colour", valid.GetBackground())
	}

	broken := styles.DayStyle(storage.CalendarEntry{Emotion: storage.EmotionCalm, Color: "blue"})
	if broken.GetBackground() != lipgloss.Color("#87CEEB") {
		t.Errorf("background = %v, want the calm palette colour", broken.GetBackground())
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	styles := createTestStyles()

	output := styles.RenderHelp(
		"r", "record",
		"s", "stats",
		"dangling",
	)

	if !contains(output, "[r] record") || !contains(output, "[s] stats") {
		t.Errorf("RenderHelp output missing pairs: %q", output)
	}
	if contains(output, "dangling") {
		t.Error("an unpaired key should be ignored")
	}
}
