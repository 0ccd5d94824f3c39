package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
	global GlobalKeyMap
	page   PageKeyMap
	input  InputKeyMap
}

// NewHelpOverlay creates a new help overlay listing the given bindings.
func NewHelpOverlay(styles *Styles, global GlobalKeyMap, page PageKeyMap, input InputKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
		global: global,
		page:   page,
		input:  input,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// keyLabels joins the help labels of bindings, e.g. "j / k".
func keyLabels(bindings ...key.Binding) string {
	labels := make([]string, 0, len(bindings))
	for _, b := range bindings {
		labels = append(labels, b.Help().Key)
	}
	return strings.Join(labels, " / ")
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	section := func(name string, rows ...[2]string) {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, r := range rows {
			b.WriteString(keyStyle.Render(r[0]) + descStyle.Render(r[1]) + "\n")
		}
	}

	b.WriteString(titleStyle.Render("🧭 compass - Keyboard Shortcuts"))
	b.WriteString("\n")

	g, p := h.global, h.page
	section("Global",
		[2]string{keyLabels(g.NextPage), "Next page"},
		[2]string{keyLabels(g.Home, g.Explore, g.Calendar, g.Letters), "Home / Explore / Calendar / Letters"},
		[2]string{keyLabels(g.Help), "Toggle help"},
		[2]string{keyLabels(g.Quit), "Quit"},
	)
	section("Home",
		[2]string{keyLabels(p.Up, p.Down), "Choose"},
		[2]string{keyLabels(p.Select), "Open"},
	)
	section("Explore",
		[2]string{keyLabels(p.Up, p.Down), "Choose a feeling"},
		[2]string{keyLabels(h.input.Confirm), "Answer / save"},
		[2]string{keyLabels(h.input.Cancel), "Start over"},
	)
	section("Calendar",
		[2]string{keyLabels(p.Left, p.Right), "Previous / next month"},
		[2]string{keyLabels(p.Record), "Record today"},
		[2]string{keyLabels(p.Stats), "Statistics"},
	)
	section("Letters",
		[2]string{keyLabels(p.Write), "Write a letter"},
		[2]string{keyLabels(p.Up, p.Down), "Select letter"},
		[2]string{keyLabels(p.MarkRead), "Mark read"},
		[2]string{keyLabels(p.Send), "Send (while writing)"},
	)
	section("Input Mode",
		[2]string{keyLabels(h.input.Confirm), "Save / next field"},
		[2]string{keyLabels(h.input.Cancel), "Cancel"},
	)

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
