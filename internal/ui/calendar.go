package ui

import (
	"fmt"
	"strings"
	"time"

	"compass/internal/content"
	"compass/internal/reports"
	"compass/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// calendarView selects what the calendar page shows.
type calendarView int

const (
	viewMonth calendarView = iota
	viewRecord
	viewStats
)

// Record form fields, in focus order.
const (
	fieldEmotion = iota
	fieldColor
	fieldNote
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// CalendarPage shows the month grid coloured by emotion, the month and
// all-time statistics, and the form that records today's emotion.
type CalendarPage struct {
	storage   *storage.Storage
	data      *journal
	styles    *Styles
	keys      PageKeyMap
	inputKeys InputKeyMap

	view  calendarView
	month time.Time // first day of the displayed month

	// record form
	field      int
	emotionIdx int
	colorInput textinput.Model
	noteInput  textinput.Model
	saving     bool

	width   int
	height  int
	focused bool
}

// NewCalendarPage creates the calendar page showing the current month.
func NewCalendarPage(store *storage.Storage, data *journal, styles *Styles, keys PageKeyMap, inputKeys InputKeyMap) *CalendarPage {
	color := textinput.New()
	color.CharLimit = 7
	color.Width = 10

	note := textinput.New()
	note.Placeholder = "e.g. Today I started something new and felt a flutter of excitement"
	note.CharLimit = 200
	note.Width = 40

	now := store.Now()
	return &CalendarPage{
		storage:    store,
		data:       data,
		styles:     styles,
		keys:       keys,
		inputKeys:  inputKeys,
		month:      time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		colorInput: color,
		noteInput:  note,
	}
}

// SetSize sets the page dimensions.
func (p *CalendarPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.noteInput.Width = max(10, width-16)
}

// SetFocused sets whether this page is focused.
func (p *CalendarPage) SetFocused(focused bool) {
	p.focused = focused
}

// IsEditing reports whether the record form is open.
func (p *CalendarPage) IsEditing() bool {
	return p.view == viewRecord
}

// ShowStats switches to the statistics view.
func (p *CalendarPage) ShowStats() {
	p.closeForm()
	p.view = viewStats
}

// ShowMonth switches to the month grid.
func (p *CalendarPage) ShowMonth() {
	p.closeForm()
	p.view = viewMonth
}

func (p *CalendarPage) selectedEmotion() storage.Emotion {
	return storage.Emotions[p.emotionIdx]
}

func (p *CalendarPage) openForm() {
	p.view = viewRecord
	p.field = fieldEmotion
	p.saving = false
	p.colorInput.Reset()
	p.noteInput.Reset()

	// Start from today's entry when there is one.
	if entry, ok := p.data.calendar[p.storage.Today()]; ok {
		for i, e := range storage.Emotions {
			if e == entry.Emotion {
				p.emotionIdx = i
			}
		}
		if !strings.EqualFold(entry.Color, p.styles.Palette.Color(entry.Emotion)) {
			p.colorInput.SetValue(entry.Color)
		}
		p.noteInput.SetValue(entry.Note)
	}
	p.colorInput.Placeholder = p.styles.Palette.Color(p.selectedEmotion())
	p.colorInput.Blur()
	p.noteInput.Blur()
}

func (p *CalendarPage) closeForm() {
	p.colorInput.Blur()
	p.noteInput.Blur()
	p.saving = false
	if p.view == viewRecord {
		p.view = viewMonth
	}
}

// focusField moves the form focus to f.
func (p *CalendarPage) focusField(f int) tea.Cmd {
	p.field = f
	p.colorInput.Blur()
	p.noteInput.Blur()
	switch f {
	case fieldColor:
		return p.colorInput.Focus()
	case fieldNote:
		return p.noteInput.Focus()
	}
	return nil
}

// Update handles messages for the calendar page.
func (p *CalendarPage) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(emotionRecordedMsg); ok {
		p.saving = false
		if m.err == nil {
			p.ShowMonth()
			today := p.storage.Now()
			p.month = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
		}
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p.updateInputs(msg)
	}

	if p.view == viewRecord {
		return p.updateForm(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, p.keys.Record):
		p.openForm()
	case key.Matches(keyMsg, p.keys.Stats):
		if p.view == viewStats {
			p.ShowMonth()
		} else {
			p.ShowStats()
		}
	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.ShowMonth()
	case p.view == viewMonth && key.Matches(keyMsg, p.keys.Left):
		p.month = p.month.AddDate(0, -1, 0)
	case p.view == viewMonth && key.Matches(keyMsg, p.keys.Right):
		p.month = p.month.AddDate(0, 1, 0)
	}
	return nil
}

func (p *CalendarPage) updateInputs(msg tea.Msg) tea.Cmd {
	if p.view != viewRecord {
		return nil
	}
	var cmd tea.Cmd
	switch p.field {
	case fieldColor:
		p.colorInput, cmd = p.colorInput.Update(msg)
	case fieldNote:
		p.noteInput, cmd = p.noteInput.Update(msg)
	}
	return cmd
}

func (p *CalendarPage) updateForm(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, p.inputKeys.Cancel) {
		p.closeForm()
		return nil
	}
	if p.saving {
		return nil
	}

	switch p.field {
	case fieldEmotion:
		switch {
		case key.Matches(msg, p.keys.Up), key.Matches(msg, p.keys.Left):
			if p.emotionIdx > 0 {
				p.emotionIdx--
			}
		case key.Matches(msg, p.keys.Down), key.Matches(msg, p.keys.Right):
			if p.emotionIdx < len(storage.Emotions)-1 {
				p.emotionIdx++
			}
		case key.Matches(msg, p.inputKeys.Confirm):
			return p.focusField(fieldColor)
		}
		p.colorInput.Placeholder = p.styles.Palette.Color(p.selectedEmotion())
		return nil

	case fieldColor:
		if key.Matches(msg, p.inputKeys.Confirm) {
			c := strings.TrimSpace(p.colorInput.Value())
			if c != "" && !content.ValidColor(c) {
				return statusCmd("Colour must look like #RRGGBB", true)
			}
			return p.focusField(fieldNote)
		}

	case fieldNote:
		if key.Matches(msg, p.inputKeys.Confirm) {
			note := strings.TrimSpace(p.noteInput.Value())
			if note == "" {
				return statusCmd("Please write today's feeling in one sentence 😊", true)
			}
			color := strings.ToUpper(strings.TrimSpace(p.colorInput.Value()))
			if color == "" {
				color = p.styles.Palette.Color(p.selectedEmotion())
			}
			p.saving = true
			return recordEmotionCmd(p.storage, p.selectedEmotion(), note, color)
		}
	}
	return p.updateInputs(msg)
}

// HelpPairs returns the help bar hints.
func (p *CalendarPage) HelpPairs() []string {
	switch p.view {
	case viewRecord:
		if p.field == fieldEmotion {
			return []string{"j/k", "emotion", "enter", "next", "esc", "cancel"}
		}
		return []string{"enter", "next/save", "esc", "cancel"}
	case viewStats:
		return []string{"s", "month", "r", "record today"}
	}
	return []string{"h/l", "month", "r", "record today", "s", "stats"}
}

// View renders the calendar page.
func (p *CalendarPage) View() string {
	var body string
	switch p.view {
	case viewRecord:
		body = p.viewRecord()
	case viewStats:
		body = p.viewStats()
	default:
		body = p.viewMonth()
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(strings.TrimRight(body, "\n"))
}

func (p *CalendarPage) viewMonth() string {
	var b strings.Builder
	today := p.storage.Now()
	todayKey := today.Format(storage.DateLayout)
	year, month := p.month.Year(), p.month.Month()

	b.WriteString(p.styles.PaneTitleStyle.Render("🌈 EMOTION CALENDAR"))
	b.WriteString("\n")
	b.WriteString(p.styles.DateStyle.Render("Today is " + today.Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")
	b.WriteString(p.styles.InputPromptStyle.Render(fmt.Sprintf("◀  %s %d  ▶", month, year)))
	b.WriteString("\n")

	header := make([]string, len(weekdayHeader))
	for i, d := range weekdayHeader {
		header[i] = p.styles.StatLabelStyle.Render(fmt.Sprintf(" %s ", d))
	}
	b.WriteString(strings.Join(header, ""))
	b.WriteString("\n")

	for _, week := range reports.MonthGrid(year, month) {
		cells := make([]string, 7)
		for i, day := range week {
			cells[i] = p.renderDay(year, month, day, todayKey)
		}
		b.WriteString(strings.Join(cells, ""))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.renderLegend())
	b.WriteString("\n\n")

	if entry, ok := p.data.calendar[todayKey]; ok {
		b.WriteString(p.styles.StatLabelStyle.Render("Today: "))
		b.WriteString(p.styles.EmotionStyle(entry.Emotion).Render(content.EmotionLabel(entry.Emotion)))
		b.WriteString(" " + truncateText(entry.Note, max(10, p.width-30)))
	} else {
		b.WriteString(p.styles.StatLabelStyle.Render("Nothing recorded today yet. Press r to colour today in."))
	}
	b.WriteString("\n\n")

	s := reports.MonthlySummary(p.data.calendar, year, month)
	b.WriteString(p.styles.PaneTitleStyle.Render(fmt.Sprintf("📊 %s %d summary", month, year)))
	b.WriteString("\n")
	if s.Count == 0 {
		b.WriteString(p.styles.StatLabelStyle.Render("  No records this month."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(p.stat("Days recorded", fmt.Sprintf("%d", s.Count)))
	b.WriteString(p.stat("Most felt", content.EmotionLabel(s.ModeEmotion)))
	b.WriteString(p.stat("Completion", fmt.Sprintf("%.1f%%", s.CompletionRate)))
	return b.String()
}

func (p *CalendarPage) renderDay(year int, month time.Month, day int, todayKey string) string {
	if day == 0 {
		return "    "
	}
	cell := fmt.Sprintf(" %2d ", day)
	date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if entry, ok := p.data.calendar[date]; ok {
		style := p.styles.DayStyle(entry)
		if date == todayKey {
			style = style.Bold(true).Underline(true)
		}
		return style.Render(cell)
	}
	if date == todayKey {
		return p.styles.DayTodayStyle.Render(cell)
	}
	return p.styles.DayEmptyStyle.Render(cell)
}

func (p *CalendarPage) renderLegend() string {
	parts := make([]string, 0, len(storage.Emotions))
	for _, e := range storage.Emotions {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(p.styles.Palette.Color(e))).Render("  ")
		parts = append(parts, swatch+" "+string(e))
	}
	// Four per row keeps the legend inside narrow panes.
	var rows []string
	for i := 0; i < len(parts); i += 4 {
		rows = append(rows, strings.Join(parts[i:min(i+4, len(parts))], "  "))
	}
	return strings.Join(rows, "\n")
}

func (p *CalendarPage) stat(label, value string) string {
	return "  " + p.styles.StatLabelStyle.Render(fmt.Sprintf("%-14s", label)) + p.styles.StatValueStyle.Render(value) + "\n"
}

func (p *CalendarPage) viewStats() string {
	var b strings.Builder
	b.WriteString(p.styles.PaneTitleStyle.Render("📊 MY STATISTICS"))
	b.WriteString("\n")

	cal := p.data.calendar
	if len(cal.Dates()) == 0 {
		b.WriteString(p.styles.StatLabelStyle.Render("No emotions recorded yet. Record your first one! 😊"))
		b.WriteString("\n")
		return b.String()
	}

	dist := reports.Distribution(cal)
	b.WriteString(p.stat("Total days", fmt.Sprintf("%d", len(cal.Dates()))))
	b.WriteString(p.stat("Most felt", content.EmotionLabel(dist[0].Emotion)))
	b.WriteString("  " + p.styles.StatLabelStyle.Render(fmt.Sprintf("%-14s", "Streak")) +
		p.styles.StreakStyle.Render(fmt.Sprintf("%d days 🔥", p.data.streak)) + "\n")

	b.WriteString("\n")
	b.WriteString(p.styles.InputPromptStyle.Render("Emotion distribution"))
	b.WriteString("\n")
	barWidth := max(5, min(30, p.width-34))
	top := dist[0].Count
	for _, ec := range dist {
		label := fmt.Sprintf("  %-16s", content.EmotionLabel(ec.Emotion))
		bar := p.styles.EmotionStyle(ec.Emotion).Render(reports.Bar(ec.Count, top, barWidth))
		b.WriteString(label + bar + fmt.Sprintf(" %d", ec.Count) + "\n")
	}
	return b.String()
}

func (p *CalendarPage) viewRecord() string {
	var b strings.Builder
	b.WriteString(p.styles.PaneTitleStyle.Render("🎨 RECORD TODAY"))
	b.WriteString("\n")

	label := func(f int, text string) string {
		if f == p.field {
			return p.styles.InputPromptStyle.Render("▶ " + text)
		}
		return p.styles.StatLabelStyle.Render("  " + text)
	}

	b.WriteString(label(fieldEmotion, "Which emotion is it?"))
	b.WriteString("\n")
	for i, e := range storage.Emotions {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(p.styles.Palette.Color(e))).Render("  ")
		text := "   " + content.EmotionLabel(e)
		if i == p.emotionIdx {
			marker := " "
			if p.field == fieldEmotion {
				marker = "›"
			}
			text = p.styles.SelectedStyle.Render(" " + marker + " " + content.EmotionLabel(e))
		}
		b.WriteString("  " + swatch + text)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(label(fieldColor, "Pick your own colour (optional)"))
	b.WriteString("\n")
	b.WriteString("    " + p.colorInput.View())
	b.WriteString("\n\n")

	b.WriteString(label(fieldNote, "Write today's heart in one sentence ✍️"))
	b.WriteString("\n")
	b.WriteString("    " + p.noteInput.View())
	b.WriteString("\n")
	return b.String()
}
