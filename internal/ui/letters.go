package ui

import (
	"fmt"
	"strings"
	"time"

	"compass/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const letterPlaceholder = `Hello, future me!

I am going through a hard time right now.
But you, reading this, have surely grown a lot.

Today I feel...`

// LettersPage is the mailbox and the letter writing desk.
type LettersPage struct {
	storage   *storage.Storage
	data      *journal
	styles    *Styles
	keys      PageKeyMap
	inputKeys InputKeyMap

	cursor int

	writing   bool
	editor    textarea.Model
	offsetIdx int
	sending   bool

	width   int
	height  int
	focused bool
}

// NewLettersPage creates the letters page.
func NewLettersPage(store *storage.Storage, data *journal, styles *Styles, keys PageKeyMap, inputKeys InputKeyMap) *LettersPage {
	ta := textarea.New()
	ta.Placeholder = letterPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 5000
	ta.SetWidth(40)
	ta.SetHeight(8)

	return &LettersPage{
		storage:   store,
		data:      data,
		styles:    styles,
		keys:      keys,
		inputKeys: inputKeys,
		editor:    ta,
	}
}

// SetSize sets the page dimensions.
func (p *LettersPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.editor.SetWidth(max(20, width-6))
	p.editor.SetHeight(max(4, min(10, height-14)))
}

// SetFocused sets whether this page is focused.
func (p *LettersPage) SetFocused(focused bool) {
	p.focused = focused
}

// IsEditing reports whether a letter is being written.
func (p *LettersPage) IsEditing() bool {
	return p.writing
}

func (p *LettersPage) offset() storage.DeliveryOffset {
	return storage.DeliveryOffsets[p.offsetIdx]
}

// selected returns the highlighted arrived letter.
func (p *LettersPage) selected() (storage.Letter, bool) {
	if p.cursor < 0 || p.cursor >= len(p.data.deliverable) {
		return storage.Letter{}, false
	}
	return p.data.deliverable[p.cursor], true
}

func (p *LettersPage) startWriting() tea.Cmd {
	p.writing = true
	p.sending = false
	p.editor.Reset()
	return p.editor.Focus()
}

func (p *LettersPage) stopWriting() {
	p.writing = false
	p.sending = false
	p.editor.Blur()
}

// Update handles messages for the letters page.
func (p *LettersPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case letterWrittenMsg:
		p.sending = false
		if msg.err == nil {
			p.stopWriting()
			p.editor.Reset()
		}
		return nil
	case lettersLoadedMsg:
		if p.cursor >= len(p.data.deliverable) {
			p.cursor = max(0, len(p.data.deliverable)-1)
		}
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.writing {
			var cmd tea.Cmd
			p.editor, cmd = p.editor.Update(msg)
			return cmd
		}
		return nil
	}

	if p.writing {
		return p.updateWriting(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, p.keys.Write):
		return p.startWriting()
	case key.Matches(keyMsg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, p.keys.Down):
		if p.cursor < len(p.data.deliverable)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, p.keys.MarkRead):
		l, ok := p.selected()
		if !ok {
			return statusCmd("No letter selected", true)
		}
		if l.IsRead {
			return statusCmd("Already read", false)
		}
		return markReadCmd(p.storage, l.ID)
	}
	return nil
}

func (p *LettersPage) updateWriting(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.inputKeys.Cancel):
		p.stopWriting()
		return nil
	case key.Matches(msg, p.keys.Send):
		if p.sending {
			return nil
		}
		if strings.TrimSpace(p.editor.Value()) == "" {
			return statusCmd("Write something to your future self first ✍️", true)
		}
		p.sending = true
		return writeLetterCmd(p.storage, p.editor.Value(), p.offset().Label)
	case msg.Type == tea.KeyShiftTab || msg.String() == "ctrl+right":
		p.offsetIdx = (p.offsetIdx + 1) % len(storage.DeliveryOffsets)
		return nil
	case msg.String() == "ctrl+left":
		p.offsetIdx = (p.offsetIdx + len(storage.DeliveryOffsets) - 1) % len(storage.DeliveryOffsets)
		return nil
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return cmd
}

// HelpPairs returns the help bar hints.
func (p *LettersPage) HelpPairs() []string {
	if p.writing {
		return []string{"ctrl+s", "send", "shift+tab", "delivery", "esc", "cancel"}
	}
	return []string{"w", "write", "j/k", "select", "m", "mark read"}
}

// View renders the letters page.
func (p *LettersPage) View() string {
	var body string
	if p.writing {
		body = p.viewWriting()
	} else {
		body = p.viewMailbox()
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(strings.TrimRight(body, "\n"))
}

func (p *LettersPage) viewWriting() string {
	var b strings.Builder
	b.WriteString(p.styles.PaneTitleStyle.Render("💝 A LETTER TO YOUR FUTURE SELF"))
	b.WriteString("\n")
	b.WriteString(p.editor.View())
	b.WriteString("\n\n")

	b.WriteString(p.styles.StatLabelStyle.Render("When should it arrive?  "))
	for i, o := range storage.DeliveryOffsets {
		label := " " + o.Label + " "
		if i == p.offsetIdx {
			label = p.styles.SelectedStyle.Render("[" + o.Label + "]")
		} else {
			label = p.styles.StatLabelStyle.Render(label)
		}
		b.WriteString(label + " ")
	}
	b.WriteString("\n")

	delivery := storage.DeliveryDate(p.storage.Now(), p.offset().Days)
	b.WriteString(p.styles.StatLabelStyle.Render("📅 Expected delivery: "))
	b.WriteString(p.styles.StatValueStyle.Render(formatLetterDate(delivery, "January 2, 2006")))
	b.WriteString("\n")
	return b.String()
}

func (p *LettersPage) viewMailbox() string {
	var b strings.Builder
	b.WriteString(p.styles.PaneTitleStyle.Render("📪 MAILBOX"))
	b.WriteString("\n")

	now := p.storage.Now()
	b.WriteString(p.styles.StatLabelStyle.Render("📬 New letters: "))
	b.WriteString(p.styles.BadgeStyle.Render(fmt.Sprintf("%d", p.data.newLetters())))
	b.WriteString("   ")
	b.WriteString(p.styles.StatLabelStyle.Render("⏰ Waiting: "))
	b.WriteString(p.styles.StatValueStyle.Render(fmt.Sprintf("%d", len(p.data.waiting))))
	b.WriteString("\n")
	if next, ok := nextArrival(p.data.waiting, now); ok {
		days := next.DaysUntilDelivery(now)
		b.WriteString(p.styles.StatLabelStyle.Render(fmt.Sprintf("🚚 The next letter arrives in %d %s.", days, plural(days, "day", "days"))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(p.data.deliverable) == 0 {
		b.WriteString(p.styles.StatLabelStyle.Render("No letters have arrived yet. Write your first one! ✍️"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(p.styles.InputPromptStyle.Render("📬 Arrived letters"))
	b.WriteString("\n")
	for i, l := range p.data.deliverable {
		status := "🆕 New"
		if l.IsRead {
			status = "✅ Read"
		}
		line := fmt.Sprintf("%s - from you on %s", status, formatLetterDate(l.WriteDate, "2006.01.02"))
		if i == p.cursor && p.focused {
			line = p.styles.SelectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if l, ok := p.selected(); ok {
		b.WriteString("\n")
		b.WriteString(p.styles.MessageStyle.Width(max(20, p.width-6)).Render(l.Content))
		b.WriteString("\n")
		if l.IsRead && l.ReadDate != nil {
			b.WriteString(p.styles.StatLabelStyle.Render("Read on " + *l.ReadDate))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// nextArrival returns the waiting letter that arrives first.
func nextArrival(waiting []storage.Letter, today time.Time) (storage.Letter, bool) {
	var next storage.Letter
	found := false
	for _, l := range waiting {
		if _, err := time.Parse(storage.DateLayout, l.DeliveryDate); err != nil {
			continue
		}
		if !found || l.DeliveryDate < next.DeliveryDate {
			next, found = l, true
		}
	}
	return next, found
}

// formatLetterDate reformats a YYYY-MM-DD date, leaving malformed ones as is.
func formatLetterDate(date, layout string) string {
	t, err := time.Parse(storage.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
