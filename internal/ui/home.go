package ui

import (
	"fmt"
	"sort"
	"strings"

	"compass/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// journal is the app's loaded view of the stored records. Pages read it;
// only the App writes it, from load messages.
type journal struct {
	calendar    storage.Calendar
	streak      int
	deliverable []storage.Letter // newest delivery first
	waiting     []storage.Letter
	recent      []storage.MoodEntry
	insights    storage.Insights
	library     storage.ContentLibrary
}

func newJournal() *journal {
	return &journal{calendar: storage.Calendar{}}
}

func (j *journal) setLetters(deliverable, waiting []storage.Letter) {
	sorted := make([]storage.Letter, len(deliverable))
	copy(sorted, deliverable)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].DeliveryDate > sorted[b].DeliveryDate
	})
	j.deliverable = sorted
	j.waiting = waiting
}

// newLetters counts arrived letters not read yet.
func (j *journal) newLetters() int {
	n := 0
	for _, l := range j.deliverable {
		if !l.IsRead {
			n++
		}
	}
	return n
}

// empty reports whether nothing has been recorded at all.
func (j *journal) empty() bool {
	return len(j.calendar) == 0 && len(j.deliverable) == 0 && len(j.waiting) == 0 && len(j.recent) == 0
}

// truncateText shortens text to maxLen display cells.
func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}

type homeEntry struct {
	icon  string
	title string
	desc  string
	page  Page
	stats bool
}

var homeEntries = []homeEntry{
	{"🎯", "Explore my feelings", "Look closely at how you feel today and get a little support", PageExplore, false},
	{"🌈", "Emotion calendar", "Colour each day with its emotion and discover your patterns", PageCalendar, false},
	{"💌", "Letters to the future", "Send today's heart to your future self", PageLetters, false},
	{"📊", "My statistics", "See your records and your growth at a glance", PageCalendar, true},
}

// HomePage shows the entry points, the mailbox badge and the latest moods.
type HomePage struct {
	data    *journal
	styles  *Styles
	keys    PageKeyMap
	cursor  int
	width   int
	height  int
	focused bool
}

// NewHomePage creates the home page.
func NewHomePage(data *journal, styles *Styles, keys PageKeyMap) *HomePage {
	return &HomePage{data: data, styles: styles, keys: keys, focused: true}
}

// SetSize sets the page dimensions.
func (p *HomePage) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this page is focused.
func (p *HomePage) SetFocused(focused bool) {
	p.focused = focused
}

// IsEditing is always false: the home page has no text input.
func (p *HomePage) IsEditing() bool {
	return false
}

// Update handles messages for the home page.
func (p *HomePage) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, p.keys.Up), key.Matches(keyMsg, p.keys.Left):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, p.keys.Down), key.Matches(keyMsg, p.keys.Right):
		if p.cursor < len(homeEntries)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, p.keys.Select):
		e := homeEntries[p.cursor]
		return navigateCmd(e.page, e.stats)
	}
	return nil
}

// HelpPairs returns the help bar hints.
func (p *HomePage) HelpPairs() []string {
	return []string{
		"j/k", "choose",
		"enter", "open",
	}
}

// View renders the home page.
func (p *HomePage) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("🧭 COMPASS OF THE HEART"))
	b.WriteString("\n")
	b.WriteString(p.styles.StatLabelStyle.Render("Understand your feelings and find your way to grow"))
	b.WriteString("\n\n")

	descWidth := max(10, p.width-10)
	for i, e := range homeEntries {
		title := e.title
		if e.page == PageLetters && !e.stats {
			if n := p.data.newLetters(); n > 0 {
				title += " " + p.styles.BadgeStyle.Render(lettersArrived(n))
			}
		}

		prefix := "  "
		if i == p.cursor && p.focused {
			prefix = "▶ "
		}
		line := fmt.Sprintf("%s%s %s", prefix, e.icon, title)
		if i == p.cursor && p.focused {
			line = p.styles.SelectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString("     " + p.styles.StatLabelStyle.Render(truncateText(e.desc, descWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(p.styles.PaneTitleStyle.Render("📝 Recent moods"))
	b.WriteString("\n")
	if len(p.data.recent) == 0 {
		b.WriteString(p.styles.StatLabelStyle.Render("  No moods recorded yet. Start your first reflection! 😊"))
		b.WriteString("\n")
	}
	for _, m := range p.data.recent {
		line := strings.TrimSuffix(storage.FormatMoodLine(m), "\n")
		b.WriteString("  • " + truncateText(line, max(10, p.width-8)))
		b.WriteString("\n")
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(strings.TrimRight(b.String(), "\n"))
}

// lettersArrived is the mailbox badge text.
func lettersArrived(n int) string {
	if n == 1 {
		return "(1 letter arrived!)"
	}
	return fmt.Sprintf("(%d letters arrived!)", n)
}
