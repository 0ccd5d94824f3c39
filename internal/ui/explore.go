package ui

import (
	"fmt"
	"strings"

	"compass/internal/content"
	"compass/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ExplorePage runs the guided reflection: pick a feeling, name it with one
// word, say when it started, then read the insight and leave a closing
// sentence in the mood log.
type ExplorePage struct {
	storage   *storage.Storage
	session   *Session
	data      *journal
	styles    *Styles
	keys      PageKeyMap
	inputKeys InputKeyMap
	input     textinput.Model
	cursor    int
	saving    bool
	width     int
	height    int
	focused   bool
}

// NewExplorePage creates the explore page bound to the app session.
func NewExplorePage(store *storage.Storage, session *Session, data *journal, styles *Styles, keys PageKeyMap, inputKeys InputKeyMap) *ExplorePage {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	return &ExplorePage{
		storage:   store,
		session:   session,
		data:      data,
		styles:    styles,
		keys:      keys,
		inputKeys: inputKeys,
		input:     ti,
	}
}

// SetSize sets the page dimensions.
func (p *ExplorePage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-8)
}

// SetFocused sets whether this page is focused.
func (p *ExplorePage) SetFocused(focused bool) {
	p.focused = focused
}

// IsEditing reports whether a question is waiting for typed input.
func (p *ExplorePage) IsEditing() bool {
	return p.session.ChatStep != StepChooseEmotion
}

// Reset returns to the feeling choice with an empty input. The app calls it
// whenever the page is entered.
func (p *ExplorePage) Reset() {
	p.session.ResetExplore()
	p.input.Reset()
	p.input.Blur()
	p.cursor = 0
	p.saving = false
}

func (p *ExplorePage) prepareInput() tea.Cmd {
	p.input.Reset()
	switch p.session.ChatStep {
	case StepWord:
		p.input.Placeholder = content.WordPlaceholder
	case StepTiming:
		p.input.Placeholder = content.TimingPlaceholder
	case StepInsight:
		p.input.Placeholder = content.ClosingPlaceholder
	}
	return p.input.Focus()
}

// Update handles messages for the explore page.
func (p *ExplorePage) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(moodSavedMsg); ok {
		p.saving = false
		if m.err == nil {
			p.input.Reset()
			p.input.Blur()
			p.cursor = 0
		}
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.IsEditing() {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return cmd
		}
		return nil
	}

	if p.session.ChatStep == StepChooseEmotion {
		switch {
		case key.Matches(keyMsg, p.keys.Up), key.Matches(keyMsg, p.keys.Left):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(keyMsg, p.keys.Down), key.Matches(keyMsg, p.keys.Right):
			if p.cursor < len(content.ExploreEmotions)-1 {
				p.cursor++
			}
		case key.Matches(keyMsg, p.keys.Select):
			if err := p.session.ChooseEmotion(content.ExploreEmotions[p.cursor].Key); err != nil {
				return statusCmd(err.Error(), true)
			}
			return p.prepareInput()
		}
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.Reset()
		return nil

	case key.Matches(keyMsg, p.inputKeys.Confirm):
		if p.saving {
			return nil
		}
		if p.session.ChatStep == StepInsight {
			text := strings.TrimSpace(p.input.Value())
			if text == "" {
				return statusCmd("Please put your heart into one sentence 😊", true)
			}
			p.saving = true
			return saveMoodCmd(p.storage, text)
		}
		if err := p.session.Answer(p.input.Value()); err != nil {
			return statusCmd(err.Error(), true)
		}
		return p.prepareInput()
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// HelpPairs returns the help bar hints.
func (p *ExplorePage) HelpPairs() []string {
	switch p.session.ChatStep {
	case StepChooseEmotion:
		return []string{"j/k", "choose", "enter", "select"}
	case StepInsight:
		return []string{"enter", "save", "esc", "start over"}
	}
	return []string{"enter", "next", "esc", "start over"}
}

// View renders the explore page.
func (p *ExplorePage) View() string {
	var b strings.Builder
	b.WriteString(p.styles.PaneTitleStyle.Render("🎯 EXPLORE MY FEELINGS"))
	b.WriteString("\n")

	textWidth := max(20, p.width-6)
	wrap := p.styles.InputTextStyle.Width(textWidth)

	if p.session.ChatStep == StepChooseEmotion {
		b.WriteString(p.styles.StatLabelStyle.Render("Understand your heart a little more deeply"))
		b.WriteString("\n\n")
		b.WriteString(content.ChooseEmotionPrompt)
		b.WriteString("\n\n")
		for i, e := range content.ExploreEmotions {
			line := fmt.Sprintf("  %s %s", e.Emoji, e.Name)
			if i == p.cursor && p.focused {
				line = p.styles.SelectedStyle.Render("▶ " + e.Emoji + " " + e.Name)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		return p.frame(b.String())
	}

	ex, _ := content.LookupExplore(p.session.Emotion)
	b.WriteString(p.styles.InputPromptStyle.Render(fmt.Sprintf("💭 Exploring %s", strings.ToLower(ex.Name))))
	b.WriteString("\n\n")

	switch p.session.ChatStep {
	case StepWord:
		b.WriteString(wrap.Render(content.WordIntro))
		b.WriteString("\n")
		b.WriteString(wrap.Render(content.WordPrompt))
		b.WriteString("\n\n")

	case StepTiming:
		word := p.session.Word()
		if reply, ok := p.data.insights.Lookup(p.session.Emotion, word); ok {
			b.WriteString(p.styles.MessageStyle.Width(textWidth).Render(reply.Response))
			b.WriteString("\n")
			b.WriteString(wrap.Render(reply.NextQuestion))
		} else {
			b.WriteString(wrap.Render(content.WordEcho(word)))
			b.WriteString("\n")
			b.WriteString(wrap.Render(content.TimingPrompt))
		}
		b.WriteString("\n\n")

	case StepInsight:
		b.WriteString(p.styles.InputPromptStyle.Render("🌟 A warm message for you"))
		b.WriteString("\n")
		b.WriteString(p.styles.MessageStyle.Width(textWidth).Render(content.Insight(p.session.Emotion, p.session.Word())))
		b.WriteString("\n\n")

		b.WriteString(p.styles.InputPromptStyle.Render("🎬 Recommended for you"))
		b.WriteString("\n")
		for _, item := range content.Recommendations(p.data.library, p.session.Emotion) {
			b.WriteString("  🎥 " + p.styles.StatValueStyle.Render(item.Title))
			if item.Duration != "" {
				b.WriteString(p.styles.StatLabelStyle.Render(" · " + item.Duration))
			}
			b.WriteString("\n")
			b.WriteString("     " + p.styles.StatLabelStyle.Render(truncateText(item.Description, textWidth-5)))
			b.WriteString("\n")
			if len(item.Tags) > 0 {
				b.WriteString("     " + p.styles.StatLabelStyle.Render(strings.Join(item.Tags, " ")))
				b.WriteString("\n")
			}
			b.WriteString("     " + p.styles.HelpKeyStyle.Render(item.URL))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render("📝 Record today's heart"))
		b.WriteString("\n")
		b.WriteString(wrap.Render(content.ClosingPrompt))
		b.WriteString("\n\n")
	}

	b.WriteString("  " + p.styles.InputPromptStyle.Render("> ") + p.input.View())
	return p.frame(b.String())
}

func (p *ExplorePage) frame(s string) string {
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(strings.TrimRight(s, "\n"))
}
