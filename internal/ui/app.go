// Package ui provides the terminal user interface for compass.
// This file contains the main App model which owns the session, routes
// messages to the pages and draws the shared chrome using the Bubble Tea
// architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"compass/internal/config"
	"compass/internal/content"
	"compass/internal/storage"
	"compass/internal/sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LayoutMode determines how the page is framed based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows the menu sidebar next to the page.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the page with a tab bar.
	LayoutNarrow
)

const sidebarWidth = 26

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ShowOnboarding        bool
	NarrowLayoutThreshold int
	RecentMoods           int

	// Sync is optional; nil hides the sync indicator.
	Sync *sync.GitSync
}

// page is what every screen implements.
type page interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	SetFocused(focused bool)
	IsEditing() bool
	HelpPairs() []string
}

// App is the main application model.
type App struct {
	storage *storage.Storage
	styles  *Styles
	config  *AppConfig
	session *Session
	data    *journal

	home     *HomePage
	explore  *ExplorePage
	calendar *CalendarPage
	letters  *LettersPage

	helpOverlay *HelpOverlay
	layoutMode  LayoutMode
	showHelp    bool
	showWelcome bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	syncStatus *sync.Status

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(store *storage.Storage, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ShowOnboarding:        true,
			NarrowLayoutThreshold: 80,
			RecentMoods:           3,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.RecentMoods <= 0 {
		cfg.RecentMoods = 3
	}

	session := NewSession()
	data := newJournal()
	globalKeys := NewGlobalKeyMap(cfg.Keys)
	pageKeys := NewPageKeyMap(cfg.Keys)
	inputKeys := NewInputKeyMap(cfg.Keys)

	app := &App{
		storage:     store,
		styles:      styles,
		config:      cfg,
		session:     &session,
		data:        data,
		home:        NewHomePage(data, styles, pageKeys),
		calendar:    NewCalendarPage(store, data, styles, pageKeys, inputKeys),
		letters:     NewLettersPage(store, data, styles, pageKeys, inputKeys),
		helpOverlay: NewHelpOverlay(styles, globalKeys, pageKeys, inputKeys),
		showWelcome: cfg.ShowOnboarding && isFirstRun(store),
		keys:        globalKeys,
		helpKeys:    DefaultHelpKeyMap(),
	}
	app.explore = NewExplorePage(store, app.session, data, styles, pageKeys, inputKeys)
	app.setActivePage(PageHome)

	return app
}

// isFirstRun reports whether nothing has ever been recorded.
func isFirstRun(store *storage.Storage) bool {
	if len(store.LoadCalendar()) > 0 {
		return false
	}
	if len(store.LoadLetters().Letters) > 0 {
		return false
	}
	return len(store.RecentMoods(1)) == 0
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init loads all data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		loadCalendarCmd(a.storage),
		loadLettersCmd(a.storage),
		loadMoodsCmd(a.storage, a.config.RecentMoods),
		loadContentCmd(a.storage),
		refreshSyncStatusCmd(a.config.Sync),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Async results first, regardless of which page is active.
	switch msg := msg.(type) {
	case calendarLoadedMsg:
		a.data.calendar = msg.calendar
		a.data.streak = msg.streak
		return a, nil

	case lettersLoadedMsg:
		a.data.setLetters(msg.deliverable, msg.waiting)
		return a, a.letters.Update(msg)

	case moodsLoadedMsg:
		a.data.recent = msg.recent
		return a, nil

	case contentLoadedMsg:
		a.data.insights = msg.insights
		a.data.library = msg.library
		return a, nil

	case syncStatusMsg:
		if msg.err == nil {
			a.syncStatus = msg.status
		}
		return a, nil

	case moodSavedMsg:
		cmd := a.explore.Update(msg)
		if msg.err != nil {
			a.SetStatus("Save mood: "+msg.err.Error(), true)
			return a, cmd
		}
		a.SetStatus("✨ "+content.ClosingSaved, false)
		a.session.Finish()
		a.setActivePage(PageHome)
		return a, tea.Batch(cmd, loadMoodsCmd(a.storage, a.config.RecentMoods), refreshSyncStatusCmd(a.config.Sync))

	case emotionRecordedMsg:
		cmd := a.calendar.Update(msg)
		if msg.err != nil {
			a.SetStatus("Record emotion: "+msg.err.Error(), true)
			return a, cmd
		}
		a.SetStatus("✨ Today's emotion is saved to the calendar", false)
		return a, tea.Batch(cmd, loadCalendarCmd(a.storage), refreshSyncStatusCmd(a.config.Sync))

	case letterWrittenMsg:
		cmd := a.letters.Update(msg)
		if msg.err != nil {
			a.SetStatus("Write letter: "+msg.err.Error(), true)
			return a, cmd
		}
		a.SetStatus(fmt.Sprintf("💌 Letter sealed! It arrives on %s", formatLetterDate(msg.letter.DeliveryDate, "January 2, 2006")), false)
		return a, tea.Batch(cmd, loadLettersCmd(a.storage), refreshSyncStatusCmd(a.config.Sync))

	case letterReadMsg:
		if msg.err != nil {
			a.SetStatus("Mark read: "+msg.err.Error(), true)
			return a, nil
		}
		a.SetStatus("You read a letter from your past self 💕", false)
		return a, tea.Batch(loadLettersCmd(a.storage), refreshSyncStatusCmd(a.config.Sync))

	case navigateMsg:
		a.navigate(msg.page, msg.stats)
		return a, nil

	case statusMsg:
		a.SetStatus(msg.text, msg.isErr)
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.showWelcome {
			a.showWelcome = false
			return a, nil
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
			}
			return a, nil
		}

		// Global keys only when no text is being typed
		if !a.activePage().IsEditing() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPage):
				a.session.Next()
				a.enterPage(a.session.Page, false)
				return a, nil

			case key.Matches(msg, a.keys.Home):
				a.navigate(PageHome, false)
				return a, nil

			case key.Matches(msg, a.keys.Explore):
				a.navigate(PageExplore, false)
				return a, nil

			case key.Matches(msg, a.keys.Calendar):
				a.navigate(PageCalendar, false)
				return a, nil

			case key.Matches(msg, a.keys.Letters):
				a.navigate(PageLetters, false)
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	if a.showHelp {
		return a, nil
	}
	return a, a.activePage().Update(msg)
}

// navigate moves the session to p. stats opens the calendar statistics.
func (a *App) navigate(p Page, stats bool) {
	a.session.Navigate(p)
	a.enterPage(p, stats)
}

// enterPage prepares the page the session just moved to.
func (a *App) enterPage(p Page, stats bool) {
	switch p {
	case PageExplore:
		a.explore.Reset()
	case PageCalendar:
		if stats {
			a.calendar.ShowStats()
		} else {
			a.calendar.ShowMonth()
		}
	}
	a.setActivePage(p)
}

// setActivePage updates focus states to match p.
func (a *App) setActivePage(p Page) {
	a.session.Page = p
	a.home.SetFocused(p == PageHome)
	a.explore.SetFocused(p == PageExplore)
	a.calendar.SetFocused(p == PageCalendar)
	a.letters.SetFocused(p == PageLetters)
}

func (a *App) activePage() page {
	switch a.session.Page {
	case PageExplore:
		return a.explore
	case PageCalendar:
		return a.calendar
	case PageLetters:
		return a.letters
	}
	return a.home
}

func (a *App) allPages() []page {
	return []page{a.home, a.explore, a.calendar, a.letters}
}

// updateLayout recalculates page sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar and help bar
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	var pageWidth, pageHeight int
	if a.width < threshold {
		// Narrow mode: the page alone with a tab bar above it
		a.layoutMode = LayoutNarrow
		pageWidth = max(20, totalWidth)
		pageHeight = max(8, contentHeight-1)
	} else {
		// Wide mode: menu sidebar plus the page
		a.layoutMode = LayoutWide
		pageWidth = max(20, totalWidth-sidebarWidth-1)
		if totalWidth >= 140 {
			pageWidth = min(pageWidth, 100)
		}
		pageHeight = contentHeight
	}

	for _, p := range a.allPages() {
		p.SetSize(pageWidth, pageHeight)
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.showWelcome {
		return a.renderWelcome()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderWelcome() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to compass 🧭"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("A quiet place to understand how you feel.\n"))
	b.WriteString(bodyStyle.Render("Tab switches pages. ? opens help.\n"))
	b.WriteString(bodyStyle.Render("Start with 2 to explore a feeling, or 3 to colour today.\n"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to continue"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders the menu sidebar next to the active page.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(), " ", a.activePage().View())
}

func (a *App) renderSidebar() string {
	labels := []struct {
		page  Page
		label string
	}{
		{PageHome, "🏠 Home"},
		{PageExplore, "🎯 Explore"},
		{PageCalendar, "🌈 Calendar"},
		{PageLetters, "💌 Letters"},
	}

	var b strings.Builder
	b.WriteString(a.styles.PaneTitleStyle.Render("MENU"))
	b.WriteString("\n")
	for i, l := range labels {
		line := fmt.Sprintf("%d %s", i+1, l.label)
		if l.page == PageLetters {
			if n := a.data.newLetters(); n > 0 {
				line += " " + a.styles.BadgeStyle.Render(fmt.Sprintf("(%d)", n))
			}
		}
		if l.page == a.session.Page {
			line = a.styles.SelectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.data.streak > 0 {
		b.WriteString(a.styles.StreakStyle.Render(fmt.Sprintf("🔥 %d day streak", a.data.streak)))
		b.WriteString("\n")
	}
	if e, ok := a.data.calendar[a.storage.Today()]; ok {
		b.WriteString(a.styles.StatLabelStyle.Render("Today: ") + a.styles.EmotionStyle(e.Emotion).Render(string(e.Emotion)))
		b.WriteString("\n")
	}

	_, height := a.pageSize()
	return a.styles.PaneStyle.Width(sidebarWidth).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) pageSize() (int, int) {
	return a.home.width, a.home.height
}

// renderNarrowContent renders the active page with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder
	b.WriteString(a.renderPageTabs())
	b.WriteString("\n")
	b.WriteString(a.activePage().View())
	return b.String()
}

// renderPageTabs renders a tab bar showing available pages.
func (a *App) renderPageTabs() string {
	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, p := range pages {
		label := p.String()
		if p == a.session.Page {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, " ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}
	return tabBar
}

// renderGoodbye shows a short exit message.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  Take care of your heart. See you soon! 💙\n")
	b.WriteString("\n")

	if a.data.streak > 0 {
		b.WriteString(fmt.Sprintf("     Streak: %d %s\n", a.data.streak, plural(a.data.streak, "day", "days")))
	}
	if n := a.data.newLetters(); n > 0 {
		b.WriteString(fmt.Sprintf("     Unread letters: %d\n", n))
	}
	if a.data.streak > 0 || a.data.newLetters() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// renderTitleBar creates the top title bar with streak, mailbox and sync.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" 🧭 compass ")

	var statsItems []string
	if a.data.streak > 0 {
		statsItems = append(statsItems, fmt.Sprintf("🔥 %d", a.data.streak))
	}
	if n := a.data.newLetters(); n > 0 {
		statsItems = append(statsItems, fmt.Sprintf("📬 %d", n))
	}
	stats := a.styles.StatLabelStyle.Render(strings.Join(statsItems, "  "))

	syncIndicator := a.renderSyncIndicator()

	date := a.styles.DateStyle.Render(a.storage.Now().Format("Mon Jan 2 · 15:04"))

	usedWidth := lipgloss.Width(title) + lipgloss.Width(stats) + lipgloss.Width(syncIndicator) + lipgloss.Width(date)
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if len(statsItems) > 0 {
		parts = append(parts, "  "+stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth/2))
	if syncIndicator != "" {
		parts = append(parts, syncIndicator)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth-spacerWidth/2))
	parts = append(parts, date)

	return strings.Join(parts, "")
}

func (a *App) renderSyncIndicator() string {
	s := a.syncStatus
	if s == nil || !s.IsRepo {
		return ""
	}
	switch {
	case !s.HasRemote:
		return a.styles.SyncDisabledStyle.Render("○ local")
	case s.HasChanges:
		return a.styles.SyncPendingStyle.Render("● sync")
	case s.Behind > 0:
		return a.styles.SyncBehindStyle.Render(fmt.Sprintf("↓%d sync", s.Behind))
	case s.Ahead > 0:
		return a.styles.SyncAheadStyle.Render(fmt.Sprintf("↑%d sync", s.Ahead))
	}
	return a.styles.SyncSyncedStyle.Render("✓ sync")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	p := a.activePage()
	pairs := p.HelpPairs()
	if !p.IsEditing() {
		pairs = append(pairs, "tab", "page", "?", "help")
	}
	return a.styles.RenderHelp(pairs...)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program with the given storage backend, styles, and config.
func Run(store *storage.Storage, styles *Styles, cfg *AppConfig) error {
	app := NewApp(store, styles, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
