// Package ui provides the terminal user interface for compass.
// This file contains tea.Cmd factory functions for async storage operations.
// Each function returns a command that performs I/O off the main thread
// and sends a message with the result.
package ui

import (
	"compass/internal/storage"
	"compass/internal/sync"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Load Commands
// =============================================================================

func loadCalendarCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		cal := store.LoadCalendar()
		return calendarLoadedMsg{calendar: cal, streak: storage.Streak(cal, store.Now())}
	}
}

func loadLettersCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		deliverable, waiting := store.Mailbox()
		return lettersLoadedMsg{deliverable: deliverable, waiting: waiting}
	}
}

func loadMoodsCmd(store *storage.Storage, n int) tea.Cmd {
	return func() tea.Msg {
		return moodsLoadedMsg{recent: store.RecentMoods(n)}
	}
}

func loadContentCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		return contentLoadedMsg{insights: store.LoadInsights(), library: store.LoadContents()}
	}
}

// =============================================================================
// Write Commands
// =============================================================================

// recordEmotionCmd saves today's entry. An empty color means the palette
// colour chosen by the caller.
func recordEmotionCmd(store *storage.Storage, emotion storage.Emotion, note, color string) tea.Cmd {
	return func() tea.Msg {
		entry, err := store.RecordEmotion(emotion, note, color)
		return emotionRecordedMsg{entry: entry, err: err}
	}
}

func writeLetterCmd(store *storage.Storage, content, offset string) tea.Cmd {
	return func() tea.Msg {
		letter, err := store.WriteLetter(content, offset)
		return letterWrittenMsg{letter: letter, err: err}
	}
}

func markReadCmd(store *storage.Storage, id string) tea.Cmd {
	return func() tea.Msg {
		return letterReadMsg{id: id, err: store.MarkLetterRead(id)}
	}
}

func saveMoodCmd(store *storage.Storage, text string) tea.Cmd {
	return func() tea.Msg {
		entry, err := store.AppendMood(text)
		return moodSavedMsg{entry: entry, err: err}
	}
}

// =============================================================================
// Sync Commands
// =============================================================================

// refreshSyncStatusCmd returns a command that checks git sync status.
// Returns nil command if gitSync is nil (sync disabled).
func refreshSyncStatusCmd(gs *sync.GitSync) tea.Cmd {
	if gs == nil {
		return nil
	}
	return func() tea.Msg {
		status, err := gs.Status()
		return syncStatusMsg{status: status, err: err}
	}
}

// =============================================================================
// Navigation Commands
// =============================================================================

func navigateCmd(page Page, stats bool) tea.Cmd {
	return func() tea.Msg { return navigateMsg{page: page, stats: stats} }
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}
