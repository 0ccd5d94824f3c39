// Package ui provides the terminal user interface for compass.
// This file defines message types for async I/O operations using the Bubble Tea
// command pattern. All storage operations return these messages to keep the
// event loop non-blocking.
package ui

import (
	"compass/internal/storage"
	"compass/internal/sync"
)

// =============================================================================
// Load Messages
// =============================================================================

// calendarLoadedMsg carries the whole emotion calendar.
type calendarLoadedMsg struct {
	calendar storage.Calendar
	streak   int
}

// lettersLoadedMsg carries the mailbox, split against today.
type lettersLoadedMsg struct {
	deliverable []storage.Letter
	waiting     []storage.Letter
}

// moodsLoadedMsg carries the newest mood log lines.
type moodsLoadedMsg struct {
	recent []storage.MoodEntry
}

// contentLoadedMsg carries the insight and recommendation tables.
type contentLoadedMsg struct {
	insights storage.Insights
	library  storage.ContentLibrary
}

// =============================================================================
// Write Messages
// =============================================================================

// emotionRecordedMsg is sent when today's calendar entry is saved.
type emotionRecordedMsg struct {
	entry storage.CalendarEntry
	err   error
}

// letterWrittenMsg is sent when a letter is sealed.
type letterWrittenMsg struct {
	letter storage.Letter
	err    error
}

// letterReadMsg is sent when a letter is marked read.
type letterReadMsg struct {
	id  string
	err error
}

// moodSavedMsg is sent when the closing sentence of a reflection is logged.
type moodSavedMsg struct {
	entry storage.MoodEntry
	err   error
}

// =============================================================================
// Sync Messages
// =============================================================================

// syncStatusMsg is sent when git sync status is refreshed.
type syncStatusMsg struct {
	status *sync.Status
	err    error
}

// =============================================================================
// Navigation Messages
// =============================================================================

// navigateMsg asks the app to switch page. stats opens the calendar
// statistics view.
type navigateMsg struct {
	page  Page
	stats bool
}

// statusMsg shows a message in the status bar.
type statusMsg struct {
	text  string
	isErr bool
}
