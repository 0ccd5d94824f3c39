// Package ui provides the terminal user interface for compass.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and user customization.
package ui

import (
	"strings"

	"compass/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultKeys
	}
	return result
}

// helpKey is the label shown for a binding: its first key.
func helpKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func binding(custom, desc string, defaults ...string) key.Binding {
	keys := parseKeys(custom, defaults...)
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey(keys), desc))
}

// =============================================================================
// Global Keys (available outside text input)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPage key.Binding
	Home     key.Binding
	Explore  key.Binding
	Calendar key.Binding
	Letters  key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit:     binding(cfg.Quit, "quit", "q", "ctrl+c"),
		Help:     binding(cfg.Help, "help", "?"),
		NextPage: binding(cfg.NextPage, "next page", "tab"),
		Home:     binding(cfg.Home, "home", "1"),
		Explore:  binding(cfg.Explore, "explore", "2"),
		Calendar: binding(cfg.Calendar, "calendar", "3"),
		Letters:  binding(cfg.Letters, "letters", "4"),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based pages)
// =============================================================================

// NavigationKeyMap defines keys for list and grid navigation.
type NavigationKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up:    binding(cfg.Up, "up", "k", "up"),
		Down:  binding(cfg.Down, "down", "j", "down"),
		Left:  binding(cfg.Left, "left", "h", "left"),
		Right: binding(cfg.Right, "right", "l", "right"),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: binding(cfg.Confirm, "confirm", "enter"),
		Cancel:  binding(cfg.Cancel, "cancel", "esc"),
	}
}

// =============================================================================
// Page Keys
// =============================================================================

// PageKeyMap defines the page actions.
type PageKeyMap struct {
	Record   key.Binding
	Write    key.Binding
	MarkRead key.Binding
	Stats    key.Binding
	Select   key.Binding
	// Send submits multi-line text, where enter inserts a newline.
	Send key.Binding
	NavigationKeyMap
}

// DefaultPageKeyMap returns the default page key bindings.
func DefaultPageKeyMap() PageKeyMap {
	return NewPageKeyMap(&config.KeysConfig{})
}

// NewPageKeyMap creates page key bindings from config.
func NewPageKeyMap(cfg *config.KeysConfig) PageKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return PageKeyMap{
		Record:           binding(cfg.Record, "record today", "r"),
		Write:            binding(cfg.Write, "write letter", "w"),
		MarkRead:         binding(cfg.MarkRead, "mark read", "m"),
		Stats:            binding(cfg.Stats, "stats", "s"),
		Select:           binding(cfg.Confirm, "select", "enter"),
		Send:             key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
