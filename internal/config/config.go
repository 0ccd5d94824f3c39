// Package config handles configuration loading and defaults for compass.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/compass/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"compass/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.compass)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// EmotionColors overrides the calendar colour of an emotion (name -> #RRGGBB)
	EmotionColors map[string]string `yaml:"emotion_colors,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Sync configures git synchronization
	Sync SyncConfig `yaml:"sync,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// Log configures the rotating log file
	Log LogConfig `yaml:"log,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`

	// LetterArrivals notifies on startup when letters have arrived
	LetterArrivals bool `yaml:"letter_arrivals,omitempty"`

	Sound bool `yaml:"sound,omitempty"`
}

// SyncConfig defines git synchronization settings.
type SyncConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty"`
	AutoCommit    bool   `yaml:"auto_commit,omitempty"`
	AutoPush      bool   `yaml:"auto_push,omitempty"`
	PullOnStartup bool   `yaml:"pull_on_startup,omitempty"`
	CommitMessage string `yaml:"commit_message,omitempty"` // "auto" for generated messages
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level      string `yaml:"level,omitempty"` // debug, info, warn, error
	File       string `yaml:"file,omitempty"`  // default: <data_dir>/logs/compass.log
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty"`      // default: "ctrl+c,q"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextPage string `yaml:"next_page,omitempty"` // default: "tab"
	Home     string `yaml:"home,omitempty"`      // default: "1"
	Explore  string `yaml:"explore,omitempty"`   // default: "2"
	Calendar string `yaml:"calendar,omitempty"`  // default: "3"
	Letters  string `yaml:"letters,omitempty"`   // default: "4"

	// Navigation keys
	Up    string `yaml:"up,omitempty"`    // default: "k,up"
	Down  string `yaml:"down,omitempty"`  // default: "j,down"
	Left  string `yaml:"left,omitempty"`  // default: "h,left"
	Right string `yaml:"right,omitempty"` // default: "l,right"

	// Page actions
	Record   string `yaml:"record,omitempty"`    // default: "r"
	Write    string `yaml:"write,omitempty"`     // default: "w"
	MarkRead string `yaml:"mark_read,omitempty"` // default: "m"
	Stats    string `yaml:"stats,omitempty"`     // default: "s"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ShowOnboarding shows welcome text until the first record exists
	ShowOnboarding bool `yaml:"show_onboarding,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80

	// RecentMoods is how many mood-log lines the home page shows
	RecentMoods int `yaml:"recent_moods,omitempty"` // default: 3
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary:    "#4A90E2", // Sky blue
			Accent:     "#7B68EE", // Medium slate blue
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		UX: UXConfig{
			ShowOnboarding:        true,
			NarrowLayoutThreshold: 80,
			RecentMoods:           3,
		},
		Sync: SyncConfig{
			Enabled:       false,
			AutoCommit:    true,
			AutoPush:      false,
			PullOnStartup: false,
			CommitMessage: "auto",
		},
		Notifications: NotificationConfig{
			Enabled:        false,
			LetterArrivals: true,
			Sound:          false,
		},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".compass"
	}
	return filepath.Join(home, ".compass")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "compass")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "compass")
}

// Path returns the path of the config file, or "" when no home is known.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)
	return cfg, nil
}

func setIfNonEmpty(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func setIfPositive(dst *int, src int) {
	if src > 0 {
		*dst = src
	}
}

// mergeNonEmpty applies non-empty values from other to c.
// It does not touch booleans, which need presence-aware merging.
func (c *Config) mergeNonEmpty(other *Config) {
	setIfNonEmpty(&c.DataDir, other.DataDir)

	setIfNonEmpty(&c.Theme.Primary, other.Theme.Primary)
	setIfNonEmpty(&c.Theme.Accent, other.Theme.Accent)
	setIfNonEmpty(&c.Theme.Muted, other.Theme.Muted)
	setIfNonEmpty(&c.Theme.Background, other.Theme.Background)
	setIfNonEmpty(&c.Theme.Text, other.Theme.Text)

	if len(other.EmotionColors) > 0 {
		if c.EmotionColors == nil {
			c.EmotionColors = make(map[string]string, len(other.EmotionColors))
		}
		for k, v := range other.EmotionColors {
			c.EmotionColors[strings.ToLower(k)] = v
		}
	}

	k, o := &c.Keys, other.Keys
	for _, pair := range []struct {
		dst *string
		src string
	}{
		{&k.Quit, o.Quit}, {&k.Help, o.Help}, {&k.NextPage, o.NextPage},
		{&k.Home, o.Home}, {&k.Explore, o.Explore}, {&k.Calendar, o.Calendar}, {&k.Letters, o.Letters},
		{&k.Up, o.Up}, {&k.Down, o.Down}, {&k.Left, o.Left}, {&k.Right, o.Right},
		{&k.Record, o.Record}, {&k.Write, o.Write}, {&k.MarkRead, o.MarkRead}, {&k.Stats, o.Stats},
		{&k.Confirm, o.Confirm}, {&k.Cancel, o.Cancel},
	} {
		setIfNonEmpty(pair.dst, pair.src)
	}

	setIfPositive(&c.UX.NarrowLayoutThreshold, other.UX.NarrowLayoutThreshold)
	setIfPositive(&c.UX.RecentMoods, other.UX.RecentMoods)

	setIfNonEmpty(&c.Sync.CommitMessage, other.Sync.CommitMessage)

	setIfNonEmpty(&c.Log.Level, other.Log.Level)
	setIfNonEmpty(&c.Log.File, other.Log.File)
	setIfPositive(&c.Log.MaxSizeMB, other.Log.MaxSizeMB)
	setIfPositive(&c.Log.MaxBackups, other.Log.MaxBackups)
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a parsed document, booleans keep their defaults.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	for _, b := range []struct {
		path []string
		dst  *bool
		src  bool
	}{
		{[]string{"ux", "show_onboarding"}, &c.UX.ShowOnboarding, other.UX.ShowOnboarding},
		{[]string{"sync", "enabled"}, &c.Sync.Enabled, other.Sync.Enabled},
		{[]string{"sync", "auto_commit"}, &c.Sync.AutoCommit, other.Sync.AutoCommit},
		{[]string{"sync", "auto_push"}, &c.Sync.AutoPush, other.Sync.AutoPush},
		{[]string{"sync", "pull_on_startup"}, &c.Sync.PullOnStartup, other.Sync.PullOnStartup},
		{[]string{"notifications", "enabled"}, &c.Notifications.Enabled, other.Notifications.Enabled},
		{[]string{"notifications", "letter_arrivals"}, &c.Notifications.LetterArrivals, other.Notifications.LetterArrivals},
		{[]string{"notifications", "sound"}, &c.Notifications.Sound, other.Notifications.Sound},
	} {
		if yamlHasPath(doc, b.path...) {
			*b.dst = b.src
		}
	}

	if yamlHasPath(doc, "sync", "commit_message") {
		c.Sync.CommitMessage = other.Sync.CommitMessage
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return expandHome(c.DataDir)
}

// GetLogFile returns the resolved log file path, or "" for the default
// location inside the data directory.
func (c *Config) GetLogFile() string {
	if c.Log.File == "" {
		return ""
	}
	return expandHome(c.Log.File)
}

func expandHome(p string) string {
	if p == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return p
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
