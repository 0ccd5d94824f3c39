// Package main is the entry point for the compass application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"compass/internal/config"
	"compass/internal/logger"
	"compass/internal/notify"
	"compass/internal/storage"
	"compass/internal/sync"
	"compass/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `compass - An emotional compass for your terminal

USAGE:
    compass [OPTIONS]
    compass <command> [ARGS]

COMMANDS:
    mood             Record today's emotion (interactive form or flags)
    note TEXT        Add a line to the mood log
    letter write     Write a letter to your future self
    letter list      Show the mailbox
    letter read ID   Read an arrived letter
    stats [YYYY-MM]  Show your streak and statistics
    export           Generate a monthly report (Markdown)
    export -f json   Output report as JSON
    export --data    Export raw data (calendar CSV, letters JSON, mood log)
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    sync             Sync data with git (commit + push)
    sync --init      Initialize git repo in data directory
    sync --status    Show git sync status
    import           Import records from other apps

OPTIONS:
    -d, --debug      Also write log output to stderr
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    compass is a small terminal companion for looking after your heart:
    explore a feeling step by step, keep an emotion calendar, and write
    letters that arrive in your own mailbox weeks or months later.

PAGES:
    • Home       - Recent moods, streak and arrived letters
    • Explore    - A guided reflection on lethargy or anxiety
    • Calendar   - One emotion per day, monthly view and statistics
    • Letters    - Write to your future self, read what has arrived

KEYBINDINGS:
    Global:
        Tab          Next page
        1, 2, 3, 4   Jump to a page
        ?            Show help overlay
        q            Quit

    Calendar:
        h/l          Previous/next month
        r            Record today's emotion
        s            Toggle statistics

    Letters:
        w            Write a letter
        j/k, ↓/↑     Select a letter
        m            Mark as read
        Ctrl+S       Send (while writing)
        Shift+Tab    Change delivery time (while writing)

DATA STORAGE:
    All data is stored in ~/.compass/ as plain files:
        emotion_calendar.json  - One emotion per day
        future_letters.json    - Letters to your future self
        records.txt            - Mood log, one line per entry
        insights.json          - Replies used while exploring
        contents.json          - Recommended content

CONFIGURATION:
    Optional config file: ~/.config/compass/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    compass

    # Record today's emotion without the form
    compass mood --emotion calm --note "a quiet walk"

    # Write a letter that arrives in a month
    compass letter write --in "1 month" "Remember how far you came."

    # This month's report as JSON
    compass export --format json

    # Show version
    compass --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "mood":
			runMood(os.Args[2:])
			return
		case "note":
			runNote(os.Args[2:])
			return
		case "letter":
			runLetter(os.Args[2:])
			return
		case "stats":
			runStats(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "sync":
			runSync(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	debug := flag.Bool("debug", false, "also log to stderr")
	flag.BoolVar(debug, "d", false, "also log to stderr (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("compass version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg, store := mustOpen(*debug)

	// Set up git sync if enabled
	var gitSync *sync.GitSync
	if cfg.Sync.Enabled && sync.IsGitInstalled() {
		gitSync = sync.New(cfg.GetDataDir(), sync.FromConfig(cfg.Sync))

		if cfg.Sync.PullOnStartup && gitSync.IsRepo() {
			if err := gitSync.Pull(); err != nil {
				// Local data is still valid
				logger.Warn("sync pull failed", "err", err)
				fmt.Fprintf(os.Stderr, "Warning: sync pull failed: %v\n", err)
			}
		}

		if cfg.Sync.AutoCommit && gitSync.IsRepo() {
			store.SetOnSaveWithContext(gitSync.OnFileSavedWithContext)
		}
	}

	if _, err := notify.AnnounceArrivals(notify.New(), notify.FromConfig(cfg.Notifications), store.NewLetterCount()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: notification failed: %v\n", err)
	}

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ShowOnboarding:        cfg.UX.ShowOnboarding,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
		RecentMoods:           cfg.UX.RecentMoods,
		Sync:                  gitSync,
	}

	logger.Info("starting", "version", version, "data_dir", cfg.GetDataDir())
	if err := ui.Run(store, ui.NewStyles(cfg), appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	// Flush any pending git commits before exit
	if gitSync != nil {
		gitSync.Flush()
	}
}

// mustOpen loads the configuration, starts the logger and opens storage,
// exiting on failure. Subcommands that write data share it with the TUI.
func mustOpen(debug bool) (*config.Config, *storage.Storage) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(logger.Config{
		Debug:      debug,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Dir:        cfg.GetDataDir(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		// Logging is optional; the journal is not.
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	return cfg, store
}

// withAutoCommit registers the git auto-commit hook for a subcommand that
// writes data and returns a func that flushes it.
func withAutoCommit(cfg *config.Config, store *storage.Storage) func() {
	if !cfg.Sync.Enabled || !cfg.Sync.AutoCommit || !sync.IsGitInstalled() {
		return func() {}
	}
	gs := sync.New(cfg.GetDataDir(), sync.FromConfig(cfg.Sync))
	if !gs.IsRepo() {
		return func() {}
	}
	store.SetOnSaveWithContext(gs.OnFileSavedWithContext)
	return gs.Flush
}
