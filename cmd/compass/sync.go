// Package main is the entry point for the compass application.
// This file contains the sync subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"compass/internal/config"
	"compass/internal/sync"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
)

// syncHelpText is the help message for the sync subcommand.
const syncHelpText = `compass sync - Git synchronization for your journal

USAGE:
    compass sync [OPTIONS]

OPTIONS:
    --setup        Interactive setup wizard (recommended for first-time setup)
    --init         Initialize git repository in data directory
    --status       Show sync status
    --pull         Pull latest changes from remote
    --push         Push local changes to remote
    --remote URL   Add (or repoint) the 'origin' remote
    -h, --help     Show this help message

DESCRIPTION:
    Keeps your emotion calendar, letters and mood log in a git repository
    so they can be backed up and shared across machines. With auto_commit
    enabled, every change made in compass becomes a commit such as
    "Record emotion: 2024-03-15 calm" or "Write letter: 1 month".

SETUP:
    1. Initialize the repository:
       compass sync --init

    2. Add a remote:
       compass sync --remote git@github.com:me/journal.git

    3. Enable sync in config (~/.config/compass/config.yaml):
       sync:
         enabled: true
         auto_commit: true
         auto_push: false
         pull_on_startup: false

EXAMPLES:
    # Check sync status
    compass sync --status

    # Manual sync (commit + push)
    compass sync

    # Pull latest changes
    compass sync --pull

CONFIGURATION:
    sync:
      enabled: false           # Enable/disable git sync
      auto_commit: true        # Automatically commit after changes
      auto_push: false         # Automatically push after commits
      pull_on_startup: false   # Pull when starting the app
      commit_message: "auto"   # "auto" or a fixed message
`

// runSync handles the "compass sync" subcommand.
func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	setupFlag := fs.Bool("setup", false, "interactive setup wizard")
	initFlag := fs.Bool("init", false, "initialize git repository")
	statusFlag := fs.Bool("status", false, "show sync status")
	pullFlag := fs.Bool("pull", false, "pull latest changes")
	pushFlag := fs.Bool("push", false, "push local changes")
	remoteFlag := fs.String("remote", "", "add the origin remote")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, syncHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(syncHelpText)
		os.Exit(0)
	}

	if !sync.IsGitInstalled() {
		fmt.Fprintf(os.Stderr, "Error: git is not installed. Please install git to use sync.\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	gs := sync.New(cfg.GetDataDir(), sync.FromConfig(cfg.Sync))

	switch {
	case *setupFlag:
		runSyncSetup(gs, cfg)
	case *initFlag:
		runSyncInit(gs, cfg.GetDataDir())
	case *statusFlag:
		runSyncStatus(gs, cfg)
	case *remoteFlag != "":
		runSyncRemote(gs, *remoteFlag)
	case *pullFlag:
		requireRepo(gs)
		fmt.Println("Pulling latest changes...")
		if err := gs.Pull(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Pull complete.")
	case *pushFlag:
		requireRepo(gs)
		fmt.Println("Pushing local changes...")
		if err := gs.Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Push complete.")
	default:
		runSyncDefault(gs)
	}
}

func requireRepo(gs *sync.GitSync) {
	if !gs.IsRepo() {
		fmt.Fprintf(os.Stderr, "Error: not a git repository. Run 'compass sync --init' first.\n")
		os.Exit(1)
	}
}

// runSyncInit initializes the git repository.
func runSyncInit(gs *sync.GitSync, dataDir string) {
	if gs.IsRepo() {
		fmt.Printf("Git repository already initialized in %s\n", dataDir)
		os.Exit(0)
	}

	fmt.Printf("Initializing git repository in %s...\n", dataDir)
	if err := gs.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Repository initialized successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Add a remote repository:")
	fmt.Println("     compass sync --remote <your-repo-url>")
	fmt.Println()
	fmt.Println("  2. Enable sync in your config (~/.config/compass/config.yaml):")
	fmt.Println("     sync:")
	fmt.Println("       enabled: true")
}

func runSyncRemote(gs *sync.GitSync, url string) {
	requireRepo(gs)
	if err := gs.AddRemote("origin", url); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding remote: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Remote 'origin' set to %s\n", url)
}

// runSyncStatus shows the sync status.
func runSyncStatus(gs *sync.GitSync, cfg *config.Config) {
	status, err := gs.Status()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting status: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Git Sync Status")
	fmt.Println("───────────────")

	if cfg.Sync.Enabled {
		fmt.Println("Sync:       enabled")
	} else {
		fmt.Println("Sync:       disabled")
	}

	fmt.Printf("Data dir:   %s\n", cfg.GetDataDir())

	if !status.IsRepo {
		fmt.Println("Repository: not initialized")
		fmt.Println()
		fmt.Println("Run 'compass sync --init' to initialize.")
		return
	}

	fmt.Printf("Repository: initialized\n")
	fmt.Printf("Branch:     %s\n", status.Branch)

	if status.HasRemote {
		fmt.Printf("Remote:     %s (%s)\n", status.RemoteName, status.RemoteURL)
		if status.Ahead > 0 || status.Behind > 0 {
			fmt.Printf("Status:     %d ahead, %d behind\n", status.Ahead, status.Behind)
		} else {
			fmt.Println("Status:     up to date")
		}
	} else {
		fmt.Println("Remote:     not configured")
	}

	if status.HasChanges {
		fmt.Println("Changes:    uncommitted changes present")
	} else {
		fmt.Println("Changes:    clean")
	}

	if status.LastCommitAt != nil {
		fmt.Printf("Last commit: %s\n", humanize.Time(*status.LastCommitAt))
	}
}

// runSyncDefault performs a manual sync (commit all + push).
func runSyncDefault(gs *sync.GitSync) {
	requireRepo(gs)

	fmt.Println("Committing changes...")
	if err := gs.CommitAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Error committing: %v\n", err)
		os.Exit(1)
	}

	status, err := gs.Status()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting status: %v\n", err)
		os.Exit(1)
	}

	if !status.HasRemote {
		fmt.Println("Changes committed locally.")
		fmt.Println("(No remote configured - add one with 'compass sync --remote <url>')")
		return
	}

	fmt.Println("Pushing to remote...")
	if err := gs.Push(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: push failed: %v\n", err)
		fmt.Println("Changes committed locally.")
		return
	}
	fmt.Println("Sync complete.")
}

// runSyncSetup runs the interactive setup wizard.
func runSyncSetup(gs *sync.GitSync, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Git Sync Setup")
	fmt.Println("══════════════")
	fmt.Printf("Data directory: %s\n\n", cfg.GetDataDir())

	if !gs.IsRepo() {
		initRepo := true
		if err := confirm("Initialize a git repository here?", &initRepo); err != nil || !initRepo {
			fmt.Println("Setup canceled.")
			os.Exit(0)
		}
		if err := gs.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Repository initialized")
	} else {
		fmt.Println("✓ Repository already initialized")
	}

	status, err := gs.Status()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting status: %v\n", err)
		os.Exit(1)
	}

	if status.HasRemote {
		fmt.Printf("✓ Remote configured: %s (%s)\n", status.RemoteName, status.RemoteURL)
	} else {
		var remoteURL string
		err := huh.NewInput().
			Title("Remote URL").
			Description("e.g. git@github.com:me/journal.git. Leave empty to skip.").
			Value(&remoteURL).
			Run()
		if err != nil {
			fmt.Println("Setup canceled.")
			os.Exit(0)
		}
		if remoteURL = strings.TrimSpace(remoteURL); remoteURL == "" {
			fmt.Println("Skipped remote")
		} else if err := gs.AddRemote("origin", remoteURL); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding remote: %v\n", err)
		} else {
			fmt.Println("✓ Remote 'origin' added")
		}
	}

	autoCommit := cfg.Sync.AutoCommit
	autoPush := cfg.Sync.AutoPush
	pullOnStartup := cfg.Sync.PullOnStartup

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Commit automatically after each change?").Value(&autoCommit),
		huh.NewConfirm().Title("Push automatically after each commit?").Value(&autoPush),
		huh.NewConfirm().Title("Pull when compass starts?").Value(&pullOnStartup),
	))
	if err := form.Run(); err != nil {
		fmt.Println("Setup canceled.")
		os.Exit(0)
	}

	cfg.Sync.Enabled = true
	cfg.Sync.AutoCommit = autoCommit
	cfg.Sync.AutoPush = autoPush
	cfg.Sync.PullOnStartup = pullOnStartup

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		fmt.Println()
		fmt.Printf("Add this to %s:\n\n", config.Path())
		fmt.Println("sync:")
		fmt.Println("  enabled: true")
		fmt.Printf("  auto_commit: %v\n", autoCommit)
		fmt.Printf("  auto_push: %v\n", autoPush)
		fmt.Printf("  pull_on_startup: %v\n", pullOnStartup)
		return
	}

	fmt.Println("✓ Configuration saved")
	fmt.Println()
	fmt.Println("Setup complete! Git sync is now enabled.")
	if !autoPush {
		fmt.Println("Use 'compass sync' to push changes to your remote.")
	}
}

func confirm(title string, value *bool) error {
	return huh.NewConfirm().Title(title).Value(value).Run()
}
