// Package main is the entry point for the compass application.
// This file contains the restore subcommand handler.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"compass/internal/backup"
	"compass/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `compass restore - Restore data from a backup

USAGE:
    compass restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-12-15_143022_000)
                   Use 'compass backup --list' to see available backups.

DESCRIPTION:
    Restores all data files (calendar, letters, mood log) from a specific
    backup. The backup is checked first, then a safety backup of the
    current data is created before anything is overwritten.

EXAMPLES:
    # Restore from a specific backup
    compass restore 2025-12-15_143022_000

    # Restore from the most recent backup
    compass restore --latest

    # Restore without confirmation prompt
    compass restore --force 2025-12-15_143022_000
`

// runRestore handles the "compass restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	var backupName string
	switch {
	case *latestFlag:
		backups, err := manager.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
		backupName = backups[0].Name
	case fs.NArg() > 0:
		backupName = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'compass restore BACKUP_NAME' or 'compass restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'compass backup --list' to see available backups.")
		os.Exit(1)
	}

	info, err := manager.GetBackup(backupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s (%s)\n", info.CreatedAt.Format("2006-01-02 15:04:05"), humanize.Time(info.CreatedAt))
	fmt.Printf("  %s\n", backupStats(info))
	fmt.Println()

	if !*forceFlag {
		confirmed := false
		err := huh.NewConfirm().
			Title("⚠ This will overwrite your current data. Continue?").
			Affirmative("Restore").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(backupName); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", backupName)
}
