// Package main is the entry point for the compass application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"compass/internal/backup"
	"compass/internal/config"

	"github.com/dustin/go-humanize"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `compass backup - Create and manage backups

USAGE:
    compass backup [OPTIONS]

OPTIONS:
    -l, --list         List available backups
        --prune N      Keep the N newest backups and delete the rest
        --delete NAME  Delete one backup
    -h, --help         Show this help message

DESCRIPTION:
    Creates a timestamped backup of all your data files (calendar, letters,
    mood log and the explore content). Backups are stored in
    ~/.compass/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup
    compass backup

    # List all available backups
    compass backup --list

    # Keep only the last 10
    compass backup --prune 10
`

// runBackup handles the "compass backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Int("prune", 0, "keep the N newest backups")
	deleteFlag := fs.String("delete", "", "delete one backup")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag > 0:
		pruneBackups(manager, *pruneFlag)
	case *deleteFlag != "":
		if err := manager.Delete(*deleteFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting backup: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Deleted backup %s\n", *deleteFlag)
	default:
		createBackup(manager)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  %s\n", backupStats(info))
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups, newest first.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'compass backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for i := range backups {
		b := &backups[i]
		fmt.Printf("  %s  (%s)   %s\n", b.Name, humanize.Time(b.CreatedAt), backupStats(b))
	}
}

func pruneBackups(manager *backup.Manager, keep int) {
	removed, err := manager.Prune(keep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
		os.Exit(1)
	}
	if removed == 0 {
		fmt.Printf("Nothing to prune (%d or fewer backups).\n", keep)
		return
	}
	fmt.Printf("✓ Removed %d old backup%s, kept the newest %d\n", removed, pluralS(removed), keep)
}

func backupStats(info *backup.BackupInfo) string {
	return fmt.Sprintf("Days: %d, Letters: %d, Mood notes: %d",
		info.Stats["calendar_days"], info.Stats["letters"], info.Stats["mood_entries"])
}
