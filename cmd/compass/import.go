// Package main is the entry point for the compass application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"compass/internal/content"
	"compass/internal/importer"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `compass import - Import records from other apps

USAGE:
    compass import [OPTIONS] <format> <file>
    compass import [OPTIONS] legacy <dir>

FORMATS:
    daylio     Daylio CSV export
    calendar   An emotion_calendar.json file
    letters    A future_letters.json file
    moodlog    A records.txt mood log
    legacy     A whole data directory from an earlier install

OPTIONS:
    --dry-run      Preview import without making changes
    --overwrite    Replace calendar days that already have an entry
    -h, --help     Show this help message

DESCRIPTION:
    DAYLIO:
      Export via More → Export Entries → CSV. One entry per day is kept
      (the first row of each day); the note title, note and activities
      become the calendar note.

    LEGACY:
      Reads emotion_calendar.json, future_letters.json and records.txt
      from the given directory. Korean emotion names from the first
      release are translated.

FIELD MAPPING:
    Daylio:
      - rad → happy, good → calm, meh → lethargic
      - bad → anxious, awful → sad
      - Unknown moods are skipped

    Letters:
      - Letters already present (same id) are skipped
      - Letters without an id get a new one

EXAMPLES:
    # Import from Daylio
    compass import daylio ~/Downloads/daylio_export.csv

    # Preview before importing
    compass import --dry-run daylio daylio_export.csv

    # Bring over an old data directory
    compass import legacy ~/old-compass
`

// runImport handles the "compass import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")
	overwriteFlag := fs.Bool("overwrite", false, "replace existing calendar days")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	formats := strings.Join(append(importer.SupportedFormats(), "legacy"), ", ")
	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: missing arguments\n\n")
		fmt.Fprintf(os.Stderr, "Usage: compass import <format> <file>\n")
		fmt.Fprintf(os.Stderr, "Formats: %s\n", formats)
		fmt.Fprintf(os.Stderr, "\nRun 'compass import --help' for more information.\n")
		os.Exit(1)
	}

	format := strings.ToLower(fs.Arg(0))
	path := fs.Arg(1)
	opts := importer.Options{Overwrite: *overwriteFlag}

	if format == "legacy" {
		if *dryRunFlag {
			fmt.Fprintln(os.Stderr, "Error: --dry-run is not supported for legacy directories")
			os.Exit(1)
		}
		cfg, store := mustOpen(false)
		defer withAutoCommit(cfg, store)()

		result, err := importer.ImportDir(path, store, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
			os.Exit(1)
		}
		printImportResult(result)
		return
	}

	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", formats)
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if *dryRunFlag {
		runImportDryRun(imp, file)
		return
	}

	cfg, store := mustOpen(false)
	defer withAutoCommit(cfg, store)()

	result, err := imp.Import(file, store, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}
	printImportResult(result)
}

// runImportDryRun previews the import without making changes.
func runImportDryRun(imp importer.Importer, r io.Reader) {
	entries, err := imp.Preview(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing found to import.")
		return
	}

	fmt.Printf("Preview: %d entries to import from %s\n", len(entries), imp.Name())
	fmt.Println("────────────────────────────")

	showCount := min(len(entries), 20)
	for _, e := range entries[:showCount] {
		switch e.Kind {
		case "emotion":
			fmt.Printf("  %s  %-14s %s\n", e.Date, content.EmotionLabel(e.Emotion), truncate(e.Text, 50))
		case "letter":
			// Contents stay sealed; Date is the delivery date.
			fmt.Printf("  %s  💌 sealed letter\n", e.Date)
		default:
			fmt.Printf("  %s  📝 %s\n", e.Date, truncate(e.Text, 60))
		}
	}

	if len(entries) > showCount {
		fmt.Printf("  ... and %d more\n", len(entries)-showCount)
	}

	fmt.Println()
	fmt.Println("Run without --dry-run to import.")
}

func printImportResult(result *importer.ImportResult) {
	fmt.Printf("Import complete!\n")
	fmt.Printf("  Imported: %d entries\n", result.Imported)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped:  %d entries\n", result.Skipped)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("  Errors:   %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
