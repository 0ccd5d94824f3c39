// Package main is the entry point for the compass application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"compass/internal/fsutil"
	"compass/internal/reports"
	"compass/internal/storage"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `compass export - Generate reports and export your data

USAGE:
    compass export [OPTIONS] [MONTH]

OPTIONS:
    -a, --all          All-time overview instead of a monthly report
    -f, --format FMT   Output format: markdown (default), json or csv
    -o, --output FILE  Write to file instead of stdout
        --data DIR     Export the raw data files into DIR
    -h, --help         Show this help message

ARGUMENTS:
    MONTH              Month for the report (YYYY-MM). Defaults to this month.

DESCRIPTION:
    Reports summarise your emotion calendar, the letters you wrote and
    received, and the mood log. Letter contents stay sealed in reports.
    The csv format exports calendar entries, one row per day.

    --data writes emotion_calendar.csv, emotion_calendar.json,
    future_letters.json and records.txt into DIR.

EXAMPLES:
    # This month's report in Markdown
    compass export

    # A specific month as JSON
    compass export --format json 2024-03

    # All-time overview
    compass export --all

    # Calendar as CSV for a spreadsheet
    compass export -f csv -o calendar.csv

    # Raw data
    compass export --data ~/compass-export
`

// runExport handles the "compass export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	allFlag := fs.Bool("all", false, "all-time overview")
	fs.BoolVar(allFlag, "a", false, "all-time overview (shorthand)")

	formatFlag := fs.String("format", "markdown", "output format: markdown, json or csv")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	dataFlag := fs.String("data", "", "export raw data files into a directory")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format == "md" {
		format = "markdown"
	}
	if format != "markdown" && format != "json" && format != "csv" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown', 'json' or 'csv'.\n", format)
		os.Exit(1)
	}

	_, store := mustOpen(false)

	if *dataFlag != "" {
		exportData(store, *dataFlag)
		return
	}

	month := store.Now()
	monthGiven := fs.NArg() > 0
	if monthGiven {
		parsed, err := time.ParseInLocation("2006-01", fs.Arg(0), time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid month %q. Use YYYY-MM format.\n", fs.Arg(0))
			os.Exit(1)
		}
		month = parsed
	}

	var output string
	var err error
	switch {
	case format == "csv":
		cal := store.LoadCalendar()
		if monthGiven {
			cal = monthOf(cal, month)
		}
		output, err = storage.CalendarCSV(cal)
	case *allFlag:
		output, err = overviewReport(reports.NewGenerator(store), format)
	default:
		output, err = monthlyReport(reports.NewGenerator(store), month, format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	if *outputFlag != "" {
		writeOutput(*outputFlag, []byte(output))
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}

func monthlyReport(gen *reports.Generator, month time.Time, format string) (string, error) {
	report, err := gen.GenerateMonthly(month.Year(), month.Month())
	if err != nil {
		return "", err
	}
	if format == "json" {
		data, err := reports.FormatMonthlyJSON(report)
		return string(data), err
	}
	return reports.FormatMonthlyMarkdown(report), nil
}

func overviewReport(gen *reports.Generator, format string) (string, error) {
	o, err := gen.GenerateOverview()
	if err != nil {
		return "", err
	}
	if format == "json" {
		data, err := reports.FormatOverviewJSON(o)
		return string(data), err
	}
	return reports.FormatOverviewMarkdown(o), nil
}

// monthOf returns the calendar entries of month.
func monthOf(cal storage.Calendar, month time.Time) storage.Calendar {
	prefix := month.Format("2006-01") + "-"
	out := storage.Calendar{}
	for date, e := range cal {
		if strings.HasPrefix(date, prefix) {
			out[date] = e
		}
	}
	return out
}

// exportData writes every journal file into dir in a portable form.
func exportData(store *storage.Storage, dir string) {
	calCSV, err := store.ExportCalendarCSV()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting calendar: %v\n", err)
		os.Exit(1)
	}
	calJSON, err := store.ExportCalendarJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting calendar: %v\n", err)
		os.Exit(1)
	}
	letters, err := store.ExportLettersJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting letters: %v\n", err)
		os.Exit(1)
	}

	files := []struct {
		name string
		data []byte
	}{
		{"emotion_calendar.csv", []byte(calCSV)},
		{storage.CalendarFile, calJSON},
		{storage.LettersFile, letters},
		{storage.MoodLogFile, []byte(store.ExportMoodLog())},
	}
	for _, f := range files {
		writeOutput(filepath.Join(dir, f.name), f.data)
		fmt.Printf("✓ %s\n", f.name)
	}
	fmt.Printf("Data exported to %s\n", dir)
}

func writeOutput(path string, data []byte) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := fsutil.WriteFileAtomic(path, data, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
		os.Exit(1)
	}
}
