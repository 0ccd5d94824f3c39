// Package main is the entry point for the compass application.
// This file contains the stats subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"compass/internal/content"
	"compass/internal/reports"
)

// statsHelpText is the help message for the stats subcommand.
const statsHelpText = `compass stats - Your streak and emotion statistics

USAGE:
    compass stats [OPTIONS] [MONTH]

OPTIONS:
    -a, --all      Show all-time statistics only
    -h, --help     Show this help message

ARGUMENTS:
    MONTH          Month to summarise (YYYY-MM). Defaults to this month.

EXAMPLES:
    compass stats
    compass stats 2024-03
    compass stats --all
`

// runStats handles the "compass stats" subcommand.
func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	allFlag := fs.Bool("all", false, "all-time statistics only")
	fs.BoolVar(allFlag, "a", false, "all-time statistics only (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, statsHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(statsHelpText)
		os.Exit(0)
	}

	_, store := mustOpen(false)
	gen := reports.NewGenerator(store)

	overview, err := gen.GenerateOverview()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating statistics: %v\n", err)
		os.Exit(1)
	}

	if overview.TotalDays == 0 {
		fmt.Println("No emotions recorded yet. Record your first one with 'compass mood'.")
		return
	}

	fmt.Println("📊 My statistics")
	fmt.Println("────────────────")
	fmt.Printf("Total days:   %d\n", overview.TotalDays)
	fmt.Printf("Streak:       %d day%s 🔥\n", overview.Streak, pluralS(overview.Streak))
	if overview.ModeEmotion != "" {
		fmt.Printf("Most often:   %s\n", content.EmotionLabel(overview.ModeEmotion))
	}
	fmt.Printf("Since:        %s\n", overview.FirstDate)
	fmt.Println()
	fmt.Println("Emotion distribution")
	top := overview.Distribution[0].Count
	for _, ec := range overview.Distribution {
		fmt.Printf("  %-14s %-20s %d\n", content.EmotionLabel(ec.Emotion), reports.Bar(ec.Count, top, 20), ec.Count)
	}

	if *allFlag {
		return
	}

	month := store.Now()
	if fs.NArg() > 0 {
		month, err = time.ParseInLocation("2006-01", fs.Arg(0), time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid month %q. Use YYYY-MM format.\n", fs.Arg(0))
			os.Exit(1)
		}
	}

	report, err := gen.GenerateMonthly(month.Year(), month.Month())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating monthly summary: %v\n", err)
		os.Exit(1)
	}

	s := report.Summary
	fmt.Println()
	fmt.Printf("%s %d\n", s.Month, s.Year)
	if s.Count == 0 {
		fmt.Println("  No records this month.")
		return
	}
	fmt.Printf("  Days recorded:  %d / %d\n", s.Count, s.DaysInMonth)
	fmt.Printf("  Completion:     %.1f%%\n", s.CompletionRate)
	fmt.Printf("  Most often:     %s\n", content.EmotionLabel(s.ModeEmotion))
	fmt.Printf("  Mood notes:     %d\n", len(report.Moods))
	fmt.Printf("  Letters:        %d written, %d arrived\n", len(report.LettersWritten), len(report.LettersDelivered))
}
