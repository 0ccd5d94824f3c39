// Package main is the entry point for the compass application.
// This file contains the letter subcommand handlers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"compass/internal/storage"

	"github.com/charmbracelet/huh"
)

// letterHelpText is the help message for the letter subcommand.
const letterHelpText = `compass letter - Letters to your future self

USAGE:
    compass letter write [--in OFFSET] [TEXT...]
    compass letter list
    compass letter read ID

COMMANDS:
    write    Seal a letter. Without TEXT an editor form opens.
    list     Show arrived letters and how many are still on their way
    read     Print an arrived letter and mark it as read. ID may be a
             unique prefix, as shown by 'list'.

OPTIONS:
    --in OFFSET    Delivery time: "1 week", "1 month", "3 months", "1 year"
                   (default "1 week")
    -h, --help     Show this help message

EXAMPLES:
    compass letter write --in "3 months" "Did you keep going?"
    compass letter list
    compass letter read 3f2a
`

// runLetter handles the "compass letter" subcommand.
func runLetter(args []string) {
	if len(args) == 0 {
		fmt.Print(letterHelpText)
		os.Exit(0)
	}

	switch args[0] {
	case "write":
		runLetterWrite(args[1:])
	case "list":
		runLetterList(args[1:])
	case "read":
		runLetterRead(args[1:])
	case "-h", "--help", "help":
		fmt.Print(letterHelpText)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown letter command %q\n\n", args[0])
		fmt.Fprint(os.Stderr, letterHelpText)
		os.Exit(1)
	}
}

func letterFlagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet("letter "+name, flag.ExitOnError)
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, letterHelpText)
	}
	return fs, helpFlag
}

func runLetterWrite(args []string) {
	fs, helpFlag := letterFlagSet("write")
	offset := fs.String("in", "", "delivery offset")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(letterHelpText)
		os.Exit(0)
	}

	if *offset != "" {
		if _, ok := storage.OffsetDays(*offset); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown delivery time %q (choose %s)\n", *offset, offsetLabels())
			os.Exit(1)
		}
	}

	cfg, store := mustOpen(false)
	defer withAutoCommit(cfg, store)()

	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		if err := letterForm(&text, offset); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Canceled. Nothing was sent.")
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *offset == "" {
		*offset = storage.DeliveryOffsets[0].Label
	}

	letter, err := store.WriteLetter(text, *offset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing letter: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("💌 Letter sealed!")
	fmt.Printf("  Arrives: %s\n", formatLetterDate(letter.DeliveryDate))
	fmt.Printf("  ID:      %s\n", shortID(letter.ID))
}

// letterForm asks for the letter text and, when not given, the delivery
// offset.
func letterForm(text, offset *string) error {
	fields := []huh.Field{
		huh.NewText().
			Title("💝 A letter to your future self").
			Description("What would you like to tell yourself?").
			CharLimit(4000).
			Value(text).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("write something to your future self first")
				}
				return nil
			}),
	}

	if *offset == "" {
		*offset = storage.DeliveryOffsets[0].Label
		options := make([]huh.Option[string], 0, len(storage.DeliveryOffsets))
		for _, o := range storage.DeliveryOffsets {
			options = append(options, huh.NewOption(o.Label, o.Label))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("When should it arrive?").
			Options(options...).
			Value(offset))
	}

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

func runLetterList(args []string) {
	fs, helpFlag := letterFlagSet("list")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag {
		fmt.Print(letterHelpText)
		os.Exit(0)
	}

	_, store := mustOpen(false)
	deliverable, waiting := store.Mailbox()
	today := store.Now()

	unread := storage.CountNew(deliverable, today)
	fmt.Println("📪 Mailbox")
	fmt.Println("──────────")
	fmt.Printf("New letters: %d   Waiting: %d\n", unread, len(waiting))

	// Malformed delivery dates report 0 days and never arrive.
	next := 0
	for _, l := range waiting {
		if days := l.DaysUntilDelivery(today); days > 0 && (next == 0 || days < next) {
			next = days
		}
	}
	if next > 0 {
		fmt.Printf("🚚 The next letter arrives in %d day%s.\n", next, pluralS(next))
	}
	fmt.Println()

	if len(deliverable) == 0 {
		fmt.Println("No letters have arrived yet. Write your first one with 'compass letter write'.")
		return
	}

	for _, l := range deliverable {
		state := "✅ Read"
		if !l.IsRead {
			state = "🆕 New "
		}
		fmt.Printf("  %s  %s  from you on %s\n", shortID(l.ID), state, formatLetterDate(l.WriteDate))
	}
}

func runLetterRead(args []string) {
	fs, helpFlag := letterFlagSet("read")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *helpFlag || fs.NArg() != 1 {
		fmt.Print(letterHelpText)
		os.Exit(0)
	}

	cfg, store := mustOpen(false)
	defer withAutoCommit(cfg, store)()

	letter, ok := store.GetLetter(fs.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no letter matches %q\n", fs.Arg(0))
		os.Exit(1)
	}
	// Sealed letters stay sealed, even from the command line.
	if !letter.Deliverable(store.Now()) {
		fmt.Fprintf(os.Stderr, "Error: this letter arrives on %s\n", formatLetterDate(letter.DeliveryDate))
		os.Exit(1)
	}

	fmt.Printf("💌 From you on %s\n\n", formatLetterDate(letter.WriteDate))
	fmt.Println(letter.Content)
	fmt.Println()

	if letter.IsRead {
		return
	}
	if err := store.MarkLetterRead(letter.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking letter read: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("You read a letter from your past self 💕")
}

func offsetLabels() string {
	labels := make([]string, len(storage.DeliveryOffsets))
	for i, o := range storage.DeliveryOffsets {
		labels[i] = fmt.Sprintf("%q", o.Label)
	}
	return strings.Join(labels, ", ")
}

func formatLetterDate(date string) string {
	t, err := time.Parse(storage.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
