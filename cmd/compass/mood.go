// Package main is the entry point for the compass application.
// This file contains the mood and note subcommand handlers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"compass/internal/content"
	"compass/internal/storage"

	"github.com/charmbracelet/huh"
)

// moodHelpText is the help message for the mood subcommand.
const moodHelpText = `compass mood - Record today's emotion

USAGE:
    compass mood [OPTIONS]

OPTIONS:
    -e, --emotion NAME   Emotion (happy, calm, lethargic, anxious, sad,
                         angry, hopeful, grateful)
    -n, --note TEXT      One line about today
    -c, --color HEX      Custom calendar colour (#RRGGBB)
        --date DATE      Record for another day (YYYY-MM-DD)
    -h, --help           Show this help message

DESCRIPTION:
    Stores one emotion per day in the emotion calendar. Recording the same
    day again replaces the earlier entry. Without --emotion and --note an
    interactive form asks for them.

EXAMPLES:
    # Open the form
    compass mood

    # Record directly
    compass mood -e grateful -n "dinner with friends"
`

// noteHelpText is the help message for the note subcommand.
const noteHelpText = `compass note - Add a line to the mood log

USAGE:
    compass note TEXT...

DESCRIPTION:
    Appends a timestamped line to records.txt, the same log the Explore
    page writes its closing sentence to.

EXAMPLES:
    compass note "It is still heavy, but a little lighter"
`

// runMood handles the "compass mood" subcommand.
func runMood(args []string) {
	fs := flag.NewFlagSet("mood", flag.ExitOnError)

	var emotionFlag, noteFlag, colorFlag, dateFlag string
	fs.StringVar(&emotionFlag, "emotion", "", "emotion name")
	fs.StringVar(&emotionFlag, "e", "", "emotion name (shorthand)")
	fs.StringVar(&noteFlag, "note", "", "one line about today")
	fs.StringVar(&noteFlag, "n", "", "one line about today (shorthand)")
	fs.StringVar(&colorFlag, "color", "", "custom colour (#RRGGBB)")
	fs.StringVar(&colorFlag, "c", "", "custom colour (shorthand)")
	fs.StringVar(&dateFlag, "date", "", "day to record (YYYY-MM-DD)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, moodHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(moodHelpText)
		os.Exit(0)
	}

	cfg, store := mustOpen(false)
	defer withAutoCommit(cfg, store)()

	if dateFlag == "" {
		dateFlag = store.Today()
	}

	var emotion storage.Emotion
	if emotionFlag != "" {
		e, ok := storage.ParseEmotion(emotionFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown emotion %q\n", emotionFlag)
			os.Exit(1)
		}
		emotion = e
	}

	if emotion == "" || strings.TrimSpace(noteFlag) == "" {
		if entry, ok := store.GetEntry(dateFlag); ok && emotion == "" && noteFlag == "" {
			emotion, noteFlag = entry.Emotion, entry.Note
		}
		if err := moodForm(&emotion, &noteFlag, &colorFlag); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Canceled.")
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	colorFlag = strings.TrimSpace(colorFlag)
	if colorFlag != "" && !content.ValidColor(colorFlag) {
		fmt.Fprintf(os.Stderr, "Error: colour must look like #RRGGBB, got %q\n", colorFlag)
		os.Exit(1)
	}

	entry, err := store.RecordEmotionOn(dateFlag, emotion, noteFlag, strings.ToUpper(colorFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording emotion: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ %s recorded for %s\n", content.EmotionLabel(entry.Emotion), dateFlag)
	if streak := store.Streak(); streak > 0 {
		fmt.Printf("  🔥 %d day streak\n", streak)
	}
}

// moodForm asks for the missing parts of a calendar entry.
func moodForm(emotion *storage.Emotion, note, color *string) error {
	options := make([]huh.Option[storage.Emotion], 0, len(storage.Emotions))
	for _, e := range storage.Emotions {
		options = append(options, huh.NewOption(content.EmotionLabel(e), e))
	}
	if *emotion == "" {
		*emotion = storage.Emotions[0]
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[storage.Emotion]().
				Title("How was today?").
				Options(options...).
				Value(emotion),
			huh.NewInput().
				Title("One line about today").
				Value(note).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("write at least a few words")
					}
					return nil
				}),
			huh.NewInput().
				Title("Custom colour").
				Description("Optional, #RRGGBB. Leave empty for the emotion's colour.").
				Value(color).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s != "" && !content.ValidColor(s) {
						return errors.New("use the form #RRGGBB")
					}
					return nil
				}),
		),
	)
	return form.Run()
}

// runNote handles the "compass note" subcommand.
func runNote(args []string) {
	fs := flag.NewFlagSet("note", flag.ExitOnError)

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, noteHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag || fs.NArg() == 0 {
		fmt.Print(noteHelpText)
		os.Exit(0)
	}

	cfg, store := mustOpen(false)
	defer withAutoCommit(cfg, store)()

	entry, err := store.AppendMood(strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving note: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ [%s] %s\n", entry.Timestamp, entry.Text)
}
