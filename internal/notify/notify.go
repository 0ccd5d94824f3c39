// Package notify shows desktop notifications when letters from the past
// arrive. macOS goes through osascript and Linux through notify-send.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"compass/internal/config"
	"compass/internal/logger"
)

const (
	AppName     = "compass"
	sendTimeout = 5 * time.Second
)

// Notifier sends desktop notifications.
type Notifier interface {
	Send(title, message string) error
	SendWithSound(title, message string) error
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error          { return nil }
func (noopNotifier) SendWithSound(title, message string) error { return nil }
func (noopNotifier) IsSupported() bool                         { return false }

// New returns the platform notifier, or a no-op one when the platform tool
// is missing.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

type Config struct {
	Enabled        bool
	LetterArrivals bool
	Sound          bool
}

func DefaultConfig() Config {
	return Config{LetterArrivals: true}
}

// FromConfig converts the user's notification settings.
func FromConfig(c config.NotificationConfig) Config {
	return Config{Enabled: c.Enabled, LetterArrivals: c.LetterArrivals, Sound: c.Sound}
}

// LetterArrivalMessage returns the title and body announcing count unread
// letters.
func LetterArrivalMessage(count int) (string, string) {
	if count == 1 {
		return "A letter has arrived", "1 letter from your past self has arrived. Open the mailbox to read it."
	}
	return "Letters have arrived", fmt.Sprintf("%d letters from your past self have arrived. Open the mailbox to read them.", count)
}

// AnnounceArrivals notifies about count unread letters. It reports whether a
// notification was sent.
func AnnounceArrivals(n Notifier, cfg Config, count int) (bool, error) {
	if !cfg.Enabled || !cfg.LetterArrivals || count <= 0 || !n.IsSupported() {
		return false, nil
	}

	title, body := LetterArrivalMessage(count)
	send := n.Send
	if cfg.Sound {
		send = n.SendWithSound
	}
	if err := send(title, body); err != nil {
		logger.Warn("notification failed", "err", err)
		return false, err
	}
	logger.Debug("announced letter arrivals", "count", count)
	return true, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sendTimeout)
}

// escapeAppleScript escapes backslashes and quotes for an AppleScript string.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
