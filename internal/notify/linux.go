//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return &linuxNotifier{}
}

func (n *linuxNotifier) Send(title, message string) error {
	return n.notifySend(linuxArgs(title, message, false))
}

// SendWithSound raises urgency; whether that plays a sound is up to the
// notification daemon.
func (n *linuxNotifier) SendWithSound(title, message string) error {
	return n.notifySend(linuxArgs(title, message, true))
}

func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *linuxNotifier) notifySend(args []string) error {
	ctx, cancel := commandContext()
	defer cancel()
	if err := exec.CommandContext(ctx, "notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

func linuxArgs(title, message string, sound bool) []string {
	args := []string{"--app-name=" + AppName}
	if sound {
		args = append(args, "--urgency=normal")
	}
	return append(args, "--", title, message)
}
