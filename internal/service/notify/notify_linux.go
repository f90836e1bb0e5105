//go:build linux

package notify

import (
	"context"
	"os/exec"
)

// LinuxNotifier sends desktop notifications on Linux using notify-send.
type LinuxNotifier struct{}

// NewDesktopNotifier returns the platform notification backend.
func NewDesktopNotifier() *LinuxNotifier {
	return new(LinuxNotifier)
}

// Send delivers a notification via notify-send.
func (*LinuxNotifier) Send(ctx context.Context, n Notification) error {
	return exec.CommandContext(ctx, "notify-send", "--app-name=defender-tray", n.Title, n.Message).Run()
}

// IsAvailable reports whether notify-send is installed.
func (*LinuxNotifier) IsAvailable() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}
