//go:build darwin

package notify

import (
	"context"
	"os/exec"
	"strings"
)

// DarwinNotifier sends desktop notifications on macOS using osascript.
type DarwinNotifier struct{}

// NewDesktopNotifier returns the platform notification backend.
func NewDesktopNotifier() *DarwinNotifier {
	return new(DarwinNotifier)
}

// Send delivers a notification via AppleScript's display notification.
func (*DarwinNotifier) Send(ctx context.Context, n Notification) error {
	script := `display notification "` + escapeAppleScript(n.Message) +
		`" with title "` + escapeAppleScript(n.Title) + `"`

	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

// IsAvailable reports whether osascript is installed.
func (*DarwinNotifier) IsAvailable() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

// escapeAppleScript escapes backslashes and double quotes for AppleScript strings.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
