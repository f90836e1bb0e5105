//go:build !darwin && !linux && !windows

package notify

import "context"

// OtherNotifier is a no-op notification backend for unsupported platforms.
type OtherNotifier struct{}

// NewDesktopNotifier returns the platform notification backend.
func NewDesktopNotifier() *OtherNotifier {
	return new(OtherNotifier)
}

// Send is a no-op and always returns nil.
func (*OtherNotifier) Send(context.Context, Notification) error {
	return nil
}

// IsAvailable always returns false on unsupported platforms.
func (*OtherNotifier) IsAvailable() bool {
	return false
}
