package notify

import (
	"context"
	"sync/atomic"

	"github.com/oshokin/defender-tray/internal/logger"
)

// EventType represents a category of report.
type EventType string

const (
	// EventStatus answers a "show status" request.
	EventStatus EventType = "status"
	// EventToggleSucceeded reports a verified protection change.
	EventToggleSucceeded EventType = "toggle_succeeded"
	// EventToggleFailed reports a rejected or failed protection change.
	EventToggleFailed EventType = "toggle_failed"
	// EventToggleUnavailable reports a toggle refused because the status is unknown.
	EventToggleUnavailable EventType = "toggle_unavailable"
)

// Notification holds the data of a single report.
type Notification struct {
	Event   EventType
	Title   string
	Message string
}

// Notifier delivers a notification somewhere the operator can see it.
type Notifier interface {
	// Send delivers a notification.
	Send(ctx context.Context, n Notification) error
	// IsAvailable reports whether the backend is functional on this system.
	IsAvailable() bool
}

// Manager fans reports out to the log, the sinks and the desktop backend.
type Manager struct {
	// desktop is the platform notification backend.
	desktop Notifier
	// sinks always receive reports, regardless of the desktop switch.
	sinks []Notifier
	// enabled switches desktop notifications; updated on config reload.
	enabled atomic.Bool
}

// NewManager creates a Manager. Desktop notifications are sent only when enabled.
func NewManager(enabled bool, desktop Notifier, sinks ...Notifier) *Manager {
	m := &Manager{
		desktop: desktop,
		sinks:   sinks,
	}

	m.enabled.Store(enabled)

	return m
}

// SetEnabled switches desktop notifications on or off.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// Report logs n and delivers it. Delivery failures are logged, never returned.
func (m *Manager) Report(ctx context.Context, n Notification) {
	if n.Event == EventToggleFailed {
		logger.ErrorKV(ctx, n.Message, "event", n.Event)
	} else {
		logger.InfoKV(ctx, n.Message, "event", n.Event)
	}

	for _, sink := range m.sinks {
		if err := sink.Send(ctx, n); err != nil {
			logger.WarnKV(ctx, "Failed to write report", "event", n.Event, "error", err)
		}
	}

	if !m.enabled.Load() || m.desktop == nil || !m.desktop.IsAvailable() {
		return
	}

	if err := m.desktop.Send(ctx, n); err != nil {
		logger.WarnKV(ctx, "Failed to send desktop notification", "event", n.Event, "error", err)
	}
}
