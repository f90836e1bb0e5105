package indicator

import (
	"strings"
	"sync"

	"github.com/oshokin/defender-tray/internal/domain/protection"
)

// IconID identifies an icon asset of the indicator.
type IconID string

const (
	// IconEnabled is shown while real-time protection is on.
	IconEnabled IconID = "defender_enabled"
	// IconDisabled is shown while real-time protection is off.
	IconDisabled IconID = "defender_disabled"
	// IconUnknown is shown while the status cannot be read.
	IconUnknown IconID = "defender_unknown"
)

// IconFor maps a protection state to its icon.
func IconFor(state protection.State) IconID {
	switch state {
	case protection.Enabled:
		return IconEnabled
	case protection.Disabled:
		return IconDisabled
	default:
		return IconUnknown
	}
}

// Renderer is the widget that displays an icon.
type Renderer interface {
	SetIcon(id IconID) error
}

// Handle serializes icon updates to a Renderer that is not safe for
// concurrent use.
type Handle struct {
	// mu guards renderer and current.
	mu sync.Mutex
	// renderer draws the icon.
	renderer Renderer
	// current is the last icon rendered successfully.
	current IconID
}

// NewHandle wraps the renderer.
func NewHandle(renderer Renderer) *Handle {
	return &Handle{renderer: renderer}
}

// Show renders the icon of state.
func (h *Handle) Show(state protection.State) error {
	icon := IconFor(state)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.renderer.SetIcon(icon); err != nil {
		return err
	}

	h.current = icon

	return nil
}

// Current returns the last icon rendered successfully, or "" if none.
func (h *Handle) Current() IconID {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.current
}

// Action is a user-invocable indicator command.
type Action string

const (
	// ActionToggle flips real-time protection.
	ActionToggle Action = "toggle"
	// ActionStatus reports the current status.
	ActionStatus Action = "status"
	// ActionQuit stops the agent.
	ActionQuit Action = "quit"
)

// ParseAction converts user input into an Action.
func ParseAction(s string) (Action, bool) {
	switch action := Action(strings.ToLower(strings.TrimSpace(s))); action {
	case ActionToggle, ActionStatus, ActionQuit:
		return action, true
	default:
		return "", false
	}
}
