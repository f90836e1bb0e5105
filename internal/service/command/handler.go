package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/defender-tray/internal/domain/protection"
	"github.com/oshokin/defender-tray/internal/logger"
	"github.com/oshokin/defender-tray/internal/service/notify"
)

// Mutator applies a protection change and verifies it.
type Mutator interface {
	Apply(ctx context.Context, enable bool) error
}

// Reporter shows the outcome of an action to the operator.
type Reporter interface {
	Report(ctx context.Context, n notify.Notification)
}

// ErrStatusUnknown is returned by Toggle when there is no known status to flip.
var ErrStatusUnknown = errors.New("cannot toggle: status unknown")

const (
	// reportTitle is the title of every notification.
	reportTitle = "Windows Defender"

	messageEnabled  = "Windows Defender real-time protection is ENABLED"
	messageDisabled = "Windows Defender real-time protection is DISABLED"
	messageUnknown  = "Windows Defender status is UNKNOWN"
)

// Handler binds the toggle and status actions to the shared status.
type Handler struct {
	// status is read, never written.
	status *protection.Status
	// mutator performs the elevated change.
	mutator Mutator
	// reporter receives action outcomes.
	reporter Reporter
	// actor is attached to toggle logs; zero if detection failed.
	actor Actor
}

// NewHandler creates a handler over the shared status.
func NewHandler(status *protection.Status, mutator Mutator, reporter Reporter) *Handler {
	h := &Handler{
		status:   status,
		mutator:  mutator,
		reporter: reporter,
	}

	if actor, err := DetectActor(); err == nil {
		h.actor = actor
	}

	return h
}

// Toggle flips real-time protection based on the last observed status.
// It blocks while the elevated change runs and returns its error.
func (h *Handler) Toggle(ctx context.Context) error {
	ctx = logger.WithName(ctx, "command")

	current := h.status.Load()

	enable, ok := current.Target()
	if !ok {
		h.report(ctx, notify.EventToggleUnavailable, "Cannot toggle: status unknown")

		return ErrStatusUnknown
	}

	verb := "disable"
	if enable {
		verb = "enable"
	}

	logger.InfoKV(ctx, "Attempting to "+verb+" protection", "current", current, "actor", h.actor)

	if err := h.mutator.Apply(ctx, enable); err != nil {
		if ctx.Err() != nil {
			// Shutdown interrupted the run; the next start observes the outcome.
			logger.WarnKV(ctx, "Toggle interrupted by shutdown", "error", err)

			return err
		}

		h.report(ctx, notify.EventToggleFailed, fmt.Sprintf("Failed to %s protection: %v", verb, err))

		return err
	}

	h.report(ctx, notify.EventToggleSucceeded, fmt.Sprintf("Real-time protection %sd, awaiting next status check", verb))

	return nil
}

// ShowStatus reports the last observed status and returns the message.
func (h *Handler) ShowStatus(ctx context.Context) string {
	var message string

	switch h.status.Load() {
	case protection.Enabled:
		message = messageEnabled
	case protection.Disabled:
		message = messageDisabled
	default:
		message = messageUnknown
	}

	h.report(logger.WithName(ctx, "command"), notify.EventStatus, message)

	return message
}

func (h *Handler) report(ctx context.Context, event notify.EventType, message string) {
	h.reporter.Report(ctx, notify.Notification{
		Event:   event,
		Title:   reportTitle,
		Message: message,
	})
}
