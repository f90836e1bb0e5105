package poller

import (
	"context"
	"time"

	"github.com/oshokin/defender-tray/internal/domain/protection"
	"github.com/oshokin/defender-tray/internal/logger"
	"github.com/oshokin/defender-tray/internal/service/observer"
)

// Indicator displays a protection state.
type Indicator interface {
	Show(state protection.State) error
}

// DefaultInterval is the delay between two observations.
const DefaultInterval = 10 * time.Second

// Poller is the only writer of the shared status.
type Poller struct {
	// provider reads the protection flag.
	provider observer.Provider
	// status receives every observed transition.
	status *protection.Status
	// indicator is repainted on transitions.
	indicator Indicator
	// interval separates the start of two cycles.
	interval time.Duration
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides DefaultInterval.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// New creates a poller writing into status.
func New(provider observer.Provider, status *protection.Status, indicator Indicator, opts ...Option) *Poller {
	p := &Poller{
		provider:  provider,
		status:    status,
		indicator: indicator,
		interval:  DefaultInterval,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run observes immediately and then once per interval until ctx is canceled.
func (p *Poller) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "poller")

	logger.InfoKV(ctx, "Polling protection status", "interval", p.interval.String())

	p.Cycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			p.Cycle(ctx)
		}
	}
}

// Cycle performs one observe-compare-update step.
// It returns the state after the cycle and whether it changed.
func (p *Poller) Cycle(ctx context.Context) (protection.State, bool) {
	enabled, err := p.provider.Observe(ctx)
	if ctx.Err() != nil {
		// Shutting down; an aborted observation says nothing about protection.
		return p.status.Load(), false
	}

	if err != nil {
		logger.ErrorKV(ctx, "Error checking status", "error", err)
	}

	next := protection.FromObservation(enabled, err)

	previous, changed := p.status.Store(next)
	if !changed {
		logger.DebugKV(ctx, "Status unchanged", "state", next)
		return next, false
	}

	logger.InfoKV(ctx, "Status changed", "from", previous, "to", next)

	if err = p.indicator.Show(next); err != nil {
		logger.ErrorKV(ctx, "Failed to update indicator icon", "state", next, "error", err)
	}

	return next, true
}
