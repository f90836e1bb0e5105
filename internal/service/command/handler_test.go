package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/defender-tray/internal/domain/protection"
	"github.com/oshokin/defender-tray/internal/service/notify"
)

// fakeMutator records requested values.
type fakeMutator struct {
	mu    sync.Mutex
	calls []bool
	err   error
}

func (f *fakeMutator) Apply(_ context.Context, enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, enable)

	return f.err
}

// fakeReporter records notifications.
type fakeReporter struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (f *fakeReporter) Report(_ context.Context, n notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, n)
}

// newTestHandler builds a handler whose status holds state.
func newTestHandler(state protection.State) (*Handler, *fakeMutator, *fakeReporter) {
	status := protection.NewStatus()
	status.Store(state)

	mutator := new(fakeMutator)
	reporter := new(fakeReporter)

	return NewHandler(status, mutator, reporter), mutator, reporter
}

// TestToggle_FromEnabled requests disabling.
func TestToggle_FromEnabled(t *testing.T) {
	t.Parallel()

	h, mutator, reporter := newTestHandler(protection.Enabled)

	require.NoError(t, h.Toggle(context.Background()))
	require.Equal(t, []bool{false}, mutator.calls)
	require.Len(t, reporter.sent, 1)
	require.Equal(t, notify.EventToggleSucceeded, reporter.sent[0].Event)
	require.Contains(t, reporter.sent[0].Message, "disabled")

	// The handler never writes the status.
	require.Equal(t, protection.Enabled, h.status.Load())
}

// TestToggle_FromDisabled requests enabling.
func TestToggle_FromDisabled(t *testing.T) {
	t.Parallel()

	h, mutator, _ := newTestHandler(protection.Disabled)

	require.NoError(t, h.Toggle(context.Background()))
	require.Equal(t, []bool{true}, mutator.calls)
	require.Equal(t, protection.Disabled, h.status.Load())
}

// TestToggle_FromUnknown does not launch anything.
func TestToggle_FromUnknown(t *testing.T) {
	t.Parallel()

	h, mutator, reporter := newTestHandler(protection.Unknown)

	err := h.Toggle(context.Background())
	require.ErrorIs(t, err, ErrStatusUnknown)
	require.Empty(t, mutator.calls)
	require.Len(t, reporter.sent, 1)
	require.Equal(t, notify.EventToggleUnavailable, reporter.sent[0].Event)
	require.Contains(t, reporter.sent[0].Message, "Cannot toggle")
}

// TestToggle_Rejected reports the failure and returns the mutator error.
func TestToggle_Rejected(t *testing.T) {
	t.Parallel()

	h, mutator, reporter := newTestHandler(protection.Enabled)
	mutator.err = errors.New("protection change rejected")

	err := h.Toggle(context.Background())
	require.ErrorIs(t, err, mutator.err)
	require.Len(t, reporter.sent, 1)
	require.Equal(t, notify.EventToggleFailed, reporter.sent[0].Event)
	require.Contains(t, reporter.sent[0].Message, "rejected")
	require.Equal(t, protection.Enabled, h.status.Load())
}

// TestToggle_InterruptedByShutdown skips the failure report once ctx is canceled.
func TestToggle_InterruptedByShutdown(t *testing.T) {
	t.Parallel()

	h, mutator, reporter := newTestHandler(protection.Disabled)
	mutator.err = context.Canceled

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Toggle(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []bool{true}, mutator.calls)
	require.Empty(t, reporter.sent)
}

// TestShowStatus reports each state.
func TestShowStatus(t *testing.T) {
	t.Parallel()

	cases := map[protection.State]string{
		protection.Enabled:  messageEnabled,
		protection.Disabled: messageDisabled,
		protection.Unknown:  messageUnknown,
	}
	for state, want := range cases {
		h, mutator, reporter := newTestHandler(state)

		require.Equal(t, want, h.ShowStatus(context.Background()))
		require.Empty(t, mutator.calls)
		require.Len(t, reporter.sent, 1)
		require.Equal(t, notify.EventStatus, reporter.sent[0].Event)
		require.Equal(t, want, reporter.sent[0].Message)
	}
}

// TestDetectActor ensures hostname and username are detected and non-empty.
func TestDetectActor(t *testing.T) {
	t.Parallel()

	a, err := DetectActor()
	require.NoError(t, err)
	require.NotEmpty(t, a.Hostname)
	require.NotEmpty(t, a.Username)
	require.Equal(t, a.Username+"@"+a.Hostname, a.String())
}
