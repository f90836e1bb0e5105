package indicator

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/defender-tray/internal/domain/protection"
)

// recordingRenderer records icons and detects overlapping SetIcon calls.
type recordingRenderer struct {
	mu       sync.Mutex
	icons    []IconID
	inUse    atomic.Int32
	overlaps atomic.Int32
	err      error
}

func (r *recordingRenderer) SetIcon(id IconID) error {
	if r.inUse.Add(1) > 1 {
		r.overlaps.Add(1)
	}
	defer r.inUse.Add(-1)

	// Widen the window in which an unsynchronized caller would overlap.
	time.Sleep(time.Millisecond)

	if r.err != nil {
		return r.err
	}

	r.mu.Lock()
	r.icons = append(r.icons, id)
	r.mu.Unlock()

	return nil
}

// TestIconFor maps each state to a distinct icon.
func TestIconFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, IconEnabled, IconFor(protection.Enabled))
	require.Equal(t, IconDisabled, IconFor(protection.Disabled))
	require.Equal(t, IconUnknown, IconFor(protection.Unknown))
}

// TestHandle_Show renders and remembers the icon.
func TestHandle_Show(t *testing.T) {
	t.Parallel()

	r := new(recordingRenderer)
	h := NewHandle(r)
	require.Empty(t, h.Current())

	require.NoError(t, h.Show(protection.Enabled))
	require.NoError(t, h.Show(protection.Unknown))

	require.Equal(t, []IconID{IconEnabled, IconUnknown}, r.icons)
	require.Equal(t, IconUnknown, h.Current())
}

// TestHandle_ShowFailure keeps the previous icon when rendering fails.
func TestHandle_ShowFailure(t *testing.T) {
	t.Parallel()

	r := new(recordingRenderer)
	h := NewHandle(r)
	require.NoError(t, h.Show(protection.Disabled))

	r.err = errors.New("tray gone")
	require.Error(t, h.Show(protection.Enabled))
	require.Equal(t, IconDisabled, h.Current())
}

// TestHandle_SerializesRenderer ensures concurrent Show calls never overlap.
func TestHandle_SerializesRenderer(t *testing.T) {
	t.Parallel()

	r := new(recordingRenderer)
	h := NewHandle(r)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			_ = h.Show(protection.State(i % 3))
		})
	}

	wg.Wait()

	require.Zero(t, r.overlaps.Load())
	require.Len(t, r.icons, 16)
}

// TestParseAction accepts the three actions case-insensitively.
func TestParseAction(t *testing.T) {
	t.Parallel()

	cases := map[string]Action{
		"toggle":   ActionToggle,
		" Status ": ActionStatus,
		"QUIT":     ActionQuit,
		"status\r": ActionStatus,
	}
	for input, want := range cases {
		got, ok := ParseAction(input)
		require.True(t, ok, input)
		require.Equal(t, want, got, input)
	}

	_, ok := ParseAction("reboot")
	require.False(t, ok)

	_, ok = ParseAction("")
	require.False(t, ok)
}
