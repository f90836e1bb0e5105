package indicator

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/defender-tray/internal/service/notify"
)

// TestConsole_RunDispatchesActions feeds actions and stops on quit.
func TestConsole_RunDispatchesActions(t *testing.T) {
	t.Parallel()

	var (
		out     bytes.Buffer
		toggles atomic.Int32
		reports atomic.Int32
		quits   atomic.Int32
	)

	input := strings.NewReader("status\ntoggle\nreboot\n\ntoggle\nquit\nstatus\n")
	c := NewConsole(input, &out)

	c.Run(context.Background(), Actions{
		Toggle: func(context.Context) { toggles.Add(1) },
		Status: func(context.Context) { reports.Add(1) },
		Quit:   func() { quits.Add(1) },
	})

	require.EqualValues(t, 2, toggles.Load())
	require.EqualValues(t, 1, reports.Load())
	require.EqualValues(t, 1, quits.Load())
	require.Contains(t, out.String(), "actions: toggle, status, quit")
}

// TestConsole_RunSurvivesEOF keeps running after input ends until canceled.
func TestConsole_RunSurvivesEOF(t *testing.T) {
	t.Parallel()

	var reports atomic.Int32

	c := NewConsole(strings.NewReader("status\n"), new(bytes.Buffer))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		c.Run(ctx, Actions{
			Status: func(context.Context) { reports.Add(1) },
		})
	}()

	require.Eventually(t, func() bool { return reports.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	select {
	case <-done:
		t.Fatal("indicator stopped at end of input")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("indicator did not stop on cancel")
	}
}

// TestConsole_RunWaitsForActions returns only after in-flight actions finish.
func TestConsole_RunWaitsForActions(t *testing.T) {
	t.Parallel()

	var finished atomic.Bool

	c := NewConsole(strings.NewReader("toggle\nquit\n"), new(bytes.Buffer))

	c.Run(context.Background(), Actions{
		Toggle: func(context.Context) {
			time.Sleep(50 * time.Millisecond)
			finished.Store(true)
		},
	})

	require.True(t, finished.Load())
}

// TestConsole_Output renders icons and reports.
func TestConsole_Output(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	c := NewConsole(strings.NewReader(""), &out)

	require.True(t, c.IsAvailable())
	require.NoError(t, c.SetIcon(IconDisabled))
	require.NoError(t, c.Send(context.Background(), notify.Notification{
		Title:   "Windows Defender",
		Message: "Windows Defender real-time protection is DISABLED",
	}))

	require.Equal(t,
		"icon: defender_disabled\nWindows Defender: Windows Defender real-time protection is DISABLED\n",
		out.String(),
	)
}
