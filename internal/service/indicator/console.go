package indicator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/oshokin/defender-tray/internal/logger"
	"github.com/oshokin/defender-tray/internal/service/notify"
)

// Actions are the callbacks bound to the indicator menu.
type Actions struct {
	// Toggle runs on its own goroutine and may block for a long time.
	Toggle func(ctx context.Context)
	// Status runs on its own goroutine.
	Status func(ctx context.Context)
	// Quit is called on the event goroutine before Run returns.
	Quit func()
}

// Console is a text indicator for hosts without a tray.
type Console struct {
	// in delivers one action per line.
	in io.Reader
	// mu serializes writes to out.
	mu sync.Mutex
	// out receives icon changes and reports.
	out io.Writer
}

// NewConsole creates a console indicator.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  in,
		out: out,
	}
}

// SetIcon prints the icon change.
func (c *Console) SetIcon(id IconID) error {
	return c.printf("icon: %s\n", id)
}

// Send prints a report, which makes the console a notify sink.
func (c *Console) Send(_ context.Context, n notify.Notification) error {
	return c.printf("%s: %s\n", n.Title, n.Message)
}

// IsAvailable always returns true.
func (*Console) IsAvailable() bool {
	return true
}

// Run delivers actions until quit or ctx cancellation, then waits for the
// action goroutines it started. Reaching the end of the input only stops
// reading.
func (c *Console) Run(ctx context.Context, actions Actions) {
	ctx = logger.WithName(ctx, "indicator")

	var wg sync.WaitGroup
	defer wg.Wait()

	_ = c.printf("actions: %s, %s, %s\n", ActionToggle, ActionStatus, ActionQuit)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := c.readLines(readCtx)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				logger.Info(ctx, "Action input closed, indicator keeps running")

				lines = nil

				continue
			}

			action, ok := ParseAction(line)
			if !ok {
				if line != "" {
					logger.WarnKV(ctx, "Unknown action", "input", line)
				}

				continue
			}

			logger.DebugKV(ctx, "Action received", "action", action)

			switch action {
			case ActionQuit:
				if actions.Quit != nil {
					actions.Quit()
				}

				return
			case ActionToggle:
				dispatch(ctx, &wg, actions.Toggle)
			case ActionStatus:
				dispatch(ctx, &wg, actions.Status)
			}
		}
	}
}

// readLines scans the input on a separate goroutine.
// The goroutine stays blocked in Read until the input is closed.
func (c *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			logger.WarnKV(ctx, "Failed to read actions", "error", err)
		}
	}()

	return lines
}

func (c *Console) printf(format string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.out, format, args...)

	return err
}

// dispatch runs fn on a goroutine tracked by wg.
func dispatch(ctx context.Context, wg *sync.WaitGroup, fn func(ctx context.Context)) {
	if fn == nil {
		return
	}

	wg.Go(func() {
		fn(ctx)
	})
}
