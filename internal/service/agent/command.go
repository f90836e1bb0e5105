package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/oshokin/defender-tray/internal/config"
	"github.com/oshokin/defender-tray/internal/domain/protection"
	"github.com/oshokin/defender-tray/internal/logger"
	"github.com/oshokin/defender-tray/internal/service/command"
	"github.com/oshokin/defender-tray/internal/service/indicator"
	"github.com/oshokin/defender-tray/internal/service/instance"
	"github.com/oshokin/defender-tray/internal/service/mutator"
	"github.com/oshokin/defender-tray/internal/service/notify"
	"github.com/oshokin/defender-tray/internal/service/observer"
	"github.com/oshokin/defender-tray/internal/service/poller"
)

// Options controls the agent process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Input delivers indicator actions; defaults to stdin.
	Input io.Reader
	// Output receives icon changes and reports; defaults to stdout.
	Output io.Writer
	// Provider overrides the platform status provider.
	Provider observer.Provider
	// Executor overrides the platform elevated executor.
	Executor mutator.ElevatedExecutor
}

// Run starts the poller and the indicator and blocks until quit or ctx cancellation.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "defender-tray")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	applyLogLevel(ctx, cfg.LogLevel)

	if !cfg.AllowMultiple {
		if err = instance.EnsureSingle(ctx); err != nil {
			return err
		}
	}

	var (
		input    = readerOrDefault(opts.Input)
		output   = writerOrDefault(opts.Output)
		provider = opts.Provider
		executor = opts.Executor
	)

	if provider == nil {
		provider = observer.NewProvider()
	}

	if executor == nil {
		executor = mutator.NewExecutor()
	}

	toggler := mutator.New(executor,
		mutator.WithScriptDir(cfg.ScriptDir),
		mutator.WithSettleDelay(cfg.SettleDelay),
	)

	var (
		status   = protection.NewStatus()
		console  = indicator.NewConsole(input, output)
		icon     = indicator.NewHandle(console)
		reporter = notify.NewManager(cfg.Notifications, notify.NewDesktopNotifier(), console)
		handler  = command.NewHandler(status, toggler, reporter)
		poll     = poller.New(provider, status, icon, poller.WithInterval(cfg.PollInterval))
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err = icon.Show(status.Load()); err != nil {
		logger.WarnKV(ctx, "Failed to render initial icon", "error", err)
	}

	var wg sync.WaitGroup

	watcher, err := config.NewWatcher(opts.ConfigPath, func(ctx context.Context, reloaded *config.Config) {
		applyLogLevel(ctx, reloaded.LogLevel)
		reporter.SetEnabled(reloaded.Notifications)
	})
	if err == nil {
		err = watcher.Start(ctx)
	}

	if err != nil {
		logger.WarnKV(ctx, "Settings hot reload disabled", "error", err)
	} else {
		wg.Go(func() {
			<-watcher.Done()
		})
	}

	wg.Go(func() {
		_ = poll.Run(ctx)
	})

	logger.InfoKV(ctx, "Agent started",
		"poll_interval", cfg.PollInterval.String(),
		"settle_delay", cfg.SettleDelay.String(),
		"script_dir", cfg.ScriptDir,
	)

	console.Run(ctx, indicator.Actions{
		Toggle: func(ctx context.Context) {
			_ = handler.Toggle(ctx)
		},
		Status: func(ctx context.Context) {
			handler.ShowStatus(ctx)
		},
		Quit: cancel,
	})

	cancel()
	wg.Wait()

	logger.Info(ctx, "Agent stopped")

	return nil
}

// applyLogLevel switches the global level, keeping the current one on bad input.
func applyLogLevel(ctx context.Context, level string) {
	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		logger.WarnKV(ctx, "Unknown log level, keeping current", "log_level", level)
		return
	}

	logger.SetLevel(parsed)
}

func readerOrDefault(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}

	return r
}

func writerOrDefault(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}
