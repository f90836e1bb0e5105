package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/defender-tray/internal/logger"
)

// defaultDebounce collapses the burst of events editors emit for a single save.
const defaultDebounce = 200 * time.Millisecond

var errWatcherStarted = errors.New("watcher already started")

// Watcher reloads the settings file whenever it changes on disk.
// The parent directory is watched so that atomic replace-on-save is detected.
type Watcher struct {
	// path is the absolute path of the settings file.
	path string
	// debounce is the quiet period required before a reload.
	debounce time.Duration
	// onChange receives every successfully reloaded configuration.
	onChange func(ctx context.Context, cfg *Config)

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher for the settings file at path.
func NewWatcher(path string, onChange func(ctx context.Context, cfg *Config)) (*Watcher, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}

	return &Watcher{
		path:     absolute,
		debounce: defaultDebounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start registers the watch and processes events until ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if w.watcher != nil {
		return errWatcherStarted
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}

	if err = watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()

		return fmt.Errorf("watch settings directory: %w", err)
	}

	w.watcher = watcher

	go w.loop(logger.WithName(ctx, "config-watcher"))

	return nil
}

// Done is closed once the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	defer func() {
		_ = w.watcher.Close()
	}()

	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			reload = time.After(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			logger.WarnKV(ctx, "Settings watcher error", "error", err)
		case <-reload:
			reload = nil

			cfg, err := Load(w.path)
			if err != nil {
				logger.WarnKV(ctx, "Ignoring invalid settings change", "path", w.path, "error", err)
				continue
			}

			logger.InfoKV(ctx, "Settings reloaded", "path", w.path)

			if w.onChange != nil {
				w.onChange(ctx, cfg)
			}
		}
	}
}
