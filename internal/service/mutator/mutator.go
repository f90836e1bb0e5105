package mutator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/defender-tray/internal/logger"
)

// Result is what an elevated run reports back.
type Result struct {
	// ExitCode is the exit status of the elevated script.
	ExitCode int
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
}

// ElevatedExecutor runs a script with administrative rights and blocks until it exits.
// A non-nil error means the script could not be launched at all.
type ElevatedExecutor interface {
	Run(ctx context.Context, scriptPath string) (Result, error)
}

var (
	// ErrRejected is returned when the elevated script exits non-zero: the user
	// declined elevation, verification failed or the subsystem raised an error.
	ErrRejected = errors.New("protection change rejected")
	// ErrUnsupportedOS indicates there is no elevated executor for this platform.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)

// ApplyError describes a rejected protection change.
type ApplyError struct {
	// Enable is the value that was requested.
	Enable bool
	// Result holds the exit code and captured output of the script.
	Result Result
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s: enable=%t, exit code %d", ErrRejected, e.Enable, e.Result.ExitCode)
}

// Unwrap makes errors.Is(err, ErrRejected) hold.
func (e *ApplyError) Unwrap() error {
	return ErrRejected
}

const (
	// scriptPrefix is the file name prefix of materialized toggle scripts.
	scriptPrefix = "defender-toggle-"
	// scriptExtension is required by powershell -File.
	scriptExtension = ".ps1"
	// logExtension names the output log written next to the script.
	logExtension = ".log"
	// scriptPermissions keeps the script private to the current user.
	scriptPermissions = 0o600
	// defaultSettleDelay is the wait before the script re-reads the preference.
	defaultSettleDelay = 2 * time.Second
)

// Mutator applies protection changes through an ElevatedExecutor.
type Mutator struct {
	// executor launches the materialized script with elevation.
	executor ElevatedExecutor
	// scriptDir is where scripts are written.
	scriptDir string
	// settleDelay is rendered into the script before its verification step.
	settleDelay time.Duration
}

// Option configures a Mutator.
type Option func(*Mutator)

// WithScriptDir sets the directory scripts are materialized in.
func WithScriptDir(dir string) Option {
	return func(m *Mutator) {
		if dir != "" {
			m.scriptDir = dir
		}
	}
}

// WithSettleDelay sets how long the script waits before verifying the write.
func WithSettleDelay(delay time.Duration) Option {
	return func(m *Mutator) {
		if delay >= 0 {
			m.settleDelay = delay
		}
	}
}

// New creates a Mutator using the provided executor.
func New(executor ElevatedExecutor, opts ...Option) *Mutator {
	m := &Mutator{
		executor:    executor,
		scriptDir:   os.TempDir(),
		settleDelay: defaultSettleDelay,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Apply sets real-time protection to enable and waits for the elevated script
// to confirm the change. It blocks for the whole elevated run, including any
// elevation prompt, and must not be called while holding shared locks.
func (m *Mutator) Apply(ctx context.Context, enable bool) error {
	ctx = logger.WithKV(logger.WithName(ctx, "mutator"), "enable", enable)

	base := filepath.Join(m.scriptDir, scriptPrefix+uuid.NewString())
	path, logPath := base+scriptExtension, base+logExtension

	script, err := renderScript(enable, m.settleDelay, logPath)
	if err != nil {
		return err
	}

	// The log is created here so it stays owned by the current user.
	if err = os.WriteFile(logPath, nil, scriptPermissions); err != nil {
		return fmt.Errorf("create toggle log: %w", err)
	}

	defer removeFile(ctx, logPath)

	if err = os.WriteFile(path, script, scriptPermissions); err != nil {
		return fmt.Errorf("write toggle script: %w", err)
	}

	defer removeFile(ctx, path)

	logger.InfoKV(ctx, "Executing protection toggle script", "path", path)

	result, err := m.executor.Run(ctx, path)
	if err != nil {
		return fmt.Errorf("launch elevated script: %w", err)
	}

	result.Stdout = mergeOutput(result.Stdout, readLog(ctx, logPath))

	logger.InfoKV(ctx, "Toggle script finished",
		"exit_code", result.ExitCode,
		"stdout", result.Stdout,
		"stderr", result.Stderr,
	)

	if result.ExitCode != 0 {
		return &ApplyError{
			Enable: enable,
			Result: result,
		}
	}

	return nil
}

// readLog returns what the script mirrored into its log.
func readLog(ctx context.Context, path string) string {
	contents, err := os.ReadFile(path)
	if err != nil {
		logger.WarnKV(ctx, "Failed to read toggle log", "path", path, "error", err)
		return ""
	}

	return strings.TrimSpace(string(contents))
}

// mergeOutput appends the logged script output unless stdout already has it,
// which is the case when the script ran in the agent's own process tree.
func mergeOutput(stdout, logged string) string {
	switch {
	case logged == "" || strings.Contains(stdout, logged):
		return stdout
	case strings.TrimSpace(stdout) == "":
		return logged
	default:
		return strings.TrimRight(stdout, "\r\n") + "\n" + logged
	}
}

func removeFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Failed to remove toggle file", "path", path, "error", err)
	}
}
