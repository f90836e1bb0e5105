package instance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/defender-tray/internal/logger"
)

// ErrAlreadyRunning is returned when another agent process is found.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Others returns the PIDs of processes other than this one whose executable
// name matches executable.
func Others(executable string) ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	var pids []int

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if !sameExecutable(process.Executable(), executable) {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids, nil
}

// EnsureSingle fails with ErrAlreadyRunning if another copy of the current
// executable is running.
func EnsureSingle(ctx context.Context) error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	name := filepath.Base(executable)

	pids, err := Others(name)
	if err != nil {
		return err
	}

	if len(pids) > 0 {
		return fmt.Errorf("%w: %s (pid %v)", ErrAlreadyRunning, name, pids)
	}

	logger.DebugKV(ctx, "No other instance found", "executable", name)

	return nil
}

// sameExecutable compares names the way the platform's file system does.
func sameExecutable(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}

	return a == b
}
