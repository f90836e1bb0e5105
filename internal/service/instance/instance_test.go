package instance

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOthers_ExcludesSelf ensures the current process is never reported.
func TestOthers_ExcludesSelf(t *testing.T) {
	t.Parallel()

	executable, err := os.Executable()
	require.NoError(t, err)

	pids, err := Others(filepath.Base(executable))
	require.NoError(t, err)
	require.NotContains(t, pids, os.Getpid())
}

// TestOthers_NoMatch returns nothing for a name no process uses.
func TestOthers_NoMatch(t *testing.T) {
	t.Parallel()

	pids, err := Others("defender-tray-no-such-process")
	require.NoError(t, err)
	require.Empty(t, pids)
}

// TestEnsureSingle passes for a uniquely named test binary.
func TestEnsureSingle(t *testing.T) {
	t.Parallel()

	require.NoError(t, EnsureSingle(context.Background()))
}

// TestSameExecutable follows platform case rules.
func TestSameExecutable(t *testing.T) {
	t.Parallel()

	require.True(t, sameExecutable("defender-tray", "defender-tray"))
	require.False(t, sameExecutable("defender-tray", "defender-monitor"))

	if runtime.GOOS == "windows" {
		require.True(t, sameExecutable("Defender-Tray.exe", "defender-tray.exe"))
	} else {
		require.False(t, sameExecutable("Defender-Tray", "defender-tray"))
	}
}
