//go:build windows

package mutator

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	// powershell is the interpreter used for both the launcher and the script.
	powershell = "powershell.exe"
	// elevationFailedCode is ERROR_CANCELLED, the launcher's exit code when
	// Start-Process throws, most often because the prompt was declined.
	elevationFailedCode = 1223
)

// PowerShellExecutor runs scripts with PowerShell, requesting elevation
// through the RunAs verb when the agent itself is not elevated.
type PowerShellExecutor struct{}

// NewExecutor returns the platform executor.
func NewExecutor() *PowerShellExecutor {
	return new(PowerShellExecutor)
}

// Run executes the script and reports its exit code and output.
// A declined elevation prompt is an exit code, not an error.
func (*PowerShellExecutor) Run(ctx context.Context, scriptPath string) (Result, error) {
	var args []string
	if isElevated() {
		args = []string{"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-File", scriptPath}
	} else {
		args = []string{"-NoProfile", "-NonInteractive", "-Command", elevationCommand(scriptPath)}
	}

	cmd := exec.CommandContext(ctx, powershell, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}

	return runCommand(cmd)
}

// runCommand runs cmd, capturing its output. Only a failure to start or wait
// for the process is returned as an error.
func runCommand(cmd *exec.Cmd) (Result, error) {
	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return result, err
}

// elevationCommand starts an elevated PowerShell for the script, waits for it
// and propagates its exit code. A failed or declined prompt exits with
// elevationFailedCode.
func elevationCommand(scriptPath string) string {
	return "$ErrorActionPreference = 'Stop'; try { " +
		"$p = Start-Process -FilePath '" + powershell + "' -Verb RunAs -WindowStyle Hidden -Wait -PassThru " +
		"-ArgumentList '-NoProfile','-ExecutionPolicy','Bypass','-File','\"" + quotePowerShell(scriptPath) + "\"'; " +
		"exit $p.ExitCode } catch { Write-Output \"Error: $($_.Exception.Message)\"; " +
		"exit " + strconv.Itoa(elevationFailedCode) + " }"
}

// isElevated reports whether the current process token is elevated.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
