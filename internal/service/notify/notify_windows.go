//go:build windows

package notify

import (
	"context"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// balloonTimeoutMillis is how long the balloon tip stays visible.
const balloonTimeoutMillis = "5000"

// WindowsNotifier shows a balloon tip through a short-lived PowerShell NotifyIcon.
type WindowsNotifier struct{}

// NewDesktopNotifier returns the platform notification backend.
func NewDesktopNotifier() *WindowsNotifier {
	return new(WindowsNotifier)
}

// Send starts PowerShell in the background; the balloon outlives the call.
func (*WindowsNotifier) Send(ctx context.Context, n Notification) error {
	script := `Add-Type -AssemblyName System.Windows.Forms; ` +
		`$n = New-Object System.Windows.Forms.NotifyIcon; ` +
		`$n.Icon = [System.Drawing.SystemIcons]::Shield; ` +
		`$n.Visible = $true; ` +
		`$n.ShowBalloonTip(` + balloonTimeoutMillis + `, "` + escapePowerShell(n.Title) + `", "` +
		escapePowerShell(n.Message) + `", 'Info'); ` +
		`Start-Sleep -Milliseconds ` + balloonTimeoutMillis + `; $n.Dispose()`

	cmd := exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// IsAvailable reports whether PowerShell is installed.
func (*WindowsNotifier) IsAvailable() bool {
	_, err := exec.LookPath("powershell.exe")
	return err == nil
}
