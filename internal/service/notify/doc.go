// Package notify reports agent events to the operator.
//
// Every report is logged. Reports are also written to the attached sinks
// (the console indicator) and, when enabled, shown as a desktop notification
// through a platform backend: notify-send on Linux, osascript on macOS and a
// PowerShell balloon tip on Windows.
package notify
