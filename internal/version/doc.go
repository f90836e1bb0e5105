// Package version exposes build metadata for defender-tray.
//
// Version, Commit and BuildTime are injected via -ldflags "-X ..." and keep
// their defaults for local builds.
package version
