// Package config defines the agent settings and provides helpers to load,
// validate and save them in YAML format.
//
// A Watcher reloads the settings file when it changes on disk so that the
// log level and notification switch can be adjusted without a restart.
package config
