// Package instance prevents two agents from polling and toggling at once by
// scanning the process table for another copy of the running executable.
package instance
