// Package agent wires the defender-tray components together and runs them
// until the operator quits or the process is signaled.
package agent
