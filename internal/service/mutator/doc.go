// Package mutator changes the real-time protection flag through an elevated,
// self-verifying PowerShell script.
//
// The script is materialized under a unique name, executed through an
// ElevatedExecutor and removed once the executor returns. The script itself
// re-reads the preference after a settle delay and exits non-zero when the
// write did not take effect, so a nil error from Apply means the change was
// observed by the privileged context.
package mutator
