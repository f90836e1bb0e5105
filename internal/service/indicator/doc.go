// Package indicator renders the protection status and delivers user actions.
//
// Handle is the lock-guarded icon the poller updates. Console is a headless
// indicator: it prints icon changes and reports to a writer and reads the
// toggle, status and quit actions line by line from a reader.
package indicator
