// Package poller observes the protection flag on a fixed interval and
// reconciles the shared status with it.
//
// The indicator is repainted only on transitions, including transitions into
// Unknown after a failed observation.
package poller
