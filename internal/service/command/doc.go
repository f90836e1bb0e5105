// Package command implements the indicator actions.
//
// Toggle decides the desired protection value from the shared status and
// asks the mutator to apply it; ShowStatus reports the shared status. Neither
// writes the status: the poller observes the result on its next cycle.
package command
