package protection

// State is the last known value of the real-time protection flag.
type State int

const (
	// Unknown is the initial state and the result of a failed observation.
	Unknown State = iota
	// Enabled means real-time protection is on.
	Enabled
	// Disabled means real-time protection is off.
	Disabled
)

// FromObservation maps the outcome of a status query to a State.
func FromObservation(enabled bool, err error) State {
	switch {
	case err != nil:
		return Unknown
	case enabled:
		return Enabled
	default:
		return Disabled
	}
}

// Target returns the flag value a toggle should request from s.
// The second value is false for Unknown, which can never be toggled.
func (s State) Target() (enable, ok bool) {
	switch s {
	case Enabled:
		return false, true
	case Disabled:
		return true, true
	default:
		return false, false
	}
}

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return "unknown"
	}
}
