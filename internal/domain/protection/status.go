package protection

import "sync"

// Status holds the last observed State and is shared by the poller,
// the command handler and the indicator.
// The poller is its only writer; everybody else reads.
type Status struct {
	// mu protects state.
	mu sync.RWMutex
	// state is the last adopted value.
	state State
}

// NewStatus creates a cell holding Unknown.
func NewStatus() *Status {
	return &Status{state: Unknown}
}

// Load returns the current state.
func (s *Status) Load() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Store adopts next if it differs from the current state.
// It returns the previous state and whether a transition happened.
func (s *Status) Store(next State) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.state
	if previous == next {
		return previous, false
	}

	s.state = next

	return previous, true
}
