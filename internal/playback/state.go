package playback

// State is the explicit playback state of a controller. Exactly one
// state holds at a time, which makes the pause-precedence rule a
// single comparison instead of a tangle of booleans.
type State int

const (
	// StateIdle: nothing started yet, no timer armed.
	StateIdle State = iota
	// StateRunning: a single auto-advance timer is counting down.
	StateRunning
	// StatePausedUser: explicit user pause. Survives visibility changes
	// and is only left by UserResume.
	StatePausedUser
	// StatePausedHidden: implicit pause because the container is not
	// visible. Auto-resumes when visibility returns.
	StatePausedHidden
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StatePausedUser:
		return "PausedUser"
	case StatePausedHidden:
		return "PausedHidden"
	default:
		return "Unknown"
	}
}

// Paused reports whether the state is either pause flavor.
func (s State) Paused() bool {
	return s == StatePausedUser || s == StatePausedHidden
}
