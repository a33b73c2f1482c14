package plugin

// State represents the lifecycle state of a script host.
type State int

// Host states.
const (
	// StateUnloaded - No script is loaded.
	StateUnloaded State = iota

	// StateLoaded - The script ran its top-level chunk and is updating.
	StateLoaded

	// StateError - The script raised an error and is no longer updated.
	StateError
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
