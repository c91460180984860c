package lifecycle

// State is one device's position in the lifecycle state machine.
//
// Success path: Uninitialized -> Initializing -> Ready -> CleaningUp ->
// Cleaned. A failing hook moves the device to Failed. Failed and Cleaned are
// terminal for the current boot/shutdown cycle; a device that was never
// initialized goes straight to Cleaned when asked to clean up.
type State uint8

const (
	Uninitialized State = iota
	Initializing
	Ready
	Failed
	CleaningUp
	Cleaned
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case CleaningUp:
		return "cleaning_up"
	case Cleaned:
		return "cleaned"
	}
	return "unknown"
}
