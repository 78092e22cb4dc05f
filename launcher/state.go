package launcher

// AppState represents the current state of the application
type AppState int

const (
	// StateMenu is the content selection menu
	StateMenu AppState = iota
	// StateLaunching is the launch pipeline: spawn, locate, reposition
	StateLaunching
	// StatePlaying is an active game session with capture running
	StatePlaying
	// StateError is the catalog-missing error screen
	StateError
)

// String returns the string representation of the state
func (s AppState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateLaunching:
		return "Launching"
	case StatePlaying:
		return "Playing"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
