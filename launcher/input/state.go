// Package input merges two controller hardware backends, the fixed
// four-slot XInput API and the generic SDL-style joystick API, into a
// single logical controller used for launcher navigation.
package input

import "math"

// Type identifies which backend produced a controller state.
type Type int

const (
	TypeNone Type = iota
	TypeXInput
	TypeSDL
)

// String returns the string representation of the backend type.
func (t Type) String() string {
	switch t {
	case TypeXInput:
		return "xinput"
	case TypeSDL:
		return "sdl"
	default:
		return "none"
	}
}

// Canonical button names shared by both backends (standard Xbox layout).
const (
	ButtonA             = "a"
	ButtonB             = "b"
	ButtonX             = "x"
	ButtonY             = "y"
	ButtonStart         = "start"
	ButtonBack          = "back"
	ButtonGuide         = "guide"
	ButtonLeftShoulder  = "leftshoulder"
	ButtonRightShoulder = "rightshoulder"
	ButtonLeftStick     = "leftstick"
	ButtonRightStick    = "rightstick"
	ButtonDpadUp        = "dpup"
	ButtonDpadDown      = "dpdown"
	ButtonDpadLeft      = "dpleft"
	ButtonDpadRight     = "dpright"
)

// Canonical axis names. Sticks are in [-1, 1] with up/left negative;
// triggers are in [0, 1].
const (
	AxisLeftX        = "leftx"
	AxisLeftY        = "lefty"
	AxisRightX       = "rightx"
	AxisRightY       = "righty"
	AxisLeftTrigger  = "lefttrigger"
	AxisRightTrigger = "righttrigger"
)

// Hat direction bits, matching the SDL hat encoding.
const (
	HatUp    = 0x01
	HatRight = 0x02
	HatDown  = 0x04
	HatLeft  = 0x08
)

// State is one controller's state for a single poll tick. It is
// recomputed every tick and never persisted.
type State struct {
	Connected bool
	Type      Type
	Buttons   map[string]bool
	Axes      map[string]float64
	Hats      map[int]int
}

// NewState returns a disconnected state with allocated maps.
func NewState() State {
	return State{
		Buttons: make(map[string]bool),
		Axes:    make(map[string]float64),
		Hats:    make(map[int]int),
	}
}

// Button returns the named button's state, false if absent.
func (s State) Button(name string) bool {
	return s.Buttons[name]
}

// Axis returns the named axis value, 0 if absent.
func (s State) Axis(name string) float64 {
	return s.Axes[name]
}

// ApplyDeadzone snaps magnitudes below deadzone to exactly 0.0.
// Values at or above the threshold pass through unchanged.
func ApplyDeadzone(value, deadzone float64) float64 {
	if math.Abs(value) < deadzone {
		return 0.0
	}
	return value
}

// Merge combines a secondary backend's state into the primary's.
// Buttons combine with logical OR. For each axis the reading with the
// larger absolute magnitude wins; values are never blended. The merged
// state keeps the primary's identity (Type) and hats, so a connected
// XInput controller is never displaced by an SDL one.
func Merge(primary, secondary State) State {
	merged := NewState()
	merged.Connected = true
	merged.Type = primary.Type

	for name, v := range primary.Buttons {
		merged.Buttons[name] = v
	}
	for name, v := range secondary.Buttons {
		merged.Buttons[name] = merged.Buttons[name] || v
	}

	for name, v := range primary.Axes {
		merged.Axes[name] = v
	}
	for name, v := range secondary.Axes {
		if cur, ok := merged.Axes[name]; !ok || math.Abs(v) > math.Abs(cur) {
			merged.Axes[name] = v
		}
	}

	for idx, v := range primary.Hats {
		merged.Hats[idx] = v
	}

	return merged
}
