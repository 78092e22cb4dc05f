package input

import (
	"fmt"
	"log"
	"sync"

	"github.com/0xcafed00d/joystick"
)

// maxJoysticks is how many enumeration slots Scan probes.
const maxJoysticks = 8

// Button index layout reported by generic joystick drivers for
// Xbox-style pads. Matches the standard SDL game controller layout.
var joyButtonNames = map[int]string{
	0:  ButtonA,
	1:  ButtonB,
	2:  ButtonX,
	3:  ButtonY,
	4:  ButtonLeftShoulder,
	5:  ButtonRightShoulder,
	6:  ButtonBack,
	7:  ButtonStart,
	8:  ButtonGuide,
	9:  ButtonLeftStick,
	10: ButtonRightStick,
	11: ButtonDpadUp,
	12: ButtonDpadDown,
	13: ButtonDpadLeft,
	14: ButtonDpadRight,
}

// joystickBackend reads generic game controllers through the
// enumerable joystick API. Unlike XInput it supports an arbitrary
// number of devices.
type joystickBackend struct {
	mu   sync.Mutex
	devs map[DeviceID]joystick.Joystick
}

// NewJoystickBackend creates the generic joystick backend. Devices are
// opened lazily by Scan.
func NewJoystickBackend() Backend {
	return &joystickBackend{devs: make(map[DeviceID]joystick.Joystick)}
}

func (b *joystickBackend) Name() string { return "joystick" }

// Scan closes and reopens every enumeration slot, picking up newly
// connected devices and dropping unplugged ones.
func (b *joystickBackend) Scan() []DeviceID {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, js := range b.devs {
		js.Close()
		delete(b.devs, id)
	}

	var found []DeviceID
	for i := 0; i < maxJoysticks; i++ {
		js, err := joystick.Open(i)
		if err != nil {
			continue
		}
		id := DeviceID(i)
		b.devs[id] = js
		found = append(found, id)
		log.Printf("Joystick %d: %s (%d buttons, %d axes)", i, js.Name(), js.ButtonCount(), js.AxisCount())
	}
	return found
}

// ReadState maps one device's raw reading into the common schema.
// Sticks normalize to [-1, 1] with up negative; trigger axes remap
// from [-1, 1] to [0, 1]; the hat contributes both D-pad buttons and
// a directional bitmask.
func (b *joystickBackend) ReadState(id DeviceID) (State, error) {
	b.mu.Lock()
	js, ok := b.devs[id]
	b.mu.Unlock()

	state := NewState()
	if !ok {
		return state, nil
	}

	raw, err := js.Read()
	if err != nil {
		return state, fmt.Errorf("joystick %d read: %w", id, err)
	}

	state.Connected = true
	state.Type = TypeSDL

	for idx, name := range joyButtonNames {
		if idx < js.ButtonCount() {
			state.Buttons[name] = raw.Buttons&(1<<uint(idx)) != 0
		}
	}

	axis := func(i int) float64 {
		if i >= len(raw.AxisData) {
			return 0
		}
		v := float64(raw.AxisData[i]) / 32767.0
		if v < -1 {
			v = -1
		} else if v > 1 {
			v = 1
		}
		return v
	}

	if len(raw.AxisData) > 0 {
		state.Axes[AxisLeftX] = axis(0)
	}
	if len(raw.AxisData) > 1 {
		state.Axes[AxisLeftY] = axis(1)
	}
	if len(raw.AxisData) > 2 {
		state.Axes[AxisRightX] = axis(2)
	}
	if len(raw.AxisData) > 3 {
		state.Axes[AxisRightY] = axis(3)
	}
	if len(raw.AxisData) > 4 {
		state.Axes[AxisLeftTrigger] = (axis(4) + 1.0) / 2.0
	}
	if len(raw.AxisData) > 5 {
		state.Axes[AxisRightTrigger] = (axis(5) + 1.0) / 2.0
	}

	// Axes 6 and 7 carry the hat on drivers that report it as an axis
	// pair. Fold it into the D-pad buttons and the hat bitmask.
	if len(raw.AxisData) > 7 {
		hx, hy := axis(6), axis(7)
		var hat int
		if hy < -0.5 {
			hat |= HatUp
			state.Buttons[ButtonDpadUp] = true
		}
		if hy > 0.5 {
			hat |= HatDown
			state.Buttons[ButtonDpadDown] = true
		}
		if hx < -0.5 {
			hat |= HatLeft
			state.Buttons[ButtonDpadLeft] = true
		}
		if hx > 0.5 {
			hat |= HatRight
			state.Buttons[ButtonDpadRight] = true
		}
		state.Hats[0] = hat
	}

	return state, nil
}

// Close releases every open device.
func (b *joystickBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, js := range b.devs {
		js.Close()
		delete(b.devs, id)
	}
	return nil
}
