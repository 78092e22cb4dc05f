//go:build windows

package input

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// XInput button bits (wButtons).
const (
	xinputDpadUp        = 0x0001
	xinputDpadDown      = 0x0002
	xinputDpadLeft      = 0x0004
	xinputDpadRight     = 0x0008
	xinputStart         = 0x0010
	xinputBack          = 0x0020
	xinputLeftThumb     = 0x0040
	xinputRightThumb    = 0x0080
	xinputLeftShoulder  = 0x0100
	xinputRightShoulder = 0x0200
	xinputA             = 0x1000
	xinputB             = 0x2000
	xinputX             = 0x4000
	xinputY             = 0x8000
)

const xinputSlots = 4

// xinputGamepad mirrors XINPUT_GAMEPAD.
type xinputGamepad struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

// xinputState mirrors XINPUT_STATE.
type xinputState struct {
	PacketNumber uint32
	Gamepad      xinputGamepad
}

// xinputBackend reads the fixed four-slot XInput API through
// xinput1_4.dll, falling back to xinput9_1_0.dll on older systems.
type xinputBackend struct {
	getState *windows.LazyProc
	deadzone float64
}

// NewXInputBackend opens the XInput DLL. Returns nil when no XInput
// runtime is present; the manager treats a nil backend as
// hardware-absent and carries on with the joystick backend alone.
func NewXInputBackend(deadzone float64) Backend {
	for _, name := range []string{"xinput1_4.dll", "xinput9_1_0.dll"} {
		dll := windows.NewLazySystemDLL(name)
		if dll.Load() != nil {
			continue
		}
		proc := dll.NewProc("XInputGetState")
		if proc.Find() != nil {
			continue
		}
		return &xinputBackend{getState: proc, deadzone: deadzone}
	}
	return nil
}

func (b *xinputBackend) Name() string { return "xinput" }

// Scan probes all four slots and returns the connected ones.
func (b *xinputBackend) Scan() []DeviceID {
	var connected []DeviceID
	var st xinputState
	for slot := 0; slot < xinputSlots; slot++ {
		ret, _, _ := b.getState.Call(uintptr(slot), uintptr(unsafe.Pointer(&st)))
		if ret == 0 { // ERROR_SUCCESS
			connected = append(connected, DeviceID(slot))
		}
	}
	return connected
}

// ReadState decodes one slot's XINPUT_STATE into the common schema.
// Stick axes are deadzone-filtered; trigger axes are not. Y axes are
// inverted so positive means down, matching the joystick backend.
func (b *xinputBackend) ReadState(id DeviceID) (State, error) {
	state := NewState()
	if id < 0 || id >= xinputSlots {
		return state, nil
	}

	var raw xinputState
	ret, _, _ := b.getState.Call(uintptr(id), uintptr(unsafe.Pointer(&raw)))
	if ret != 0 { // ERROR_DEVICE_NOT_CONNECTED or failure
		return state, nil
	}

	pad := raw.Gamepad
	state.Connected = true
	state.Type = TypeXInput

	state.Buttons[ButtonA] = pad.Buttons&xinputA != 0
	state.Buttons[ButtonB] = pad.Buttons&xinputB != 0
	state.Buttons[ButtonX] = pad.Buttons&xinputX != 0
	state.Buttons[ButtonY] = pad.Buttons&xinputY != 0
	state.Buttons[ButtonStart] = pad.Buttons&xinputStart != 0
	state.Buttons[ButtonBack] = pad.Buttons&xinputBack != 0
	state.Buttons[ButtonGuide] = false // XInput does not expose the guide button
	state.Buttons[ButtonLeftShoulder] = pad.Buttons&xinputLeftShoulder != 0
	state.Buttons[ButtonRightShoulder] = pad.Buttons&xinputRightShoulder != 0
	state.Buttons[ButtonLeftStick] = pad.Buttons&xinputLeftThumb != 0
	state.Buttons[ButtonRightStick] = pad.Buttons&xinputRightThumb != 0
	state.Buttons[ButtonDpadUp] = pad.Buttons&xinputDpadUp != 0
	state.Buttons[ButtonDpadDown] = pad.Buttons&xinputDpadDown != 0
	state.Buttons[ButtonDpadLeft] = pad.Buttons&xinputDpadLeft != 0
	state.Buttons[ButtonDpadRight] = pad.Buttons&xinputDpadRight != 0

	state.Axes[AxisLeftX] = ApplyDeadzone(float64(pad.ThumbLX)/32767.0, b.deadzone)
	state.Axes[AxisLeftY] = ApplyDeadzone(-float64(pad.ThumbLY)/32767.0, b.deadzone)
	state.Axes[AxisRightX] = ApplyDeadzone(float64(pad.ThumbRX)/32767.0, b.deadzone)
	state.Axes[AxisRightY] = ApplyDeadzone(-float64(pad.ThumbRY)/32767.0, b.deadzone)
	state.Axes[AxisLeftTrigger] = float64(pad.LeftTrigger) / 255.0
	state.Axes[AxisRightTrigger] = float64(pad.RightTrigger) / 255.0

	return state, nil
}

func (b *xinputBackend) Close() error { return nil }
