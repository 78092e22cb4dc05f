//go:build !windows

package input

// NewXInputBackend returns nil on platforms without the XInput API.
// The manager treats a nil backend as hardware-absent.
func NewXInputBackend(deadzone float64) Backend {
	return nil
}
