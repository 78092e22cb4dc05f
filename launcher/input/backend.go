package input

// DeviceID is a backend-local device index. XInput IDs are slot numbers
// 0-3; joystick IDs are enumeration indexes.
type DeviceID int

// Backend is a controller hardware source. The manager treats both
// hardware APIs uniformly through this interface and never depends on
// backend-specific types.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Scan refreshes the backend's device list and returns the IDs of
	// currently connected devices. Called every rescan interval.
	Scan() []DeviceID

	// ReadState reads the current state of one device. A device that
	// disappeared since the last Scan returns a disconnected State.
	ReadState(id DeviceID) (State, error)

	// Close releases any devices held open by the backend.
	Close() error
}
