package input

import (
	"log"
	"sync"
	"time"
)

// Mode restricts which backends the manager consults.
type Mode int

const (
	ModeAny Mode = iota
	ModeXInput
	ModeSDL
)

// ParseMode maps the controller_type config value to a Mode.
// Unknown values fall back to ModeAny.
func ParseMode(s string) Mode {
	switch s {
	case "xinput":
		return ModeXInput
	case "sdl":
		return ModeSDL
	default:
		return ModeAny
	}
}

const (
	// DefaultPollInterval is the per-tick poll cadence.
	DefaultPollInterval = 50 * time.Millisecond
	// DefaultScanInterval is how often backends rescan for device
	// connects and disconnects, independent of the poll cadence.
	DefaultScanInterval = 2 * time.Second
)

// Manager owns both controller backends, merges their readings into one
// logical controller, and runs the background polling loop. All methods
// are safe to call from any goroutine.
type Manager struct {
	mu      sync.Mutex
	xinput  Backend // may be nil when the hardware API is unavailable
	sdl     Backend // may be nil
	mode    Mode
	enabled bool

	xinputDevs []DeviceID
	sdlDevs    []DeviceID

	scanInterval time.Duration

	running bool
	stop    chan struct{}
	done    chan struct{}

	// Latest merged state, written by the poll loop and read by GetState.
	last State
}

// NewManager creates a manager over the given backends. Either backend
// may be nil; a missing backend simply contributes nothing to the merge.
func NewManager(xinput, sdl Backend, mode Mode) *Manager {
	return &Manager{
		xinput:       xinput,
		sdl:          sdl,
		mode:         mode,
		enabled:      true,
		scanInterval: DefaultScanInterval,
		last:         NewState(),
	}
}

// Start begins continuous polling on a background goroutine. The
// callback receives each tick's merged state and is invoked from the
// poll goroutine; callers must hand results to their own thread.
// A zero interval uses DefaultPollInterval. Start is a no-op if the
// manager is already running.
func (m *Manager) Start(callback func(State), interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	stop, done := m.stop, m.done
	m.mu.Unlock()

	go m.pollLoop(callback, interval, stop, done)
}

// Stop halts the polling loop, waits for it to exit, and releases
// backend resources. Safe to call more than once.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stop)
	done := m.done
	m.mu.Unlock()

	<-done

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.xinput != nil {
		if err := m.xinput.Close(); err != nil {
			log.Printf("Warning: closing %s backend: %v", m.xinput.Name(), err)
		}
	}
	if m.sdl != nil {
		if err := m.sdl.Close(); err != nil {
			log.Printf("Warning: closing %s backend: %v", m.sdl.Name(), err)
		}
	}
}

// Enable allows polling to produce real controller data again.
func (m *Manager) Enable() {
	m.mu.Lock()
	m.enabled = true
	m.mu.Unlock()
	log.Printf("Controller input enabled")
}

// Disable suppresses controller input: GetState and the poll callback
// report a disconnected empty state until Enable is called. Used while
// the emulated game has exclusive input focus.
func (m *Manager) Disable() {
	m.mu.Lock()
	m.enabled = false
	m.mu.Unlock()
	log.Printf("Controller input disabled")
}

// Enabled reports whether controller input is currently enabled.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// GetState returns the merged controller state for a slot. Slot 0
// returns the latest poll snapshot; other slots read the hardware
// directly.
func (m *Manager) GetState(slot int) State {
	if slot == 0 {
		m.mu.Lock()
		if !m.running {
			// Not polling yet; read synchronously.
			st := m.readMergedLocked(0)
			m.mu.Unlock()
			return st
		}
		st := m.last
		m.mu.Unlock()
		return st
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readMergedLocked(slot)
}

// pollLoop is the background polling loop. A failure during a single
// tick is logged and the loop continues after the normal sleep; a bad
// read never stops polling.
func (m *Manager) pollLoop(callback func(State), interval time.Duration, stop, done chan struct{}) {
	defer close(done)

	var lastScan time.Time
	for {
		select {
		case <-stop:
			return
		default:
		}

		m.tick(callback, &lastScan)

		select {
		case <-stop:
			return
		case <-time.After(interval):
		}
	}
}

// tick performs one poll iteration. Panics from backend reads are
// swallowed here so a misbehaving driver cannot kill the loop.
func (m *Manager) tick(callback func(State), lastScan *time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: controller poll tick failed: %v", r)
		}
	}()

	m.mu.Lock()
	if time.Since(*lastScan) >= m.scanInterval {
		m.rescanLocked()
		*lastScan = time.Now()
	}
	state := m.readMergedLocked(0)
	m.last = state
	m.mu.Unlock()

	if callback != nil {
		callback(state)
	}
}

// rescanLocked refreshes both backends' device lists.
func (m *Manager) rescanLocked() {
	if m.xinput != nil && (m.mode == ModeAny || m.mode == ModeXInput) {
		m.xinputDevs = m.xinput.Scan()
	}
	if m.sdl != nil && (m.mode == ModeAny || m.mode == ModeSDL) {
		m.sdlDevs = m.sdl.Scan()
	}
}

// readMergedLocked implements the merge policy for one slot: XInput is
// queried first and keeps the controller identity if connected; the
// joystick backend either takes over when XInput is absent, or in "any"
// mode merges into it (buttons OR, axes by larger magnitude).
func (m *Manager) readMergedLocked(slot int) State {
	if !m.enabled {
		return NewState()
	}

	state := NewState()

	if m.xinput != nil && (m.mode == ModeAny || m.mode == ModeXInput) {
		if st, err := m.xinput.ReadState(DeviceID(slot)); err == nil && st.Connected {
			state = st
			state.Type = TypeXInput
		}
	}

	if m.sdl != nil && (m.mode == ModeAny || m.mode == ModeSDL) {
		if !state.Connected || m.mode == ModeAny {
			if slot < len(m.sdlDevs) {
				if st, err := m.sdl.ReadState(m.sdlDevs[slot]); err == nil && st.Connected {
					if state.Connected && m.mode == ModeAny {
						state = Merge(state, st)
					} else {
						state = st
						state.Type = TypeSDL
					}
				}
			}
		}
	}

	return state
}
