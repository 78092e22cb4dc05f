package input

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeBackend is a scriptable Backend for manager tests.
type fakeBackend struct {
	mu        sync.Mutex
	name      string
	devs      []DeviceID
	state     State
	scanCount int32
	readPanic bool
	closed    bool
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Scan() []DeviceID {
	atomic.AddInt32(&f.scanCount, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.devs
}

func (f *fakeBackend) ReadState(id DeviceID) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readPanic {
		panic("simulated driver fault")
	}
	return f.state, nil
}

func (f *fakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func connectedState(typ Type) State {
	st := NewState()
	st.Connected = true
	st.Type = typ
	return st
}

func TestGetStateDisabled(t *testing.T) {
	x := &fakeBackend{name: "xinput", state: connectedState(TypeXInput)}
	m := NewManager(x, nil, ModeAny)

	m.Disable()
	st := m.GetState(0)
	if st.Connected {
		t.Error("disabled manager should report disconnected state")
	}
	if len(st.Buttons) != 0 || len(st.Axes) != 0 {
		t.Error("disabled manager should report empty state")
	}

	m.Enable()
	if st := m.GetState(0); !st.Connected {
		t.Error("enabled manager should read hardware again")
	}
}

func TestGetStateXInputIdentityWins(t *testing.T) {
	xs := connectedState(TypeXInput)
	xs.Buttons[ButtonA] = true
	xs.Axes[AxisLeftX] = 0.3

	ss := connectedState(TypeSDL)
	ss.Buttons[ButtonB] = true
	ss.Axes[AxisLeftX] = -0.9

	x := &fakeBackend{name: "xinput", state: xs}
	s := &fakeBackend{name: "joystick", state: ss, devs: []DeviceID{0}}

	m := NewManager(x, s, ModeAny)
	m.mu.Lock()
	m.rescanLocked()
	m.mu.Unlock()

	st := m.GetState(0)
	if st.Type != TypeXInput {
		t.Errorf("merged type = %v, want TypeXInput", st.Type)
	}
	if !st.Button(ButtonA) || !st.Button(ButtonB) {
		t.Error("merged state should OR buttons from both backends")
	}
	if got := st.Axis(AxisLeftX); got != -0.9 {
		t.Errorf("merged leftx = %v, want -0.9 (larger magnitude)", got)
	}
}

func TestGetStateSDLOnly(t *testing.T) {
	ss := connectedState(TypeSDL)
	ss.Buttons[ButtonStart] = true

	x := &fakeBackend{name: "xinput", state: NewState()} // not connected
	s := &fakeBackend{name: "joystick", state: ss, devs: []DeviceID{0}}

	m := NewManager(x, s, ModeAny)
	m.mu.Lock()
	m.rescanLocked()
	m.mu.Unlock()

	st := m.GetState(0)
	if st.Type != TypeSDL {
		t.Errorf("type = %v, want TypeSDL when XInput is absent", st.Type)
	}
	if !st.Button(ButtonStart) {
		t.Error("start button should be pressed")
	}
}

func TestGetStateModeXInputIgnoresSDL(t *testing.T) {
	ss := connectedState(TypeSDL)
	s := &fakeBackend{name: "joystick", state: ss, devs: []DeviceID{0}}

	m := NewManager(nil, s, ModeXInput)
	m.mu.Lock()
	m.rescanLocked()
	m.mu.Unlock()

	if st := m.GetState(0); st.Connected {
		t.Error("mode xinput should never read the joystick backend")
	}
}

func TestPollLoopDeliversCallbacks(t *testing.T) {
	x := &fakeBackend{name: "xinput", state: connectedState(TypeXInput)}
	m := NewManager(x, nil, ModeAny)

	var ticks int32
	m.Start(func(State) { atomic.AddInt32(&ticks, 1) }, time.Millisecond)
	defer m.Stop()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&ticks) < 5 {
		select {
		case <-deadline:
			t.Fatal("poll loop produced no callbacks")
		case <-time.After(time.Millisecond):
		}
	}

	if st := m.GetState(0); !st.Connected {
		t.Error("snapshot should reflect polled state")
	}
}

func TestPollLoopSurvivesPanic(t *testing.T) {
	x := &fakeBackend{name: "xinput", state: connectedState(TypeXInput), readPanic: true}
	m := NewManager(x, nil, ModeAny)

	var ticks int32
	m.Start(func(State) { atomic.AddInt32(&ticks, 1) }, time.Millisecond)
	defer m.Stop()

	// Let several faulting ticks pass, then heal the backend.
	time.Sleep(20 * time.Millisecond)
	x.mu.Lock()
	x.readPanic = false
	x.mu.Unlock()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&ticks) == 0 {
		select {
		case <-deadline:
			t.Fatal("poll loop did not recover from tick panic")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRescanRunsPeriodically(t *testing.T) {
	x := &fakeBackend{name: "xinput", state: connectedState(TypeXInput)}
	m := NewManager(x, nil, ModeAny)
	m.scanInterval = 2 * time.Millisecond

	m.Start(nil, time.Millisecond)
	defer m.Stop()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&x.scanCount) < 3 {
		select {
		case <-deadline:
			t.Fatal("backend was not rescanned")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestStopReleasesBackends(t *testing.T) {
	x := &fakeBackend{name: "xinput"}
	s := &fakeBackend{name: "joystick"}
	m := NewManager(x, s, ModeAny)

	m.Start(nil, time.Millisecond)
	m.Stop()
	m.Stop() // second stop must be a no-op

	if !x.closed || !s.closed {
		t.Error("Stop should close both backends")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"any", ModeAny},
		{"xinput", ModeXInput},
		{"sdl", ModeSDL},
		{"", ModeAny},
		{"gibberish", ModeAny},
	}
	for _, tc := range tests {
		if got := ParseMode(tc.in); got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
