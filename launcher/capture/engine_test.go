package capture

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Voltarian-Technologies/XDash/launcher/window"
)

// fakeGrabber scripts the capture chain for engine tests.
type fakeGrabber struct {
	mu            sync.Mutex
	windowErr     error
	rectErr       error
	screenErr     error
	windowGrabs   int32
	screenGrabs   int32
	failWindowFor int32 // fail GrabWindow for the first N calls
}

func (f *fakeGrabber) GrabWindow(window.Handle) (*image.RGBA, error) {
	n := atomic.AddInt32(&f.windowGrabs, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.windowErr != nil && (f.failWindowFor == 0 || n <= f.failWindowFor) {
		return nil, f.windowErr
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (f *fakeGrabber) GrabScreenRect(int, int, int, int) (*image.RGBA, error) {
	atomic.AddInt32(&f.screenGrabs, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.screenErr != nil {
		return nil, f.screenErr
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (f *fakeGrabber) WindowRect(window.Handle) (int, int, int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rectErr != nil {
		return 0, 0, 0, 0, f.rectErr
	}
	return 10, 10, 4, 4, nil
}

func testConfig() Config {
	return Config{TargetFPS: 1000, MaxFailures: 10, JoinTimeout: time.Second}
}

func TestEngineDeliversFrames(t *testing.T) {
	g := &fakeGrabber{}
	e := New(g, testConfig())

	var frames int32
	if err := e.Start(0x42, func(*image.RGBA) { atomic.AddInt32(&frames, 1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Stop()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&frames) < 5 {
		select {
		case <-deadline:
			t.Fatal("no frames delivered")
		case <-time.After(time.Millisecond):
		}
	}
	if !e.Running() {
		t.Error("engine should be running")
	}
}

func TestEngineFallsBackToScreenRect(t *testing.T) {
	g := &fakeGrabber{windowErr: errors.New("print failed")}
	e := New(g, testConfig())

	var frames int32
	if err := e.Start(0x42, func(*image.RGBA) { atomic.AddInt32(&frames, 1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Stop()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&frames) < 2 {
		select {
		case <-deadline:
			t.Fatal("fallback path delivered no frames")
		case <-time.After(time.Millisecond):
		}
	}
	if atomic.LoadInt32(&g.screenGrabs) == 0 {
		t.Error("screen-rect fallback was never used")
	}
}

func TestEngineSelfStopsAfterMaxFailures(t *testing.T) {
	g := &fakeGrabber{
		windowErr: errors.New("print failed"),
		screenErr: errors.New("off screen"),
	}
	e := New(g, testConfig())

	var stops int32
	var stopErr error
	var mu sync.Mutex
	e.SetOnStopped(func(err error) {
		atomic.AddInt32(&stops, 1)
		mu.Lock()
		stopErr = err
		mu.Unlock()
	})

	if err := e.Start(0x42, nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.After(time.Second)
	for e.Running() {
		select {
		case <-deadline:
			t.Fatal("engine did not stop itself")
		case <-time.After(time.Millisecond):
		}
	}

	// Give any (incorrect) duplicate notifications a moment to land.
	time.Sleep(20 * time.Millisecond)
	if got := atomic.LoadInt32(&stops); got != 1 {
		t.Errorf("OnStopped fired %d times, want exactly 1", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if !errors.Is(stopErr, ErrCaptureDegraded) {
		t.Errorf("OnStopped error = %v, want ErrCaptureDegraded", stopErr)
	}

	// External Stop after a self-stop must be a harmless no-op.
	e.Stop()
}

func TestEngineRecoversWithinThreshold(t *testing.T) {
	// 5 failures then success: failure counter must reset, no self-stop.
	g := &fakeGrabber{
		windowErr:     errors.New("print failed"),
		rectErr:       errors.New("no rect"),
		failWindowFor: 5,
	}
	e := New(g, testConfig())

	var frames int32
	if err := e.Start(0x42, func(*image.RGBA) { atomic.AddInt32(&frames, 1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Stop()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&frames) < 3 {
		select {
		case <-deadline:
			t.Fatal("engine did not recover after transient failures")
		case <-time.After(time.Millisecond):
		}
	}
	if !e.Running() {
		t.Error("engine should still be running after recovery")
	}
}

func TestStopIdempotent(t *testing.T) {
	g := &fakeGrabber{}
	e := New(g, testConfig())

	if err := e.Start(0x42, nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	e.Stop()
	e.Stop() // must not panic or block

	if e.Running() {
		t.Error("Running() = true after Stop")
	}
}

func TestStartWhileRunningRejected(t *testing.T) {
	g := &fakeGrabber{}
	e := New(g, testConfig())

	if err := e.Start(0x42, nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Stop()

	if err := e.Start(0x43, nil); !errors.Is(err, ErrCaptureActive) {
		t.Errorf("second Start() error = %v, want ErrCaptureActive", err)
	}
}

func TestPrepareHookRunsBeforeCapture(t *testing.T) {
	g := &fakeGrabber{}
	e := New(g, testConfig())

	var prepared int32
	e.SetPrepare(func(window.Handle) { atomic.AddInt32(&prepared, 1) })

	if err := e.Start(0x42, nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer e.Stop()

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&prepared) == 0 {
		select {
		case <-deadline:
			t.Fatal("prepare hook never ran")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestPacingSleepsRemainder(t *testing.T) {
	g := &fakeGrabber{}
	cfg := Config{TargetFPS: 50, MaxFailures: 10, JoinTimeout: time.Second} // 20ms interval
	e := New(g, cfg)

	var frames int32
	start := time.Now()
	if err := e.Start(0x42, func(*image.RGBA) { atomic.AddInt32(&frames, 1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&frames) < 5 {
		select {
		case <-deadline:
			t.Fatal("too few frames")
		case <-time.After(time.Millisecond):
		}
	}
	e.Stop()

	// 5 frames at 20ms spacing cannot complete much faster than 80ms.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("5 frames took %v, want >= 80ms at 50fps", elapsed)
	}
}
