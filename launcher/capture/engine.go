// Package capture pulls the pixel contents of the parked emulator
// window at a target frame rate and hands frames to the compositor.
package capture

import (
	"errors"
	"image"
	"log"
	"sync"
	"time"

	"github.com/Voltarian-Technologies/XDash/launcher/window"
)

// ErrCaptureDegraded is reported through OnStopped when the engine
// aborts itself after too many consecutive failed frames.
var ErrCaptureDegraded = errors.New("window capture failed repeatedly")

// ErrCaptureActive is returned by Start while a capture run is active.
var ErrCaptureActive = errors.New("capture already running")

// Grabber is one OS capture implementation. GrabWindow renders the
// window's own contents into a bitmap regardless of visibility or
// z-order; GrabScreenRect copies a desktop rectangle and is only valid
// while the rect is on the visible display.
type Grabber interface {
	GrabWindow(h window.Handle) (*image.RGBA, error)
	GrabScreenRect(x, y, width, height int) (*image.RGBA, error)
	WindowRect(h window.Handle) (x, y, width, height int, err error)
}

// Config tunes a capture engine.
type Config struct {
	TargetFPS   int           // frames per second the loop aims for (default 60)
	MaxFailures int           // consecutive dropped frames before self-stop (default 10)
	JoinTimeout time.Duration // bound on waiting for the worker at Stop (default 2s)
}

func (c Config) withDefaults() Config {
	if c.TargetFPS <= 0 {
		c.TargetFPS = 60
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = 10
	}
	if c.JoinTimeout <= 0 {
		c.JoinTimeout = 2 * time.Second
	}
	return c
}

// Engine runs the background capture loop for one window. At most one
// run is active at a time; Stop is idempotent and safe to call from the
// UI thread while the worker is mid-iteration.
type Engine struct {
	grabber Grabber
	cfg     Config

	// prepare is called before each capture attempt to re-assert the
	// window's non-minimized, shown state. Optional.
	prepare func(window.Handle)

	// onStopped fires exactly once per run when the loop exits on its
	// own (nil error for cooperative stop, ErrCaptureDegraded for the
	// failure threshold). Invoked from the worker goroutine.
	onStopped func(error)

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates an engine over the given grabber.
func New(g Grabber, cfg Config) *Engine {
	return &Engine{grabber: g, cfg: cfg.withDefaults()}
}

// SetPrepare installs the pre-capture visibility hook.
func (e *Engine) SetPrepare(fn func(window.Handle)) {
	e.prepare = fn
}

// SetOnStopped installs the stop notification callback.
func (e *Engine) SetOnStopped(fn func(error)) {
	e.onStopped = fn
}

// Running reports whether a capture run is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Start begins capturing h on a background goroutine, delivering each
// frame to onFrame from that goroutine. The caller must have located
// and repositioned the window first.
func (e *Engine) Start(h window.Handle, onFrame func(*image.RGBA)) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrCaptureActive
	}
	e.running = true
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	stop, done := e.stop, e.done
	e.mu.Unlock()

	go e.loop(h, onFrame, stop, done)
	return nil
}

// Stop halts the capture loop and waits for the worker to exit, bounded
// by JoinTimeout. Calling Stop twice, or after the engine stopped
// itself, is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stop)
	done := e.done
	e.mu.Unlock()

	select {
	case <-done:
	case <-time.After(e.cfg.JoinTimeout):
		log.Printf("Warning: capture worker did not exit within %v", e.cfg.JoinTimeout)
	}
}

// stopSelf marks the engine stopped from inside the worker. Returns
// false if an external Stop already won the race.
func (e *Engine) stopSelf() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return false
	}
	e.running = false
	return true
}

// loop is the capture worker. Pacing: each iteration sleeps for the
// remainder of the frame interval after subtracting capture latency, so
// cadence targets but never guarantees the configured rate.
func (e *Engine) loop(h window.Handle, onFrame func(*image.RGBA), stop, done chan struct{}) {
	defer close(done)

	interval := time.Second / time.Duration(e.cfg.TargetFPS)
	failures := 0

	for {
		select {
		case <-stop:
			e.notifyStopped(nil)
			return
		default:
		}

		start := time.Now()

		if e.prepare != nil {
			e.prepare(h)
		}

		img, err := e.captureFrame(h)
		if err != nil {
			failures++
			if failures >= e.cfg.MaxFailures {
				if e.stopSelf() {
					log.Printf("Warning: stopping capture after %d consecutive failures: %v", failures, err)
					e.notifyStopped(ErrCaptureDegraded)
				} else {
					e.notifyStopped(nil)
				}
				return
			}
		} else {
			failures = 0
			if onFrame != nil {
				onFrame(img)
			}
		}

		remaining := interval - time.Since(start)
		if remaining > 0 {
			select {
			case <-stop:
				e.notifyStopped(nil)
				return
			case <-time.After(remaining):
			}
		}
	}
}

// captureFrame tries the direct window-content path first, then falls
// back to a screen copy of the window's current rectangle. The fallback
// only succeeds while the window is on the visible desktop.
func (e *Engine) captureFrame(h window.Handle) (*image.RGBA, error) {
	img, err := e.grabber.GrabWindow(h)
	if err == nil {
		return img, nil
	}

	x, y, w, hh, rectErr := e.grabber.WindowRect(h)
	if rectErr != nil {
		return nil, err
	}
	img, fallbackErr := e.grabber.GrabScreenRect(x, y, w, hh)
	if fallbackErr != nil {
		return nil, err
	}
	return img, nil
}

func (e *Engine) notifyStopped(err error) {
	if e.onStopped != nil {
		e.onStopped(err)
	}
}
