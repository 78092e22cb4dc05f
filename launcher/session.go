package launcher

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/Voltarian-Technologies/XDash/launcher/window"
)

// ErrSessionActive is returned when a launch is requested while another
// session is still running.
var ErrSessionActive = errors.New("an emulator session is already active")

// DefaultMonitorInterval is how often the session checks that the
// emulator process is still alive.
const DefaultMonitorInterval = 2 * time.Second

// CaptureEngine is the subset of the capture engine the session drives.
type CaptureEngine interface {
	Start(h window.Handle, onFrame func(*image.RGBA)) error
	Stop()
	Running() bool
}

// SessionConfig describes one emulator launch.
type SessionConfig struct {
	Game    string // display name, for logs and the UI
	Exe     string // emulator binary path
	Content string // content path passed to the emulator

	// Start spawns the emulator. Defaults to launchEmulator.
	Start func(exe, content string) (Process, error)

	// Locate finds the emulator's main window by pid.
	Locate func(ctx context.Context, pid int) (window.Handle, error)

	// Presenter restyles and parks the located window.
	Presenter window.Presenter

	// Engine captures the parked window's frames.
	Engine CaptureEngine

	// Frame receives captured frames for the render loop.
	Frame *SharedFrame

	// MonitorInterval overrides the process liveness poll period.
	MonitorInterval time.Duration

	// OnProcessExit fires once, from a background goroutine, when the
	// emulator process exits on its own.
	OnProcessExit func()
}

// Session is a running emulator plus its capture pipeline.
type Session struct {
	game   string
	proc   Process
	handle window.Handle
	engine CaptureEngine
	frame  *SharedFrame

	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// StartSession runs the launch pipeline: spawn the emulator, find its
// window, strip decorations, park it off-screen and begin capture. If
// the window cannot be found the process is left running so the user
// can interact with the emulator directly; the error tells them so.
func StartSession(cfg SessionConfig) (*Session, error) {
	start := cfg.Start
	if start == nil {
		start = launchEmulator
	}
	interval := cfg.MonitorInterval
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}

	proc, err := start(cfg.Exe, cfg.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Game, err)
	}
	log.Printf("Launched %s (pid %d)", cfg.Game, proc.Pid())

	handle, err := cfg.Locate(context.Background(), proc.Pid())
	if err != nil {
		return nil, fmt.Errorf("emulator window not found, it is running standalone: %w", err)
	}

	if err := cfg.Presenter.MakeBorderless(handle); err != nil {
		log.Printf("Warning: failed to strip window decorations: %v", err)
	}
	offX, offY := cfg.Presenter.OffscreenOrigin()
	if err := cfg.Presenter.PositionForCapture(handle, offX, offY, 1280, 720); err != nil {
		log.Printf("Warning: failed to reposition emulator window: %v", err)
	}

	cfg.Frame.Clear()
	if err := cfg.Engine.Start(handle, cfg.Frame.Store); err != nil {
		return nil, fmt.Errorf("failed to start capture: %w", err)
	}

	s := &Session{
		game:   cfg.Game,
		proc:   proc,
		handle: handle,
		engine: cfg.Engine,
		frame:  cfg.Frame,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.monitor(interval, cfg.OnProcessExit)
	return s, nil
}

// Game returns the display name of the running title.
func (s *Session) Game() string {
	return s.game
}

// Window returns the captured emulator window handle.
func (s *Session) Window() window.Handle {
	return s.handle
}

// monitor polls process liveness and reports exit at most once.
func (s *Session) monitor(interval time.Duration, onExit func()) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.proc.Alive() {
				continue
			}
			log.Printf("%s exited", s.game)
			if onExit != nil {
				onExit()
			}
			return
		}
	}
}

// Close tears the session down: capture stops, the frame mailbox is
// cleared, and the emulator is optionally killed. Idempotent.
func (s *Session) Close(killProcess bool) {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.engine.Stop()
		s.frame.Clear()
		if killProcess {
			if err := s.proc.Kill(); err != nil {
				log.Printf("Warning: failed to kill emulator: %v", err)
			}
		}
		<-s.done
	})
}
