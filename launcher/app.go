package launcher

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sqweek/dialog"

	"github.com/Voltarian-Technologies/XDash/launcher/capture"
	"github.com/Voltarian-Technologies/XDash/launcher/input"
	"github.com/Voltarian-Technologies/XDash/launcher/storage"
	"github.com/Voltarian-Technologies/XDash/launcher/window"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	// Minimum time between controller-driven menu moves.
	navDebounce = 200 * time.Millisecond

	// Stick deflection treated as a directional press.
	navStickThreshold = 0.5
)

type eventKind int

const (
	eventLaunched eventKind = iota
	eventLaunchFailed
	eventProcessExited
	eventCaptureStopped
)

// appEvent carries session lifecycle changes from background goroutines
// to the update loop.
type appEvent struct {
	kind    eventKind
	session *Session
	err     error
}

// App is the top-level ebiten game.
type App struct {
	state AppState

	paths   *storage.Paths
	config  *storage.Config
	catalog *storage.Catalog

	menu         *Menu
	controllers  *input.Manager
	notification *Notification
	compositor   *Compositor
	frame        *SharedFrame
	engine       *capture.Engine
	locator      *window.Locator
	presenter    window.Presenter

	session      *Session
	pendingGame  string
	errorMessage string

	events chan appEvent

	// Controller edge detection and repeat gating.
	lastNav     time.Time
	prevButtons map[string]bool
	prevAxisY   float64
	prevAxisX   float64

	// Seams for tests. startSession defaults to StartSession and
	// notifyError to an OS error dialog.
	startSession func(SessionConfig) (*Session, error)
	notifyError  func(title, message string)

	// Pre-allocated text options
	textOpts text.DrawOptions
}

// Run resolves the install layout, loads config and catalog, wires the
// input and capture stacks and enters the ebiten main loop.
func Run() error {
	paths, err := ResolveInstall()
	if err != nil {
		return err
	}

	app, err := NewApp(paths)
	if err != nil {
		return err
	}
	defer app.Shutdown()

	ebiten.SetWindowTitle("XDash")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	return ebiten.RunGame(app)
}

// ResolveInstall locates the launcher's directory layout.
func ResolveInstall() (*storage.Paths, error) {
	return storage.ResolvePaths()
}

// NewApp builds the application over a resolved install layout.
func NewApp(paths *storage.Paths) (*App, error) {
	config, err := storage.LoadConfig(paths.ConfigPath)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	app := &App{
		state:        StateMenu,
		paths:        paths,
		config:       config,
		notification: NewNotification(),
		compositor:   NewCompositor(),
		frame:        &SharedFrame{},
		locator:      window.NewLocator(window.NewEnumerator()),
		presenter:    window.NewPresenter(),
		events:       make(chan appEvent, 8),
		prevButtons:  make(map[string]bool),
		startSession: StartSession,
		notifyError: func(title, message string) {
			dialog.Message("%s", message).Title(title).Error()
		},
	}

	app.engine = capture.New(capture.NewGrabber(), capture.Config{})
	app.engine.SetPrepare(func(h window.Handle) {
		app.presenter.EnsureVisible(h)
	})
	app.engine.SetOnStopped(func(err error) {
		if err != nil {
			app.postEvent(appEvent{kind: eventCaptureStopped, err: err})
		}
	})

	app.controllers = input.NewManager(
		input.NewXInputBackend(0.2),
		input.NewJoystickBackend(),
		input.ParseMode(config.ControllerType),
	)
	app.controllers.Start(nil, input.DefaultPollInterval)

	app.reloadCatalog()
	return app, nil
}

// reloadCatalog (re)reads layout.json and rebuilds the menu. On failure
// the app lands on the error screen, which offers a retry.
func (a *App) reloadCatalog() {
	catalog, err := storage.LoadCatalog(a.paths.CatalogPath)
	if err != nil {
		a.catalog = nil
		a.menu = nil
		a.errorMessage = fmt.Sprintf("%v\n\nPlace content under %q and press R to retry.", err, a.paths.HDDDir)
		a.state = StateError
		return
	}

	a.catalog = catalog
	a.menu = NewMenu(catalog.Names(), a.launch, a.setDefault, a.setNetplay)
	a.menu.SetNetplay(a.config.Netplay)
	if a.config.DefaultROM != "" {
		a.menu.SetDefaultName(a.config.DefaultROM)
		a.menu.SelectGame(a.config.DefaultROM)
	}
	a.errorMessage = ""
	a.state = StateMenu
}

// postEvent delivers an event without ever blocking a producer goroutine.
func (a *App) postEvent(ev appEvent) {
	select {
	case a.events <- ev:
	default:
		log.Printf("Warning: dropped app event %d", ev.kind)
	}
}

// launch starts the selected title. Runs the blocking pipeline on a
// goroutine so the render loop keeps drawing the launching screen.
func (a *App) launch(name string, netplay bool) {
	if a.session != nil || a.state == StateLaunching {
		a.notification.ShowDefault("A game is already running")
		return
	}

	rel, ok := a.catalog.Path(name)
	if !ok {
		a.notification.ShowDefault("Unknown title: " + name)
		return
	}

	exe := a.paths.Exe(netplay)
	if !storage.FileExists(exe) {
		a.errorMessage = fmt.Sprintf("Emulator not found at %q.\n\nPress any button to return.", exe)
		a.state = StateError
		return
	}
	content := a.paths.ContentPath(rel)
	if !storage.FileExists(content) {
		a.errorMessage = fmt.Sprintf("Content missing at %q.\n\nPress any button to return.", content)
		a.state = StateError
		return
	}

	a.pendingGame = name
	a.state = StateLaunching
	a.controllers.Disable()

	cfg := SessionConfig{
		Game:      name,
		Exe:       exe,
		Content:   content,
		Locate:    a.locator.Locate,
		Presenter: a.presenter,
		Engine:    a.engine,
		Frame:     a.frame,
		OnProcessExit: func() {
			a.postEvent(appEvent{kind: eventProcessExited})
		},
	}

	go func() {
		s, err := a.startSession(cfg)
		if err != nil {
			a.postEvent(appEvent{kind: eventLaunchFailed, err: err})
			return
		}
		a.postEvent(appEvent{kind: eventLaunched, session: s})
	}()
}

// setDefault persists the default title choice.
func (a *App) setDefault(name string) {
	a.config.DefaultROM = name
	if err := storage.SaveConfig(a.paths.ConfigPath, a.config); err != nil {
		log.Printf("Warning: failed to save config: %v", err)
		return
	}
	a.notification.ShowDefault("Default set to " + name)
}

// setNetplay persists the netplay toggle.
func (a *App) setNetplay(enabled bool) {
	a.config.Netplay = enabled
	if err := storage.SaveConfig(a.paths.ConfigPath, a.config); err != nil {
		log.Printf("Warning: failed to save config: %v", err)
	}
}

// endSession tears down the active session and returns to the menu.
func (a *App) endSession(killProcess bool, message string) {
	if a.session != nil {
		a.session.Close(killProcess)
		a.session = nil
	}
	a.compositor.Reset()
	a.frame.Clear()
	a.pendingGame = ""
	a.controllers.Enable()
	a.state = StateMenu
	if message != "" {
		a.notification.ShowDefault(message)
	}
}

// handleEvent applies one background event to the app state.
func (a *App) handleEvent(ev appEvent) {
	switch ev.kind {
	case eventLaunched:
		a.session = ev.session
		a.state = StatePlaying
	case eventLaunchFailed:
		log.Printf("Warning: launch failed: %v", ev.err)
		a.pendingGame = ""
		a.controllers.Enable()
		a.state = StateMenu
		if errors.Is(ev.err, window.ErrWindowNotFound) {
			a.notification.Show("Emulator window not found; it is running standalone", 5*time.Second)
		} else {
			a.notifyError("Launch failed", ev.err.Error())
		}
	case eventProcessExited:
		a.endSession(false, a.sessionName()+" exited")
	case eventCaptureStopped:
		// The emulator is still alive; hand control back to it.
		a.endSession(false, "Video capture lost; emulator left running")
	}
}

func (a *App) sessionName() string {
	if a.session != nil {
		return a.session.Game()
	}
	return "Game"
}

// Update advances the app one tick.
func (a *App) Update() error {
	for {
		select {
		case ev := <-a.events:
			a.handleEvent(ev)
			continue
		default:
		}
		break
	}

	switch a.state {
	case StateMenu:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		a.menu.Update()
		a.updateControllerNav()
	case StateLaunching:
		// Waiting on the launch goroutine.
	case StatePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			a.endSession(true, a.sessionName()+" closed")
		}
	case StateError:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.catalog == nil {
			a.reloadCatalog()
			return nil
		}
		if len(inpututil.AppendJustPressedKeys(nil)) > 0 && a.catalog != nil {
			a.errorMessage = ""
			a.state = StateMenu
		}
	}
	return nil
}

// updateControllerNav maps the merged logical controller onto menu
// navigation with edge detection and a repeat gate.
func (a *App) updateControllerNav() {
	st := a.controllers.GetState(0)
	if !st.Connected {
		a.prevButtons = make(map[string]bool)
		a.prevAxisX, a.prevAxisY = 0, 0
		return
	}

	now := time.Now()
	canNav := now.Sub(a.lastNav) >= navDebounce

	up := st.Button(input.ButtonDpadUp) || st.Axis(input.AxisLeftY) < -navStickThreshold
	down := st.Button(input.ButtonDpadDown) || st.Axis(input.AxisLeftY) > navStickThreshold
	left := st.Button(input.ButtonDpadLeft) || st.Axis(input.AxisLeftX) < -navStickThreshold
	right := st.Button(input.ButtonDpadRight) || st.Axis(input.AxisLeftX) > navStickThreshold

	if canNav {
		switch {
		case up:
			a.menu.MoveUp()
			a.lastNav = now
		case down:
			a.menu.MoveDown()
			a.lastNav = now
		case left:
			a.menu.MoveLeft()
			a.lastNav = now
		case right:
			a.menu.MoveRight()
			a.lastNav = now
		}
	}

	if st.Button(input.ButtonA) && !a.prevButtons[input.ButtonA] {
		a.menu.Activate()
	}
	if st.Button(input.ButtonBack) && !a.prevButtons[input.ButtonBack] {
		if name := a.menu.SelectedGame(); name != "" {
			a.menu.SetDefaultName(name)
			a.setDefault(name)
		}
	}

	a.prevButtons[input.ButtonA] = st.Button(input.ButtonA)
	a.prevButtons[input.ButtonBack] = st.Button(input.ButtonBack)
}

// Draw renders the current screen.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	switch a.state {
	case StateMenu:
		a.menu.Draw(screen)
		a.drawFooter(screen)
	case StateLaunching:
		a.drawCenteredMessage(screen, "Launching "+a.pendingGame+"...")
		a.drawFooter(screen)
	case StatePlaying:
		if !a.compositor.Draw(screen, a.frame) {
			a.drawCenteredMessage(screen, "Waiting for video...")
		}
	case StateError:
		a.drawCenteredMessage(screen, a.errorMessage)
	}

	a.notification.Draw(screen)
}

func (a *App) drawCenteredMessage(screen *ebiten.Image, message string) {
	face := FontFace()
	if face == nil || message == "" {
		return
	}
	bounds := screen.Bounds()
	metrics := face.Metrics()
	lineSpacing := metrics.HAscent + metrics.HDescent + metrics.HLineGap
	w, h := text.Measure(message, face, lineSpacing)
	a.textOpts = text.DrawOptions{}
	a.textOpts.LineSpacing = lineSpacing
	a.textOpts.GeoM.Translate(
		(float64(bounds.Dx())-w)/2,
		(float64(bounds.Dy())-h)/2,
	)
	a.textOpts.ColorScale.ScaleWithColor(colorText)
	text.Draw(screen, message, face, &a.textOpts)
}

// drawFooter renders the status line along the bottom edge.
func (a *App) drawFooter(screen *ebiten.Image) {
	face := SmallFace()
	if face == nil {
		return
	}

	status := "No controller"
	tint := colorTextSecondary
	if st := a.controllers.GetState(0); st.Connected {
		status = "Controller: " + st.Type.String()
		tint = colorOK
	}
	if a.menu != nil && a.menu.Netplay() {
		status += "  |  Netplay"
	}

	bounds := screen.Bounds()
	_, h := text.Measure(status, face, 0)
	a.textOpts = text.DrawOptions{}
	a.textOpts.GeoM.Translate(overlayMargin, float64(bounds.Dy())-h-8)
	a.textOpts.ColorScale.ScaleWithColor(tint)
	text.Draw(screen, status, face, &a.textOpts)
}

// Layout fixes the logical resolution.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// Shutdown stops background workers and any live session.
func (a *App) Shutdown() {
	if a.session != nil {
		a.session.Close(true)
		a.session = nil
	}
	a.engine.Stop()
	a.controllers.Stop()
}
