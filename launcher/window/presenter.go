package window

// Presenter mutates a located window's OS-level style and placement so
// it renders normally while staying invisible and non-interactive.
type Presenter interface {
	// MakeBorderless rewrites the window's style to a bare popup: no
	// caption, frame, system menu, or min/max boxes, and removes it
	// from the taskbar and alt-tab switcher while keeping it paintable.
	MakeBorderless(h Handle) error

	// PositionForCapture restores the window if minimized, shows it
	// without activating it, and moves it to (x, y) at the given size.
	// Callers pass coordinates beyond the desktop's right edge so the
	// window stays composited but off the visible display.
	PositionForCapture(h Handle, x, y, width, height int) error

	// EnsureVisible re-applies the non-minimized, shown-without-focus
	// guarantee. Idempotent; called before each capture attempt in case
	// something re-minimized the window.
	EnsureVisible(h Handle) error

	// OffscreenOrigin returns a position just beyond the right edge of
	// the primary display's visible area.
	OffscreenOrigin() (x, y int)
}
