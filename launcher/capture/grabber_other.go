//go:build !windows

package capture

import (
	"errors"
	"image"

	win "github.com/Voltarian-Technologies/XDash/launcher/window"
)

// ErrUnsupported is returned on platforms without a capture backend.
var ErrUnsupported = errors.New("window capture requires windows")

type stubGrabber struct{}

// NewGrabber returns a stub grabber on non-Windows platforms.
func NewGrabber() Grabber {
	return stubGrabber{}
}

func (stubGrabber) GrabWindow(win.Handle) (*image.RGBA, error) {
	return nil, ErrUnsupported
}

func (stubGrabber) GrabScreenRect(int, int, int, int) (*image.RGBA, error) {
	return nil, ErrUnsupported
}

func (stubGrabber) WindowRect(win.Handle) (int, int, int, int, error) {
	return 0, 0, 0, 0, ErrUnsupported
}
