//go:build !windows

package window

import "errors"

// ErrUnsupported is returned on platforms without the window capture
// pipeline. The launcher still runs; only game embedding is missing.
var ErrUnsupported = errors.New("window embedding requires windows")

type stubEnumerator struct{}

// NewEnumerator returns a stub enumerator on non-Windows platforms.
func NewEnumerator() Enumerator {
	return stubEnumerator{}
}

func (stubEnumerator) Windows(pid int) ([]Candidate, error) {
	return nil, ErrUnsupported
}

type stubPresenter struct{}

// NewPresenter returns a stub presenter on non-Windows platforms.
func NewPresenter() Presenter {
	return stubPresenter{}
}

func (stubPresenter) MakeBorderless(Handle) error                 { return ErrUnsupported }
func (stubPresenter) PositionForCapture(Handle, int, int, int, int) error { return ErrUnsupported }
func (stubPresenter) EnsureVisible(Handle) error                  { return ErrUnsupported }
func (stubPresenter) OffscreenOrigin() (int, int)                 { return 0, 0 }
