//go:build windows

package window

import "fmt"

// Window style bits.
const (
	gwlStyle   = ^uintptr(15) // -16
	gwlExStyle = ^uintptr(19) // -20

	wsPopup       = 0x80000000
	wsVisible     = 0x10000000
	wsCaption     = 0x00C00000
	wsThickFrame  = 0x00040000
	wsSysMenu     = 0x00080000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000

	wsExDlgModalFrame = 0x00000001
	wsExWindowEdge    = 0x00000100
	wsExClientEdge    = 0x00000200
	wsExStaticEdge    = 0x00020000
	wsExAppWindow     = 0x00040000
	wsExToolWindow    = 0x00000080
	wsExNoActivate    = 0x08000000

	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	swpNoZOrder     = 0x0004
	swpNoActivate   = 0x0010
	swpFrameChanged = 0x0020
	swpShowWindow   = 0x0040

	swShowNA  = 8
	swRestore = 9

	smCxScreen = 0
)

// offscreenMargin keeps the parked window clear of the desktop edge so
// no sliver ever peeks onto the visible area.
const offscreenMargin = 100

var (
	procGetWindowLongPtrW = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW = user32.NewProc("SetWindowLongPtrW")
	procSetWindowPos      = user32.NewProc("SetWindowPos")
	procShowWindow        = user32.NewProc("ShowWindow")
	procIsIconic          = user32.NewProc("IsIconic")
	procSetMenu           = user32.NewProc("SetMenu")
	procGetMenu           = user32.NewProc("GetMenu")
	procGetSystemMetrics  = user32.NewProc("GetSystemMetrics")
)

// win32Presenter mutates window styles through user32.
type win32Presenter struct{}

// NewPresenter returns the OS window presenter.
func NewPresenter() Presenter {
	return &win32Presenter{}
}

// MakeBorderless rewrites the style bits to a pure popup, strips the
// extended chrome styles, and adds the toolwindow/no-activate combo
// that removes the window from the taskbar and alt-tab. Style bits
// already in effect are not repainted automatically, so the change is
// forced with a frame-changed SetWindowPos.
func (*win32Presenter) MakeBorderless(h Handle) error {
	hwnd := uintptr(h)

	ret, _, _ := procSetWindowLongPtrW.Call(hwnd, gwlStyle, wsPopup|wsVisible)
	if ret == 0 {
		// SetWindowLongPtr returns the previous value; a previous value
		// of zero is legal, so only treat this as fatal if the window
		// handle itself is dead.
		if v, _, _ := procGetWindowLongPtrW.Call(hwnd, gwlStyle); v == 0 {
			return fmt.Errorf("failed to set window style for handle %#x", hwnd)
		}
	}

	exRet, _, _ := procGetWindowLongPtrW.Call(hwnd, gwlExStyle)
	ex := exRet
	ex &^= uintptr(wsExDlgModalFrame | wsExWindowEdge | wsExClientEdge | wsExStaticEdge | wsExAppWindow)
	ex |= uintptr(wsExToolWindow | wsExNoActivate)
	procSetWindowLongPtrW.Call(hwnd, gwlExStyle, ex)

	// Drop any menu bar.
	if menu, _, _ := procGetMenu.Call(hwnd); menu != 0 {
		procSetMenu.Call(hwnd, 0)
	}

	// Force the non-client area repaint so the new style takes effect.
	procSetWindowPos.Call(hwnd, 0, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoZOrder|swpNoActivate|swpFrameChanged)

	return nil
}

// PositionForCapture restores the window if iconic, shows it without
// stealing focus from the launcher, then moves it to the requested
// off-screen rectangle. The window must stay "shown" so the OS keeps
// compositing its contents.
func (p *win32Presenter) PositionForCapture(h Handle, x, y, width, height int) error {
	if err := p.EnsureVisible(h); err != nil {
		return err
	}

	hwnd := uintptr(h)
	ret, _, _ := procSetWindowPos.Call(hwnd, 0,
		uintptr(x), uintptr(y), uintptr(width), uintptr(height),
		swpNoZOrder|swpNoActivate|swpShowWindow)
	if ret == 0 {
		return fmt.Errorf("failed to reposition window %#x", hwnd)
	}
	return nil
}

// EnsureVisible restores a minimized window and shows it without
// activation. Idempotent.
func (*win32Presenter) EnsureVisible(h Handle) error {
	hwnd := uintptr(h)
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		procShowWindow.Call(hwnd, swRestore)
	}
	procShowWindow.Call(hwnd, swShowNA)
	return nil
}

// OffscreenOrigin returns a point past the right edge of the primary
// display.
func (*win32Presenter) OffscreenOrigin() (int, int) {
	width, _, _ := procGetSystemMetrics.Call(smCxScreen)
	return int(width) + offscreenMargin, 0
}
