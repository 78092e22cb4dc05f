//go:build windows

package capture

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"

	win "github.com/Voltarian-Technologies/XDash/launcher/window"
)

const (
	pwRenderFullContent = 0x00000002

	srcCopy    = 0x00CC0020
	captureBlt = 0x40000000

	dibRGBColors = 0

	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCxVirtualScreen = 78
	smCyVirtualScreen = 79
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetWindowRect    = user32.NewProc("GetWindowRect")
	procPrintWindow      = user32.NewProc("PrintWindow")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")

	gdi32                    = windows.NewLazySystemDLL("gdi32.dll")
	procCreateCompatibleDC   = gdi32.NewProc("CreateCompatibleDC")
	procCreateDIBSection     = gdi32.NewProc("CreateDIBSection")
	procSelectObject         = gdi32.NewProc("SelectObject")
	procDeleteDC             = gdi32.NewProc("DeleteDC")
	procDeleteObject         = gdi32.NewProc("DeleteObject")
	procBitBlt               = gdi32.NewProc("BitBlt")
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// gdiGrabber captures window contents through GDI: PrintWindow with
// PW_RENDERFULLCONTENT for the direct path, BitBlt of the screen for
// the fallback.
type gdiGrabber struct{}

// NewGrabber returns the GDI capture backend.
func NewGrabber() Grabber {
	return &gdiGrabber{}
}

// WindowRect returns the window's current screen rectangle.
func (*gdiGrabber) WindowRect(h win.Handle) (int, int, int, int, error) {
	var r rect
	ret, _, _ := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return 0, 0, 0, 0, fmt.Errorf("GetWindowRect failed for %#x", uintptr(h))
	}
	return int(r.Left), int(r.Top), int(r.Right - r.Left), int(r.Bottom - r.Top), nil
}

// GrabWindow renders the window's contents into an offscreen bitmap.
// PW_RENDERFULLCONTENT makes the window paint itself, so this works for
// occluded and off-screen windows.
func (g *gdiGrabber) GrabWindow(h win.Handle) (*image.RGBA, error) {
	_, _, width, height, err := g.WindowRect(h)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("window %#x has empty bounds", uintptr(h))
	}

	return withDIB(width, height, func(hdcMem uintptr) error {
		ret, _, _ := procPrintWindow.Call(uintptr(h), hdcMem, pwRenderFullContent)
		if ret == 0 {
			return fmt.Errorf("PrintWindow failed for %#x", uintptr(h))
		}
		return nil
	})
}

// GrabScreenRect copies a desktop rectangle. Only valid while the rect
// lies within the virtual screen; a window parked off-screen fails here
// by design and must be captured through GrabWindow.
func (*gdiGrabber) GrabScreenRect(x, y, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("empty capture rect %dx%d", width, height)
	}

	vx, _, _ := procGetSystemMetrics.Call(smXVirtualScreen)
	vy, _, _ := procGetSystemMetrics.Call(smYVirtualScreen)
	vw, _, _ := procGetSystemMetrics.Call(smCxVirtualScreen)
	vh, _, _ := procGetSystemMetrics.Call(smCyVirtualScreen)
	if x < int(int32(vx)) || y < int(int32(vy)) ||
		x+width > int(int32(vx))+int(int32(vw)) || y+height > int(int32(vy))+int(int32(vh)) {
		return nil, fmt.Errorf("rect (%d,%d %dx%d) is off the visible desktop", x, y, width, height)
	}

	return withDIB(width, height, func(hdcMem uintptr) error {
		hdcScreen, _, _ := procGetDC.Call(0)
		if hdcScreen == 0 {
			return fmt.Errorf("GetDC failed")
		}
		defer procReleaseDC.Call(0, hdcScreen)

		ret, _, _ := procBitBlt.Call(hdcMem, 0, 0, uintptr(width), uintptr(height),
			hdcScreen, uintptr(x), uintptr(y), srcCopy|captureBlt)
		if ret == 0 {
			return fmt.Errorf("BitBlt failed for rect (%d,%d %dx%d)", x, y, width, height)
		}
		return nil
	})
}

// withDIB sets up a 32-bit top-down DIB selected into a memory DC,
// runs render against that DC, and converts the BGRA bits to RGBA.
func withDIB(width, height int, render func(hdcMem uintptr) error) (*image.RGBA, error) {
	hdcScreen, _, _ := procGetDC.Call(0)
	if hdcScreen == 0 {
		return nil, fmt.Errorf("GetDC failed")
	}
	defer procReleaseDC.Call(0, hdcScreen)

	hdcMem, _, _ := procCreateCompatibleDC.Call(hdcScreen)
	if hdcMem == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(hdcMem)

	bmi := bitmapInfo{Header: bitmapInfoHeader{
		Size:     uint32(unsafe.Sizeof(bitmapInfoHeader{})),
		Width:    int32(width),
		Height:   -int32(height), // top-down rows
		Planes:   1,
		BitCount: 32,
	}}

	var bits unsafe.Pointer
	hbm, _, _ := procCreateDIBSection.Call(hdcScreen, uintptr(unsafe.Pointer(&bmi)),
		dibRGBColors, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if hbm == 0 || bits == nil {
		return nil, fmt.Errorf("CreateDIBSection failed for %dx%d", width, height)
	}
	defer procDeleteObject.Call(hbm)

	old, _, _ := procSelectObject.Call(hdcMem, hbm)
	defer procSelectObject.Call(hdcMem, old)

	if err := render(hdcMem); err != nil {
		return nil, err
	}

	src := unsafe.Slice((*byte)(bits), width*height*4)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(src); i += 4 {
		img.Pix[i+0] = src[i+2] // R <- B plane swap
		img.Pix[i+1] = src[i+1]
		img.Pix[i+2] = src[i+0]
		img.Pix[i+3] = 0xFF
	}
	return img, nil
}
