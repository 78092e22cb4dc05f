//go:build windows

package window

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
)

// win32Enumerator enumerates top-level windows through EnumWindows.
type win32Enumerator struct{}

// NewEnumerator returns the OS window registry enumerator.
func NewEnumerator() Enumerator {
	return &win32Enumerator{}
}

// Windows returns the visible top-level windows owned by pid, in
// enumeration order.
func (*win32Enumerator) Windows(pid int) ([]Candidate, error) {
	var found []Candidate

	cb := syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1 // continue enumeration
		}

		var owner uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&owner)))
		if int(owner) != pid {
			return 1
		}

		found = append(found, Candidate{
			Handle: Handle(hwnd),
			Title:  windowText(hwnd),
			Class:  windowClass(hwnd),
		})
		return 1
	})

	procEnumWindows.Call(cb, 0)
	return found, nil
}

func windowText(hwnd uintptr) string {
	buf := make([]uint16, 256)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return syscall.UTF16ToString(buf)
}

func windowClass(hwnd uintptr) string {
	buf := make([]uint16, 256)
	procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return syscall.UTF16ToString(buf)
}
