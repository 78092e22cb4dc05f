// Package window locates the emulator's top-level window after launch
// and mutates it for off-screen capture: decorations stripped, removed
// from the taskbar and alt-tab, parked beyond the right edge of the
// desktop while still composited by the OS.
package window

import "strings"

// Handle is an opaque OS reference to a top-level window (HWND on
// Windows). The launcher never owns the window's lifetime; it only
// observes it and mutates style and position.
type Handle uintptr

// Candidate is one enumerated top-level window owned by the target
// process. Title and class are used only for identification.
type Candidate struct {
	Handle Handle
	Title  string
	Class  string
}

// Window classes that render emulator output. Substring match,
// case-insensitive.
var surfaceClasses = []string{
	"xenia",
	"sdl_app",
	"glfw",
	"d3d",
	"vulkan",
}

// Helper windows a process may own that never contain game output.
var rejectClasses = []string{
	"consolewindowclass",
	"ime",
	"msctfime ui",
	"tooltips_class32",
}

// Classify reports whether a window with the given title and class
// plausibly is the emulator's output window. The heuristic is fuzzy by
// nature: it rejects known helper windows, then accepts anything with a
// recognized rendering-surface class, a title naming a content file, or
// any non-empty title at all.
func Classify(title, class string) bool {
	lowTitle := strings.ToLower(title)
	lowClass := strings.ToLower(class)

	for _, reject := range rejectClasses {
		if lowClass == reject {
			return false
		}
	}

	for _, surface := range surfaceClasses {
		if strings.Contains(lowClass, surface) {
			return true
		}
	}

	if strings.Contains(lowTitle, ".xex") {
		return true
	}

	return strings.TrimSpace(title) != ""
}
