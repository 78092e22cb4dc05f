package launcher

import (
	"image"
	"sync"
)

// SharedFrame is a latest-wins mailbox between the capture engine and the
// render loop. The producer stores whole frames; the consumer reads the most
// recent one. Frames are never queued, a slow consumer just skips ahead.
type SharedFrame struct {
	mu  sync.Mutex
	img *image.RGBA
	seq uint64
}

// Store publishes a new frame, replacing any unread one.
func (f *SharedFrame) Store(img *image.RGBA) {
	f.mu.Lock()
	f.img = img
	f.seq++
	f.mu.Unlock()
}

// Load returns the most recent frame and its sequence number. The frame is
// nil until the first Store after construction or Clear.
func (f *SharedFrame) Load() (*image.RGBA, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img, f.seq
}

// Clear drops the stored frame so stale video is not shown for a new session.
func (f *SharedFrame) Clear() {
	f.mu.Lock()
	f.img = nil
	f.seq++
	f.mu.Unlock()
}
