package launcher

import (
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	overlayPadding = 12
	overlayMargin  = 16
)

// Notification displays temporary messages on screen
type Notification struct {
	mu        sync.Mutex
	message   string
	startTime time.Time
	duration  time.Duration

	// Pre-allocated background image (avoid per-frame allocations)
	bg           *ebiten.Image
	lastBgWidth  int
	lastBgHeight int
}

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.startTime = time.Now()
	n.duration = duration
}

// ShowDefault displays a notification with default 3 second duration
func (n *Notification) ShowDefault(message string) {
	n.Show(message, 3*time.Second)
}

// IsVisible returns whether the notification is currently visible
func (n *Notification) IsVisible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.message == "" {
		return false
	}
	return time.Since(n.startTime) < n.duration
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
}

// Draw renders the notification in the bottom-right corner
func (n *Notification) Draw(screen *ebiten.Image) {
	n.mu.Lock()
	if n.message == "" || time.Since(n.startTime) >= n.duration {
		n.mu.Unlock()
		return
	}
	message := n.message
	n.mu.Unlock()

	face := FontFace()
	if face == nil {
		return
	}

	bounds := screen.Bounds()
	screenWidth := bounds.Dx()
	screenHeight := bounds.Dy()

	textWidth, textHeight := text.Measure(message, face, 0)
	bgWidth := int(textWidth) + overlayPadding*2
	bgHeight := int(textHeight) + overlayPadding*2

	// Position: bottom-right, margin
	bgX := screenWidth - bgWidth - overlayMargin
	bgY := screenHeight - bgHeight - overlayMargin

	if n.bg == nil || n.lastBgWidth < bgWidth || n.lastBgHeight < bgHeight {
		n.bg = ebiten.NewImage(bgWidth, bgHeight)
		n.lastBgWidth = bgWidth
		n.lastBgHeight = bgHeight
	}
	n.bg.Clear()
	n.bg.Fill(colorOverlay)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(n.bg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+overlayPadding), float64(bgY+overlayPadding))
	textOpts.ColorScale.ScaleWithColor(colorText)
	text.Draw(screen, message, face, textOpts)
}
