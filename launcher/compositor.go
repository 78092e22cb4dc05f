package launcher

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Compositor drags captured emulator frames onto the launcher surface,
// letterboxed to preserve aspect ratio. The upload texture is reused
// between frames and only reallocated when the source size changes.
type Compositor struct {
	texture *ebiten.Image
	lastSeq uint64
}

// NewCompositor returns an empty compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// letterbox computes the scale and offset that fit a srcW x srcH frame into
// a dstW x dstH surface without distortion.
func letterbox(srcW, srcH, dstW, dstH int) (scale float64, offsetX, offsetY float64) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return 1, 0, 0
	}
	scaleX := float64(dstW) / float64(srcW)
	scaleY := float64(dstH) / float64(srcH)
	scale = scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX = (float64(dstW) - float64(srcW)*scale) / 2
	offsetY = (float64(dstH) - float64(srcH)*scale) / 2
	return scale, offsetX, offsetY
}

// Draw uploads the latest frame from the mailbox, if any, and draws it
// centered on screen. Returns false when no frame has been published yet.
func (c *Compositor) Draw(screen *ebiten.Image, frame *SharedFrame) bool {
	img, seq := frame.Load()
	if img == nil {
		return false
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return false
	}

	if c.texture == nil || c.texture.Bounds().Dx() != w || c.texture.Bounds().Dy() != h {
		if c.texture != nil {
			c.texture.Deallocate()
		}
		c.texture = ebiten.NewImage(w, h)
		c.lastSeq = 0
	}
	if seq != c.lastSeq {
		c.texture.WritePixels(img.Pix)
		c.lastSeq = seq
	}

	dstW, dstH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := letterbox(w, h, dstW, dstH)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(c.texture, op)
	return true
}

// Reset drops the cached texture state so the next session starts clean.
func (c *Compositor) Reset() {
	if c.texture != nil {
		c.texture.Deallocate()
		c.texture = nil
	}
	c.lastSeq = 0
}
