package launcher

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// UI palette.
var (
	colorBackground    = color.RGBA{0x1a, 0x1d, 0x24, 0xff}
	colorPanel         = color.RGBA{0x24, 0x28, 0x31, 0xff}
	colorText          = color.RGBA{0xe8, 0xea, 0xee, 0xff}
	colorTextSecondary = color.RGBA{0x9a, 0xa0, 0xaa, 0xff}
	colorAccent        = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	colorWarning       = color.RGBA{0xdc, 0x26, 0x26, 0xff}
	colorOK            = color.RGBA{0x10, 0xb9, 0x81, 0xff}
	colorOverlay       = color.RGBA{0x00, 0x00, 0x00, 0x99}
)

var (
	fontSourceOnce sync.Once
	fontSource     *text.GoTextFaceSource

	faceOnce  sync.Once
	uiFace    text.Face
	titleFace text.Face
	smallFace text.Face
)

// loadFontSource parses the bundled font once.
func loadFontSource() *text.GoTextFaceSource {
	fontSourceOnce.Do(func() {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("Warning: failed to load font: %v", err)
			return
		}
		fontSource = source
	})
	return fontSource
}

func initFaces() {
	faceOnce.Do(func() {
		src := loadFontSource()
		if src == nil {
			return
		}
		uiFace = &text.GoTextFace{Source: src, Size: 18}
		titleFace = &text.GoTextFace{Source: src, Size: 36}
		smallFace = &text.GoTextFace{Source: src, Size: 13}
	})
}

// FontFace returns the face for regular UI text.
func FontFace() text.Face {
	initFaces()
	return uiFace
}

// TitleFace returns the face for the banner title.
func TitleFace() text.Face {
	initFaces()
	return titleFace
}

// SmallFace returns the face for status footer text.
func SmallFace() text.Face {
	initFaces()
	return smallFace
}
