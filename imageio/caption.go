package imageio

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// captionPad is the space around caption text in pixels.
const captionPad = 3

var (
	captionBar  = color.NRGBA{A: 0xb0}
	captionText = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

// Caption draws text on a dark bar along the bottom edge of img. Text that
// does not fit is clipped. An empty text leaves img untouched.
func Caption(img xdraw.Image, text string) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	b := img.Bounds()

	barH := face.Height + 2*captionPad
	bar := image.Rect(b.Min.X, max(b.Max.Y-barH, b.Min.Y), b.Max.X, b.Max.Y)
	xdraw.Draw(img, bar, image.NewUniform(captionBar), image.Point{}, xdraw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionText),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + captionPad),
			Y: fixed.I(b.Max.Y - captionPad - face.Descent),
		},
	}
	d.DrawString(text)
}

// CaptionWidth returns the advance of text in the caption font, in pixels.
func CaptionWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
