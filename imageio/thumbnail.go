package imageio

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Thumbnail returns img scaled so its longer side is maxSide, keeping the
// aspect ratio. Images that already fit are copied unscaled. Each side is at
// least one pixel.
func Thumbnail(img image.Image, maxSide int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide > 0 && (w > maxSide || h > maxSide) {
		if w >= h {
			w, h = maxSide, max(h*maxSide/w, 1)
		} else {
			w, h = max(w*maxSide/h, 1), maxSide
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
