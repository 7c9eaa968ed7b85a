// Package imageio writes rendered frames to files.
//
// Frames come out of the renderer as packed RGB bytes in row-major order.
// WritePPM streams them unchanged as binary PPM. ToNRGBA wraps them as an
// image.Image for the other encoders (PNG, JPEG, BMP and TIFF), and Caption
// and Thumbnail post-process that image before it is saved:
//
//	img, err := imageio.ToNRGBA(out.Rect, out.Pixels)
//	if err != nil {
//	    return err
//	}
//	imageio.Caption(img, "mandelbrot 256 iterations")
//	return imageio.Save("view.png", img)
package imageio
