package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/fractal"
)

// ErrBufferSize is returned when a pixel buffer does not hold exactly three
// bytes per pixel of its rect.
var ErrBufferSize = errors.New("imageio: buffer size does not match rect")

// WritePPM writes rgb as a binary PPM (P6) image of the size of pixels.
func WritePPM(w io.Writer, pixels fractal.PixelRect, rgb []byte) error {
	if err := checkSize(pixels, rgb); err != nil {
		return err
	}
	return writePPM(w, pixels.Width(), pixels.Height(), rgb)
}

func writePPM(w io.Writer, width, height int, rgb []byte) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("imageio: write PPM header: %w", err)
	}
	if _, err := bw.Write(rgb); err != nil {
		return fmt.Errorf("imageio: write PPM data: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("imageio: write PPM data: %w", err)
	}
	return nil
}

// SavePPM writes rgb to path as a binary PPM image.
func SavePPM(path string, pixels fractal.PixelRect, rgb []byte) error {
	if err := checkSize(pixels, rgb); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := WritePPM(f, pixels, rgb); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// encodePPM writes any image as PPM, dropping alpha.
func encodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	return writePPM(w, b.Dx(), b.Dy(), ToRGB(img))
}

// ToRGB packs img into RGB bytes, row-major, dropping alpha.
func ToRGB(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	if n, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := n.Pix[n.PixOffset(b.Min.X, y):n.PixOffset(b.Max.X, y)]
			for i := 0; i < len(row); i += 4 {
				out = append(out, row[i], row[i+1], row[i+2])
			}
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return out
}

// ToNRGBA copies rgb into a new opaque image of the size of pixels. The
// image origin is (0, 0).
func ToNRGBA(pixels fractal.PixelRect, rgb []byte) (*image.NRGBA, error) {
	if err := checkSize(pixels, rgb); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, pixels.Width(), pixels.Height()))
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		img.Pix[j] = rgb[i]
		img.Pix[j+1] = rgb[i+1]
		img.Pix[j+2] = rgb[i+2]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}

func checkSize(pixels fractal.PixelRect, rgb []byte) error {
	if err := pixels.Validate(); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	if want := pixels.Size() * 3; len(rgb) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %v", ErrBufferSize, len(rgb), want, pixels)
	}
	return nil
}
