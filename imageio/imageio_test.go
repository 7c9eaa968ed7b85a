package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fractal"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func rectOf(t *testing.T, w, h int) fractal.PixelRect {
	t.Helper()
	r, err := fractal.RectOfSize(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// ramp returns w*h RGB pixels whose channels encode the pixel position.
func ramp(w, h int) []byte {
	out := make([]byte, 0, w*h*3)
	for y := range h {
		for x := range w {
			out = append(out, byte(x*10), byte(y*10), byte(x+y))
		}
	}
	return out
}

// =============================================================================
// PPM
// =============================================================================

func TestWritePPM(t *testing.T) {
	rgb := ramp(2, 3)
	var buf bytes.Buffer
	if err := WritePPM(&buf, rectOf(t, 2, 3), rgb); err != nil {
		t.Fatal(err)
	}

	header := "P6\n2 3\n255\n"
	got := buf.Bytes()
	if string(got[:len(header)]) != header {
		t.Errorf("header = %q, want %q", got[:len(header)], header)
	}
	if !bytes.Equal(got[len(header):], rgb) {
		t.Error("pixel data differs")
	}
}

func TestWritePPMSizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WritePPM(&buf, rectOf(t, 2, 2), make([]byte, 11))
	if !errors.Is(err, ErrBufferSize) {
		t.Errorf("error = %v, want ErrBufferSize", err)
	}
	if buf.Len() != 0 {
		t.Error("bytes written for a bad buffer")
	}
}

func TestSavePPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := SavePPM(path, rectOf(t, 4, 2), ramp(4, 2)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := len("P6\n4 2\n255\n") + 24; len(data) != want {
		t.Errorf("file size = %d, want %d", len(data), want)
	}
}

// =============================================================================
// NRGBA conversion
// =============================================================================

func TestToNRGBA(t *testing.T) {
	img, err := ToNRGBA(rectOf(t, 3, 2), ramp(3, 2))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Bounds() = %v", img.Bounds())
	}
	want := color.NRGBA{R: 20, G: 10, B: 3, A: 255}
	if got := img.NRGBAAt(2, 1); got != want {
		t.Errorf("NRGBAAt(2, 1) = %v, want %v", got, want)
	}
	if !bytes.Equal(ToRGB(img), ramp(3, 2)) {
		t.Error("ToRGB(ToNRGBA(x)) != x")
	}

	if _, err := ToNRGBA(rectOf(t, 3, 2), ramp(2, 2)); !errors.Is(err, ErrBufferSize) {
		t.Errorf("error = %v, want ErrBufferSize", err)
	}
}

func TestToRGBGenericImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	if got, want := ToRGB(img), []byte{0, 0, 0, 1, 2, 3}; !bytes.Equal(got, want) {
		t.Errorf("ToRGB() = %v, want %v", got, want)
	}
}

// =============================================================================
// Encoders
// =============================================================================

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.png", FormatPNG},
		{"dir/B.PNG", FormatPNG},
		{"c.jpg", FormatJPEG},
		{"c.jpeg", FormatJPEG},
		{"d.bmp", FormatBMP},
		{"e.tif", FormatTIFF},
		{"e.tiff", FormatTIFF},
		{"f.ppm", FormatPPM},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}

	for _, bad := range []string{"x.gif", "noext", ""} {
		if _, err := FormatFromPath(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v", bad, err)
		}
	}
}

func TestEncodeLossless(t *testing.T) {
	src, err := ToNRGBA(rectOf(t, 5, 4), ramp(5, 4))
	if err != nil {
		t.Fatal(err)
	}
	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		FormatTIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, format, src); err != nil {
				t.Fatal(err)
			}
			got, err := decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(ToRGB(got), ToRGB(src)) {
				t.Error("decoded pixels differ")
			}
		})
	}
}

func TestEncodeJPEGAndPPM(t *testing.T) {
	src, err := ToNRGBA(rectOf(t, 8, 8), ramp(8, 8))
	if err != nil {
		t.Fatal(err)
	}

	var jpg bytes.Buffer
	if err := Encode(&jpg, FormatJPEG, src); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(jpg.Bytes(), []byte{0xff, 0xd8}) {
		t.Error("JPEG output lacks the SOI marker")
	}

	var ppm bytes.Buffer
	if err := Encode(&ppm, FormatPPM, src); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(ppm.Bytes(), []byte("P6\n8 8\n255\n")) {
		t.Errorf("PPM header = %q", ppm.Bytes()[:12])
	}
}

func TestEncodeUnsupported(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Format("gif"), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img, err := ToNRGBA(rectOf(t, 3, 3), ramp(3, 3))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "view.png")
	if err := Save(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a PNG: %v", err)
	}

	if err := Save(filepath.Join(dir, "view.gif"), img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.gif) error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "view.gif")); !os.IsNotExist(err) {
		t.Error("file created for an unsupported format")
	}
}

// =============================================================================
// Caption and thumbnail
// =============================================================================

func TestCaption(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 60))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	Caption(img, "mandelbrot")

	if got := img.NRGBAAt(60, 0); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("top pixel changed to %v", got)
	}
	// The bar darkens the bottom-right corner, which the text does not reach.
	if got := img.NRGBAAt(119, 59); got.R >= 0xff {
		t.Errorf("bottom-right pixel not darkened: %v", got)
	}

	plain := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	Caption(plain, "")
	for _, v := range plain.Pix {
		if v != 0 {
			t.Fatal("empty caption drew something")
		}
	}
}

func TestCaptionWidth(t *testing.T) {
	if got := CaptionWidth("abcd"); got != 4*7 {
		t.Errorf("CaptionWidth() = %d, want 28", got)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 200, 400, 100, 50, 100},
		{"already fits", 80, 60, 100, 80, 60},
		{"no limit", 80, 60, 0, 80, 60},
		{"thin", 1000, 2, 100, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Thumbnail(src, tt.max)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %v, want %dx%d", got.Bounds().Size(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestThumbnailKeepsFlatColour(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	for y := range 32 {
		for x := range 64 {
			src.SetNRGBA(x, y, c)
		}
	}
	got := Thumbnail(src, 16)
	px := got.NRGBAAt(8, 4)
	for i, pair := range [][2]uint8{{px.R, c.R}, {px.G, c.G}, {px.B, c.B}, {px.A, c.A}} {
		if d := int(pair[0]) - int(pair[1]); d < -1 || d > 1 {
			t.Errorf("channel %d = %d, want %d", i, pair[0], pair[1])
		}
	}
}
