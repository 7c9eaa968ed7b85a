// Command fractal renders one view of a fractal to an image file.
//
// The output format follows the file extension: .png, .jpg, .bmp, .tif or
// .ppm.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/imageio"
	"github.com/gogpu/fractal/interactive"
)

func main() {
	var (
		width      = flag.Int("width", 800, "image width")
		height     = flag.Int("height", 600, "image height")
		iterations = flag.Uint("iterations", uint(fractal.DefaultMaxIterations), "iteration bound")
		kind       = flag.String("fractal", "mandelbrot", "fractal: mandelbrot or julia")
		gradient   = flag.String("gradient", "fire", "colour gradient: fire or blue-white")
		zoom       = flag.Float64("zoom", 1, "zoom factor around the view centre")
		output     = flag.String("out", "fractal.png", "output file")
		caption    = flag.Bool("caption", false, "draw the view parameters along the bottom edge")
		thumb      = flag.Int("thumb", 0, "also write a thumbnail with this longest side (0 = none)")
		workers    = flag.Int("workers", 0, "row workers (0 = one per CPU)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	req, err := buildRequest(*width, *height, *iterations, *kind, *gradient, *zoom)
	if err != nil {
		log.Fatalf("fractal: %v", err)
	}

	r := fractal.NewRenderer(fractal.WithWorkers(*workers))
	defer r.Close()

	out := r.Render(req, fractal.NeverCancel)
	if out.Status != fractal.StatusRendered {
		log.Fatalf("fractal: render failed at %s stage: %v", out.Stage, out.Err)
	}

	img, err := imageio.ToNRGBA(out.Rect, out.Pixels)
	if err != nil {
		log.Fatalf("fractal: %v", err)
	}
	if *caption {
		imageio.Caption(img, captionText(req))
	}
	if err := imageio.Save(*output, img); err != nil {
		log.Fatalf("fractal: %v", err)
	}

	thumbPath := ""
	if *thumb > 0 {
		thumbPath = thumbnailPath(*output)
		if err := imageio.Save(thumbPath, imageio.Thumbnail(img, *thumb)); err != nil {
			log.Fatalf("fractal: %v", err)
		}
	}

	p := message.NewPrinter(language.English)
	p.Printf("Rendered %s %dx%d (%d pixels, %d iterations) on %d workers in %v\n",
		req.Fractal, req.Pixels.Width(), req.Pixels.Height(), req.Pixels.Size(),
		req.MaxIterations, r.Workers(), out.Duration.Round(time.Millisecond))
	p.Printf("Saved %s (%d bytes)\n", *output, fileSize(*output))
	if thumbPath != "" {
		p.Printf("Saved %s (%d bytes)\n", thumbPath, fileSize(thumbPath))
	}
}

// buildRequest turns the flags into a validated request.
func buildRequest(width, height int, iterations uint, kind, gradient string, zoom float64) (fractal.RenderRequest, error) {
	px, err := fractal.RectOfSize(width, height)
	if err != nil {
		return fractal.RenderRequest{}, err
	}
	if iterations == 0 || iterations > uint(interactive.MaxIterations) {
		return fractal.RenderRequest{}, fmt.Errorf("iterations must be in [1, %d], got %d", interactive.MaxIterations, iterations)
	}

	v := interactive.NewViewState()
	if v.Fractal, err = fractal.ParseFractalKind(kind); err != nil {
		return fractal.RenderRequest{}, err
	}
	if v.Gradient, err = fractal.ParseGradientKind(gradient); err != nil {
		return fractal.RenderRequest{}, err
	}
	v.SetIterations(uint32(iterations))
	if zoom != 1 {
		if err := v.ZoomAt(0.5, 0.5, zoom); err != nil {
			return fractal.RenderRequest{}, err
		}
	}

	req := v.BuildRequest(px)
	if err := req.Validate(); err != nil {
		return fractal.RenderRequest{}, err
	}
	return req, nil
}

func captionText(req fractal.RenderRequest) string {
	c := req.Region.Center()
	return fmt.Sprintf("%s %s  %d it  c=%.6g%+.6gi  w=%.3g",
		strings.ToLower(req.Fractal.String()), req.Gradient.Slug(),
		req.MaxIterations, real(c), imag(c), req.Region.Width())
}

// thumbnailPath returns "name_thumb.ext" next to path.
func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("stat output", "path", path, "err", err)
		}
		return 0
	}
	return fi.Size()
}
