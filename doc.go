// Package fractal renders escape-time fractals into packed RGB pixel buffers.
//
// # Overview
//
// A render runs two passes over a PixelRect. The fractal pass evaluates an
// Algorithm once per pixel; the colour pass turns the per-pixel values into
// RGB bytes through a ColorMap. Both passes fan rows out across a worker
// pool, keep row-major output order regardless of scheduling, and poll a
// CancelToken so superseded work stops within CancelCheckInterval pixels.
//
// # Quick Start
//
//	import "github.com/gogpu/fractal"
//
//	r := fractal.NewRenderer()
//	defer r.Close()
//
//	pixels, _ := fractal.RectOfSize(800, 600)
//	out := r.Render(fractal.DefaultRequest(pixels), fractal.NeverCancel)
//	if out.Status != fractal.StatusRendered {
//		log.Fatal(out.Err)
//	}
//	// out.Pixels holds 800*600*3 bytes
//
// # Pluggable capabilities
//
// Algorithms and colour maps are one-method interfaces. Renderer asks its
// Resolver for both per request; DefaultResolver knows the built-in
// Mandelbrot and Julia algorithms and the Fire and Blue-white gradients.
// AlgorithmFunc and ColorMapFunc adapt plain functions.
//
// # Interactive rendering
//
// The interactive sub-package drives a Renderer from a single background
// worker that always converges on the most recent request. Its cancellation
// tokens are built with CancelFunc, so the passes themselves know nothing
// about generations or shutdown.
//
// # Coordinate System
//
//   - Pixel (0,0) is the top-left corner, X grows right, Y grows down
//   - PixelRect bounds are inclusive
//   - ComplexRect maps the top-left pixel onto its TopLeft corner and the
//     bottom-right pixel onto its BottomRight corner
package fractal

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
