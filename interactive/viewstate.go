package interactive

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/fractal"
)

// Iteration bounds accepted by ViewState.
const (
	MinIterations uint32 = 1
	MaxIterations uint32 = 1 << 16
)

// ErrInvalidZoom is returned for zoom factors that are not positive and finite.
var ErrInvalidZoom = errors.New("interactive: zoom factor must be positive and finite")

// ViewState is the caller's view of what should be on screen and what was
// last submitted. The controller does not deduplicate requests; ViewState
// does, through ShouldSubmit and RecordSubmission.
//
// ViewState is not safe for concurrent use.
type ViewState struct {
	Region        fractal.ComplexRect
	MaxIterations uint32
	Fractal       fractal.FractalKind
	Gradient      fractal.GradientKind

	lastSubmitted *fractal.RenderRequest
	latestGen     Generation
}

// NewViewState returns the default view.
func NewViewState() *ViewState {
	v := &ViewState{}
	v.ResetView()
	return v
}

// BuildRequest returns the request for the current view rendered at pixels.
func (v *ViewState) BuildRequest(pixels fractal.PixelRect) fractal.RenderRequest {
	return fractal.RenderRequest{
		Region:        v.Region,
		Pixels:        pixels,
		Fractal:       v.Fractal,
		Gradient:      v.Gradient,
		MaxIterations: v.MaxIterations,
	}
}

// ShouldSubmit reports whether req differs from the last submission.
func (v *ViewState) ShouldSubmit(req fractal.RenderRequest) bool {
	return v.lastSubmitted == nil || *v.lastSubmitted != req
}

// RecordSubmission remembers req as submitted under gen.
func (v *ViewState) RecordSubmission(req fractal.RenderRequest, gen Generation) {
	v.lastSubmitted = &req
	v.latestGen = gen
}

// LatestGeneration returns the generation passed to the last RecordSubmission.
func (v *ViewState) LatestGeneration() Generation {
	return v.latestGen
}

// ResetView restores the default region and iteration bound. The fractal
// and gradient selection are kept.
func (v *ViewState) ResetView() {
	v.Region = fractal.DefaultRegion()
	v.MaxIterations = fractal.DefaultMaxIterations
}

// Pan moves the view by dx and dy, given as fractions of the current extent.
// Positive dx moves right, positive dy moves down.
func (v *ViewState) Pan(dx, dy float64) error {
	shift := complex(dx*v.Region.Width(), dy*v.Region.Height())
	r, err := fractal.NewComplexRect(v.Region.TopLeft+shift, v.Region.BottomRight+shift)
	if err != nil {
		return fmt.Errorf("interactive: pan: %w", err)
	}
	v.Region = r
	return nil
}

// ZoomAt scales the view by 1/factor around the point at fractions (fx, fy)
// of the view, which stays in place. factor > 1 zooms in.
func (v *ViewState) ZoomAt(fx, fy, factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidZoom, factor)
	}
	tl := v.Region.TopLeft
	anchor := tl + complex(fx*v.Region.Width(), fy*v.Region.Height())
	scale := complex(1/factor, 0)
	r, err := fractal.NewComplexRect(
		anchor+(tl-anchor)*scale,
		anchor+(v.Region.BottomRight-anchor)*scale,
	)
	if err != nil {
		return fmt.Errorf("interactive: zoom: %w", err)
	}
	v.Region = r
	return nil
}

// SetIterations sets the iteration bound, clamped to [MinIterations, MaxIterations].
func (v *ViewState) SetIterations(n uint32) {
	v.MaxIterations = min(max(n, MinIterations), MaxIterations)
}

// DoubleIterations doubles the iteration bound within the allowed range.
func (v *ViewState) DoubleIterations() {
	v.SetIterations(v.MaxIterations * 2)
}

// HalveIterations halves the iteration bound within the allowed range.
func (v *ViewState) HalveIterations() {
	v.SetIterations(v.MaxIterations / 2)
}
