package flight

import (
	"math"

	"github.com/gogpu/fractal"
)

// StepFlight moves region along m for one tick of length dt.
//
// The shift is heading × speed × dt, scaled by the region's own width and
// height. Afterwards the centre is clamped to ±MaxCenter and the extents are
// rescaled into [MinExtent, MaxExtent] around the centre, keeping the aspect
// ratio. If the region stops being finite at any point it is replaced by
// fractal.DefaultRegion. A paused or stationary motion returns region
// unchanged.
func StepFlight(region fractal.ComplexRect, m Motion, dt float64, l Limits) (fractal.ComplexRect, UpdateReport) {
	var rep UpdateReport
	if m.Paused || m.Speed == 0 {
		return region, rep
	}

	reset := func() (fractal.ComplexRect, UpdateReport) {
		rep.mark(WarningNonFiniteReset)
		return fractal.DefaultRegion(), rep
	}

	shift := complex(
		m.Heading[0]*m.Speed*dt*region.Width(),
		m.Heading[1]*m.Speed*dt*region.Height(),
	)
	r, err := fractal.NewComplexRect(region.TopLeft+shift, region.BottomRight+shift)
	if err != nil {
		return reset()
	}

	limit := math.Abs(l.MaxCenter)
	c := r.Center()
	cr := min(max(real(c), -limit), limit)
	ci := min(max(imag(c), -limit), limit)
	if cr != real(c) || ci != imag(c) {
		if r, err = fractal.ComplexRectAround(complex(cr, ci), r.Width(), r.Height()); err != nil {
			return reset()
		}
		rep.mark(WarningCenterClamped)
	}

	lo := min(l.MinExtent, l.MaxExtent)
	hi := max(l.MinExtent, l.MaxExtent)
	w, h := r.Width(), r.Height()

	scale := 1.0
	switch {
	case w < lo || h < lo:
		scale = max(ratioBelow(lo, w), ratioBelow(lo, h))
	case w > hi || h > hi:
		scale = min(ratioAbove(hi, w), ratioAbove(hi, h))
	}
	if scale != 1 {
		if r, err = fractal.ComplexRectAround(r.Center(), w*scale, h*scale); err != nil {
			return reset()
		}
		rep.mark(WarningExtentClamped)
	}

	if !r.IsFinite() {
		return reset()
	}
	return r, rep
}

// ratioBelow returns the factor that lifts v to lo, or 1 when v is not below.
func ratioBelow(lo, v float64) float64 {
	if v < lo {
		return lo / v
	}
	return 1
}

// ratioAbove returns the factor that brings v down to hi, or 1 when v is not above.
func ratioAbove(hi, v float64) float64 {
	if v > hi {
		return hi / v
	}
	return 1
}
