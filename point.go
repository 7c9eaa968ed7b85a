package fractal

import (
	"errors"
	"fmt"
	"math"
)

// Geometry errors.
var (
	// ErrInvalidPixelRect is returned for pixel rects smaller than 2x2.
	ErrInvalidPixelRect = errors.New("fractal: pixel rect must be at least 2x2")

	// ErrInvalidRegion is returned for complex regions without a positive,
	// finite extent on both axes.
	ErrInvalidRegion = errors.New("fractal: region must have a positive finite size")

	// ErrPointOutsideRect is returned when mapping a pixel that lies outside
	// the pixel rect.
	ErrPointOutsideRect = errors.New("fractal: point outside pixel rect")
)

// Point is a pixel position in image space.
type Point struct {
	X, Y int
}

// PixelRect is a rectangle in image space with inclusive bounds.
// A valid PixelRect is at least 2 pixels wide and 2 pixels high; the zero
// value is a single pixel and therefore invalid.
type PixelRect struct {
	TopLeft     Point
	BottomRight Point
}

// NewPixelRect returns the rect spanning topLeft to bottomRight inclusive.
func NewPixelRect(topLeft, bottomRight Point) (PixelRect, error) {
	r := PixelRect{TopLeft: topLeft, BottomRight: bottomRight}
	if err := r.Validate(); err != nil {
		return PixelRect{}, err
	}
	return r, nil
}

// RectOfSize returns a width x height rect anchored at the origin.
func RectOfSize(width, height int) (PixelRect, error) {
	return NewPixelRect(Point{}, Point{X: width - 1, Y: height - 1})
}

// Width returns the number of pixel columns.
func (r PixelRect) Width() int { return r.BottomRight.X - r.TopLeft.X + 1 }

// Height returns the number of pixel rows.
func (r PixelRect) Height() int { return r.BottomRight.Y - r.TopLeft.Y + 1 }

// Size returns the number of pixels in the rect.
func (r PixelRect) Size() int { return r.Width() * r.Height() }

// Contains reports whether p lies inside the rect.
func (r PixelRect) Contains(p Point) bool {
	return r.TopLeft.X <= p.X && p.X <= r.BottomRight.X &&
		r.TopLeft.Y <= p.Y && p.Y <= r.BottomRight.Y
}

// Validate returns ErrInvalidPixelRect unless the rect is at least 2x2.
func (r PixelRect) Validate() error {
	if r.Width() < 2 || r.Height() < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidPixelRect, r.Width(), r.Height())
	}
	return nil
}

func (r PixelRect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width(), r.Height(), r.TopLeft.X, r.TopLeft.Y)
}

// ComplexRect is a view region of the complex plane. The real axis grows to
// the right and the imaginary axis grows downward, matching image rows.
type ComplexRect struct {
	TopLeft     complex128
	BottomRight complex128
}

// NewComplexRect returns the region between the two corners.
func NewComplexRect(topLeft, bottomRight complex128) (ComplexRect, error) {
	r := ComplexRect{TopLeft: topLeft, BottomRight: bottomRight}
	if err := r.Validate(); err != nil {
		return ComplexRect{}, err
	}
	return r, nil
}

// ComplexRectAround returns the region of the given extent centred on center.
func ComplexRectAround(center complex128, width, height float64) (ComplexRect, error) {
	half := complex(width/2, height/2)
	return NewComplexRect(center-half, center+half)
}

// DefaultRegion is the classic full view of the Mandelbrot set.
func DefaultRegion() ComplexRect {
	return ComplexRect{TopLeft: complex(-2.5, -1), BottomRight: complex(1, 1)}
}

// Width returns the real extent.
func (r ComplexRect) Width() float64 { return real(r.BottomRight) - real(r.TopLeft) }

// Height returns the imaginary extent.
func (r ComplexRect) Height() float64 { return imag(r.BottomRight) - imag(r.TopLeft) }

// Center returns the midpoint of the region.
func (r ComplexRect) Center() complex128 { return (r.TopLeft + r.BottomRight) / 2 }

// Contains reports whether c lies inside the region, edges included.
func (r ComplexRect) Contains(c complex128) bool {
	return real(r.TopLeft) <= real(c) && real(c) <= real(r.BottomRight) &&
		imag(r.TopLeft) <= imag(c) && imag(c) <= imag(r.BottomRight)
}

// IsFinite reports whether both corners and both extents are finite.
func (r ComplexRect) IsFinite() bool {
	for _, v := range [...]float64{
		real(r.TopLeft), imag(r.TopLeft),
		real(r.BottomRight), imag(r.BottomRight),
		r.Width(), r.Height(),
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate returns ErrInvalidRegion unless both extents are positive and finite.
func (r ComplexRect) Validate() error {
	if !r.IsFinite() || !(r.Width() > 0) || !(r.Height() > 0) {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidRegion, r.Width(), r.Height())
	}
	return nil
}

func (r ComplexRect) String() string {
	return fmt.Sprintf("[%v .. %v]", r.TopLeft, r.BottomRight)
}

// PixelToComplex maps p linearly onto region so that the rect corners land on
// the region corners.
func PixelToComplex(p Point, pixels PixelRect, region ComplexRect) (complex128, error) {
	pl, err := newPlane(pixels, region)
	if err != nil {
		return 0, err
	}
	return pl.at(p)
}

// plane caches the pixel-to-complex mapping for one (pixels, region) pair.
type plane struct {
	pixels PixelRect
	origin complex128
	width  float64
	height float64
	cols   float64 // width-1
	rows   float64 // height-1
}

func newPlane(pixels PixelRect, region ComplexRect) (plane, error) {
	if err := pixels.Validate(); err != nil {
		return plane{}, err
	}
	if err := region.Validate(); err != nil {
		return plane{}, err
	}
	return plane{
		pixels: pixels,
		origin: region.TopLeft,
		width:  region.Width(),
		height: region.Height(),
		cols:   float64(pixels.Width() - 1),
		rows:   float64(pixels.Height() - 1),
	}, nil
}

func (pl *plane) at(p Point) (complex128, error) {
	if !pl.pixels.Contains(p) {
		return 0, fmt.Errorf("%w: (%d, %d) not in %v", ErrPointOutsideRect, p.X, p.Y, pl.pixels)
	}
	dx := float64(p.X - pl.pixels.TopLeft.X)
	dy := float64(p.Y - pl.pixels.TopLeft.Y)
	return complex(
		real(pl.origin)+(dx/pl.cols)*pl.width,
		imag(pl.origin)+(dy/pl.rows)*pl.height,
	), nil
}
