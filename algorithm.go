package fractal

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxIterations is the iteration bound used by default views.
const DefaultMaxIterations uint32 = 256

// DefaultJuliaC is the Julia set parameter used when none is given.
const DefaultJuliaC = complex(-0.7, 0.27)

// escapeRadiusSq is |z|^2 beyond which an orbit is treated as escaped.
const escapeRadiusSq = 4.0

// ErrZeroIterations is returned when an iteration bound of zero is requested.
var ErrZeroIterations = errors.New("fractal: max iterations must be greater than zero")

// Algorithm computes one value per pixel. Compute is called concurrently from
// several goroutines and must not mutate shared state.
type Algorithm[T any] interface {
	Compute(p Point) (T, error)
}

// AlgorithmFunc adapts a function to the Algorithm interface.
type AlgorithmFunc[T any] func(p Point) (T, error)

// Compute calls f(p).
func (f AlgorithmFunc[T]) Compute(p Point) (T, error) { return f(p) }

// FractalKind selects a built-in escape-time algorithm.
type FractalKind uint8

const (
	// FractalMandelbrot iterates z = z^2 + c from z = 0 with c taken from the pixel.
	FractalMandelbrot FractalKind = iota

	// FractalJulia iterates z = z^2 + C from the pixel with a fixed C.
	FractalJulia
)

// FractalKinds returns every built-in kind, default first.
func FractalKinds() []FractalKind {
	return []FractalKind{FractalMandelbrot, FractalJulia}
}

func (k FractalKind) String() string {
	switch k {
	case FractalMandelbrot:
		return "Mandelbrot"
	case FractalJulia:
		return "Julia"
	default:
		return fmt.Sprintf("FractalKind(%d)", uint8(k))
	}
}

// ParseFractalKind parses a kind name case-insensitively.
func ParseFractalKind(s string) (FractalKind, error) {
	for _, k := range FractalKinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("fractal: unknown fractal %q", s)
}

// Mandelbrot is the escape-time Mandelbrot algorithm. Compute returns the
// iteration at which the orbit escaped, or the bound if it never did.
type Mandelbrot struct {
	plane         plane
	maxIterations uint32
}

// NewMandelbrot returns the Mandelbrot algorithm mapping pixels onto region.
func NewMandelbrot(pixels PixelRect, region ComplexRect, maxIterations uint32) (*Mandelbrot, error) {
	if maxIterations == 0 {
		return nil, ErrZeroIterations
	}
	pl, err := newPlane(pixels, region)
	if err != nil {
		return nil, err
	}
	return &Mandelbrot{plane: pl, maxIterations: maxIterations}, nil
}

// Compute implements Algorithm.
func (m *Mandelbrot) Compute(p Point) (uint32, error) {
	c, err := m.plane.at(p)
	if err != nil {
		return 0, err
	}
	return escapeTime(0, c, m.maxIterations), nil
}

// MaxIterations returns the iteration bound.
func (m *Mandelbrot) MaxIterations() uint32 { return m.maxIterations }

// Julia is the escape-time Julia algorithm for a fixed parameter C.
type Julia struct {
	plane         plane
	maxIterations uint32
	c             complex128
}

// NewJulia returns the Julia algorithm for parameter c mapping pixels onto region.
func NewJulia(pixels PixelRect, region ComplexRect, maxIterations uint32, c complex128) (*Julia, error) {
	if maxIterations == 0 {
		return nil, ErrZeroIterations
	}
	pl, err := newPlane(pixels, region)
	if err != nil {
		return nil, err
	}
	return &Julia{plane: pl, maxIterations: maxIterations, c: c}, nil
}

// Compute implements Algorithm.
func (j *Julia) Compute(p Point) (uint32, error) {
	z, err := j.plane.at(p)
	if err != nil {
		return 0, err
	}
	return escapeTime(z, j.c, j.maxIterations), nil
}

// C returns the Julia parameter.
func (j *Julia) C() complex128 { return j.c }

// MaxIterations returns the iteration bound.
func (j *Julia) MaxIterations() uint32 { return j.maxIterations }

func escapeTime(z, c complex128, maxIterations uint32) uint32 {
	for i := range maxIterations {
		if real(z)*real(z)+imag(z)*imag(z) > escapeRadiusSq {
			return i
		}
		z = z*z + c
	}
	return maxIterations
}
