package fractal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIterationsExceedMax is returned by gradients for values above their bound.
var ErrIterationsExceedMax = errors.New("fractal: iterations exceed maximum")

// maxLUTEntries bounds the precomputed table; larger bounds shade on demand.
const maxLUTEntries = 1 << 16

// GradientKind selects a built-in iteration-count colour gradient.
type GradientKind uint8

const (
	// GradientFire runs black, red, orange, yellow, white.
	GradientFire GradientKind = iota

	// GradientBlueWhite is a smooth polynomial blend through blue and white.
	GradientBlueWhite
)

// Gradients returns every built-in gradient, default first.
func Gradients() []GradientKind {
	return []GradientKind{GradientFire, GradientBlueWhite}
}

// String returns the display name.
func (k GradientKind) String() string {
	switch k {
	case GradientFire:
		return "Fire gradient"
	case GradientBlueWhite:
		return "Blue-white gradient"
	default:
		return fmt.Sprintf("GradientKind(%d)", uint8(k))
	}
}

// Slug returns the short flag-friendly name.
func (k GradientKind) Slug() string {
	switch k {
	case GradientFire:
		return "fire"
	case GradientBlueWhite:
		return "blue-white"
	default:
		return ""
	}
}

// ParseGradientKind accepts a slug or display name, case-insensitively.
func ParseGradientKind(s string) (GradientKind, error) {
	for _, k := range Gradients() {
		if strings.EqualFold(s, k.Slug()) || strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("fractal: unknown gradient %q", s)
}

// Gradient maps iteration counts in [0, max] to colours. The bound itself is
// black. Tables for bounds up to 65536 are built once at construction.
type Gradient struct {
	kind GradientKind
	max  uint32
	lut  []RGB
}

// NewGradient returns the gradient of the given kind for maxIterations.
func NewGradient(kind GradientKind, maxIterations uint32) *Gradient {
	g := &Gradient{kind: kind, max: maxIterations}
	if maxIterations < maxLUTEntries {
		g.lut = make([]RGB, maxIterations+1)
		for i := range g.lut {
			g.lut[i] = g.shade(uint32(i)) //nolint:gosec // G115: i <= maxIterations
		}
	}
	return g
}

// Kind returns the gradient kind.
func (g *Gradient) Kind() GradientKind { return g.kind }

// MaxIterations returns the bound mapped to black.
func (g *Gradient) MaxIterations() uint32 { return g.max }

// Map implements ColorMap.
func (g *Gradient) Map(iterations uint32) (RGB, error) {
	if iterations > g.max {
		return RGB{}, fmt.Errorf("%w: iterations %d exceeds maximum %d",
			ErrIterationsExceedMax, iterations, g.max)
	}
	if g.lut != nil {
		return g.lut[iterations], nil
	}
	return g.shade(iterations), nil
}

func (g *Gradient) shade(iterations uint32) RGB {
	if iterations >= g.max {
		return Black
	}
	t := float64(iterations) / float64(g.max)
	switch g.kind {
	case GradientBlueWhite:
		return blueWhite(t)
	default:
		return fire(t)
	}
}

func blueWhite(t float64) RGB {
	u := 1 - t
	return RGB{
		R: uint8(9 * u * t * t * t * 255),
		G: uint8(15 * u * u * t * t * 255),
		B: uint8(8.5 * u * u * u * t * 255),
	}
}

func fire(t float64) RGB {
	switch {
	case t < 0.25:
		return RGB{R: uint8(t / 0.25 * 255)}
	case t < 0.5:
		return RGB{R: 255, G: uint8((t - 0.25) / 0.25 * 165)}
	case t < 0.75:
		return RGB{R: 255, G: uint8(165 + (t-0.5)/0.25*90)}
	default:
		return RGB{R: 255, G: 255, B: uint8((t - 0.75) / 0.25 * 255)}
	}
}
