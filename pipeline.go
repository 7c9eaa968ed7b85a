package fractal

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/fractal/internal/cache"
)

// RenderRequest is an immutable description of one frame. It is comparable:
// two requests with equal fields describe the same frame.
type RenderRequest struct {
	Region        ComplexRect
	Pixels        PixelRect
	Fractal       FractalKind
	Gradient      GradientKind
	MaxIterations uint32
}

// DefaultRequest returns the default Mandelbrot view for pixels.
func DefaultRequest(pixels PixelRect) RenderRequest {
	return RenderRequest{
		Region:        DefaultRegion(),
		Pixels:        pixels,
		Fractal:       FractalMandelbrot,
		Gradient:      GradientFire,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate reports structurally invalid requests. Every error wraps
// ErrInvalidRequest and the specific geometry or iteration error.
func (q RenderRequest) Validate() error {
	if err := q.Pixels.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := q.Region.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if q.MaxIterations == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrZeroIterations)
	}
	return nil
}

// Resolver supplies the algorithm and colour map for a validated request.
type Resolver interface {
	Resolve(req RenderRequest) (Algorithm[uint32], ColorMap[uint32], error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(req RenderRequest) (Algorithm[uint32], ColorMap[uint32], error)

// Resolve calls f(req).
func (f ResolverFunc) Resolve(req RenderRequest) (Algorithm[uint32], ColorMap[uint32], error) {
	return f(req)
}

// DefaultResolver builds the built-in fractals and gradients.
var DefaultResolver Resolver = ResolverFunc(resolveBuiltin)

func resolveBuiltin(req RenderRequest) (Algorithm[uint32], ColorMap[uint32], error) {
	var alg Algorithm[uint32]
	switch req.Fractal {
	case FractalMandelbrot:
		m, err := NewMandelbrot(req.Pixels, req.Region, req.MaxIterations)
		if err != nil {
			return nil, nil, err
		}
		alg = m
	case FractalJulia:
		j, err := NewJulia(req.Pixels, req.Region, req.MaxIterations, DefaultJuliaC)
		if err != nil {
			return nil, nil, err
		}
		alg = j
	default:
		return nil, nil, fmt.Errorf("fractal: unsupported fractal %v", req.Fractal)
	}
	switch req.Gradient {
	case GradientFire, GradientBlueWhite:
	default:
		return nil, nil, fmt.Errorf("fractal: unsupported gradient %v", req.Gradient)
	}
	return alg, cachedGradient(req.Gradient, req.MaxIterations), nil
}

// gradientCacheSize bounds the shared gradient tables. Each holds at most
// 64K colours.
const gradientCacheSize = 16

type gradientKey struct {
	kind GradientKind
	max  uint32
}

// gradients holds built tables; a Gradient is read-only once constructed, so
// concurrent renders share them.
var gradients = cache.New[gradientKey, *Gradient](gradientCacheSize)

func cachedGradient(kind GradientKind, maxIterations uint32) *Gradient {
	return gradients.GetOrCreate(gradientKey{kind, maxIterations}, func() *Gradient {
		return NewGradient(kind, maxIterations)
	})
}

// Status is the terminal state of a render.
type Status uint8

const (
	// StatusRendered means both passes completed.
	StatusRendered Status = iota
	// StatusCancelled means the token fired; the work is simply dropped.
	StatusCancelled
	// StatusErrored means validation or a pluggable function failed.
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusCancelled:
		return "cancelled"
	case StatusErrored:
		return "errored"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Stage is the last pipeline stage a render entered.
type Stage uint8

const (
	StageValidating Stage = iota
	StageFractal
	StageColor
)

func (s Stage) String() string {
	switch s {
	case StageValidating:
		return "validating"
	case StageFractal:
		return "fractal"
	case StageColor:
		return "color"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Outcome is the result of Render. Pixels and Rect are set only for
// StatusRendered; Err only for StatusErrored.
type Outcome struct {
	Status   Status
	Stage    Stage
	Pixels   []byte
	Rect     PixelRect
	Duration time.Duration
	Err      error
}

// Render runs one request through validation, the fractal pass and the
// colour pass. Validation failures never touch either pass. The token is
// checked once more between the passes.
func (r *Renderer) Render(req RenderRequest, token CancelToken) Outcome {
	start := time.Now()
	token = orNever(token)

	if err := req.Validate(); err != nil {
		return Outcome{Status: StatusErrored, Stage: StageValidating, Err: err}
	}
	alg, cmap, err := resolve(r.resolverOrDefault(), req)
	if err != nil {
		return Outcome{Status: StatusErrored, Stage: StageValidating, Err: err}
	}

	values, err := ComputeFractal[uint32](r, req.Pixels, alg, token)
	if err != nil {
		return failed(StageFractal, err)
	}
	if token.IsCancelled() {
		return Outcome{Status: StatusCancelled, Stage: StageFractal}
	}

	rgb, err := MapColors(r, values, cmap, req.Pixels, token)
	if err != nil {
		return failed(StageColor, err)
	}

	return Outcome{
		Status:   StatusRendered,
		Stage:    StageColor,
		Pixels:   rgb,
		Rect:     req.Pixels,
		Duration: time.Since(start),
	}
}

func failed(stage Stage, err error) Outcome {
	if errors.Is(err, ErrCancelled) {
		return Outcome{Status: StatusCancelled, Stage: stage}
	}
	return Outcome{Status: StatusErrored, Stage: stage, Err: err}
}

func resolve(res Resolver, req RenderRequest) (alg Algorithm[uint32], cmap ColorMap[uint32], err error) {
	defer func() {
		if v := recover(); v != nil {
			alg, cmap, err = nil, nil, panicError(v)
		}
	}()
	alg, cmap, err = res.Resolve(req)
	if err == nil && (alg == nil || cmap == nil) {
		err = ErrNilCapability
	}
	return alg, cmap, err
}
