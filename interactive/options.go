package interactive

import (
	"log/slog"

	"github.com/gogpu/fractal"
)

// Pipeline renders one request. *fractal.Renderer implements it.
type Pipeline interface {
	Render(req fractal.RenderRequest, token fractal.CancelToken) fractal.Outcome
}

// Option configures a Controller during creation.
//
// Example:
//
//	// Default renderer on every CPU
//	c := interactive.NewController(sink)
//
//	// Two row workers and a dedicated logger
//	c := interactive.NewController(sink,
//	    interactive.WithRendererOptions(fractal.WithWorkers(2)),
//	    interactive.WithLogger(logger))
type Option func(*options)

type options struct {
	pipeline     Pipeline
	rendererOpts []fractal.Option
	logger       *slog.Logger
}

// WithPipeline renders through p instead of a Renderer owned by the
// controller. The caller keeps ownership of p.
func WithPipeline(p Pipeline) Option {
	return func(o *options) {
		o.pipeline = p
	}
}

// WithRendererOptions passes opts to the Renderer the controller creates
// when no pipeline is given.
func WithRendererOptions(opts ...fractal.Option) Option {
	return func(o *options) {
		o.rendererOpts = append(o.rendererOpts, opts...)
	}
}

// WithLogger sets the logger. By default the controller logs through
// fractal.Logger at use time.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
