package fractal

// Option configures a Renderer during creation.
//
// Example:
//
//	// One goroutine per CPU, built-in fractals
//	r := fractal.NewRenderer()
//
//	// Fixed pool with a custom algorithm source
//	r := fractal.NewRenderer(fractal.WithWorkers(4), fractal.WithResolver(myResolver))
type Option func(*options)

type options struct {
	workers  int
	resolver Resolver
}

func defaultOptions() options {
	return options{
		workers:  0, // GOMAXPROCS
		resolver: DefaultResolver,
	}
}

// WithWorkers sets the number of goroutines rows are spread across.
// Zero or negative uses GOMAXPROCS; 1 runs every row on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResolver sets the source of per-request algorithms and colour maps.
// A nil resolver keeps DefaultResolver.
func WithResolver(r Resolver) Option {
	return func(o *options) {
		if r != nil {
			o.resolver = r
		}
	}
}
