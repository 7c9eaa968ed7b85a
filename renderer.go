package fractal

import (
	"github.com/gogpu/fractal/internal/parallel"
)

// Renderer owns the worker pool the passes fan rows out on and the resolver
// that turns requests into capabilities.
//
// A Renderer is safe for concurrent use. The nil *Renderer is usable and
// renders sequentially with DefaultResolver.
type Renderer struct {
	pool     *parallel.WorkerPool
	resolver Resolver
}

// NewRenderer creates a Renderer. Call Close to stop its goroutines.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{resolver: o.resolver}
	if o.workers != 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}

	Logger().Debug("renderer created", "workers", r.Workers())
	return r
}

// Workers returns the number of goroutines rows are spread across.
func (r *Renderer) Workers() int {
	if r == nil || r.pool == nil {
		return 1
	}
	return r.pool.Workers()
}

// Close stops the worker pool. Renders started afterwards run sequentially.
func (r *Renderer) Close() {
	if r != nil && r.pool != nil {
		r.pool.Close()
	}
}

func (r *Renderer) eachRow(rows int, fn func(row int)) {
	if r == nil || r.pool == nil {
		for row := range rows {
			fn(row)
		}
		return
	}
	r.pool.ForEach(rows, fn)
}

func (r *Renderer) resolverOrDefault() Resolver {
	if r == nil || r.resolver == nil {
		return DefaultResolver
	}
	return r.resolver
}
