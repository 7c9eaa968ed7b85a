package interactive

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/fractal"
)

// job is the content of the pending slot.
type job struct {
	gen Generation
	req fractal.RenderRequest
}

// Stats counts what the worker did. Rendered, Cancelled and Errored count
// pipeline outcomes; Emitted counts events handed to the sink; Stale counts
// finished results dropped because a newer generation had arrived.
type Stats struct {
	Rendered  uint64 `json:"rendered"`
	Cancelled uint64 `json:"cancelled"`
	Errored   uint64 `json:"errored"`
	Emitted   uint64 `json:"emitted"`
	Stale     uint64 `json:"stale"`
}

type counters struct {
	rendered  atomic.Uint64
	cancelled atomic.Uint64
	errored   atomic.Uint64
	emitted   atomic.Uint64
	stale     atomic.Uint64
}

// Controller renders the most recently submitted request on a single worker
// goroutine.
//
// Submit never blocks on rendering. Older work is cancelled when a newer
// request arrives, and only results whose generation is still current reach
// the sink. Several controllers can run side by side; they share nothing.
type Controller struct {
	sink     FrameSink
	pipeline Pipeline
	owned    *fractal.Renderer // closed on Shutdown when created here
	logger   *slog.Logger

	generation atomic.Uint64
	shutdown   atomic.Bool

	mu      sync.Mutex
	wake    *sync.Cond
	pending *job

	stopOnce sync.Once
	done     chan struct{}

	stats counters
}

// NewController starts a controller that delivers events to sink.
// Call Shutdown to stop it.
func NewController(sink FrameSink, opts ...Option) *Controller {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		sink:     sink,
		pipeline: o.pipeline,
		logger:   o.logger,
		done:     make(chan struct{}),
	}
	if c.sink == nil {
		c.sink = SinkFunc(func(Event) {})
	}
	if c.pipeline == nil {
		c.owned = fractal.NewRenderer(o.rendererOpts...)
		c.pipeline = c.owned
	}
	c.wake = sync.NewCond(&c.mu)

	go c.run()
	c.log().Info("interactive: controller started")
	return c
}

// Submit replaces any pending request with req and returns its generation.
// Work on older generations is cancelled. Identical consecutive requests
// still get new generations; callers that want to skip them use ViewState.
func (c *Controller) Submit(req fractal.RenderRequest) Generation {
	c.mu.Lock()
	gen := Generation(c.generation.Add(1))
	if c.pending != nil {
		c.log().Debug("interactive: coalesced pending request",
			"replaced", c.pending.gen, "generation", gen)
	}
	c.pending = &job{gen: gen, req: req}
	c.mu.Unlock()

	c.wake.Signal()
	return gen
}

// CurrentGeneration returns the generation of the latest Submit, or 0.
func (c *Controller) CurrentGeneration() Generation {
	return Generation(c.generation.Load())
}

// Shutdown stops the worker and waits for it to exit. A render in flight is
// cancelled. No event is delivered after Shutdown returns. Shutdown is safe
// to call more than once and from several goroutines.
func (c *Controller) Shutdown() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.shutdown.Store(true)
		c.pending = nil
		c.mu.Unlock()
		c.wake.Broadcast()
	})
	<-c.done
}

// Done is closed once the worker has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Stats returns a snapshot of the worker counters.
func (c *Controller) Stats() Stats {
	return Stats{
		Rendered:  c.stats.rendered.Load(),
		Cancelled: c.stats.cancelled.Load(),
		Errored:   c.stats.errored.Load(),
		Emitted:   c.stats.emitted.Load(),
		Stale:     c.stats.stale.Load(),
	}
}

func (c *Controller) run() {
	defer func() {
		if c.owned != nil {
			c.owned.Close()
		}
		c.log().Info("interactive: controller stopped")
		close(c.done)
	}()

	for {
		j, ok := c.next()
		if !ok {
			return
		}
		c.process(j)
	}
}

// next blocks until a request is pending or shutdown is requested, and takes
// the pending request.
func (c *Controller) next() (job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pending == nil && !c.shutdown.Load() {
		c.wake.Wait()
	}
	if c.shutdown.Load() {
		return job{}, false
	}
	j := *c.pending
	c.pending = nil
	return j, true
}

// current reports whether gen is still the latest generation and the
// controller is running.
func (c *Controller) current(gen Generation) bool {
	return !c.shutdown.Load() && Generation(c.generation.Load()) == gen
}

func (c *Controller) process(j job) {
	token := fractal.CancelFunc(func() bool { return !c.current(j.gen) })
	out := c.render(j.req, token)

	switch out.Status {
	case fractal.StatusRendered:
		c.stats.rendered.Add(1)
		if !c.current(j.gen) {
			c.stats.stale.Add(1)
			c.log().Debug("interactive: dropped stale frame", "generation", j.gen)
			return
		}
		c.emit(Frame{
			Generation: j.gen,
			Rect:       out.Rect,
			Pixels:     out.Pixels,
			Duration:   out.Duration,
		})

	case fractal.StatusCancelled:
		c.stats.cancelled.Add(1)
		c.log().Debug("interactive: render cancelled", "generation", j.gen, "stage", out.Stage)

	default:
		c.stats.errored.Add(1)
		if !c.current(j.gen) {
			c.stats.stale.Add(1)
			return
		}
		msg := "render failed"
		if out.Err != nil {
			msg = out.Err.Error()
		}
		c.log().Debug("interactive: render failed", "generation", j.gen, "stage", out.Stage, "err", out.Err)
		c.emit(ErrorMessage{Generation: j.gen, Message: msg})
	}
}

// render runs the pipeline, turning a panic into an errored outcome so one
// bad pipeline cannot stop the worker.
func (c *Controller) render(req fractal.RenderRequest, token fractal.CancelToken) (out fractal.Outcome) {
	defer func() {
		if v := recover(); v != nil {
			c.log().Warn("interactive: pipeline panicked", "panic", v)
			out = fractal.Outcome{Status: fractal.StatusErrored, Err: panicError(v)}
		}
	}()
	return c.pipeline.Render(req, token)
}

func (c *Controller) emit(ev Event) {
	defer func() {
		if v := recover(); v != nil {
			c.log().Warn("interactive: sink panicked", "generation", ev.EventGeneration(), "panic", v)
		}
	}()
	c.sink.Submit(ev)
	c.stats.emitted.Add(1)
}

func (c *Controller) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return fractal.Logger()
}
