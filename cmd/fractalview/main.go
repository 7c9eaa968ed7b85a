// Command fractalview runs an interactive fractal session behind an HTTP
// live view.
//
// Open http://localhost:8080/frame.png for the latest frame and POST JSON to
// /view to pan, zoom or retune it:
//
//	curl -d '{"zoom": 2, "pan_x": 0.1}' localhost:8080/view
//
// With -fly the view also flies a scripted course for the given time, which
// exercises the coalescing path of the controller.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/flight"
	"github.com/gogpu/fractal/internal/httpview"
	"github.com/gogpu/fractal/interactive"
)

const shutdownTimeout = 5 * time.Second

func main() {
	var (
		addr    = flag.String("addr", ":8080", "HTTP listen address")
		width   = flag.Int("width", 640, "frame width")
		height  = flag.Int("height", 480, "frame height")
		workers = flag.Int("workers", 0, "row workers (0 = one per CPU)")
		fly     = flag.Duration("fly", 0, "fly a scripted course for this long (0 = off)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(logger)

	if _, err := fractal.RectOfSize(*width, *height); err != nil {
		log.Fatalf("fractalview: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink := interactive.NewLatestSink()
	ctrl := interactive.NewController(sink,
		interactive.WithRendererOptions(fractal.WithWorkers(*workers)),
		interactive.WithLogger(logger))
	defer ctrl.Shutdown()

	pres := interactive.NewPresenter(sink, *width, *height)
	go present(ctx, sink, pres, logger)

	srv := httpview.New(ctrl, pres, logger)
	srv.Refresh()

	if *fly > 0 {
		go flyCourse(ctx, srv, pres, *fly, logger)
	}

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("fractalview: listening", "addr", *addr, "width", *width, "height", *height)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("fractalview: shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("fractalview: server failed", "err", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("fractalview: http shutdown", "err", err)
	}
}

// present moves events from sink into pres until ctx is done.
func present(ctx context.Context, sink *interactive.LatestSink, pres *interactive.Presenter, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sink.Notify():
			if f, ok := pres.Poll(); ok {
				logger.Debug("fractalview: frame presented",
					"generation", f.Generation, "duration", f.Duration)
			} else if msg := pres.LastError(); msg != "" {
				logger.Debug("fractalview: render error", "message", msg)
			}
		}
	}
}

// flyCourse drives the view along a scripted course for d, one simulator
// step per display tick, and then brings it to rest.
func flyCourse(ctx context.Context, srv *httpview.Server, pres *interactive.Presenter, d time.Duration, logger *slog.Logger) {
	limits := flight.DefaultLimits()
	sim := flight.NewSimulator(limits)
	var sched interactive.Scheduler

	ticker := time.NewTicker(time.Second / time.Duration(limits.TickHz))
	defer ticker.Stop()

	start := time.Now()
	last := start
	update := func(m flight.Motion, dt float64, l flight.Limits) flight.UpdateReport {
		var rep flight.UpdateReport
		_ = srv.Mutate(func(v *interactive.ViewState) error {
			v.Region, rep = flight.StepFlight(v.Region, m, dt, l)
			return nil
		})
		return rep
	}

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			flown := now.Sub(start)
			if flown >= d {
				sim.ResetMotion()
				sched.Flush(pres.LastGeneration(), srv.Submit)
				logger.Info("fractalview: flight finished", "view", srv.Request().Region)
				return
			}

			res := sim.Advance(now.Sub(last), func() flight.Controls { return course(flown) }, update)
			last = now
			if res.Status.LastWarning != flight.WarningNone {
				logger.Debug("fractalview: flight warning", "warning", res.Status.LastWarning)
			}

			if res.StateChanged {
				sched.Update(srv.Request(), sim.Active(), pres.LastGeneration(), srv.Submit)
			} else {
				sched.Flush(pres.LastGeneration(), srv.Submit)
			}
		}
	}
}

// coursePhase is how long each leg of the scripted course lasts.
const coursePhase = time.Second

// course returns the scripted controls at time t into the flight: speed up
// heading up, bank right, slow down heading down, bank left, and repeat.
func course(t time.Duration) flight.Controls {
	switch (t / coursePhase) % 4 {
	case 0:
		return flight.Controls{W: true, Accelerate: true}
	case 1:
		return flight.Controls{D: true}
	case 2:
		return flight.Controls{S: true, Decelerate: true}
	default:
		return flight.Controls{A: true}
	}
}
