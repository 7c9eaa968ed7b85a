// Package httpview serves a live view of an interactive session over HTTP.
//
// It exposes the latest presented frame as an image, a JSON status document
// and a small JSON control endpoint that pans, zooms and retunes the view.
package httpview

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/interactive"
)

// Controller is the part of *interactive.Controller the server drives.
type Controller interface {
	Submit(req fractal.RenderRequest) interactive.Generation
	CurrentGeneration() interactive.Generation
	Stats() interactive.Stats
}

// Server owns the view state of one session and submits changes to the
// controller. It is safe for concurrent use.
type Server struct {
	ctrl   Controller
	pres   *interactive.Presenter
	logger *slog.Logger

	mu   sync.Mutex
	view *interactive.ViewState
}

// New returns a server for ctrl, showing frames accepted by pres. The
// render size follows pres.Size. A nil logger uses fractal.Logger.
func New(ctrl Controller, pres *interactive.Presenter, logger *slog.Logger) *Server {
	return &Server{
		ctrl:   ctrl,
		pres:   pres,
		logger: logger,
		view:   interactive.NewViewState(),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/status", s.status)
	r.Get("/frame.{format}", s.frame)
	r.Post("/view", s.updateView)
	return r
}

// Request returns the request for the current view at the presenter size.
func (s *Server) Request() fractal.RenderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestLocked()
}

// Mutate runs fn on the view state under the server lock. It does not
// submit; call Refresh or Submit afterwards.
func (s *Server) Mutate(fn func(v *interactive.ViewState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.view)
}

// Submit hands req to the controller unless it equals the last submission.
// It returns the generation of req, or of the earlier identical submission.
func (s *Server) Submit(req fractal.RenderRequest) interactive.Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, _ := s.submitLocked(req)
	return gen
}

// Refresh submits the current view if it changed since the last submission.
func (s *Server) Refresh() (interactive.Generation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(s.requestLocked())
}

func (s *Server) requestLocked() fractal.RenderRequest {
	w, h := s.pres.Size()
	px, err := fractal.RectOfSize(w, h)
	if err != nil {
		// Leave the zero rect; the controller reports it as an invalid request.
		s.log().Warn("httpview: invalid target size", "width", w, "height", h)
	}
	return s.view.BuildRequest(px)
}

func (s *Server) submitLocked(req fractal.RenderRequest) (interactive.Generation, bool) {
	if !s.view.ShouldSubmit(req) {
		return s.view.LatestGeneration(), false
	}
	gen := s.ctrl.Submit(req)
	s.view.RecordSubmission(req, gen)
	return gen, true
}

// logRequests logs each request through slog once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelDebug
		switch {
		case ww.Status() >= 500:
			level = slog.LevelError
		case ww.Status() >= 400:
			level = slog.LevelWarn
		}
		s.log().Log(r.Context(), level, "httpview: request completed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"size", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return fractal.Logger()
}
