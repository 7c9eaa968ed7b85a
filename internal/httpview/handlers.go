package httpview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/imageio"
	"github.com/gogpu/fractal/interactive"
)

// errorEnvelope is the body of every error response.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ViewRequest is the body of POST /view. Absent fields leave the view
// unchanged. Reset is applied first, then the selections, then pan and zoom.
type ViewRequest struct {
	Reset      bool     `json:"reset,omitempty"`
	Fractal    *string  `json:"fractal,omitempty"`
	Gradient   *string  `json:"gradient,omitempty"`
	Iterations *uint32  `json:"iterations,omitempty"`
	PanX       float64  `json:"pan_x,omitempty"`
	PanY       float64  `json:"pan_y,omitempty"`
	Zoom       *float64 `json:"zoom,omitempty"`
}

// View describes the current view in responses.
type View struct {
	Center     [2]float64 `json:"center"`
	Extent     [2]float64 `json:"extent"`
	Iterations uint32     `json:"iterations"`
	Fractal    string     `json:"fractal"`
	Gradient   string     `json:"gradient"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
}

// Status is the body of GET /status.
type Status struct {
	CurrentGeneration   uint64            `json:"current_generation"`
	PresentedGeneration uint64            `json:"presented_generation"`
	LastError           string            `json:"last_error,omitempty"`
	LastDurationMS      float64           `json:"last_duration_ms"`
	View                View              `json:"view"`
	Stats               interactive.Stats `json:"stats"`
}

// ViewResponse is the body of POST /view.
type ViewResponse struct {
	Submitted  bool   `json:"submitted"`
	Generation uint64 `json:"generation"`
	View       View   `json:"view"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	view := s.viewLocked()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, Status{
		CurrentGeneration:   uint64(s.ctrl.CurrentGeneration()),
		PresentedGeneration: uint64(s.pres.LastGeneration()),
		LastError:           s.pres.LastError(),
		LastDurationMS:      float64(s.pres.LastDuration().Microseconds()) / 1000,
		View:                view,
		Stats:               s.ctrl.Stats(),
	})
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	format, err := imageio.FormatFromPath("frame." + chi.URLParam(r, "format"))
	if err != nil {
		writeErr(w, http.StatusNotFound, "UNSUPPORTED_FORMAT", err.Error())
		return
	}
	f, ok := s.pres.Frame()
	if !ok {
		writeErr(w, http.StatusNotFound, "NO_FRAME", "no frame rendered yet")
		return
	}
	img, err := imageio.ToNRGBA(f.Rect, f.Pixels)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, format, img); err != nil {
		writeErr(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Generation", strconv.FormatUint(uint64(f.Generation), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) updateView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Work on a copy so a rejected request leaves the view untouched.
	next := *s.view
	if err := applyView(&next, req); err != nil {
		writeErr(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	*s.view = next

	gen, submitted := s.submitLocked(s.requestLocked())
	writeJSON(w, http.StatusOK, ViewResponse{
		Submitted:  submitted,
		Generation: uint64(gen),
		View:       s.viewLocked(),
	})
}

func applyView(v *interactive.ViewState, req ViewRequest) error {
	if req.Reset {
		v.ResetView()
	}
	if req.Fractal != nil {
		k, err := fractal.ParseFractalKind(*req.Fractal)
		if err != nil {
			return err
		}
		v.Fractal = k
	}
	if req.Gradient != nil {
		g, err := fractal.ParseGradientKind(*req.Gradient)
		if err != nil {
			return err
		}
		v.Gradient = g
	}
	if req.Iterations != nil {
		v.SetIterations(*req.Iterations)
	}
	if req.PanX != 0 || req.PanY != 0 {
		if err := v.Pan(req.PanX, req.PanY); err != nil {
			return err
		}
	}
	if req.Zoom != nil {
		if err := v.ZoomAt(0.5, 0.5, *req.Zoom); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) viewLocked() View {
	w, h := s.pres.Size()
	c := s.view.Region.Center()
	return View{
		Center:     [2]float64{real(c), imag(c)},
		Extent:     [2]float64{s.view.Region.Width(), s.view.Region.Height()},
		Iterations: s.view.MaxIterations,
		Fractal:    s.view.Fractal.String(),
		Gradient:   s.view.Gradient.Slug(),
		Width:      w,
		Height:     h,
	}
}

func contentType(f imageio.Format) string {
	switch f {
	case imageio.FormatPPM:
		return "image/x-portable-pixmap"
	default:
		return "image/" + string(f)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("httpview: decode body: %w", err)
	}
	if dec.More() {
		return errors.New("httpview: trailing data after body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	var env errorEnvelope
	env.Error.Code = code
	env.Error.Message = msg
	writeJSON(w, status, env)
}
