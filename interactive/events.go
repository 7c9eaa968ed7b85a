package interactive

import (
	"time"

	"github.com/gogpu/fractal"
)

// Generation identifies one submission. Generations start at 1, grow by one
// per Submit and are never reused.
type Generation uint64

// Event is a terminal result handed to a FrameSink. It is either a Frame or
// an ErrorMessage; cancelled renders never become events.
type Event interface {
	EventGeneration() Generation

	event()
}

// Frame is a fully rendered request.
type Frame struct {
	Generation Generation
	Rect       fractal.PixelRect

	// Pixels is packed RGB, Rect.Width()*Rect.Height()*3 bytes, row-major.
	Pixels []byte

	Duration time.Duration
}

// EventGeneration implements Event.
func (f Frame) EventGeneration() Generation { return f.Generation }

func (Frame) event() {}

// ErrorMessage reports a request that failed validation or whose algorithm
// or colour map failed.
type ErrorMessage struct {
	Generation Generation
	Message    string
}

// EventGeneration implements Event.
func (e ErrorMessage) EventGeneration() Generation { return e.Generation }

func (ErrorMessage) event() {}
