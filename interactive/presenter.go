package interactive

import (
	"sync"
	"time"
)

// EventSource yields events for a Presenter. *LatestSink implements it.
type EventSource interface {
	Take() (Event, bool)
}

// Presenter decides which events reach the screen.
//
// A frame is accepted only when its generation is newer than the last
// accepted one and its size equals the target size, so an out-of-order or
// pre-resize frame never replaces a newer picture. An error is kept when its
// generation is not older than the last accepted frame; accepting a frame
// clears it.
//
// Presenter is safe for concurrent use.
type Presenter struct {
	src EventSource

	mu           sync.Mutex
	width        int
	height       int
	frame        Frame
	hasFrame     bool
	lastGen      Generation
	lastErr      string
	lastDuration time.Duration
}

// NewPresenter returns a presenter for a width x height target.
func NewPresenter(src EventSource, width, height int) *Presenter {
	return &Presenter{src: src, width: width, height: height}
}

// Poll takes one event from the source and applies it. It returns the frame
// when a new one was accepted.
func (p *Presenter) Poll() (Frame, bool) {
	if p.src == nil {
		return Frame{}, false
	}
	ev, ok := p.src.Take()
	if !ok {
		return Frame{}, false
	}
	if !p.Offer(ev) {
		return Frame{}, false
	}
	return p.Frame()
}

// Offer applies ev and reports whether it was an accepted frame.
func (p *Presenter) Offer(ev Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e := ev.(type) {
	case Frame:
		if e.Generation <= p.lastGen ||
			e.Rect.Width() != p.width || e.Rect.Height() != p.height {
			return false
		}
		p.frame = e
		p.hasFrame = true
		p.lastGen = e.Generation
		p.lastDuration = e.Duration
		p.lastErr = ""
		return true
	case ErrorMessage:
		if e.Generation >= p.lastGen {
			p.lastErr = e.Message
		}
	}
	return false
}

// Resize changes the target size and forgets the current frame, which no
// longer fits. The last generation is kept so older frames stay rejected.
func (p *Presenter) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.frame = Frame{}
	p.hasFrame = false
}

// Size returns the target size.
func (p *Presenter) Size() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

// Frame returns the last accepted frame.
func (p *Presenter) Frame() (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame, p.hasFrame
}

// LastGeneration returns the generation of the last accepted frame.
func (p *Presenter) LastGeneration() Generation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastGen
}

// LastError returns the most recent relevant error message, or "".
func (p *Presenter) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// LastDuration returns the render time of the last accepted frame.
func (p *Presenter) LastDuration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastDuration
}
