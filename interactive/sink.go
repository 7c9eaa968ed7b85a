package interactive

import (
	"sync"
	"sync/atomic"
)

// FrameSink receives events from the controller's worker goroutine.
//
// Submit must not block on the consumer; implementations keep only the
// latest event (or the latest of each kind) rather than queueing.
type FrameSink interface {
	Submit(ev Event)
}

// SinkFunc adapts a function to the FrameSink interface.
type SinkFunc func(ev Event)

// Submit calls f(ev).
func (f SinkFunc) Submit(ev Event) { f(ev) }

// LatestSink is a one-slot mailbox. Submit replaces whatever is stored and
// signals Notify without blocking; readers drain it with Take on their own
// schedule.
//
// LatestSink is safe for concurrent use.
type LatestSink struct {
	mu     sync.Mutex
	latest Event
	notify chan struct{}

	dropped atomic.Uint64
}

// NewLatestSink returns an empty sink.
func NewLatestSink() *LatestSink {
	return &LatestSink{notify: make(chan struct{}, 1)}
}

// Submit implements FrameSink.
func (s *LatestSink) Submit(ev Event) {
	if ev == nil {
		return
	}
	s.mu.Lock()
	if s.latest != nil {
		s.dropped.Add(1)
	}
	s.latest = ev
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Take removes and returns the stored event.
func (s *LatestSink) Take() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.latest
	s.latest = nil
	return ev, ev != nil
}

// Peek returns the stored event without removing it.
func (s *LatestSink) Peek() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.latest != nil
}

// Notify returns a channel that receives a value after Submit. Several
// submissions between reads coalesce into one wake-up.
func (s *LatestSink) Notify() <-chan struct{} {
	return s.notify
}

// Dropped returns how many events were overwritten before being taken.
func (s *LatestSink) Dropped() uint64 {
	return s.dropped.Load()
}
