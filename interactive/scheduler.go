package interactive

import (
	"fmt"

	"github.com/gogpu/fractal"
)

// ActionKind is what Scheduler.Update did.
type ActionKind uint8

const (
	// ActionNothingToDo means there was no pending request to submit.
	ActionNothingToDo ActionKind = iota

	// ActionSubmitted means the pending request was submitted.
	ActionSubmitted

	// ActionCoalesced means the request was parked until the render in
	// flight completes, replacing any request parked earlier.
	ActionCoalesced
)

func (k ActionKind) String() string {
	switch k {
	case ActionNothingToDo:
		return "nothing-to-do"
	case ActionSubmitted:
		return "submitted"
	case ActionCoalesced:
		return "coalesced"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// Action is the result of Scheduler.Update. Generation is set for
// ActionSubmitted.
type Action struct {
	Kind       ActionKind
	Generation Generation
}

// Scheduler paces submissions during continuous motion such as flight.
//
// Every tick of motion produces a new desired view. Submitting each one
// would cancel the render in flight over and over and nothing would ever be
// shown, so while motion is active and a render is in flight the newest
// request is parked instead. It is submitted on the first update after that
// render completes. When motion is not active, requests go straight through
// and the controller's own cancellation applies.
//
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	pending  *fractal.RenderRequest
	inFlight Generation // 0 when nothing is in flight
}

// Update offers desired and returns what happened. lastCompleted is the
// newest generation the caller has seen finish (for example a presenter's
// LastGeneration); submit hands a request to the controller.
func (s *Scheduler) Update(
	desired fractal.RenderRequest,
	motionActive bool,
	lastCompleted Generation,
	submit func(fractal.RenderRequest) Generation,
) Action {
	s.ObserveCompletion(lastCompleted)
	s.pending = &desired

	if s.inFlight == 0 || !motionActive {
		return s.submitPending(submit)
	}
	return Action{Kind: ActionCoalesced}
}

// ObserveCompletion clears the in-flight marker once lastCompleted reaches it.
func (s *Scheduler) ObserveCompletion(lastCompleted Generation) {
	if s.inFlight != 0 && lastCompleted >= s.inFlight {
		s.inFlight = 0
	}
}

// Flush submits a parked request if nothing is in flight.
func (s *Scheduler) Flush(lastCompleted Generation, submit func(fractal.RenderRequest) Generation) Action {
	s.ObserveCompletion(lastCompleted)
	if s.inFlight != 0 {
		if s.pending != nil {
			return Action{Kind: ActionCoalesced}
		}
		return Action{Kind: ActionNothingToDo}
	}
	return s.submitPending(submit)
}

// Reset forgets the parked request and the in-flight marker.
func (s *Scheduler) Reset() {
	s.pending = nil
	s.inFlight = 0
}

// HasPending reports whether a request is parked.
func (s *Scheduler) HasPending() bool {
	return s.pending != nil
}

// InFlight returns the generation awaiting completion, or 0.
func (s *Scheduler) InFlight() Generation {
	return s.inFlight
}

func (s *Scheduler) submitPending(submit func(fractal.RenderRequest) Generation) Action {
	if s.pending == nil {
		return Action{Kind: ActionNothingToDo}
	}
	req := *s.pending
	s.pending = nil
	gen := submit(req)
	s.inFlight = gen
	return Action{Kind: ActionSubmitted, Generation: gen}
}
