package flight

import (
	"math"
	"time"
)

// Result is what one Simulator.Advance did.
type Result struct {
	// StateChanged is true when the view or the status changed on any tick,
	// meaning the caller should render again.
	StateChanged bool
	Ticks        uint32
	Status       Status
}

// UpdateFunc applies one tick of motion to the caller's view.
type UpdateFunc func(m Motion, dt float64, l Limits) UpdateReport

// Simulator runs the flight model on a fixed tick.
//
// Simulator is not safe for concurrent use.
type Simulator struct {
	motion Motion
	limits Limits
	acc    float64 // seconds not yet simulated
	status Status
}

// NewSimulator returns a simulator at rest.
func NewSimulator(l Limits) *Simulator {
	return &Simulator{
		motion: DefaultMotion(),
		limits: l,
		status: DefaultStatus(),
	}
}

// Advance adds elapsed to the accumulated time and runs every whole tick it
// covers, up to MaxTicksPerRedraw. Each tick reads controls, steps the motion
// and calls update. When the cap is hit the remaining time is dropped rather
// than carried over. With a zero tick rate nothing runs.
func (s *Simulator) Advance(elapsed time.Duration, controls func() Controls, update UpdateFunc) Result {
	dt := s.limits.DT()
	if !(dt > 0) || math.IsInf(dt, 0) {
		return Result{Status: s.status}
	}

	s.acc += elapsed.Seconds()
	if math.IsNaN(s.acc) || math.IsInf(s.acc, 0) || s.acc < 0 {
		s.acc = 0
	}

	avail := math.Floor(s.acc / dt)
	capTicks := float64(s.limits.MaxTicksPerRedraw)
	ticks := uint32(min(avail, capTicks))

	changed := false
	for range ticks {
		prevMotion, prevStatus := s.motion, s.status

		mrep := StepMotion(&s.motion, controls(), dt, s.limits)
		urep := update(s.motion, dt, s.limits)

		s.status.Paused = s.motion.Paused
		s.status.Speed = s.motion.Speed
		s.status.Heading = s.motion.Heading
		s.status.LastWarning = urep.Warning
		if s.status.LastWarning == WarningNone {
			s.status.LastWarning = mrep.Warning
		}

		if s.motion != prevMotion || s.status != prevStatus ||
			mrep.ViewShouldUpdate || urep.Clamped {
			changed = true
		}
	}

	if avail > capTicks {
		s.acc = 0
	} else {
		s.acc = max(s.acc-float64(ticks)*dt, 0)
	}

	return Result{StateChanged: changed, Ticks: ticks, Status: s.status}
}

// ResetMotion stops the flight and forgets accumulated time.
func (s *Simulator) ResetMotion() {
	s.motion = DefaultMotion()
	s.status = DefaultStatus()
	s.acc = 0
}

// Status returns the current status.
func (s *Simulator) Status() Status {
	return s.status
}

// Motion returns the current motion.
func (s *Simulator) Motion() Motion {
	return s.motion
}

// Limits returns the limits the simulator runs with.
func (s *Simulator) Limits() Limits {
	return s.limits
}

// Active reports whether the view is moving or about to move.
func (s *Simulator) Active() bool {
	return !s.motion.Paused && (s.motion.Speed != 0 || s.motion.Accel != 0)
}
