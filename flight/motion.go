package flight

import "math"

// defaultHeading points up the screen.
var defaultHeading = [2]float64{0, -1}

// Motion is the kinematic state of the view.
//
// Heading is a unit vector in screen orientation: x grows right, y grows
// down. Speed may be negative, which flies backwards.
type Motion struct {
	Paused  bool
	Heading [2]float64
	Speed   float64
	Accel   float64
}

// DefaultMotion returns a stationary, unpaused motion heading up.
func DefaultMotion() Motion {
	return Motion{Heading: defaultHeading}
}

// StepMotion advances m by one tick of length dt under c.
//
// A pause edge toggles Paused. While paused, acceleration is zeroed and
// nothing else changes. Otherwise the heading follows the steering keys
// (kept when none or opposing keys are held), acceleration follows the
// throttle keys and speed is integrated and clamped to ±MaxSpeed. A
// non-finite dt counts as zero.
func StepMotion(m *Motion, c Controls, dt float64, l Limits) MotionReport {
	var rep MotionReport

	if c.PauseToggle {
		m.Paused = !m.Paused
		rep.PauseToggled = true
	}
	if m.Paused {
		m.Accel = 0
		return rep
	}

	x := axis(c.D, c.A)
	y := axis(c.S, c.W)
	if lenSq := x*x + y*y; lenSq > 0 {
		inv := 1 / math.Sqrt(lenSq)
		m.Heading = [2]float64{x * inv, y * inv}
	}

	m.Accel = 0
	if c.Accelerate {
		m.Accel += l.Accel
	}
	if c.Decelerate {
		m.Accel -= l.Accel
	}

	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	m.Speed += m.Accel * dt

	limit := math.Abs(l.MaxSpeed)
	if m.Speed > limit || m.Speed < -limit {
		m.Speed = math.Copysign(limit, m.Speed)
		rep.SpeedClamped = true
		rep.Warning = WarningSpeedClamped
	}

	rep.ViewShouldUpdate = m.Speed != 0
	return rep
}

func axis(positive, negative bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	default:
		return 0
	}
}
