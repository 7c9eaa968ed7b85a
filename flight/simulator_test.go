package flight

import (
	"math"
	"testing"
	"time"
)

func testLimits() Limits {
	l := DefaultLimits()
	l.TickHz = 60
	l.MaxTicksPerRedraw = 10
	return l
}

// ticksOf returns a duration just over n ticks at hz.
func ticksOf(n, hz int) time.Duration {
	d := math.Ceil(float64(n) * float64(time.Second) / float64(hz))
	return time.Duration(d) + time.Microsecond
}

func idle() Controls { return Controls{} }

func noUpdate(Motion, float64, Limits) UpdateReport { return UpdateReport{} }

func TestSimulatorTickCounts(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    uint32
	}{
		{"zero", 0, 0},
		{"one tick", ticksOf(1, 60), 1},
		{"three ticks", ticksOf(3, 60), 3},
		{"capped", time.Second, 10},
		{"negative", -time.Second, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimulator(testLimits())
			var controls, updates uint32
			res := s.Advance(tt.elapsed,
				func() Controls { controls++; return Controls{} },
				func(Motion, float64, Limits) UpdateReport { updates++; return UpdateReport{} })

			if res.Ticks != tt.want || controls != tt.want || updates != tt.want {
				t.Errorf("ticks %d, controls %d, updates %d; want %d",
					res.Ticks, controls, updates, tt.want)
			}
			if tt.want == 0 && res.StateChanged {
				t.Error("state changed without ticks")
			}
		})
	}
}

func TestSimulatorCarriesFraction(t *testing.T) {
	l := testLimits()
	l.TickHz = 2
	s := NewSimulator(l)

	if res := s.Advance(250*time.Millisecond, idle, noUpdate); res.Ticks != 0 {
		t.Fatalf("first Advance ran %d ticks", res.Ticks)
	}
	if res := s.Advance(250*time.Millisecond, idle, noUpdate); res.Ticks != 1 {
		t.Fatalf("second Advance ran %d ticks, want 1", res.Ticks)
	}
}

func TestSimulatorDropsExcess(t *testing.T) {
	s := NewSimulator(testLimits())
	if res := s.Advance(time.Second, idle, noUpdate); res.Ticks != 10 {
		t.Fatalf("capped Advance ran %d ticks", res.Ticks)
	}
	if res := s.Advance(0, idle, noUpdate); res.Ticks != 0 {
		t.Errorf("excess time carried over: %d ticks", res.Ticks)
	}
}

func TestSimulatorZeroRate(t *testing.T) {
	l := testLimits()
	l.TickHz = 0
	s := NewSimulator(l)
	res := s.Advance(time.Second, func() Controls {
		t.Fatal("controls read with a zero tick rate")
		return Controls{}
	}, noUpdate)
	if res.Ticks != 0 || res.StateChanged {
		t.Errorf("Advance() = %+v", res)
	}
}

func TestSimulatorPausedReportsNoChange(t *testing.T) {
	s := NewSimulator(testLimits())
	tick := ticksOf(1, 60)

	s.Advance(tick, func() Controls { return Controls{PauseToggle: true} }, noUpdate)
	res := s.Advance(tick, func() Controls { return Controls{Accelerate: true} }, noUpdate)

	if res.Ticks != 1 || res.StateChanged || !res.Status.Paused {
		t.Errorf("Advance() = %+v", res)
	}
}

func TestSimulatorStatusReflectsWarnings(t *testing.T) {
	s := NewSimulator(testLimits())
	res := s.Advance(ticksOf(1, 60),
		func() Controls { return Controls{Accelerate: true} },
		func(m Motion, _ float64, _ Limits) UpdateReport {
			if m.Speed > 0 {
				return UpdateReport{Clamped: true, Warning: WarningExtentClamped}
			}
			return UpdateReport{}
		})

	if res.Status != s.Status() {
		t.Errorf("result status %+v != Status() %+v", res.Status, s.Status())
	}
	if res.Status.LastWarning != WarningExtentClamped {
		t.Errorf("LastWarning = %v", res.Status.LastWarning)
	}
	if !res.StateChanged || !s.Active() {
		t.Errorf("StateChanged = %v, Active() = %v", res.StateChanged, s.Active())
	}
}

func TestSimulatorMotionWarningFallback(t *testing.T) {
	l := testLimits()
	l.MaxSpeed = 0.001
	s := NewSimulator(l)
	res := s.Advance(ticksOf(1, 60), func() Controls { return Controls{Accelerate: true} }, noUpdate)
	if res.Status.LastWarning != WarningSpeedClamped {
		t.Errorf("LastWarning = %v, want the motion warning", res.Status.LastWarning)
	}
}

func TestSimulatorResetMotion(t *testing.T) {
	s := NewSimulator(testLimits())
	s.Advance(ticksOf(1, 60),
		func() Controls { return Controls{Accelerate: true} },
		func(Motion, float64, Limits) UpdateReport {
			return UpdateReport{Clamped: true, Warning: WarningCenterClamped}
		})

	s.ResetMotion()
	if s.Status() != DefaultStatus() {
		t.Errorf("Status() = %+v", s.Status())
	}
	if s.Active() {
		t.Error("Active() after reset")
	}
}

func TestSimulatorActive(t *testing.T) {
	tests := []struct {
		name string
		m    Motion
		want bool
	}{
		{"stationary", DefaultMotion(), false},
		{"moving", Motion{Speed: 1}, true},
		{"accelerating", Motion{Accel: 1}, true},
		{"paused while moving", Motion{Paused: true, Speed: 1}, false},
	}
	for _, tt := range tests {
		s := NewSimulator(testLimits())
		s.motion = tt.m
		if got := s.Active(); got != tt.want {
			t.Errorf("%s: Active() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
