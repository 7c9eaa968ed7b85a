package flight

import (
	"math"
	"testing"

	"github.com/gogpu/fractal"
)

func rect(t *testing.T, x0, y0, x1, y1 float64) fractal.ComplexRect {
	t.Helper()
	r, err := fractal.NewComplexRect(complex(x0, y0), complex(x1, y1))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func moving(heading [2]float64, speed float64) Motion {
	m := DefaultMotion()
	m.Heading = heading
	m.Speed = speed
	return m
}

func assertRect(t *testing.T, got fractal.ComplexRect, x0, y0, x1, y1 float64) {
	t.Helper()
	if !approx(real(got.TopLeft), x0) || !approx(imag(got.TopLeft), y0) ||
		!approx(real(got.BottomRight), x1) || !approx(imag(got.BottomRight), y1) {
		t.Errorf("region = %v, want [(%g%+gi) .. (%g%+gi)]", got, x0, y0, x1, y1)
	}
}

func TestStepFlightTranslate(t *testing.T) {
	d := math.Sqrt2 / 2
	tests := []struct {
		name           string
		region         [4]float64
		heading        [2]float64
		speed, dt      float64
		x0, y0, x1, y1 float64
	}{
		{"forward", [4]float64{-2, -1, 2, 1}, [2]float64{1, 0}, 1, 0.5, 0, -1, 4, 1},
		{"reverse", [4]float64{-2, -1, 2, 1}, [2]float64{1, 0}, -1, 0.5, -4, -1, 0, 1},
		{"diagonal", [4]float64{-2, -1, 2, 1}, [2]float64{d, -d}, 1, 1, -2 + 4*d, -1 - 2*d, 2 + 4*d, 1 - 2*d},
		{"narrow view moves less", [4]float64{-1, -1, 1, 1}, [2]float64{1, 0}, 1, 0.5, 0, -1, 2, 1},
		{"non-square", [4]float64{-3, -1, 1, 2}, [2]float64{1, -1}, 0.5, 1, -1, -2.5, 3, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rect(t, tt.region[0], tt.region[1], tt.region[2], tt.region[3])
			got, rep := StepFlight(r, moving(tt.heading, tt.speed), tt.dt, DefaultLimits())
			assertRect(t, got, tt.x0, tt.y0, tt.x1, tt.y1)
			if rep.Clamped || rep.Warning != WarningNone {
				t.Errorf("report = %+v", rep)
			}
		})
	}
}

func TestStepFlightNoop(t *testing.T) {
	r := rect(t, -2, -1, 2, 1)

	paused := moving([2]float64{1, 0}, 1)
	paused.Paused = true
	for _, m := range []Motion{paused, moving([2]float64{1, 0}, 0)} {
		got, rep := StepFlight(r, m, 1, DefaultLimits())
		if got != r || rep != (UpdateReport{}) {
			t.Errorf("motion %+v changed the view: %v, %+v", m, got, rep)
		}
	}
}

func TestStepFlightCenterClamp(t *testing.T) {
	l := DefaultLimits()
	l.MaxCenter = 1

	tests := []struct {
		name    string
		heading [2]float64
		want    complex128
	}{
		{"real", [2]float64{1, 0}, complex(1, 0)},
		{"imaginary", [2]float64{0, 1}, complex(0, 1)},
		{"both", [2]float64{1, 1}, complex(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rep := StepFlight(rect(t, -1, -1, 1, 1), moving(tt.heading, 1), 1, l)
			c := got.Center()
			if !approx(real(c), real(tt.want)) || !approx(imag(c), imag(tt.want)) {
				t.Errorf("Center() = %v, want %v", c, tt.want)
			}
			if !approx(got.Width(), 2) || !approx(got.Height(), 2) {
				t.Errorf("extent changed to %gx%g", got.Width(), got.Height())
			}
			if !rep.Clamped || rep.Warning != WarningCenterClamped {
				t.Errorf("report = %+v", rep)
			}
		})
	}
}

func TestStepFlightExtentClamp(t *testing.T) {
	tests := []struct {
		name         string
		region       [4]float64
		lo, hi       float64
		wantW, wantH float64
	}{
		{"scale up", [4]float64{-1, -2, 1, 2}, 3, 10, 3, 6},
		{"scale down", [4]float64{-3, -2, 3, 2}, 0.1, 3, 3, 2},
		{"swapped bounds", [4]float64{-1, -2, 1, 2}, 10, 3, 3, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLimits()
			l.MinExtent, l.MaxExtent = tt.lo, tt.hi
			r := rect(t, tt.region[0], tt.region[1], tt.region[2], tt.region[3])

			got, rep := StepFlight(r, moving([2]float64{1, 0}, 1), 0, l)
			if !approx(got.Width(), tt.wantW) || !approx(got.Height(), tt.wantH) {
				t.Errorf("extent = %gx%g, want %gx%g", got.Width(), got.Height(), tt.wantW, tt.wantH)
			}
			if got.Center() != r.Center() {
				t.Errorf("centre moved from %v to %v", r.Center(), got.Center())
			}
			if !rep.Clamped || rep.Warning != WarningExtentClamped {
				t.Errorf("report = %+v", rep)
			}
		})
	}
}

func TestStepFlightNonFiniteReset(t *testing.T) {
	tests := []struct {
		name   string
		region fractal.ComplexRect
		speed  float64
	}{
		{"NaN corner", fractal.ComplexRect{TopLeft: complex(math.NaN(), -1), BottomRight: complex(1, 1)}, 1},
		{"infinite corner", fractal.ComplexRect{TopLeft: complex(-1, -1), BottomRight: complex(math.Inf(1), 1)}, 1},
		{"infinite speed", fractal.DefaultRegion(), math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rep := StepFlight(tt.region, moving([2]float64{1, 0}, tt.speed), 1, DefaultLimits())
			if got != fractal.DefaultRegion() {
				t.Errorf("region = %v, want the default", got)
			}
			if !rep.Clamped || rep.Warning != WarningNonFiniteReset {
				t.Errorf("report = %+v", rep)
			}
		})
	}
}
