package fractal

import (
	"errors"
	"testing"
)

func TestRGBString(t *testing.T) {
	if got := (RGB{R: 1, G: 2, B: 3}).String(); got != "rgb(1, 2, 3)" {
		t.Errorf("String() = %q", got)
	}
}

func TestColorMapFunc(t *testing.T) {
	errOdd := errors.New("odd")
	cmap := ColorMapFunc[int](func(v int) (RGB, error) {
		if v%2 == 1 {
			return RGB{}, errOdd
		}
		return RGB{R: uint8(v)}, nil
	})

	c, err := cmap.Map(4)
	if err != nil || c != (RGB{R: 4}) {
		t.Errorf("Map(4) = %v, %v", c, err)
	}
	if _, err := cmap.Map(3); !errors.Is(err, errOdd) {
		t.Errorf("Map(3) err = %v, want errOdd", err)
	}
}
