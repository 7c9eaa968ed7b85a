package fractal

import "fmt"

// RGB is an 8-bit colour without alpha. Frames are packed RGB, 3 bytes per pixel.
type RGB struct {
	R, G, B uint8
}

// Black is the colour of points that never escape.
var Black = RGB{}

func (c RGB) String() string { return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B) }

// ColorMap turns a per-pixel value into a colour. Map is called concurrently
// and must not mutate shared state.
type ColorMap[T any] interface {
	Map(v T) (RGB, error)
}

// ColorMapFunc adapts a function to the ColorMap interface.
type ColorMapFunc[T any] func(v T) (RGB, error)

// Map calls f(v).
func (f ColorMapFunc[T]) Map(v T) (RGB, error) { return f(v) }
