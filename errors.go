package fractal

import (
	"errors"
	"fmt"
)

// Pipeline errors.
var (
	// ErrInvalidRequest wraps every validation failure of a RenderRequest.
	ErrInvalidRequest = errors.New("fractal: invalid render request")

	// ErrValueCount is returned when the colour pass receives a value slice
	// whose length does not match the pixel rect.
	ErrValueCount = errors.New("fractal: value count does not match pixel rect")

	// ErrNilCapability is returned when a pass is given a nil algorithm or colour map.
	ErrNilCapability = errors.New("fractal: nil algorithm or color map")
)

// AlgorithmError reports a failure of the per-pixel algorithm.
type AlgorithmError struct {
	Point Point
	Err   error
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("fractal: algorithm failed at (%d, %d): %v", e.Point.X, e.Point.Y, e.Err)
}

func (e *AlgorithmError) Unwrap() error { return e.Err }

// MapError reports a failure of the colour map. Index is the row-major pixel index.
type MapError struct {
	Index int
	Err   error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("fractal: color map failed at pixel %d: %v", e.Index, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

// panicError converts a recovered panic value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", v)
}
