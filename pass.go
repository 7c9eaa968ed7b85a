package fractal

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// rowRun is the shared stop state of one pass. The first failure wins and
// every row checks it before starting and at each poll.
type rowRun struct {
	token   CancelToken
	stopped atomic.Bool
	once    sync.Once
	err     error
}

func (rr *rowRun) fail(err error) {
	rr.once.Do(func() { rr.err = err })
	rr.stopped.Store(true)
}

// halted polls the token and reports whether the row should stop.
func (rr *rowRun) halted() bool {
	if rr.stopped.Load() {
		return true
	}
	if rr.token.IsCancelled() {
		rr.fail(ErrCancelled)
		return true
	}
	return false
}

// ComputeFractal evaluates alg for every pixel of pixels and returns the
// results in row-major order. Rows run in parallel on r's pool; a nil
// Renderer runs them on the calling goroutine.
//
// The token is polled before each row and every CancelCheckInterval pixels.
// On cancellation ComputeFractal returns ErrCancelled and no results. The
// first algorithm failure, including a panic, is returned as *AlgorithmError
// and stops the remaining rows.
func ComputeFractal[T any](r *Renderer, pixels PixelRect, alg Algorithm[T], token CancelToken) ([]T, error) {
	if err := pixels.Validate(); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, ErrNilCapability
	}
	run := &rowRun{token: orNever(token)}
	if run.halted() {
		return nil, ErrCancelled
	}

	width := pixels.Width()
	out := make([]T, pixels.Size())

	r.eachRow(pixels.Height(), func(row int) {
		if run.halted() {
			return
		}
		p := Point{X: pixels.TopLeft.X, Y: pixels.TopLeft.Y + row}
		defer func() {
			if v := recover(); v != nil {
				run.fail(&AlgorithmError{Point: p, Err: panicError(v)})
			}
		}()

		seg := out[row*width : (row+1)*width]
		for i := range seg {
			if i > 0 && i%CancelCheckInterval == 0 && run.halted() {
				return
			}
			p.X = pixels.TopLeft.X + i
			v, err := alg.Compute(p)
			if err != nil {
				run.fail(&AlgorithmError{Point: p, Err: err})
				return
			}
			seg[i] = v
		}
	})

	if run.err != nil {
		return nil, run.err
	}
	return out, nil
}

// MapColors runs cmap over values and packs the colours into a
// width*height*3 RGB buffer in the same row-major order. It follows the
// polling rules of ComputeFractal; on cancellation or failure no buffer is
// returned.
func MapColors[T any](r *Renderer, values []T, cmap ColorMap[T], pixels PixelRect, token CancelToken) ([]byte, error) {
	if err := pixels.Validate(); err != nil {
		return nil, err
	}
	if cmap == nil {
		return nil, ErrNilCapability
	}
	if len(values) != pixels.Size() {
		return nil, fmt.Errorf("%w: %d values for %v", ErrValueCount, len(values), pixels)
	}
	run := &rowRun{token: orNever(token)}
	if run.halted() {
		return nil, ErrCancelled
	}

	width := pixels.Width()
	buf := make([]byte, len(values)*3)

	r.eachRow(pixels.Height(), func(row int) {
		if run.halted() {
			return
		}
		idx := row * width
		defer func() {
			if v := recover(); v != nil {
				run.fail(&MapError{Index: idx, Err: panicError(v)})
			}
		}()

		for i := range width {
			if i > 0 && i%CancelCheckInterval == 0 && run.halted() {
				return
			}
			idx = row*width + i
			c, err := cmap.Map(values[idx])
			if err != nil {
				run.fail(&MapError{Index: idx, Err: err})
				return
			}
			px := buf[idx*3 : idx*3+3]
			px[0], px[1], px[2] = c.R, c.G, c.B
		}
	})

	if run.err != nil {
		return nil, run.err
	}
	return buf, nil
}
