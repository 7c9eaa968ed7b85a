package fractal

import "errors"

// CancelCheckInterval is the number of pixels a pass processes between two
// cancellation polls inside a row. Every row also polls before its first pixel,
// so a cancelled pass stops within this many pixels per in-flight row.
const CancelCheckInterval = 1024

// ErrCancelled is returned by the passes when their CancelToken fires.
// It signals superseded work and is never reported as a render failure.
var ErrCancelled = errors.New("fractal: operation cancelled")

// CancelToken answers whether in-progress work should stop.
//
// IsCancelled is called from several goroutines at once and on hot paths,
// so implementations must be safe for concurrent use and cheap.
type CancelToken interface {
	IsCancelled() bool
}

// CancelFunc adapts a plain predicate to the CancelToken interface.
//
// Example:
//
//	var stop atomic.Bool
//	token := fractal.CancelFunc(stop.Load)
type CancelFunc func() bool

// IsCancelled reports the predicate result.
func (f CancelFunc) IsCancelled() bool { return f() }

type neverCancel struct{}

func (neverCancel) IsCancelled() bool { return false }

// NeverCancel is a token that never requests cancellation.
// Batch rendering uses it.
var NeverCancel CancelToken = neverCancel{}

// AnyCancelled returns a token that fires as soon as one of tokens fires.
// Nil tokens are ignored.
func AnyCancelled(tokens ...CancelToken) CancelToken {
	live := make([]CancelToken, 0, len(tokens))
	for _, t := range tokens {
		if t != nil {
			live = append(live, t)
		}
	}
	switch len(live) {
	case 0:
		return NeverCancel
	case 1:
		return live[0]
	}
	return CancelFunc(func() bool {
		for _, t := range live {
			if t.IsCancelled() {
				return true
			}
		}
		return false
	})
}

func orNever(t CancelToken) CancelToken {
	if t == nil {
		return NeverCancel
	}
	return t
}
