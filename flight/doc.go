// Package flight moves a view through the complex plane under keyboard-style
// controls.
//
// Motion is simulated on a fixed tick. Each tick reads a Controls snapshot,
// advances a Motion with StepMotion and then moves the view region with
// StepFlight. A Simulator accumulates wall-clock time between redraws and
// runs the ticks that fit, capped so a long stall never produces a burst of
// work:
//
//	sim := flight.NewSimulator(flight.DefaultLimits())
//	res := sim.Advance(elapsed, readKeys, func(m flight.Motion, dt float64, l flight.Limits) flight.UpdateReport {
//	    var rep flight.UpdateReport
//	    region, rep = flight.StepFlight(region, m, dt, l)
//	    return rep
//	})
//	if res.StateChanged {
//	    // submit a new render request
//	}
//
// Speeds are in view extents per second, so the same speed covers the same
// share of the screen at any zoom level.
package flight
