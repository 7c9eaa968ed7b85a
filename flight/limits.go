package flight

// Limits bound the flight model.
type Limits struct {
	// TickHz is the simulation rate. Zero disables the simulator.
	TickHz uint32

	// Accel is the speed change per second while accelerating, in view
	// extents per second squared.
	Accel float64

	// MaxSpeed bounds the absolute speed in view extents per second.
	MaxSpeed float64

	// MinExtent and MaxExtent bound the width and height of the region.
	MinExtent float64
	MaxExtent float64

	// MaxCenter bounds the absolute value of each coordinate of the
	// region centre.
	MaxCenter float64

	ZoomBase      float64
	SteerStrength float64

	// MaxTicksPerRedraw caps the ticks one Advance may run. Time beyond
	// the cap is dropped.
	MaxTicksPerRedraw uint32
}

// DefaultLimits returns limits suited to a 60 Hz display.
func DefaultLimits() Limits {
	return Limits{
		TickHz:            60,
		Accel:             0.5,
		MaxSpeed:          5,
		MinExtent:         1e-15,
		MaxExtent:         20,
		MaxCenter:         100,
		ZoomBase:          2,
		SteerStrength:     0.5,
		MaxTicksPerRedraw: 10,
	}
}

// DT returns the tick length in seconds, or 0 when TickHz is 0.
func (l Limits) DT() float64 {
	if l.TickHz == 0 {
		return 0
	}
	return 1 / float64(l.TickHz)
}
