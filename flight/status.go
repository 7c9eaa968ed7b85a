package flight

import "fmt"

// Warning names a correction the flight model had to make.
type Warning uint8

const (
	// WarningNone means no correction was made.
	WarningNone Warning = iota

	// WarningSpeedClamped means the speed hit MaxSpeed.
	WarningSpeedClamped

	// WarningCenterClamped means the region centre hit MaxCenter.
	WarningCenterClamped

	// WarningExtentClamped means the region was rescaled into
	// [MinExtent, MaxExtent].
	WarningExtentClamped

	// WarningNonFiniteReset means the region stopped being finite and was
	// reset to the default view.
	WarningNonFiniteReset
)

func (w Warning) String() string {
	switch w {
	case WarningNone:
		return "none"
	case WarningSpeedClamped:
		return "speed clamped"
	case WarningCenterClamped:
		return "center clamped"
	case WarningExtentClamped:
		return "extent clamped"
	case WarningNonFiniteReset:
		return "non-finite reset"
	default:
		return fmt.Sprintf("Warning(%d)", uint8(w))
	}
}

// Status is the user-facing summary of the flight state.
type Status struct {
	Paused      bool
	Speed       float64
	Heading     [2]float64
	LastWarning Warning
}

// DefaultStatus returns the status of a Simulator at rest.
func DefaultStatus() Status {
	return Status{Heading: defaultHeading}
}

// UpdateReport describes what StepFlight had to correct.
type UpdateReport struct {
	Clamped bool
	Warning Warning
}

func (r *UpdateReport) mark(w Warning) {
	r.Clamped = true
	r.Warning = w
}

// MotionReport describes one StepMotion call.
type MotionReport struct {
	PauseToggled bool
	SpeedClamped bool

	// ViewShouldUpdate is true when the view moves on this tick.
	ViewShouldUpdate bool

	Warning Warning
}
