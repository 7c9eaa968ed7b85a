package flight

// Controls is the input state for one tick.
//
// W and S steer up and down, A and D steer left and right. PauseToggle is an
// edge: it is true only for the tick on which the pause key went down.
type Controls struct {
	W, A, S, D  bool
	Accelerate  bool
	Decelerate  bool
	PauseToggle bool
}
