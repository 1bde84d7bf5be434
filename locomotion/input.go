package locomotion

import "github.com/oomph-ac/stride/game"

// InputSample is the player input for a single tick. Edges such as JumpPressed are computed by the input
// layer, the controller never polls for them.
type InputSample struct {
	// Horizontal is the strafe axis, -1 (left) to 1 (right).
	Horizontal float64
	// Vertical is the forward axis, -1 (back) to 1 (forward).
	Vertical float64

	MouseX float64
	MouseY float64

	SprintHeld bool
	CrouchHeld bool
	// JumpPressed is true only on the tick the jump button goes from released to pressed.
	JumpPressed bool
}

// Moving returns true if either movement axis is deflected.
func (in InputSample) Moving() bool {
	return in.Horizontal != 0 || in.Vertical != 0
}

func (in InputSample) clamped() InputSample {
	in.Horizontal = game.ClampFloat(in.Horizontal, -1, 1)
	in.Vertical = game.ClampFloat(in.Vertical, -1, 1)
	return in
}
