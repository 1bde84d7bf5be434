package locomotion

import "github.com/oomph-ac/stride/game"

// look turns the character by the horizontal delta and tilts the camera by the vertical one. Pitch is clamped
// after accumulating so the sensitivity scaling is not distorted at the limits.
func (c *Controller) look(in InputSample) {
	sens := c.params.MouseSensitivity
	c.state.Yaw = game.WrapDegrees(c.state.Yaw + in.MouseX*sens)
	c.state.Pitch = game.ClampFloat(c.state.Pitch-in.MouseY*sens, c.params.MinPitch, c.params.MaxPitch)
}
