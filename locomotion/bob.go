package locomotion

import (
	"math"

	"github.com/oomph-ac/stride/game"
)

func (c *Controller) bobFrequency() float64 {
	s := c.state
	switch {
	case !s.Moving:
		return c.params.IdleBobSpeed
	case s.Sprinting && !s.Crouching:
		return c.params.SprintBobSpeed
	case s.Crouching:
		return c.params.CrouchBobSpeed
	default:
		return c.params.BobSpeed
	}
}

// bob advances the head-bob oscillator and smooths the camera toward the sampled offset. The target is built
// from BobMaxHeight, not from the crouch-blended height that blendCrouch wrote just before; the two writes to
// the camera Y component run in this order every tick.
func (c *Controller) bob(dt float64) {
	s := &c.state
	s.BobPhase = game.WrapPhase(s.BobPhase + c.bobFrequency()*dt)
	s.BobOffsetY = math.Sin(s.BobPhase) * c.params.BobAmplitude
	s.CameraLocalPosition[1] = game.Lerp(s.CameraLocalPosition[1], s.BobOffsetY+c.params.BobMaxHeight, c.params.BobSmoothing*dt)
}
