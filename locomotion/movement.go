package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/game"
	"github.com/sirupsen/logrus"
)

// speedMultiplier returns the multiplier for the current mode. Crouching wins over sprinting.
func (c *Controller) speedMultiplier() float64 {
	switch {
	case c.state.Crouching:
		return c.params.CrouchMultiplier
	case c.state.Sprinting:
		return c.params.SprintMultiplier
	default:
		return 1
	}
}

// move applies the horizontal input as an instantaneous velocity, probes for ground, integrates gravity and
// finally applies the vertical displacement.
func (c *Controller) move(in InputSample, dt float64) {
	s := &c.state
	collider := c.Collider()

	dir := game.Strafe(s.Yaw).Mul(in.Horizontal).Add(game.Forward(s.Yaw).Mul(in.Vertical))
	var hz MoveResult
	s.Position, hz = c.resolver.Move(s.Position, dir.Mul(c.params.MoveSpeed*c.speedMultiplier()*dt), collider)

	wasGrounded := s.Grounded
	s.Grounded = c.ground.Grounded(s.Position, game.Down, c.params.GroundProbeDistance)
	if s.Grounded != wasGrounded {
		c.log.WithFields(logrus.Fields{"grounded": s.Grounded, "vel": s.VerticalVelocity}).Debug("grounded state changed")
	}

	s.VerticalVelocity -= c.params.Gravity * dt
	if s.Grounded && s.VerticalVelocity < 0 {
		s.VerticalVelocity = c.params.GroundedVelocity
	}

	var vt MoveResult
	s.Position, vt = c.resolver.Move(s.Position, mgl64.Vec3{0, s.VerticalVelocity * dt, 0}, collider)
	c.lastMove = hz.merge(vt)
}

// jump overwrites the vertical velocity with the launch speed. It is not an impulse: any prior velocity is
// discarded.
func (c *Controller) jump(in InputSample) {
	if !in.JumpPressed || !c.state.Grounded {
		return
	}
	c.state.VerticalVelocity = c.params.LaunchSpeed()
	c.jumped = true
	c.log.WithField("vel", c.state.VerticalVelocity).Debug("jumped")
}
