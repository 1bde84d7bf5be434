package locomotion

import (
	"github.com/oomph-ac/stride/game"
	"github.com/sirupsen/logrus"
)

// updateCrouch decides the commanded crouch state. Crouching down is unconditional. Standing up requires the
// button to be released and the space above the collider to be clear; while it is blocked the check repeats
// every tick.
func (c *Controller) updateCrouch(in InputSample) {
	s := &c.state
	if in.CrouchHeld {
		s.Crouching = true
		c.standBlocked = false
		return
	}
	if !s.Crouching {
		return
	}

	// The collider grows from the floor, so the space that must be free starts at its current top.
	top := s.Position.Add(game.Up.Mul(s.ColliderHeight / 2))
	if c.clearance.Obstructed(top, game.Up, c.params.ClearanceDistance(), c.self) {
		if !c.standBlocked {
			c.log.WithFields(logrus.Fields{"top": top, "dist": c.params.ClearanceDistance()}).Debug("stand up blocked")
		}
		c.standBlocked = true
		return
	}
	s.Crouching = false
	c.standBlocked = false
}

// blendCrouch eases the camera and collider heights toward the targets of the commanded state, then writes the
// camera height into the local camera position.
func (c *Controller) blendCrouch(dt float64) {
	s := &c.state
	cameraTarget, colliderTarget := c.params.StandingCameraHeight, c.params.StandingColliderHeight
	if s.Crouching {
		cameraTarget, colliderTarget = c.params.CrouchingCameraHeight, c.params.CrouchingColliderHeight
	}

	t := c.params.CrouchTransitionSpeed * dt
	s.CameraHeight = game.Lerp(s.CameraHeight, cameraTarget, t)
	s.ColliderHeight = game.Lerp(s.ColliderHeight, colliderTarget, t)
	s.CameraLocalPosition[1] = s.CameraHeight
}
