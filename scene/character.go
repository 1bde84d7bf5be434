package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/pickup"
)

// DefaultTag is the respawn tag given to characters.
const DefaultTag = "Player"

// Input is everything a character reads in one tick.
type Input struct {
	Move   locomotion.InputSample
	Pickup pickup.Input
}

// Character is a controller, its camera and its pickup tool.
type Character struct {
	ID   uuid.UUID
	Name string
	Tag  string

	ctrl   *locomotion.Controller
	camera *Camera
	holder *pickup.Holder

	last  locomotion.Output
	event pickup.Event
}

// Controller returns the character's locomotion controller.
func (c *Character) Controller() *locomotion.Controller {
	return c.ctrl
}

// Camera returns the character's camera.
func (c *Character) Camera() *Camera {
	return c.camera
}

// Holder returns the character's pickup tool.
func (c *Character) Holder() *pickup.Holder {
	return c.holder
}

// Last returns the output of the most recent tick.
func (c *Character) Last() locomotion.Output {
	return c.last
}

// LastPickupEvent returns what the pickup tool did during the most recent tick.
func (c *Character) LastPickupEvent() pickup.Event {
	return c.event
}

// Eye returns the world position and look direction of the character's camera.
func (c *Character) Eye() pickup.Eye {
	s := c.ctrl.State()
	pos, fwd := c.camera.WorldPose(s.Position, s.Yaw)
	return pickup.Eye{Position: pos, Forward: fwd}
}

// RespawnTag implements respawn.Respawnable.
func (c *Character) RespawnTag() string {
	return c.Tag
}

// RespawnPosition implements respawn.Respawnable.
func (c *Character) RespawnPosition() mgl64.Vec3 {
	return c.ctrl.State().Position
}

// Respawn implements respawn.Respawnable.
func (c *Character) Respawn(pos mgl64.Vec3, yaw float64) {
	c.ctrl.Respawn(pos, yaw)
}
