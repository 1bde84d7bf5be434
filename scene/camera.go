package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/game"
	"github.com/sasha-s/go-deadlock"
)

// Camera is the view attached to a character. The controller writes its local pose every tick; the world pose
// is derived from the character's position and yaw.
type Camera struct {
	mu       deadlock.RWMutex
	position mgl64.Vec3
	rotation mgl64.Quat
}

func newCamera() *Camera {
	return &Camera{rotation: mgl64.QuatIdent()}
}

// SetLocalPose implements locomotion.CameraTarget.
func (c *Camera) SetLocalPose(position mgl64.Vec3, rotation mgl64.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position, c.rotation = position, rotation
}

// LocalPose returns the pose last written by the controller.
func (c *Camera) LocalPose() (mgl64.Vec3, mgl64.Quat) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position, c.rotation
}

// WorldPose returns the camera's world position and look direction for a parent at origin facing yaw.
func (c *Camera) WorldPose(origin mgl64.Vec3, yaw float64) (mgl64.Vec3, mgl64.Vec3) {
	pos, rot := c.LocalPose()
	parent := game.YawRotation(yaw)
	return origin.Add(parent.Rotate(pos)), parent.Mul(rot).Rotate(mgl64.Vec3{0, 0, 1}).Normalize()
}
