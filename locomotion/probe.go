package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/game"
)

// GroundProbe answers whether solid support exists within distance of origin along dir. Implementations must
// answer synchronously.
type GroundProbe interface {
	Grounded(origin, dir mgl64.Vec3, distance float64) bool
}

// ClearanceProbe answers whether anything not in the exclude mask blocks the segment from origin along dir.
type ClearanceProbe interface {
	Obstructed(origin, dir mgl64.Vec3, distance float64, exclude game.LayerMask) bool
}

// Collider is the vertical capsule-like volume of a character, centred on its origin.
type Collider struct {
	Radius float64
	Height float64
}

// MoveResult reports which axes were blocked while resolving a displacement.
type MoveResult struct {
	CollideX, CollideY, CollideZ bool
}

func (r MoveResult) merge(o MoveResult) MoveResult {
	return MoveResult{
		CollideX: r.CollideX || o.CollideX,
		CollideY: r.CollideY || o.CollideY,
		CollideZ: r.CollideZ || o.CollideZ,
	}
}

// MotionResolver moves a collider from origin by delta and returns where it ends up.
type MotionResolver interface {
	Move(origin, delta mgl64.Vec3, collider Collider) (mgl64.Vec3, MoveResult)
}

// CameraTarget receives the camera's local pose at the end of every tick.
type CameraTarget interface {
	SetLocalPose(position mgl64.Vec3, rotation mgl64.Quat)
}

// freeMotion is used when no resolver is configured: nothing blocks the character.
type freeMotion struct{}

func (freeMotion) Move(origin, delta mgl64.Vec3, _ Collider) (mgl64.Vec3, MoveResult) {
	return origin.Add(delta), MoveResult{}
}
