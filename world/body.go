package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/stride/game"
)

const (
	// DefaultDrag is the linear drag of a free body.
	DefaultDrag = 1.0
	// angularDrag damps spin every step.
	angularDrag = 0.05
)

// Body is a dynamic box that falls, can be pushed with forces and collides with the static geometry of the
// space it is added to.
type Body struct {
	ID  uuid.UUID
	Tag string

	Layer       game.LayerMask
	HalfExtents mgl64.Vec3

	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	Mass float64
	Drag float64

	UseGravity     bool
	FreezeRotation bool
	// Kinematic bodies are never integrated. They still block rays and characters.
	Kinematic bool

	force mgl64.Vec3
}

// NewBody returns a dynamic body of the given size, affected by gravity with the default drag.
func NewBody(tag string, pos, halfExtents mgl64.Vec3, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		ID:          uuid.New(),
		Tag:         tag,
		Layer:       game.LayerBody,
		HalfExtents: halfExtents,
		Position:    pos,
		Rotation:    mgl64.QuatIdent(),
		Mass:        mass,
		Drag:        DefaultDrag,
		UseGravity:  true,
	}
}

// Box returns the world space bounding box of the body. Rotation does not affect it.
func (b *Body) Box() cube.BBox {
	return game.CenteredAABB(game.Vec64To32(b.Position), game.Vec64To32(b.HalfExtents))
}

// AddForce accumulates a force to be applied on the next step.
func (b *Body) AddForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// RespawnTag returns the tag respawn zones filter on.
func (b *Body) RespawnTag() string {
	return b.Tag
}

// RespawnPosition returns the position respawn zones test for entry.
func (b *Body) RespawnPosition() mgl64.Vec3 {
	return b.Position
}

// Respawn moves the body to pos facing yaw and stops all linear and angular motion.
func (b *Body) Respawn(pos mgl64.Vec3, yaw float64) {
	b.Position = pos
	b.Rotation = game.YawRotation(yaw)
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
	b.force = mgl64.Vec3{}
}

// integrate advances velocity by forces, gravity and drag. It returns the displacement for this step.
func (b *Body) integrate(gravity, dt float64) mgl64.Vec3 {
	if b.UseGravity {
		b.Velocity[1] -= gravity * dt
	}
	b.Velocity = b.Velocity.Add(b.force.Mul(dt / b.Mass))
	b.force = mgl64.Vec3{}
	b.Velocity = b.Velocity.Mul(game.Clamp01(1 - b.Drag*dt))

	if b.FreezeRotation {
		b.AngularVelocity = mgl64.Vec3{}
	} else if w := b.AngularVelocity.Len(); w > 1e-9 {
		b.Rotation = mgl64.QuatRotate(w*dt, b.AngularVelocity.Mul(1/w)).Mul(b.Rotation).Normalize()
		b.AngularVelocity = b.AngularVelocity.Mul(game.Clamp01(1 - angularDrag*dt))
	}
	return b.Velocity.Mul(dt)
}
