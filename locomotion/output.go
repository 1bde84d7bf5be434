package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Output is the transform update produced by a tick.
type Output struct {
	Position mgl64.Vec3
	// Rotation is the yaw-only world orientation of the character.
	Rotation mgl64.Quat

	CameraLocalPosition mgl64.Vec3
	// CameraLocalRotation is the pitch-only local orientation of the camera.
	CameraLocalRotation mgl64.Quat

	Yaw, Pitch       float64
	VerticalVelocity float64

	Grounded, Moving, Sprinting, Crouching bool
	// Jumped is true if a jump launched this tick.
	Jumped bool

	Move MoveResult
}
