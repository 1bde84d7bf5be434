package locomotion

import "github.com/go-gl/mathgl/mgl64"

// State is the continuous state of a controller that persists across ticks. The mode flags are derived every
// tick and are only exposed for reading.
type State struct {
	Position mgl64.Vec3
	// Yaw is the character's facing in degrees, [0, 360).
	Yaw float64
	// Pitch is the camera pitch in degrees. Positive looks down.
	Pitch float64

	// VerticalVelocity is negative while falling.
	VerticalVelocity float64

	Grounded  bool
	Moving    bool
	Sprinting bool
	// Crouching is the commanded state: the button is held or standing up is blocked.
	Crouching bool

	// BobPhase is kept in [0, 2π).
	BobPhase   float64
	BobOffsetY float64

	// CameraHeight is the crouch-blended camera height.
	CameraHeight float64
	// ColliderHeight is the crouch-blended physical height.
	ColliderHeight float64
	// CameraLocalPosition is the smoothed camera offset written to the camera target.
	CameraLocalPosition mgl64.Vec3
}

func newState(p Parameters, pos mgl64.Vec3, yaw float64) State {
	return State{
		Position:            pos,
		Yaw:                 yaw,
		CameraHeight:        p.StandingCameraHeight,
		ColliderHeight:      p.StandingColliderHeight,
		CameraLocalPosition: mgl64.Vec3{0, p.StandingCameraHeight, 0},
	}
}
