package game

const (
	// DefaultGravity is the magnitude of gravitational acceleration in world units per second squared.
	DefaultGravity = 9.81
	// DefaultGroundProbeDistance exceeds the standing half-height by a small margin so uneven ground does
	// not produce false negatives.
	DefaultGroundProbeDistance = 1.2
	// DefaultGroundedVelocity keeps a grounded character pressed into the floor.
	DefaultGroundedVelocity = -2.0

	MinPitch = -90.0
	MaxPitch = 90.0

	// HoldTolerance is the distance inside which a held object is no longer pulled toward its anchor.
	HoldTolerance = 0.1
)
