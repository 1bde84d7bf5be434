package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

var (
	// Up is the world up axis. Characters yaw around it.
	Up = mgl64.Vec3{0, 1, 0}
	// Down is the direction the ground probe is cast in.
	Down = mgl64.Vec3{0, -1, 0}
	// Right is the local axis the camera pitches around.
	Right = mgl64.Vec3{1, 0, 0}
)

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// Clamp01 clamps the given value to [0, 1].
func Clamp01(num float64) float64 {
	return ClampFloat(num, 0, 1)
}

// Lerp linearly interpolates from a to b by t. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// WrapPhase brings an advancing phase back into [0, 2π) by subtracting full turns. The phase is never reset
// to zero, so whatever was accumulated past the boundary is carried over.
func WrapPhase(phase float64) float64 {
	if phase < TwoPi {
		return phase
	}
	if phase < 2*TwoPi {
		return phase - TwoPi
	}
	return math.Mod(phase, TwoPi)
}

// WrapDegrees wraps an angle in degrees to [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Round64 will round a float64 to a given precision.
func Round64(val float64, precision int) float64 {
	pwr := math.Pow(10, float64(precision))
	return math.Round(val*pwr) / pwr
}

// Vec32To64 converts a 32-bit vector to a 64-bit one.
func Vec32To64(vec3 mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(vec3[0]), float64(vec3[1]), float64(vec3[2])}
}

// Vec64To32 converts a 64-bit vector to a 32-bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round64(v.X(), p), Round64(v.Y(), p), Round64(v.Z(), p)}
}

// Forward returns the horizontal facing vector for the given yaw in degrees. A yaw of zero faces +Z and
// positive yaw turns toward +X.
func Forward(yaw float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Sin(rad), 0, math.Cos(rad)}
}

// Strafe returns the horizontal right-hand vector for the given yaw in degrees.
func Strafe(yaw float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Cos(rad), 0, -math.Sin(rad)}
}

// DirectionVector returns a direction vector from the given yaw and pitch values. Positive pitch looks down.
func DirectionVector(yaw, pitch float64) mgl64.Vec3 {
	yawRad, pitchRad := mgl64.DegToRad(yaw), mgl64.DegToRad(pitch)
	m := math.Cos(pitchRad)

	return mgl64.Vec3{
		m * math.Sin(yawRad),
		-math.Sin(pitchRad),
		m * math.Cos(yawRad),
	}
}

// YawRotation returns the quaternion rotating about the up axis by yaw degrees.
func YawRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yaw), Up)
}

// PitchRotation returns the quaternion rotating about the local right axis by pitch degrees.
func PitchRotation(pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(pitch), Right)
}
