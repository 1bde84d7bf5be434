package locomotion

import (
	"errors"
	"math"

	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/oerror"
)

// Parameters are the static tuning values of a locomotion controller. They are set once when the controller
// is created and never change for the lifetime of the session.
type Parameters struct {
	// MoveSpeed is the walking speed in world units per second.
	MoveSpeed float64 `toml:"move_speed" yaml:"move_speed"`
	// SprintMultiplier scales MoveSpeed while sprinting.
	SprintMultiplier float64 `toml:"sprint_multiplier" yaml:"sprint_multiplier"`
	// CrouchMultiplier scales MoveSpeed while crouching. It takes precedence over SprintMultiplier.
	CrouchMultiplier float64 `toml:"crouch_multiplier" yaml:"crouch_multiplier"`
	// MouseSensitivity scales look deltas into degrees.
	MouseSensitivity float64 `toml:"mouse_sensitivity" yaml:"mouse_sensitivity"`
	// JumpForce is the target peak height of a jump. The launch speed is derived from it and Gravity.
	JumpForce float64 `toml:"jump_force" yaml:"jump_force"`
	// Gravity is the magnitude of gravitational acceleration. It always pulls toward -Y.
	Gravity float64 `toml:"gravity" yaml:"gravity"`

	BobAmplitude   float64 `toml:"bob_amplitude" yaml:"bob_amplitude"`
	BobSpeed       float64 `toml:"bob_speed" yaml:"bob_speed"`
	SprintBobSpeed float64 `toml:"sprint_bob_speed" yaml:"sprint_bob_speed"`
	CrouchBobSpeed float64 `toml:"crouch_bob_speed" yaml:"crouch_bob_speed"`
	IdleBobSpeed   float64 `toml:"idle_bob_speed" yaml:"idle_bob_speed"`
	// BobMaxHeight is the fixed camera height the bob offset oscillates around.
	BobMaxHeight float64 `toml:"bob_max_height" yaml:"bob_max_height"`
	// BobSmoothing is the rate at which the camera follows the bob target.
	BobSmoothing float64 `toml:"bob_smoothing" yaml:"bob_smoothing"`

	StandingCameraHeight  float64 `toml:"standing_camera_height" yaml:"standing_camera_height"`
	CrouchingCameraHeight float64 `toml:"crouching_camera_height" yaml:"crouching_camera_height"`
	CrouchTransitionSpeed float64 `toml:"crouch_transition_speed" yaml:"crouch_transition_speed"`

	ColliderRadius          float64 `toml:"collider_radius" yaml:"collider_radius"`
	StandingColliderHeight  float64 `toml:"standing_collider_height" yaml:"standing_collider_height"`
	CrouchingColliderHeight float64 `toml:"crouching_collider_height" yaml:"crouching_collider_height"`

	// GroundProbeDistance is how far below the character origin support is searched for.
	GroundProbeDistance float64 `toml:"ground_probe_distance" yaml:"ground_probe_distance"`
	// GroundedVelocity is the vertical velocity a grounded, falling character is held at.
	GroundedVelocity float64 `toml:"grounded_velocity" yaml:"grounded_velocity"`

	MinPitch float64 `toml:"min_pitch" yaml:"min_pitch"`
	MaxPitch float64 `toml:"max_pitch" yaml:"max_pitch"`
}

// DefaultParameters returns the parameters a character controller is tuned with out of the box.
func DefaultParameters() Parameters {
	return Parameters{
		MoveSpeed:        5,
		SprintMultiplier: 1.5,
		CrouchMultiplier: 0.5,
		MouseSensitivity: 2,
		JumpForce:        5,
		Gravity:          game.DefaultGravity,

		BobAmplitude:   0.05,
		BobSpeed:       10,
		SprintBobSpeed: 14,
		CrouchBobSpeed: 6,
		IdleBobSpeed:   3,
		BobMaxHeight:   0.8,
		BobSmoothing:   10,

		StandingCameraHeight:  0.8,
		CrouchingCameraHeight: 0.3,
		CrouchTransitionSpeed: 10,

		ColliderRadius:          0.5,
		StandingColliderHeight:  2,
		CrouchingColliderHeight: 1,

		GroundProbeDistance: game.DefaultGroundProbeDistance,
		GroundedVelocity:    game.DefaultGroundedVelocity,

		MinPitch: game.MinPitch,
		MaxPitch: game.MaxPitch,
	}
}

// Validate reports every malformed parameter. Values are never clamped into range.
func (p Parameters) Validate() error {
	var errs []error
	finite := func(field string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, oerror.Invalid(field, "must be finite, got %v", v))
			return false
		}
		return true
	}
	nonNegative := func(field string, v float64) {
		if finite(field, v) && v < 0 {
			errs = append(errs, oerror.Invalid(field, "must be non-negative, got %v", v))
		}
	}

	nonNegative("move_speed", p.MoveSpeed)
	nonNegative("sprint_multiplier", p.SprintMultiplier)
	nonNegative("crouch_multiplier", p.CrouchMultiplier)
	nonNegative("mouse_sensitivity", p.MouseSensitivity)
	nonNegative("jump_force", p.JumpForce)
	nonNegative("gravity", p.Gravity)
	nonNegative("bob_amplitude", p.BobAmplitude)
	nonNegative("bob_speed", p.BobSpeed)
	nonNegative("sprint_bob_speed", p.SprintBobSpeed)
	nonNegative("crouch_bob_speed", p.CrouchBobSpeed)
	nonNegative("idle_bob_speed", p.IdleBobSpeed)
	nonNegative("bob_smoothing", p.BobSmoothing)
	nonNegative("crouch_transition_speed", p.CrouchTransitionSpeed)
	nonNegative("collider_radius", p.ColliderRadius)
	nonNegative("crouching_collider_height", p.CrouchingColliderHeight)
	finite("standing_collider_height", p.StandingColliderHeight)
	finite("standing_camera_height", p.StandingCameraHeight)
	finite("crouching_camera_height", p.CrouchingCameraHeight)
	finite("bob_max_height", p.BobMaxHeight)
	finite("min_pitch", p.MinPitch)
	finite("max_pitch", p.MaxPitch)

	if p.StandingCameraHeight < p.CrouchingCameraHeight {
		errs = append(errs, oerror.Invalid("standing_camera_height", "must be at least crouching_camera_height (%v), got %v", p.CrouchingCameraHeight, p.StandingCameraHeight))
	}
	if p.StandingColliderHeight < p.CrouchingColliderHeight {
		errs = append(errs, oerror.Invalid("standing_collider_height", "must be at least crouching_collider_height (%v), got %v", p.CrouchingColliderHeight, p.StandingColliderHeight))
	}
	if !(p.GroundProbeDistance > 0) {
		errs = append(errs, oerror.Invalid("ground_probe_distance", "must be positive, got %v", p.GroundProbeDistance))
	}
	if p.GroundedVelocity > 0 || math.IsNaN(p.GroundedVelocity) {
		errs = append(errs, oerror.Invalid("grounded_velocity", "must not be positive, got %v", p.GroundedVelocity))
	}
	if p.MinPitch > p.MaxPitch || p.MinPitch < -90 || p.MaxPitch > 90 {
		errs = append(errs, oerror.Invalid("min_pitch", "pitch range [%v, %v] must be ordered and within [-90, 90]", p.MinPitch, p.MaxPitch))
	}

	return errors.Join(errs...)
}

// LaunchSpeed returns the vertical speed that reaches JumpForce units of height under Gravity.
func (p Parameters) LaunchSpeed() float64 {
	return math.Sqrt(p.JumpForce * 2 * p.Gravity)
}

// ClearanceDistance returns how far above the character must be free before it may stand up.
func (p Parameters) ClearanceDistance() float64 {
	return p.StandingColliderHeight - p.CrouchingColliderHeight
}
