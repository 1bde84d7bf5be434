package locomotion

import (
	"errors"
	"math"
	"testing"

	"github.com/oomph-ac/stride/oerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParametersAreValid(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())
}

func TestValidateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Parameters)
		field  string
	}{
		{"negative sprint multiplier", func(p *Parameters) { p.SprintMultiplier = -1 }, "sprint_multiplier"},
		{"negative transition speed", func(p *Parameters) { p.CrouchTransitionSpeed = -0.5 }, "crouch_transition_speed"},
		{"nan gravity", func(p *Parameters) { p.Gravity = math.NaN() }, "gravity"},
		{"inverted camera heights", func(p *Parameters) { p.CrouchingCameraHeight = 2 }, "standing_camera_height"},
		{"inverted collider heights", func(p *Parameters) { p.CrouchingColliderHeight = 3 }, "standing_collider_height"},
		{"zero ground distance", func(p *Parameters) { p.GroundProbeDistance = 0 }, "ground_probe_distance"},
		{"positive grounded velocity", func(p *Parameters) { p.GroundedVelocity = 1 }, "grounded_velocity"},
		{"pitch beyond vertical", func(p *Parameters) { p.MaxPitch = 120 }, "min_pitch"},
		{"nan standing camera height", func(p *Parameters) { p.StandingCameraHeight = math.NaN() }, "standing_camera_height"},
		{"nan crouching camera height", func(p *Parameters) { p.CrouchingCameraHeight = math.NaN() }, "crouching_camera_height"},
		{"nan standing collider height", func(p *Parameters) { p.StandingColliderHeight = math.NaN() }, "standing_collider_height"},
		{"infinite standing collider height", func(p *Parameters) { p.StandingColliderHeight = math.Inf(1) }, "standing_collider_height"},
		{"nan bob max height", func(p *Parameters) { p.BobMaxHeight = math.NaN() }, "bob_max_height"},
		{"nan min pitch", func(p *Parameters) { p.MinPitch = math.NaN() }, "min_pitch"},
		{"nan max pitch", func(p *Parameters) { p.MaxPitch = math.NaN() }, "max_pitch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)

			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerror.ErrInvalidParameter))

			var oe *oerror.Error
			require.True(t, errors.As(err, &oe))
			assert.Equal(t, tt.field, oe.Op)
		})
	}
}

func TestValidateReportsEveryFault(t *testing.T) {
	p := DefaultParameters()
	p.MoveSpeed = -1
	p.BobSpeed = -1

	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "move_speed")
	assert.Contains(t, err.Error(), "bob_speed")
}

func TestLaunchSpeed(t *testing.T) {
	p := DefaultParameters()
	assert.InDelta(t, 9.904, p.LaunchSpeed(), 1e-3)
	assert.Equal(t, 1.0, p.ClearanceDistance())
}
