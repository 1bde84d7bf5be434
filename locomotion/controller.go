package locomotion

import (
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/assert"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/oerror"
	"github.com/sirupsen/logrus"
)

// Config holds everything needed to create a Controller. Ground and Camera are required. If Clearance is nil,
// Ground is used when it also implements ClearanceProbe.
type Config struct {
	Parameters Parameters

	Ground    GroundProbe
	Clearance ClearanceProbe
	// Resolver is optional. Without one, displacement is applied unobstructed.
	Resolver MotionResolver
	Camera   CameraTarget

	// Log receives debug traces of mode transitions. A nil Log discards them.
	Log *logrus.Logger

	// Self is the set of layers the character's own geometry lives on. It is excluded from clearance checks.
	// A zero value defaults to game.LayerCharacter.
	Self game.LayerMask

	Position mgl64.Vec3
	Yaw      float64
}

// Controller advances the locomotion state of a single character. It is not safe for concurrent use: exactly
// one goroutine ticks it.
type Controller struct {
	params Parameters
	state  State

	ground    GroundProbe
	clearance ClearanceProbe
	resolver  MotionResolver
	camera    CameraTarget
	self      game.LayerMask

	log *logrus.Entry

	standBlocked bool
	jumped       bool
	lastMove     MoveResult
}

// New validates the config and returns a Controller with its state initialised: camera at the standing
// height, pitch and vertical velocity zero.
func (conf Config) New() (*Controller, error) {
	if err := conf.Parameters.Validate(); err != nil {
		return nil, err
	}
	if conf.Ground == nil {
		return nil, oerror.Missing("ground probe")
	}
	if conf.Camera == nil {
		return nil, oerror.Missing("camera target")
	}
	if conf.Clearance == nil {
		c, ok := conf.Ground.(ClearanceProbe)
		if !ok {
			return nil, oerror.Missing("clearance probe")
		}
		conf.Clearance = c
	}
	if conf.Resolver == nil {
		conf.Resolver = freeMotion{}
	}
	if conf.Self == game.LayerNone {
		conf.Self = game.LayerCharacter
	}
	if conf.Log == nil {
		conf.Log = logrus.New()
		conf.Log.SetOutput(io.Discard)
	}

	c := &Controller{
		params:    conf.Parameters,
		state:     newState(conf.Parameters, conf.Position, game.WrapDegrees(conf.Yaw)),
		ground:    conf.Ground,
		clearance: conf.Clearance,
		resolver:  conf.Resolver,
		camera:    conf.Camera,
		self:      conf.Self,
		log:       conf.Log.WithField("component", "locomotion"),
	}
	c.camera.SetLocalPose(c.state.CameraLocalPosition, game.PitchRotation(0))
	return c, nil
}

// Advance runs one tick of dt seconds with the given input and returns the resulting transforms. The camera
// target is written before Advance returns.
func (c *Controller) Advance(in InputSample, dt float64) Output {
	assert.IsTrue(dt >= 0 && !math.IsInf(dt, 0), "tick delta must be finite and non-negative, got %v", dt)
	in = in.clamped()
	c.jumped = false

	c.updateCrouch(in)
	c.updateMode(in)
	c.move(in, dt)
	c.look(in)
	c.jump(in)
	c.blendCrouch(dt)
	c.bob(dt)

	c.camera.SetLocalPose(c.state.CameraLocalPosition, game.PitchRotation(c.state.Pitch))
	return c.output()
}

// Respawn places the character at pos facing yaw and stops it. Bob phase, crouch state, pitch and the
// camera's local pose are left untouched so the view does not snap.
func (c *Controller) Respawn(pos mgl64.Vec3, yaw float64) {
	c.state.Position = pos
	c.state.Yaw = game.WrapDegrees(yaw)
	c.state.VerticalVelocity = 0
	c.log.WithFields(logrus.Fields{"pos": pos, "yaw": yaw}).Debug("respawned")
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Parameters returns the parameters the controller was created with.
func (c *Controller) Parameters() Parameters {
	return c.params
}

// Collider returns the character's current physical volume.
func (c *Controller) Collider() Collider {
	return Collider{Radius: c.params.ColliderRadius, Height: c.state.ColliderHeight}
}

func (c *Controller) updateMode(in InputSample) {
	c.state.Moving = in.Moving()
	c.state.Sprinting = in.SprintHeld && c.state.Moving && !c.state.Crouching
}

func (c *Controller) output() Output {
	s := c.state
	return Output{
		Position:            s.Position,
		Rotation:            game.YawRotation(s.Yaw),
		CameraLocalPosition: s.CameraLocalPosition,
		CameraLocalRotation: game.PitchRotation(s.Pitch),
		Yaw:                 s.Yaw,
		Pitch:               s.Pitch,
		VerticalVelocity:    s.VerticalVelocity,
		Grounded:            s.Grounded,
		Moving:              s.Moving,
		Sprinting:           s.Sprinting,
		Crouching:           s.Crouching,
		Jumped:              c.jumped,
		Move:                c.lastMove,
	}
}
