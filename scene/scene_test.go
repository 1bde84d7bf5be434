package scene

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/pickup"
	"github.com/oomph-ac/stride/respawn"
	"github.com/oomph-ac/stride/settings"
	"github.com/oomph-ac/stride/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

// level returns a scene with a large floor whose top is at y=0 and a crawlspace ceiling over x in [4, 8].
func level(t *testing.T, parallel bool) *Scene {
	t.Helper()
	conf := settings.Default()
	conf.Simulation.Parallel = parallel

	s, err := New(conf, nil)
	require.NoError(t, err)
	s.Space().AddSolid(cube.Box(-50, -1, -50, 50, 0, 50), game.LayerStatic)
	s.Space().AddSolid(cube.Box(4, 1.3, -2, 8, 2.5, 2), game.LayerStatic)
	return s
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	conf := settings.Default()
	conf.Locomotion.MoveSpeed = -1
	_, err := New(conf, nil)
	assert.Error(t, err)
}

func TestCharacterSettlesOnFloor(t *testing.T) {
	s := level(t, false)
	c, err := s.AddCharacter("alice", mgl64.Vec3{0, 3, 0}, 0)
	require.NoError(t, err)

	s.Run(180, nil)
	out := c.Last()
	assert.True(t, out.Grounded)
	assert.Equal(t, -2.0, out.VerticalVelocity)
	// The collider is two units tall and centred on the origin.
	assert.InDelta(t, 1.0, out.Position.Y(), 1e-3)
	assert.Equal(t, uint64(180), s.CurrentTick())
	assert.InDelta(t, 3.0, s.SimulatedTime(), 1e-9)
}

func TestCharacterWalksForward(t *testing.T) {
	s := level(t, false)
	c, err := s.AddCharacter("alice", mgl64.Vec3{0, 1, -10}, 0)
	require.NoError(t, err)

	walk := map[uuid.UUID]Input{c.ID: {Move: locomotion.InputSample{Vertical: 1}}}
	s.Run(60, func(uint64) map[uuid.UUID]Input { return walk })

	pos := c.Last().Position
	assert.InDelta(t, -5.0, pos.Z(), 1e-6)
	assert.InDelta(t, 0.0, pos.X(), 1e-9)
	assert.True(t, c.Last().Moving)
}

func TestCrouchUnderCeilingStaysCrouched(t *testing.T) {
	s := level(t, false)
	c, err := s.AddCharacter("alice", mgl64.Vec3{0, 1, 0}, 90)
	require.NoError(t, err)

	crouch := map[uuid.UUID]Input{c.ID: {Move: locomotion.InputSample{CrouchHeld: true}}}
	s.Run(60, func(uint64) map[uuid.UUID]Input { return crouch })
	require.True(t, c.Last().Crouching)

	crawl := map[uuid.UUID]Input{c.ID: {Move: locomotion.InputSample{CrouchHeld: true, Vertical: 1}}}
	s.Run(144, func(uint64) map[uuid.UUID]Input { return crawl })
	require.InDelta(t, 6.0, c.Last().Position.X(), 1e-3)

	// Released under the ceiling: the space above is blocked, so the character stays down.
	s.Run(60, nil)
	assert.True(t, c.Last().Crouching)
	assert.InDelta(t, 1.0, c.Controller().State().ColliderHeight, 1e-3)

	out := map[uuid.UUID]Input{c.ID: {Move: locomotion.InputSample{Vertical: 1}}}
	s.Run(120, func(uint64) map[uuid.UUID]Input { return out })
	assert.False(t, c.Last().Crouching)
	assert.Greater(t, c.Last().Position.X(), 8.5)

	// Standing back up pushes the taller collider out of the floor.
	s.Run(60, nil)
	assert.InDelta(t, 1.0, c.Last().Position.Y(), 1e-3)
}

func TestCrouchUnderHighCeilingStaysCrouched(t *testing.T) {
	s, err := New(settings.Default(), nil)
	require.NoError(t, err)
	s.Space().AddSolid(cube.Box(-50, -1, -50, 50, 0, 50), game.LayerStatic)
	// Higher than the crouched top, lower than the standing top.
	s.Space().AddSolid(cube.Box(4, 1.7, -2, 8, 2.5, 2), game.LayerStatic)

	c, err := s.AddCharacter("alice", mgl64.Vec3{0, 1, 0}, 90)
	require.NoError(t, err)

	crouch := map[uuid.UUID]Input{c.ID: {Move: locomotion.InputSample{CrouchHeld: true}}}
	s.Run(60, func(uint64) map[uuid.UUID]Input { return crouch })
	crawl := map[uuid.UUID]Input{c.ID: {Move: locomotion.InputSample{CrouchHeld: true, Vertical: 1}}}
	s.Run(144, func(uint64) map[uuid.UUID]Input { return crawl })
	require.InDelta(t, 6.0, c.Last().Position.X(), 1e-3)
	require.InDelta(t, 0.5, c.Last().Position.Y(), 1e-3)

	s.Run(60, nil)
	assert.True(t, c.Last().Crouching)
	assert.InDelta(t, 1.0, c.Controller().State().ColliderHeight, 1e-3)
	assert.InDelta(t, 0.5, c.Last().Position.Y(), 1e-3)
}

func TestFallingOutOfWorldRespawns(t *testing.T) {
	s := level(t, false)
	c, err := s.AddCharacter("alice", mgl64.Vec3{100, 1, 100}, 45)
	require.NoError(t, err)

	var respawned bool
	for i := 0; i < 600 && !respawned; i++ {
		s.Tick(dt, nil)
		respawned = c.RespawnPosition().ApproxEqual(settings.Default().Respawn.Origin.Vec())
	}
	require.True(t, respawned)
	assert.Equal(t, 0.0, c.Controller().State().VerticalVelocity)
	assert.Equal(t, 0.0, c.Controller().State().Yaw)
}

func TestPickupThroughScene(t *testing.T) {
	s := level(t, false)
	c, err := s.AddCharacter("alice", mgl64.Vec3{0, 1, 0}, 0)
	require.NoError(t, err)

	s.Run(30, nil)
	eye := c.Eye()
	crate := world.NewBody("crate", eye.Position.Add(mgl64.Vec3{0, 0, 3}), mgl64.Vec3{0.25, 0.25, 0.25}, 1)
	crate.UseGravity = false
	s.AddBody(crate)

	s.Tick(dt, map[uuid.UUID]Input{c.ID: {Pickup: pickup.Input{PrimaryPressed: true}}})
	require.Equal(t, pickup.EventPicked, c.LastPickupEvent())
	require.Same(t, crate, c.Holder().Held())

	require.True(t, s.RemoveBody(crate.ID))
	assert.Nil(t, c.Holder().Held())
	assert.True(t, crate.UseGravity)
}

func TestCameraFollowsController(t *testing.T) {
	s := level(t, false)
	c, err := s.AddCharacter("alice", mgl64.Vec3{0, 1, 0}, 90)
	require.NoError(t, err)

	s.Tick(dt, map[uuid.UUID]Input{c.ID: {Move: locomotion.InputSample{MouseY: -10}}})
	out := c.Last()
	pos, rot := c.Camera().LocalPose()
	assert.Equal(t, out.CameraLocalPosition, pos)
	assert.Equal(t, out.CameraLocalRotation, rot)

	eye := c.Eye()
	want := game.DirectionVector(out.Yaw, out.Pitch)
	assert.InDelta(t, want.X(), eye.Forward.X(), 1e-9)
	assert.InDelta(t, want.Y(), eye.Forward.Y(), 1e-9)
	assert.InDelta(t, want.Z(), eye.Forward.Z(), 1e-9)
	assert.InDelta(t, out.Position.Y()+pos.Y(), eye.Position.Y(), 1e-9)
}

func TestParallelMatchesSerial(t *testing.T) {
	run := func(parallel bool) []mgl64.Vec3 {
		s := level(t, parallel)
		var ids []uuid.UUID
		for i := 0; i < 8; i++ {
			c, err := s.AddCharacter("npc", mgl64.Vec3{float64(i) * 3, 2, 10}, float64(i*45))
			require.NoError(t, err)
			ids = append(ids, c.ID)
		}
		s.Run(120, func(tick uint64) map[uuid.UUID]Input {
			in := make(map[uuid.UUID]Input, len(ids))
			for i, id := range ids {
				in[id] = Input{Move: locomotion.InputSample{
					Vertical:    1,
					MouseX:      float64(i % 3),
					SprintHeld:  i%2 == 0,
					JumpPressed: tick%40 == 0,
				}}
			}
			return in
		})

		var out []mgl64.Vec3
		for _, c := range s.Characters() {
			out = append(out, c.Last().Position)
		}
		return out
	}
	assert.Equal(t, run(false), run(true))
}

func TestRemoveCharacter(t *testing.T) {
	s := level(t, true)
	a, err := s.AddCharacter("a", mgl64.Vec3{0, 1, 0}, 0)
	require.NoError(t, err)
	b, err := s.AddCharacter("b", mgl64.Vec3{2, 1, 0}, 0)
	require.NoError(t, err)

	assert.True(t, s.RemoveCharacter(a.ID))
	assert.False(t, s.RemoveCharacter(a.ID))
	chars := s.Characters()
	require.Len(t, chars, 1)
	assert.Equal(t, b.ID, chars[0].ID)

	_, ok := s.Character(a.ID)
	assert.False(t, ok)
}

func TestCustomZoneFiltersTag(t *testing.T) {
	s := level(t, false)
	s.AddZone(respawn.NewZone("pit", cube.Box(20, -1, 20, 30, 5, 30), "crate", mgl64.Vec3{0, 3, 0}, 0, nil))
	c, err := s.AddCharacter("alice", mgl64.Vec3{25, 1, 25}, 0)
	require.NoError(t, err)
	crate := world.NewBody("crate", mgl64.Vec3{25, 3, 25}, mgl64.Vec3{0.5, 0.5, 0.5}, 1)
	s.AddBody(crate)

	s.Tick(dt, nil)
	assert.InDelta(t, 25.0, c.Last().Position.X(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 3, 0}, crate.Position)
	assert.Len(t, s.Zones(), 2)
}
