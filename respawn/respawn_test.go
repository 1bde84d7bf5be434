package respawn

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dummy struct {
	tag   string
	pos   mgl64.Vec3
	yaw   float64
	count int
}

func (d *dummy) RespawnTag() string { return d.tag }
func (d *dummy) RespawnPosition() mgl64.Vec3 { return d.pos }
func (d *dummy) Respawn(p mgl64.Vec3, y float64) { d.pos, d.yaw = p, y; d.count++ }

func fallZone(tag string) *Zone {
	return NewZone("void", cube.Box(-100, -50, -100, 100, -10, 100), tag, mgl64.Vec3{0, 2, 0}, 90, nil)
}

func TestCheckRespawnsOnEntry(t *testing.T) {
	z := fallZone("")
	d := &dummy{tag: "Player", pos: mgl64.Vec3{5, -20, 5}}

	got := z.Check(d)
	require.Len(t, got, 1)
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, d.pos)
	assert.Equal(t, 90.0, d.yaw)
	assert.Equal(t, 1, d.count)

	assert.Empty(t, z.Check(d))
	assert.Equal(t, 1, d.count)
}

func TestCheckFiltersTag(t *testing.T) {
	z := fallZone("Player")
	crate := &dummy{tag: "crate", pos: mgl64.Vec3{0, -20, 0}}
	player := &dummy{tag: "Player", pos: mgl64.Vec3{0, -20, 0}}

	got := z.Check(crate, player)
	assert.Equal(t, []Respawnable{player}, got)
	assert.Zero(t, crate.count)
}

func TestOriginInsideZoneFiresOnce(t *testing.T) {
	z := NewZone("pad", cube.Box(-1, 0, -1, 1, 2, 1), "", mgl64.Vec3{0, 1, 0}, 0, nil)
	d := &dummy{pos: mgl64.Vec3{0.5, 1, 0.5}}

	z.Check(d)
	z.Check(d)
	z.Check(d)
	assert.Equal(t, 1, d.count)

	d.pos = mgl64.Vec3{5, 1, 5}
	z.Check(d)
	d.pos = mgl64.Vec3{0, 1, 0}
	z.Check(d)
	assert.Equal(t, 2, d.count)
}

func TestForget(t *testing.T) {
	z := NewZone("pad", cube.Box(-1, 0, -1, 1, 2, 1), "", mgl64.Vec3{0, 1, 0}, 0, nil)
	d := &dummy{pos: mgl64.Vec3{0, 1, 0}}
	z.Check(d)
	z.Forget(d)
	z.Check(d)
	assert.Equal(t, 2, d.count)
}

func TestBodyRespawn(t *testing.T) {
	b := world.NewBody("crate", mgl64.Vec3{0, -30, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, 1)
	b.Velocity = mgl64.Vec3{1, -20, 0}

	z := fallZone("crate")
	z.Check(b)
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, b.Position)
	assert.Equal(t, mgl64.Vec3{}, b.Velocity)
}
