package game

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// CenteredAABB returns a bounding box of the given half extents centred on pos.
func CenteredAABB(pos, halfExtents mgl32.Vec3) cube.BBox {
	return cube.Box(
		pos[0]-halfExtents[0], pos[1]-halfExtents[1], pos[2]-halfExtents[2],
		pos[0]+halfExtents[0], pos[1]+halfExtents[1], pos[2]+halfExtents[2],
	)
}

// AABBContains returns true if the point lies inside or on the surface of the bounding box.
func AABBContains(bb cube.BBox, v mgl32.Vec3) bool {
	return v[0] >= bb.Min()[0] && v[0] <= bb.Max()[0] &&
		v[1] >= bb.Min()[1] && v[1] <= bb.Max()[1] &&
		v[2] >= bb.Min()[2] && v[2] <= bb.Max()[2]
}
