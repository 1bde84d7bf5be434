package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// contactEpsilon is the distance under which two faces are treated as touching.
const contactEpsilon = 1e-7

// sweepOrder is the order in which the axes of a displacement are resolved: Y, then X, then Z.
var sweepOrder = [3]int{1, 0, 2}

// sweep moves box by vel against solids one axis at a time in sweepOrder. A box that already overlaps one of the
// solids is pushed out along the axis of least penetration. It returns the displacement that was actually
// applied.
func sweep(box cube.BBox, vel mgl32.Vec3, solids []cube.BBox) mgl32.Vec3 {
	var moved mgl32.Vec3
	for _, axis := range sweepOrder {
		var step mgl32.Vec3
		step[axis] = vel[axis]
		for i := len(solids) - 1; i >= 0; i-- {
			step = clip(solids[i], box, step)
		}
		box = box.Translate(step)
		moved = moved.Add(step)
	}
	return moved
}

// clip shortens the displacement step of box so that it stops at the face of solid. If the two boxes already
// overlap, the axis of least penetration is instead raised to at least the distance needed to separate them.
// Solids with zero volume are ignored.
func clip(solid, box cube.BBox, step mgl32.Vec3) mgl32.Vec3 {
	if zeroVolume(solid) {
		return step
	}

	// For each axis, depth is the overlap along it, or the (non-positive) gap when the boxes are apart on it,
	// and normal is the direction box would have to move to leave solid through the nearer face.
	var depth, normal [3]float32
	gapAxis := -1
	for i := range 3 {
		below := snapContact(box.Max()[i] - solid.Min()[i])
		above := snapContact(solid.Max()[i] - box.Min()[i])

		switch {
		case below <= 0:
			depth[i], normal[i] = below, -1
		case above <= 0:
			depth[i], normal[i] = above, 1
		case below < above:
			depth[i], normal[i] = below, -1
			continue
		default:
			depth[i], normal[i] = above, 1
			continue
		}
		if gapAxis >= 0 {
			// Apart on two axes: a single-axis step can never bring them into contact.
			return step
		}
		gapAxis = i
	}

	if gapAxis < 0 {
		best := 0
		for i := 1; i < 3; i++ {
			if depth[i] < depth[best] {
				best = i
			}
		}
		push := depth[best] * normal[best]
		if push > 0 {
			step[best] = math32.Max(push, step[best])
		} else {
			step[best] = math32.Min(push, step[best])
		}
		return step
	}

	if depth[gapAxis]-normal[gapAxis]*step[gapAxis] > 0 {
		step[gapAxis] = depth[gapAxis] * normal[gapAxis]
	}
	return step
}

func snapContact(v float32) float32 {
	if math32.Abs(v) <= contactEpsilon {
		return 0
	}
	return v
}

func zeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}
