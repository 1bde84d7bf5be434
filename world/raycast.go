package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/game"
)

// Hit is the result of a ray cast.
type Hit struct {
	Position mgl64.Vec3
	Distance float64
	Layer    game.LayerMask
	// Body is the body that was hit, or nil for static geometry.
	Body *Body
}

// Raycast returns the closest solid or body along the segment from origin in dir, up to distance. Layers in
// exclude are ignored.
func (s *Space) Raycast(origin, dir mgl64.Vec3, distance float64, exclude game.LayerMask) (Hit, bool) {
	s.RLock()
	defer s.RUnlock()
	return s.raycast(origin, dir, distance, exclude)
}

// Grounded implements locomotion.GroundProbe. Characters never stand on each other.
func (s *Space) Grounded(origin, dir mgl64.Vec3, distance float64) bool {
	_, ok := s.Raycast(origin, dir, distance, game.LayerCharacter)
	return ok
}

// Obstructed implements locomotion.ClearanceProbe.
func (s *Space) Obstructed(origin, dir mgl64.Vec3, distance float64, exclude game.LayerMask) bool {
	_, ok := s.Raycast(origin, dir, distance, exclude)
	return ok
}

func (s *Space) raycast(origin, dir mgl64.Vec3, distance float64, exclude game.LayerMask) (Hit, bool) {
	if distance <= 0 || dir.LenSqr() == 0 {
		return Hit{}, false
	}

	start := game.Vec64To32(origin)
	end := game.Vec64To32(origin.Add(dir.Normalize().Mul(distance)))

	var (
		closest Hit
		found   bool
	)
	consider := func(bb cube.BBox, layer game.LayerMask, body *Body) {
		pos, ok := intercept(bb, start, end)
		if !ok {
			return
		}
		dist := float64(pos.Sub(start).Len())
		if !found || dist < closest.Distance {
			closest = Hit{Position: game.Vec32To64(pos), Distance: dist, Layer: layer, Body: body}
			found = true
		}
	}

	for _, solid := range s.solids {
		if !exclude.Has(solid.Layer) {
			consider(solid.Box, solid.Layer, nil)
		}
	}
	for el := s.bodies.Front(); el != nil; el = el.Next() {
		if b := el.Value; !exclude.Has(b.Layer) {
			consider(b.Box(), b.Layer, b)
		}
	}
	return closest, found
}

// intercept returns where the segment first touches bb. A segment starting inside the box hits at its start.
func intercept(bb cube.BBox, start, end mgl32.Vec3) (mgl32.Vec3, bool) {
	if game.AABBContains(bb, start) {
		return start, true
	}
	result, ok := trace.BBoxIntercept(bb, start, end)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return result.Position(), true
}
