package world

import (
	"io"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/internal"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Solid is a piece of static geometry.
type Solid struct {
	Box   cube.BBox
	Layer game.LayerMask
}

// Space is a small collision world of static boxes and dynamic bodies. It answers the spatial queries the
// locomotion controller and the pickup tool need. Queries may run concurrently with each other, but not with
// Step or any mutation.
type Space struct {
	gravity float64

	solids []Solid
	bodies *orderedmap.OrderedMap[uuid.UUID, *Body]

	log *logrus.Logger

	deadlock.RWMutex
}

// New returns an empty space with the given gravity magnitude. A nil logger discards output.
func New(log *logrus.Logger, gravity float64) *Space {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Space{
		gravity: gravity,
		bodies:  orderedmap.NewOrderedMap[uuid.UUID, *Body](),
		log:     log,
	}
}

// AddSolid adds a static box on the given layer.
func (s *Space) AddSolid(box cube.BBox, layer game.LayerMask) {
	s.Lock()
	defer s.Unlock()
	s.solids = append(s.solids, Solid{Box: box, Layer: layer})
}

// AddBody adds a body to the space. Adding the same body twice replaces it.
func (s *Space) AddBody(b *Body) {
	s.Lock()
	defer s.Unlock()
	s.bodies.Set(b.ID, b)
	s.log.WithFields(logrus.Fields{"id": b.ID, "tag": b.Tag, "pos": b.Position}).Debug("body added")
}

// RemoveBody removes the body with the given ID, returning false if there was none.
func (s *Space) RemoveBody(id uuid.UUID) bool {
	s.Lock()
	defer s.Unlock()
	return s.bodies.Delete(id)
}

// Body returns the body with the given ID.
func (s *Space) Body(id uuid.UUID) (*Body, bool) {
	s.RLock()
	defer s.RUnlock()
	return s.bodies.Get(id)
}

// Bodies returns the bodies in the order they were added.
func (s *Space) Bodies() []*Body {
	s.RLock()
	defer s.RUnlock()

	bodies := make([]*Body, 0, s.bodies.Len())
	for el := s.bodies.Front(); el != nil; el = el.Next() {
		bodies = append(bodies, el.Value)
	}
	return bodies
}

// Gravity returns the gravity magnitude bodies fall with.
func (s *Space) Gravity() float64 {
	return s.gravity
}

// Step integrates every non-kinematic body by dt and resolves it against the static geometry.
func (s *Space) Step(dt float64) {
	s.Lock()
	defer s.Unlock()

	for el := s.bodies.Front(); el != nil; el = el.Next() {
		b := el.Value
		if b.Kinematic {
			continue
		}

		want := game.Vec64To32(b.integrate(s.gravity, dt))
		box := b.Box()
		boxes := s.boxesNear(box.Extend(want), game.LayerNone, b)
		got := sweep(box, want, *boxes)
		internal.PutBBoxList(boxes)
		b.Position = b.Position.Add(game.Vec32To64(got))

		for axis := range 3 {
			if got[axis] != want[axis] {
				b.Velocity[axis] = 0
			}
		}
	}
}

// Move implements locomotion.MotionResolver. The collider is centred on origin and blocked by solids and
// bodies.
func (s *Space) Move(origin, delta mgl64.Vec3, collider locomotion.Collider) (mgl64.Vec3, locomotion.MoveResult) {
	s.RLock()
	defer s.RUnlock()

	box := colliderBox(origin, collider)
	want := game.Vec64To32(delta)
	boxes := s.boxesNear(box.Extend(want), game.LayerCharacter, nil)
	got := sweep(box, want, *boxes)
	internal.PutBBoxList(boxes)

	result := locomotion.MoveResult{
		CollideX: got[0] != want[0],
		CollideY: got[1] != want[1],
		CollideZ: got[2] != want[2],
	}
	return origin.Add(game.Vec32To64(got)), result
}

// boxesNear returns the boxes of solids and bodies intersecting area, skipping excluded layers and the body
// passed as self. The list is pooled and must be returned with internal.PutBBoxList.
func (s *Space) boxesNear(area cube.BBox, exclude game.LayerMask, self *Body) *[]cube.BBox {
	boxes := internal.GetBBoxList()
	for _, solid := range s.solids {
		if !exclude.Has(solid.Layer) && solid.Box.IntersectsWith(area) {
			*boxes = append(*boxes, solid.Box)
		}
	}
	if exclude.Has(game.LayerBody) {
		return boxes
	}
	for el := s.bodies.Front(); el != nil; el = el.Next() {
		b := el.Value
		if b == self || exclude.Has(b.Layer) {
			continue
		}
		if bb := b.Box(); bb.IntersectsWith(area) {
			*boxes = append(*boxes, bb)
		}
	}
	return boxes
}

func colliderBox(origin mgl64.Vec3, collider locomotion.Collider) cube.BBox {
	half := mgl32.Vec3{float32(collider.Radius), float32(collider.Height / 2), float32(collider.Radius)}
	return game.CenteredAABB(game.Vec64To32(origin), half)
}
