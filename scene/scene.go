package scene

import (
	"io"
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/pickup"
	"github.com/oomph-ac/stride/respawn"
	"github.com/oomph-ac/stride/settings"
	"github.com/oomph-ac/stride/worker"
	"github.com/oomph-ac/stride/world"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// killBounds is the horizontal and lower extent of the default out-of-bounds zone.
const killBounds = 1e6

// Scene ties characters, the collision space and respawn zones together and steps them in a fixed order.
type Scene struct {
	conf  settings.Settings
	space *world.Space

	characters *orderedmap.OrderedMap[uuid.UUID, *Character]
	zones      []*respawn.Zone

	tick uint64
	log  *logrus.Logger

	deadlock.Mutex
}

// New validates s and returns an empty scene. The space uses the locomotion gravity so bodies and characters
// fall alike. A zone below Respawn.KillY sends everything that falls out of the world back to the origin.
func New(s settings.Settings, log *logrus.Logger) (*Scene, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	sc := &Scene{
		conf:       s,
		space:      world.New(log, s.Locomotion.Gravity),
		characters: orderedmap.NewOrderedMap[uuid.UUID, *Character](),
		log:        log,
	}
	kill := cube.Box(-killBounds, -killBounds, -killBounds, killBounds, float32(s.Respawn.KillY), killBounds)
	sc.zones = append(sc.zones, respawn.NewZone("out_of_bounds", kill, s.Respawn.Tag, s.Respawn.Origin.Vec(), s.Respawn.Yaw, log))
	return sc, nil
}

// Space returns the collision space of the scene.
func (s *Scene) Space() *world.Space {
	return s.space
}

// Settings returns the settings the scene was created with.
func (s *Scene) Settings() settings.Settings {
	return s.conf
}

// CurrentTick returns the number of ticks run so far.
func (s *Scene) CurrentTick() uint64 {
	s.Lock()
	defer s.Unlock()
	return s.tick
}

// AddZone adds a respawn zone checked at the end of every tick.
func (s *Scene) AddZone(z *respawn.Zone) {
	s.Lock()
	defer s.Unlock()
	s.zones = append(s.zones, z)
}

// Zones returns the respawn zones, the default out-of-bounds zone first.
func (s *Scene) Zones() []*respawn.Zone {
	s.Lock()
	defer s.Unlock()
	return append([]*respawn.Zone(nil), s.zones...)
}

// AddCharacter creates a character at pos facing yaw, probing and colliding against the scene's space.
func (s *Scene) AddCharacter(name string, pos mgl64.Vec3, yaw float64) (*Character, error) {
	cam := newCamera()
	ctrl, err := locomotion.Config{
		Parameters: s.conf.Locomotion,
		Ground:     s.space,
		Clearance:  s.space,
		Resolver:   s.space,
		Camera:     cam,
		Log:        s.log,
		Self:       game.LayerCharacter,
		Position:   pos,
		Yaw:        yaw,
	}.New()
	if err != nil {
		return nil, err
	}
	holder, err := pickup.NewHolder(s.conf.Pickup, s.space, game.LayerCharacter, s.log)
	if err != nil {
		return nil, err
	}

	c := &Character{
		ID:     uuid.New(),
		Name:   name,
		Tag:    DefaultTag,
		ctrl:   ctrl,
		camera: cam,
		holder: holder,
	}
	s.Lock()
	s.characters.Set(c.ID, c)
	s.Unlock()

	s.log.WithFields(logrus.Fields{"id": c.ID, "name": name, "pos": pos}).Info("character added")
	return c, nil
}

// RemoveCharacter removes the character with the given ID, dropping anything it holds.
func (s *Scene) RemoveCharacter(id uuid.UUID) bool {
	s.Lock()
	defer s.Unlock()
	c, ok := s.characters.Get(id)
	if !ok {
		return false
	}
	c.holder.Release()
	for _, z := range s.zones {
		z.Forget(c)
	}
	s.characters.Delete(id)
	s.log.WithFields(logrus.Fields{"id": id, "name": c.Name}).Info("character removed")
	return true
}

// Character returns the character with the given ID.
func (s *Scene) Character(id uuid.UUID) (*Character, bool) {
	s.Lock()
	defer s.Unlock()
	return s.characters.Get(id)
}

// Characters returns the characters in the order they were added.
func (s *Scene) Characters() []*Character {
	s.Lock()
	defer s.Unlock()
	chars := make([]*Character, 0, s.characters.Len())
	for el := s.characters.Front(); el != nil; el = el.Next() {
		chars = append(chars, el.Value)
	}
	return chars
}

// AddBody adds a dynamic body to the space.
func (s *Scene) AddBody(b *world.Body) {
	s.space.AddBody(b)
}

// RemoveBody removes a body from the space, making any character holding it let go.
func (s *Scene) RemoveBody(id uuid.UUID) bool {
	s.Lock()
	defer s.Unlock()
	b, ok := s.space.Body(id)
	if !ok {
		return false
	}
	for el := s.characters.Front(); el != nil; el = el.Next() {
		if el.Value.holder.Held() == b {
			el.Value.holder.Release()
		}
	}
	for _, z := range s.zones {
		z.Forget(b)
	}
	return s.space.RemoveBody(id)
}

// Tick runs one step of dt seconds. Characters without an entry in inputs receive a zero input. The step runs
// in four phases: controllers advance, pickup tools update, bodies integrate, then respawn zones are checked.
func (s *Scene) Tick(dt float64, inputs map[uuid.UUID]Input) {
	s.Lock()
	defer s.Unlock()

	chars := make([]*Character, 0, s.characters.Len())
	for el := s.characters.Front(); el != nil; el = el.Next() {
		chars = append(chars, el.Value)
	}

	if s.conf.Simulation.Parallel && len(chars) > 1 {
		var g worker.Group
		for _, c := range chars {
			c, in := c, inputs[c.ID]
			g.Go(func() { c.last = c.ctrl.Advance(in.Move, dt) })
		}
		g.Wait()
	} else {
		for _, c := range chars {
			c.last = c.ctrl.Advance(inputs[c.ID].Move, dt)
		}
	}

	for _, c := range chars {
		c.event = c.holder.Update(inputs[c.ID].Pickup, c.Eye())
		switch c.event {
		case pickup.EventPicked:
			s.log.WithFields(logrus.Fields{"name": c.Name, "body": c.holder.Held().Tag}).Debug("picked up body")
		case pickup.EventDropped:
			s.log.WithField("name", c.Name).Debug("dropped body")
		}
	}

	s.space.Step(dt)

	targets := make([]respawn.Respawnable, 0, len(chars)+8)
	for _, c := range chars {
		targets = append(targets, c)
	}
	for _, b := range s.space.Bodies() {
		targets = append(targets, b)
	}
	for _, z := range s.zones {
		for _, r := range z.Check(targets...) {
			if b, ok := r.(*world.Body); ok {
				s.releaseHeld(chars, b)
			}
		}
	}
	s.tick++
}

// Run ticks the scene n times at the configured tick rate, asking next for the inputs of each tick.
func (s *Scene) Run(n int, next func(tick uint64) map[uuid.UUID]Input) {
	dt := s.conf.Simulation.Delta()
	for i := 0; i < n; i++ {
		var inputs map[uuid.UUID]Input
		if next != nil {
			inputs = next(s.CurrentTick())
		}
		s.Tick(dt, inputs)
	}
}

// SimulatedTime returns the amount of simulated time in seconds at the configured tick rate.
func (s *Scene) SimulatedTime() float64 {
	return math.Round(float64(s.CurrentTick())*s.conf.Simulation.Delta()*1e6) / 1e6
}

func (s *Scene) releaseHeld(chars []*Character, b *world.Body) {
	for _, c := range chars {
		if c.holder.Held() == b {
			c.holder.Release()
		}
	}
}
