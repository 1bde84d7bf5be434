package respawn

import (
	"io"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/game"
	"github.com/sirupsen/logrus"
)

// Respawnable is anything a zone can send back to an origin. Characters and bodies implement it.
type Respawnable interface {
	// RespawnTag is matched against the zone's tag. An empty zone tag matches everything.
	RespawnTag() string
	RespawnPosition() mgl64.Vec3
	Respawn(pos mgl64.Vec3, yaw float64)
}

// Zone is a trigger volume that moves everything entering it back to its origin.
type Zone struct {
	Name   string
	Box    cube.BBox
	Tag    string
	Origin mgl64.Vec3
	Yaw    float64

	inside map[Respawnable]struct{}
	log    *logrus.Entry
}

// NewZone returns a zone over box sending matching entities to origin facing yaw.
func NewZone(name string, box cube.BBox, tag string, origin mgl64.Vec3, yaw float64, log *logrus.Logger) *Zone {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Zone{
		Name:   name,
		Box:    box,
		Tag:    tag,
		Origin: origin,
		Yaw:    yaw,
		inside: make(map[Respawnable]struct{}),
		log:    log.WithField("zone", name),
	}
}

// Matches reports whether the zone applies to r.
func (z *Zone) Matches(r Respawnable) bool {
	return z.Tag == "" || z.Tag == r.RespawnTag()
}

// Check respawns every matching entity that entered the zone since the last check. An entity that stays
// inside the zone is only respawned once, on entry. It returns the entities that were respawned.
func (z *Zone) Check(entities ...Respawnable) []Respawnable {
	var respawned []Respawnable
	for _, r := range entities {
		if !z.Matches(r) {
			continue
		}
		if !game.AABBContains(z.Box, game.Vec64To32(r.RespawnPosition())) {
			delete(z.inside, r)
			continue
		}
		if _, ok := z.inside[r]; ok {
			continue
		}
		r.Respawn(z.Origin, z.Yaw)
		respawned = append(respawned, r)
		z.log.WithFields(logrus.Fields{"tag": r.RespawnTag(), "origin": z.Origin}).Info("respawned")

		// The origin may sit inside the zone itself.
		if game.AABBContains(z.Box, game.Vec64To32(r.RespawnPosition())) {
			z.inside[r] = struct{}{}
		}
	}
	return respawned
}

// Forget drops entry tracking for r, usually because it left the scene.
func (z *Zone) Forget(r Respawnable) {
	delete(z.inside, r)
}
