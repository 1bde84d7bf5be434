package pickup

import (
	"errors"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/oerror"
	"github.com/oomph-ac/stride/world"
	"github.com/sirupsen/logrus"
)

// Config holds the tuning of the pickup tool.
type Config struct {
	// Range is how far the pickup ray reaches.
	Range float64 `toml:"range" yaml:"range"`
	// Force scales the pull toward the hold anchor.
	Force float64 `toml:"force" yaml:"force"`

	MinDistance   float64 `toml:"min_distance" yaml:"min_distance"`
	MaxDistance   float64 `toml:"max_distance" yaml:"max_distance"`
	DistanceSpeed float64 `toml:"distance_speed" yaml:"distance_speed"`
	// HoldDistance is where the hold anchor sits in front of the eye when an object is first picked up.
	HoldDistance float64 `toml:"hold_distance" yaml:"hold_distance"`

	HoldDrag    float64 `toml:"hold_drag" yaml:"hold_drag"`
	ReleaseDrag float64 `toml:"release_drag" yaml:"release_drag"`
}

// DefaultConfig returns the default pickup tuning.
func DefaultConfig() Config {
	return Config{
		Range:         5,
		Force:         150,
		MinDistance:   1,
		MaxDistance:   10,
		DistanceSpeed: 2,
		HoldDistance:  2,
		HoldDrag:      10,
		ReleaseDrag:   world.DefaultDrag,
	}
}

// Validate reports every malformed value.
func (c Config) Validate() error {
	var errs []error
	if c.Range <= 0 {
		errs = append(errs, oerror.Invalid("pickup.range", "must be positive, got %v", c.Range))
	}
	if c.Force < 0 {
		errs = append(errs, oerror.Invalid("pickup.force", "must be non-negative, got %v", c.Force))
	}
	if c.MinDistance < 0 || c.MinDistance > c.MaxDistance {
		errs = append(errs, oerror.Invalid("pickup.min_distance", "range [%v, %v] must be ordered and non-negative", c.MinDistance, c.MaxDistance))
	}
	if c.DistanceSpeed < 0 {
		errs = append(errs, oerror.Invalid("pickup.distance_speed", "must be non-negative, got %v", c.DistanceSpeed))
	}
	if c.HoldDrag < 0 || c.ReleaseDrag < 0 {
		errs = append(errs, oerror.Invalid("pickup.hold_drag", "drag must be non-negative, got %v and %v", c.HoldDrag, c.ReleaseDrag))
	}
	return errors.Join(errs...)
}

// Caster casts rays into the world. *world.Space implements it.
type Caster interface {
	Raycast(origin, dir mgl64.Vec3, distance float64, exclude game.LayerMask) (world.Hit, bool)
}

// Input is the pickup tool's input for a tick.
type Input struct {
	// PrimaryPressed is true only on the tick the primary action goes down.
	PrimaryPressed bool
	// Scroll is the scroll wheel delta. Scrolling up pulls the object closer.
	Scroll float64
}

// Eye is the world position and look direction the tool casts from.
type Eye struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3
}

// Event reports what changed during an update.
type Event uint8

const (
	EventNone Event = iota
	EventPicked
	EventDropped
)

// Holder is the per-character pickup tool. It holds at most one body at a time.
type Holder struct {
	conf    Config
	caster  Caster
	exclude game.LayerMask

	held     *world.Body
	distance float64
	anchor   mgl64.Vec3

	log *logrus.Entry
}

// NewHolder returns a holder casting into caster. Rays skip the layers in exclude, usually the character's
// own.
func NewHolder(conf Config, caster Caster, exclude game.LayerMask, log *logrus.Logger) (*Holder, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if caster == nil {
		return nil, oerror.Missing("pickup caster")
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Holder{
		conf:     conf,
		caster:   caster,
		exclude:  exclude,
		distance: conf.HoldDistance,
		log:      log.WithField("component", "pickup"),
	}, nil
}

// Update handles one tick of input. A primary press picks up the body under the crosshair or drops the held
// one. While holding, the body is pulled toward the anchor and scrolling moves the anchor.
func (h *Holder) Update(in Input, eye Eye) Event {
	ev := EventNone
	if in.PrimaryPressed {
		if h.held == nil {
			if hit, ok := h.caster.Raycast(eye.Position, eye.Forward, h.conf.Range, h.exclude); ok && hit.Body != nil && !hit.Body.Kinematic {
				h.pick(hit.Body, eye)
				ev = EventPicked
			}
		} else {
			h.Release()
			ev = EventDropped
		}
	}

	if h.held != nil {
		h.anchor = eye.Position.Add(eye.Forward.Mul(h.distance))
		h.pull()
		h.controlDistance(in.Scroll, eye)
	}
	return ev
}

// Held returns the body being held, or nil.
func (h *Holder) Held() *world.Body {
	return h.held
}

// Anchor returns the point the held body is pulled toward.
func (h *Holder) Anchor() mgl64.Vec3 {
	return h.anchor
}

// Distance returns the current anchor distance from the eye.
func (h *Holder) Distance() float64 {
	return h.distance
}

// Release drops the held body, restoring its gravity, drag and rotation.
func (h *Holder) Release() {
	if h.held == nil {
		return
	}
	b := h.held
	b.UseGravity = true
	b.Drag = h.conf.ReleaseDrag
	b.FreezeRotation = false
	h.held = nil
	h.log.WithFields(logrus.Fields{"id": b.ID, "tag": b.Tag}).Debug("dropped")
}

func (h *Holder) pick(b *world.Body, eye Eye) {
	b.UseGravity = false
	b.Drag = h.conf.HoldDrag
	b.FreezeRotation = true
	h.held = b

	h.distance = game.ClampFloat(h.conf.HoldDistance, h.conf.MinDistance, h.conf.MaxDistance)
	h.anchor = eye.Position.Add(eye.Forward.Mul(h.distance))
	h.log.WithFields(logrus.Fields{"id": b.ID, "tag": b.Tag, "distance": h.distance}).Debug("picked up")
}

func (h *Holder) pull() {
	offset := h.anchor.Sub(h.held.Position)
	if offset.Len() > game.HoldTolerance {
		h.held.AddForce(offset.Mul(h.conf.Force))
	}
}

func (h *Holder) controlDistance(scroll float64, eye Eye) {
	h.distance = game.ClampFloat(h.distance-scroll*h.conf.DistanceSpeed, h.conf.MinDistance, h.conf.MaxDistance)
	h.anchor = eye.Position.Add(eye.Forward.Mul(h.distance))
}
