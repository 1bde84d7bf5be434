package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
	"github.com/oomph-ac/stride/pickup"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains everything that can be configured for a scene and the characters in it.
type Settings struct {
	Locomotion locomotion.Parameters `toml:"locomotion" yaml:"locomotion"`
	Pickup     pickup.Config         `toml:"pickup" yaml:"pickup"`
	Respawn    Respawn               `toml:"respawn" yaml:"respawn"`
	Simulation Simulation            `toml:"simulation" yaml:"simulation"`
}

// Respawn configures the default out-of-bounds zone.
type Respawn struct {
	// KillY is the height below which characters and bodies are sent back to the origin.
	KillY  float64 `toml:"kill_y" yaml:"kill_y"`
	Origin Vec3    `toml:"origin" yaml:"origin"`
	Yaw    float64 `toml:"yaw" yaml:"yaw"`
	// Tag limits the zone to entities with this tag. Empty matches everything.
	Tag string `toml:"tag" yaml:"tag"`
}

// Vec3 is a position as written in a settings file.
type Vec3 struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
	Z float64 `toml:"z" yaml:"z"`
}

// Vec returns v as a mgl64 vector.
func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Simulation configures the fixed step the scene is driven with.
type Simulation struct {
	TickRate int `toml:"tick_rate" yaml:"tick_rate"`
	// Parallel advances characters on the worker pool.
	Parallel bool `toml:"parallel" yaml:"parallel"`
}

// Delta returns the duration of one tick in seconds.
func (s Simulation) Delta() float64 {
	return 1 / float64(s.TickRate)
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Locomotion: locomotion.DefaultParameters(),
		Pickup:     pickup.DefaultConfig(),
		Respawn: Respawn{
			KillY:  -20,
			Origin: Vec3{Y: 1},
		},
		Simulation: Simulation{
			TickRate: 60,
			Parallel: true,
		},
	}
}

// Validate reports every malformed value across all sections.
func (s Settings) Validate() error {
	errs := []error{s.Locomotion.Validate(), s.Pickup.Validate()}
	if s.Simulation.TickRate <= 0 {
		errs = append(errs, oerror.Invalid("simulation.tick_rate", "must be positive, got %d", s.Simulation.TickRate))
	}
	if s.Respawn.Origin.Y <= s.Respawn.KillY {
		errs = append(errs, oerror.Invalid("respawn.origin", "origin y %v must be above kill_y %v", s.Respawn.Origin.Y, s.Respawn.KillY))
	}
	return errors.Join(errs...)
}

// Load reads the settings file at path, picking TOML or YAML by its extension. Values missing from the file
// keep their defaults. If the file does not exist the defaults are written to it and returned.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, s); err != nil {
			return Settings{}, err
		}
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, oerror.Wrap("read settings", err)
	}
	if err := decode(path, data, &s); err != nil {
		return Settings{}, oerror.Wrap("decode settings", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save encodes s to path, picking TOML or YAML by its extension.
func Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return oerror.Wrap("encode settings", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oerror.Wrap("write settings", err)
	}
	return nil
}

func decode(path string, data []byte, s *Settings) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, s)
	}
	return toml.Unmarshal(data, s)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
