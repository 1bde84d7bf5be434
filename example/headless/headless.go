package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/pickup"
	"github.com/oomph-ac/stride/scene"
	"github.com/oomph-ac/stride/session"
	"github.com/oomph-ac/stride/settings"
	"github.com/oomph-ac/stride/world"
	"github.com/sirupsen/logrus"
)

const ticks = 720

var spawn = mgl64.Vec3{0, 1, -6}

// The following program drives a single character through a scripted walk: it crouches under a crawlspace,
// stands up on the other side, jumps, then picks up a crate and carries it back.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ./bin <settings_path> [recording_path]")
		return
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			panic(err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if os.Getenv("DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}

	conf, err := settings.Load(os.Args[1])
	if err != nil {
		logger.Fatalf("error loading settings: %v", err)
	}

	s, err := scene.New(conf, logger)
	if err != nil {
		logger.Fatalf("error creating scene: %v", err)
	}
	build(s.Space())
	crate := world.NewBody("crate", mgl64.Vec3{0, 0.25, 8}, mgl64.Vec3{0.25, 0.25, 0.25}, 2)
	s.AddBody(crate)

	c, err := s.AddCharacter("walker", spawn, 0)
	if err != nil {
		logger.Fatalf("error adding character: %v", err)
	}

	var rec *session.Recorder
	if len(os.Args) > 2 {
		rec, err = session.Create(os.Args[2], session.Header{
			Name:       c.Name,
			Parameters: conf.Locomotion,
			Position:   spawn,
			StartedAt:  time.Now().UnixNano(),
		})
		if err != nil {
			logger.Fatalf("error starting recording: %v", err)
		}
	}

	dt := conf.Simulation.Delta()
	perSecond := uint64(conf.Simulation.TickRate)
	for i := 0; i < ticks; i++ {
		tick := s.CurrentTick()
		in := script(tick)
		s.Tick(dt, map[uuid.UUID]scene.Input{c.ID: in})

		if rec != nil {
			if err := rec.Record(in.Move, dt, c.Controller().State()); err != nil {
				logger.Fatalf("error recording: %v", err)
			}
		}
		switch c.LastPickupEvent() {
		case pickup.EventPicked:
			logger.WithField("distance", c.Holder().Distance()).Info("picked up crate")
		case pickup.EventDropped:
			logger.WithField("pos", game.RoundVec64(crate.Position, 3)).Info("dropped crate")
		}
		if (tick+1)%perSecond == 0 {
			report(logger, s, c)
		}
	}

	if rec == nil {
		return
	}
	if err := rec.Close(); err != nil {
		logger.Fatalf("error closing recording: %v", err)
	}
	verify(logger, os.Args[2])
}

// build adds the level geometry: a floor, a low crawlspace ceiling and walls on either side of it.
func build(space *world.Space) {
	space.AddSolid(cube.Box(-20, -1, -20, 20, 0, 20), game.LayerStatic)
	space.AddSolid(cube.Box(-2, 1.3, 0, 2, 2.5, 4), game.LayerStatic)
	space.AddSolid(cube.Box(-3, 0, 0, -2, 2.5, 4), game.LayerStatic)
	space.AddSolid(cube.Box(2, 0, 0, 3, 2.5, 4), game.LayerStatic)
}

// script returns the input for a tick of the walk.
func script(tick uint64) scene.Input {
	var in scene.Input
	switch {
	case tick < 60:
	case tick < 120:
		in.Move.CrouchHeld = true
	case tick < 360:
		in.Move.CrouchHeld = true
		in.Move.Vertical = 1
	case tick < 420:
		in.Move.Vertical = 1
		in.Move.SprintHeld = true
	case tick == 420:
		in.Move.JumpPressed = true
	case tick == 480:
		in.Move.MouseY = -20
	case tick == 490:
		in.Pickup.PrimaryPressed = true
	case tick < 540:
	case tick < 600:
		in.Move.Vertical = -1
		in.Pickup.Scroll = 0.02
	case tick == 600:
		in.Pickup.PrimaryPressed = true
	case tick == 610:
		in.Move.MouseY = 20
	}
	return in
}

func report(log *logrus.Logger, s *scene.Scene, c *scene.Character) {
	out := c.Last()
	fields := logrus.Fields{
		"t":         s.SimulatedTime(),
		"pos":       game.RoundVec64(out.Position, 3),
		"yaw":       game.Round64(out.Yaw, 2),
		"pitch":     game.Round64(out.Pitch, 2),
		"grounded":  out.Grounded,
		"crouching": out.Crouching,
		"sprinting": out.Sprinting,
	}
	if held := c.Holder().Held(); held != nil {
		fields["holding"] = held.Tag
	}
	log.WithFields(fields).Info("tick")
}

// verify replays the recording against a rebuilt level without the crate.
func verify(log *logrus.Logger, path string) {
	r, err := session.Open(path)
	if err != nil {
		log.Fatalf("error reading recording: %v", err)
	}
	space := world.New(log, r.Header.Parameters.Gravity)
	build(space)

	res, err := session.Replay(r, locomotion.Config{Ground: space, Resolver: space, Log: log})
	if err != nil {
		log.Fatalf("error replaying recording: %v", err)
	}
	entry := log.WithFields(logrus.Fields{"frames": len(r.Frames), "replayed": res.Ticks})
	if res.Diverged {
		entry.WithFields(logrus.Fields{"tick": res.Tick, "want": res.Want, "got": res.Got}).Warn("replay diverged")
		return
	}
	entry.Info("replay matched")
}
