package session

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/locomotion"
)

// Result is the outcome of replaying a recording.
type Result struct {
	// Ticks is the number of frames that were replayed.
	Ticks int
	// Diverged is true if the state after some tick did not match the recording. Tick, Want and Got describe
	// the first such tick.
	Diverged  bool
	Tick      uint64
	Want, Got uint64
}

type discardCamera struct{}

func (discardCamera) SetLocalPose(mgl64.Vec3, mgl64.Quat) {}

// Replay feeds the frames of rec to a new controller built from conf and reports the first tick whose state
// digest differs from the recorded one. The parameters, position and yaw of conf are taken from the recording
// header; the probes must describe the same world the recording was made in. A nil camera is allowed.
func Replay(rec *Recording, conf locomotion.Config) (Result, error) {
	conf.Parameters = rec.Header.Parameters
	conf.Position = rec.Header.Position
	conf.Yaw = rec.Header.Yaw
	if conf.Camera == nil {
		conf.Camera = discardCamera{}
	}
	ctrl, err := conf.New()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, f := range rec.Frames {
		ctrl.Advance(f.Input, f.Delta)
		res.Ticks++
		if got := Digest(ctrl.State()); got != f.Digest {
			res.Diverged, res.Tick, res.Want, res.Got = true, f.Tick, f.Digest, got
			return res, nil
		}
	}
	return res, nil
}
