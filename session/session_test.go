package session

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/game"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func floor() *world.Space {
	s := world.New(nil, game.DefaultGravity)
	s.AddSolid(cube.Box(-50, -1, -50, 50, 0, 50), game.LayerStatic)
	return s
}

func script(tick int) locomotion.InputSample {
	return locomotion.InputSample{
		Vertical:    1,
		Horizontal:  float64(tick%3 - 1),
		MouseX:      0.5,
		MouseY:      float64(tick%7) - 3,
		SprintHeld:  tick%50 < 25,
		CrouchHeld:  tick >= 100 && tick < 140,
		JumpPressed: tick%45 == 0,
	}
}

// record drives a controller on a floor and returns the encoded recording.
func record(t *testing.T, ticks int) ([]byte, Header) {
	t.Helper()
	h := Header{Name: "alice", Parameters: locomotion.DefaultParameters(), Position: mgl64.Vec3{0, 1, 0}, Yaw: 30}

	space := floor()
	ctrl, err := locomotion.Config{
		Parameters: h.Parameters,
		Ground:     space,
		Resolver:   space,
		Camera:     discardCamera{},
		Position:   h.Position,
		Yaw:        h.Yaw,
	}.New()
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := NewRecorder(&buf, h)
	require.NoError(t, err)
	for i := 0; i < ticks; i++ {
		in := script(i)
		ctrl.Advance(in, dt)
		require.NoError(t, r.Record(in, dt, ctrl.State()))
	}
	require.NoError(t, r.Close())
	assert.Equal(t, uint64(ticks), r.Ticks())
	return buf.Bytes(), h
}

func TestRecordingRoundTrip(t *testing.T) {
	data, h := record(t, 200)

	rec, err := DecodeRecording(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, CurrentRecordingVer, rec.Version)
	assert.Equal(t, h, rec.Header)
	require.Len(t, rec.Frames, 200)

	for i, f := range rec.Frames {
		assert.Equal(t, uint64(i), f.Tick)
		assert.Equal(t, dt, f.Delta)
		assert.Equal(t, script(i), f.Input)
	}
}

func TestReplayMatches(t *testing.T) {
	data, _ := record(t, 200)
	rec, err := DecodeRecording(bytes.NewReader(data))
	require.NoError(t, err)

	space := floor()
	res, err := Replay(rec, locomotion.Config{Ground: space, Resolver: space})
	require.NoError(t, err)
	assert.False(t, res.Diverged)
	assert.Equal(t, 200, res.Ticks)
}

func TestReplayReportsDivergence(t *testing.T) {
	data, _ := record(t, 200)
	rec, err := DecodeRecording(bytes.NewReader(data))
	require.NoError(t, err)

	// Without the floor the character falls from the first tick.
	space := world.New(nil, game.DefaultGravity)
	res, err := Replay(rec, locomotion.Config{Ground: space, Resolver: space})
	require.NoError(t, err)
	assert.True(t, res.Diverged)
	assert.Equal(t, uint64(0), res.Tick)
	assert.Equal(t, 1, res.Ticks)
	assert.Equal(t, rec.Frames[0].Digest, res.Want)
	assert.NotEqual(t, res.Want, res.Got)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	data, _ := record(t, 10)

	_, err := DecodeRecording(bytes.NewReader(append([]byte("9\n"), data[2:]...)))
	assert.ErrorContains(t, err, "unsupported recording version")

	_, err = DecodeRecording(bytes.NewReader(data[:len(data)-5]))
	assert.ErrorContains(t, err, "unable to read frame 9")

	_, err = DecodeRecording(bytes.NewReader([]byte("1\nnot json\n")))
	assert.ErrorContains(t, err, "unable to decode recording header")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestNewRecorderReportsHeaderWriteFailure(t *testing.T) {
	// The header is larger than the write buffer, so it reaches the underlying writer immediately.
	h := Header{Name: strings.Repeat("a", 8192), Parameters: locomotion.DefaultParameters()}
	r, err := NewRecorder(failingWriter{}, h)
	assert.Nil(t, r)
	assert.ErrorContains(t, err, "unable to write recording header: disk full")
}

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.rec")
	h := Header{Name: "alice", Parameters: locomotion.DefaultParameters()}

	r, err := Create(path, h)
	require.NoError(t, err)
	require.NoError(t, r.Record(locomotion.InputSample{Vertical: 1}, dt, locomotion.State{}))
	require.NoError(t, r.Close())

	rec, err := Open(path)
	require.NoError(t, err)
	require.Len(t, rec.Frames, 1)
	assert.Equal(t, Digest(locomotion.State{}), rec.Frames[0].Digest)
}

func TestDigestSensitivity(t *testing.T) {
	base := locomotion.State{Position: mgl64.Vec3{1, 2, 3}, CameraHeight: 0.8}
	assert.Equal(t, Digest(base), Digest(base))

	moved := base
	moved.Position[0] += 1e-12
	assert.NotEqual(t, Digest(base), Digest(moved))

	crouched := base
	crouched.Crouching = true
	assert.NotEqual(t, Digest(base), Digest(crouched))
}
