package session

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"strings"

	"github.com/disgoorg/json"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/stride/internal"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/oomph-ac/stride/oerror"
)

// CurrentRecordingVer is written as the first line of every recording. Recordings of any other version are
// rejected.
const CurrentRecordingVer = "1"

// frameSize is the encoded size of a Frame: tick, delta, four axes, flags and digest.
const frameSize = 8 + 8 + 4*8 + 1 + 8

const (
	flagSprint byte = 1 << iota
	flagCrouch
	flagJump
)

// Header describes the controller a recording was made with.
type Header struct {
	Name       string                `json:"name"`
	Parameters locomotion.Parameters `json:"parameters"`
	Position   mgl64.Vec3            `json:"position"`
	Yaw        float64               `json:"yaw"`
	// StartedAt is the wall clock time the recording started, in unix nanoseconds.
	StartedAt int64 `json:"started_at"`
}

// Frame is a single recorded tick.
type Frame struct {
	Tick  uint64
	Delta float64
	Input locomotion.InputSample
	// Digest is the digest of the controller state after the tick.
	Digest uint64
}

// Recording is a decoded recording.
type Recording struct {
	Version string
	Header  Header
	Frames  []Frame
}

// Recorder writes the inputs a controller is advanced with, together with a digest of the state each tick
// produced. It is not safe for concurrent use.
type Recorder struct {
	w      *bufio.Writer
	closer io.Closer
	tick   uint64
}

// NewRecorder writes the recording header to w and returns a recorder appending frames to it.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	r := &Recorder{w: bufio.NewWriter(w)}

	// Encode the recording version into the header of the recording, so replays can tell whether they are
	// able to decode it.
	if _, err := r.w.WriteString(CurrentRecordingVer + "\n"); err != nil {
		return nil, oerror.New("unable to write recording version: %v", err)
	}
	enc, err := json.Marshal(h)
	if err != nil {
		return nil, oerror.New("unable to encode recording header: %v", err)
	}
	if _, err := r.w.Write(enc); err != nil {
		return nil, oerror.New("unable to write recording header: %v", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return nil, oerror.New("unable to write recording header: %v", err)
	}
	return r, nil
}

// Create truncates the file at path and starts a recording in it. Close must be called to flush it.
func Create(path string, h Header) (*Recorder, error) {
	os.Remove(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, oerror.New("unable to open recording file: %v", err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Record appends one tick: the input and delta the controller was advanced with and the state it ended in.
func (r *Recorder) Record(in locomotion.InputSample, dt float64, s locomotion.State) error {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	encodeFrame(buf, Frame{Tick: r.tick, Delta: dt, Input: in, Digest: Digest(s)})
	if _, err := r.w.Write(buf.Bytes()); err != nil {
		return oerror.New("unable to write frame %d: %v", r.tick, err)
	}
	r.tick++
	return nil
}

// Ticks returns the number of frames recorded so far.
func (r *Recorder) Ticks() uint64 {
	return r.tick
}

// Flush writes any buffered frames to the underlying writer.
func (r *Recorder) Flush() error {
	return r.w.Flush()
}

// Close flushes the recording and closes the file if it was opened by Create.
func (r *Recorder) Close() error {
	err := r.w.Flush()
	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
	}
	return err
}

// DecodeRecording decodes a recording from rd. It returns an error if the recording could not be parsed, or if
// its version is not supported.
func DecodeRecording(rd io.Reader) (*Recording, error) {
	br := bufio.NewReader(rd)

	version, err := br.ReadString('\n')
	if err != nil {
		return nil, oerror.New("unable to read recording version: %v", err)
	}
	rec := &Recording{Version: strings.TrimSuffix(version, "\n")}
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New("unsupported recording version: %q", rec.Version)
	}

	header, err := br.ReadBytes('\n')
	if err != nil {
		return nil, oerror.New("unable to read recording header: %v", err)
	}
	if err := json.Unmarshal(header, &rec.Header); err != nil {
		return nil, oerror.New("unable to decode recording header: %v", err)
	}

	var raw [frameSize]byte
	for {
		if _, err := io.ReadFull(br, raw[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return rec, nil
			}
			return nil, oerror.New("unable to read frame %d: %v", len(rec.Frames), err)
		}
		f := decodeFrame(raw[:])
		if f.Tick != uint64(len(rec.Frames)) {
			return nil, oerror.New("frame %d out of order: got tick %d", len(rec.Frames), f.Tick)
		}
		rec.Frames = append(rec.Frames, f)
	}
}

// Open reads and decodes the recording file at path.
func Open(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oerror.New("unable to open recording file: %v", err)
	}
	defer f.Close()
	return DecodeRecording(f)
}

func encodeFrame(buf io.Writer, f Frame) {
	var flags byte
	if f.Input.SprintHeld {
		flags |= flagSprint
	}
	if f.Input.CrouchHeld {
		flags |= flagCrouch
	}
	if f.Input.JumpPressed {
		flags |= flagJump
	}

	binary.Write(buf, binary.LittleEndian, f.Tick)
	binary.Write(buf, binary.LittleEndian, f.Delta)
	binary.Write(buf, binary.LittleEndian, f.Input.Horizontal)
	binary.Write(buf, binary.LittleEndian, f.Input.Vertical)
	binary.Write(buf, binary.LittleEndian, f.Input.MouseX)
	binary.Write(buf, binary.LittleEndian, f.Input.MouseY)
	binary.Write(buf, binary.LittleEndian, flags)
	binary.Write(buf, binary.LittleEndian, f.Digest)
}

func decodeFrame(b []byte) Frame {
	f64 := func(off int) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
	}
	flags := b[48]
	return Frame{
		Tick:  binary.LittleEndian.Uint64(b),
		Delta: f64(8),
		Input: locomotion.InputSample{
			Horizontal:  f64(16),
			Vertical:    f64(24),
			MouseX:      f64(32),
			MouseY:      f64(40),
			SprintHeld:  flags&flagSprint != 0,
			CrouchHeld:  flags&flagCrouch != 0,
			JumpPressed: flags&flagJump != 0,
		},
		Digest: binary.LittleEndian.Uint64(b[49:]),
	}
}
