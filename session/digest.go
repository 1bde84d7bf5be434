package session

import (
	"encoding/binary"
	"math"

	"github.com/oomph-ac/stride/internal"
	"github.com/oomph-ac/stride/locomotion"
	"github.com/zeebo/xxh3"
)

// Digest returns a hash of every field of s. Two controllers fed the same inputs in the same world produce the
// same digest every tick.
func Digest(s locomotion.State) uint64 {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	var scratch [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
		buf.Write(scratch[:])
	}
	writeBool := func(v bool) {
		if v {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}

	for _, v := range s.Position {
		writeFloat(v)
	}
	writeFloat(s.Yaw)
	writeFloat(s.Pitch)
	writeFloat(s.VerticalVelocity)
	writeBool(s.Grounded)
	writeBool(s.Moving)
	writeBool(s.Sprinting)
	writeBool(s.Crouching)
	writeFloat(s.BobPhase)
	writeFloat(s.BobOffsetY)
	writeFloat(s.CameraHeight)
	writeFloat(s.ColliderHeight)
	for _, v := range s.CameraLocalPosition {
		writeFloat(v)
	}
	return xxh3.Hash(buf.Bytes())
}
