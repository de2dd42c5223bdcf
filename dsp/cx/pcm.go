package cx

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-cx/dsp/core"
)

const (
	bytesPerSample = 2
	bytesPerFrame  = 2 * bytesPerSample // interleaved stereo

	// clipLimit is the hard output ceiling. The reference decoder clips
	// one LSB inside the int16 range on both sides.
	clipLimit = 32766
)

// deinterleave unpacks interleaved 16-bit LE stereo bytes into the
// left/right sample slices. len(raw) must be 4*len(left) and both
// channel slices must have equal length.
func deinterleave(left, right []float64, raw []byte) {
	for i := range left {
		left[i] = float64(int16(binary.LittleEndian.Uint16(raw[bytesPerFrame*i:])))
		right[i] = float64(int16(binary.LittleEndian.Uint16(raw[bytesPerFrame*i+bytesPerSample:])))
	}
}

// interleave packs left/right samples into interleaved 16-bit LE stereo
// bytes, clipping to ±clipLimit. len(dst) must be 4*len(left).
func interleave(dst []byte, left, right []float64) {
	for i := range left {
		binary.LittleEndian.PutUint16(dst[bytesPerFrame*i:], uint16(clip16(left[i])))
		binary.LittleEndian.PutUint16(dst[bytesPerFrame*i+bytesPerSample:], uint16(clip16(right[i])))
	}
}

// clip16 rounds and hard-clips to ±clipLimit. Overflow is clipped, never
// wrapped; the loss is inherent to the 16-bit target format.
func clip16(v float64) int16 {
	return int16(core.Clamp(math.Round(v), -clipLimit, clipLimit))
}
