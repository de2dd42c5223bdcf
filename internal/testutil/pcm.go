package testutil

import (
	"encoding/binary"
	"math"
)

// InterleavePCM packs left/right float samples into interleaved signed
// 16-bit little-endian stereo bytes, rounding and clamping to int16 range.
// Both channels must have the same length.
func InterleavePCM(left, right []float64) []byte {
	out := make([]byte, 4*len(left))
	for i := range left {
		binary.LittleEndian.PutUint16(out[4*i:], uint16(clamp16(left[i])))
		binary.LittleEndian.PutUint16(out[4*i+2:], uint16(clamp16(right[i])))
	}
	return out
}

// DeinterleavePCM unpacks interleaved signed 16-bit little-endian stereo
// bytes into per-channel float slices. Trailing bytes that do not form a
// whole frame are ignored.
func DeinterleavePCM(raw []byte) (left, right []float64) {
	frames := len(raw) / 4
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := range frames {
		left[i] = float64(int16(binary.LittleEndian.Uint16(raw[4*i:])))
		right[i] = float64(int16(binary.LittleEndian.Uint16(raw[4*i+2:])))
	}
	return left, right
}

func clamp16(v float64) int16 {
	r := math.Round(v)
	if r > math.MaxInt16 {
		return math.MaxInt16
	}
	if r < math.MinInt16 {
		return math.MinInt16
	}
	return int16(r)
}
