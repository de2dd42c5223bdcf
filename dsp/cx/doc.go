// Package cx implements a streaming CX dynamic-range expander for
// 16-bit little-endian interleaved stereo PCM, as used on analog
// Laserdisc and CED audio.
//
// Included components:
//   - FilterBank: phase-matched 500 Hz lowpass/highpass split using
//     windowed-sinc FIR kernels and FFT block convolution.
//   - EnvelopeFollower: dual time-constant (fast/slow) level tracker
//     shared by both channels.
//   - Gain: the 2:1 expansion law above a fixed knee with a -6 dB floor.
//   - Expander: the streaming engine; block/margin buffering, stream
//     start and drain handling, 16-bit clipping and reinterleaving.
//
// The CX-14 calibration constants follow the reference decoder and are
// approximate: the gain law is clamped only from below and the low band
// passes at unity. Both are configurable rather than corrected.
package cx
