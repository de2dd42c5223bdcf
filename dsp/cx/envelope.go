package cx

import "math"

// Envelope tracker coefficients. These are tuned constants of the CX
// decoder, not derived quantities; each decay/attack pair sums to ~1 so
// the tracker behaves as a weighted moving average with no gain drift.
const (
	fastDecay  = 0.9995
	fastAttack = 0.000570

	slowDecay  = 0.999925
	slowAttack = 0.0000855
)

// EnvelopeFollower tracks signal level with two exponential accumulators.
// The fast tracker dominates transients; the slow tracker dominates
// sustained level and the noise floor. One follower serves both stereo
// channels so the expansion never shifts the stereo image.
//
// The recurrence is strictly ordered: state for sample i depends on
// state for sample i-1, so a follower must only ever be advanced from a
// single goroutine.
type EnvelopeFollower struct {
	fast float64
	slow float64
}

// Update advances both trackers with the peak high-band magnitude of one
// stereo frame and returns the combined tracked level.
func (e *EnvelopeFollower) Update(highest float64) float64 {
	e.fast = e.fast*fastDecay + highest*fastAttack
	e.slow = e.slow*slowDecay + highest*slowAttack
	return math.Max(e.fast, e.slow)
}

// Level returns the combined tracked level without advancing the state.
func (e *EnvelopeFollower) Level() float64 {
	return math.Max(e.fast, e.slow)
}

// Fast returns the fast tracker state.
func (e *EnvelopeFollower) Fast() float64 { return e.fast }

// Slow returns the slow tracker state.
func (e *EnvelopeFollower) Slow() float64 { return e.slow }

// Reset zeroes both trackers, the stream-start condition.
func (e *EnvelopeFollower) Reset() {
	e.fast = 0
	e.slow = 0
}
