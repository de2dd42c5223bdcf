package cx

import (
	"github.com/cwbudde/algo-cx/dsp/core"
)

// gainFloorDB is the lower clamp on the high-band multiplier. The
// reference law clamps from below only; there is deliberately no upper
// clamp (see the package comment on calibration).
const gainFloorDB = -6.0

// Gain maps a tracked envelope level to the per-sample high-band
// multiplier implementing 2:1 expansion above the knee.
type Gain struct {
	zeroDB      float64 // linear level treated as 0 dB
	kneeDB      float64
	floor       float64 // DBToLinear(gainFloorDB)
	lowBandGain float64
}

// NewGain creates the expansion gain law. zeroDB is the raw sample level
// treated as the 0 dB reference; kneeDB is where expansion begins.
func NewGain(zeroDB, kneeDB, lowBandGain float64) *Gain {
	return &Gain{
		zeroDB:      zeroDB,
		kneeDB:      kneeDB,
		floor:       core.DBToLinear(gainFloorDB),
		lowBandGain: lowBandGain,
	}
}

// Factor returns the high-band multiplier for the given envelope level.
// Below the knee the factor holds at the -6 dB floor; above it, every dB
// of level buys half the linear excess over the knee, which is the 2:1
// expansion law. Factor is monotonically non-decreasing in level.
func (g *Gain) Factor(level float64) float64 {
	if level <= 0 {
		return g.floor
	}

	db := core.LinearToDB(level / g.zeroDB)
	m := core.DBToLinear(db-g.kneeDB) / 2
	if m < g.floor {
		return g.floor
	}
	return m
}

// LowBandFactor returns the multiplier applied to the low band. The CX
// companding range excludes bass content, so this defaults to unity.
func (g *Gain) LowBandFactor() float64 {
	return g.lowBandGain
}
