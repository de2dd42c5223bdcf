package cx

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-cx/dsp/core"
)

// Expander is the streaming CX expansion engine. It owns the immutable
// filter kernels and the mutable envelope state; one Expander drives one
// stream at a time from a single goroutine.
type Expander struct {
	cfg  Config
	bank *FilterBank
	env  EnvelopeFollower
	gain *Gain

	// Fixed-capacity staging for one block of interleaved PCM plus the
	// per-channel scratch planes. Allocated once at construction.
	staging  []byte
	left     []float64
	right    []float64
	lowL     []float64
	highL    []float64
	lowR     []float64
	highR    []float64
	outL     []float64
	outR     []float64
	interior []byte
}

// New creates an Expander with the reference configuration, modified by
// the given options.
func New(opts ...Option) (*Expander, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bank, err := NewFilterBank(cfg.CutoffHz, cfg.SampleRate, cfg.Taps, cfg.BlockSize)
	if err != nil {
		return nil, err
	}

	bs := cfg.BlockSize
	inner := bs - 2*cfg.Margin

	return &Expander{
		cfg:      cfg,
		bank:     bank,
		gain:     NewGain(cfg.ZeroDB, cfg.KneeDB, cfg.LowBandGain),
		staging:  make([]byte, bs*bytesPerFrame),
		left:     make([]float64, bs),
		right:    make([]float64, bs),
		lowL:     make([]float64, bs),
		highL:    make([]float64, bs),
		lowR:     make([]float64, bs),
		highR:    make([]float64, bs),
		outL:     make([]float64, inner),
		outR:     make([]float64, inner),
		interior: make([]byte, inner*bytesPerFrame),
	}, nil
}

// Config returns the effective configuration.
func (x *Expander) Config() Config { return x.cfg }

// Reset clears the envelope state. Process resets implicitly at stream
// start, so this is only needed when abandoning a stream mid-way.
func (x *Expander) Reset() { x.env.Reset() }

// Process reads interleaved 16-bit LE stereo PCM from r, expands it, and
// writes the equal-length result to w. It returns when the input ends.
//
// A stream shorter than one block is passed through untouched; so are
// the first margin frames (no filter lead-in exists) and the tail that
// no longer fills a block. Every input byte maps to exactly one output
// byte, in order.
func (x *Expander) Process(r io.Reader, w io.Writer) error {
	x.env.Reset()

	blockBytes := len(x.staging)
	marginBytes := x.cfg.Margin * bytesPerFrame
	carryBytes := 2 * marginBytes

	n, err := io.ReadFull(r, x.staging)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// Short stream: fewer frames than one block get no
			// processing at all.
			return writeAll(w, x.staging[:n])
		}
		return fmt.Errorf("cx: read: %w", err)
	}

	// No prior block can supply lead-in history for the first margin
	// frames, so they pass through raw.
	if err := writeAll(w, x.staging[:marginBytes]); err != nil {
		return err
	}

	for {
		if err := x.processBlock(w); err != nil {
			return err
		}

		// Carry the last 2*margin frames: the leading margin is filter
		// history for the next block, the trailing margin is the
		// not-yet-emitted tail that becomes its interior.
		copy(x.staging[:carryBytes], x.staging[blockBytes-carryBytes:])

		n, err := io.ReadFull(r, x.staging[carryBytes:])
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Drain: everything past the already-emitted lead
				// margin goes out unfiltered.
				return writeAll(w, x.staging[marginBytes:carryBytes+n])
			}
			return fmt.Errorf("cx: read: %w", err)
		}
	}
}

// processBlock filters the staged block, expands the margin-trimmed
// interior, and writes it out.
func (x *Expander) processBlock(w io.Writer) error {
	margin := x.cfg.Margin

	deinterleave(x.left, x.right, x.staging)

	if err := x.bank.Split(x.lowL, x.highL, x.left); err != nil {
		return err
	}
	if err := x.bank.Split(x.lowR, x.highR, x.right); err != nil {
		return err
	}

	lm := x.gain.LowBandFactor()
	for i := margin; i < x.cfg.BlockSize-margin; i++ {
		highest := math.Max(math.Abs(x.highL[i]), math.Abs(x.highR[i]))
		m := x.gain.Factor(x.env.Update(highest))

		j := i - margin
		x.outL[j] = x.highL[i]*m + x.lowL[i]*lm
		x.outR[j] = x.highR[i]*m + x.lowR[i]*lm
	}

	interleave(x.interior, x.outL, x.outR)
	return writeAll(w, x.interior)
}

func (cfg *Config) validate() error {
	if cfg.SampleRate <= 0 || !core.IsFinite(cfg.SampleRate) {
		return fmt.Errorf("cx: sample rate must be positive and finite: %v", cfg.SampleRate)
	}
	if cfg.Margin <= 0 {
		return fmt.Errorf("cx: margin must be positive: %d", cfg.Margin)
	}
	if cfg.BlockSize <= 2*cfg.Margin {
		return fmt.Errorf("cx: block size %d leaves no interior for margin %d", cfg.BlockSize, cfg.Margin)
	}
	if cfg.Taps < 3 || cfg.Taps%2 == 0 {
		return fmt.Errorf("cx: taps must be odd and >= 3: %d", cfg.Taps)
	}
	// Each block is convolved with zero initial state, so an interior
	// sample only sees a full kernel of history when the margin covers the
	// kernel lead-in. A shorter margin would make the output depend on
	// where the block boundaries fall.
	if cfg.Margin < cfg.Taps-1 {
		return fmt.Errorf("cx: margin %d cannot carry lead-in for %d taps (need >= %d)", cfg.Margin, cfg.Taps, cfg.Taps-1)
	}
	if cfg.ZeroDB <= 0 || !core.IsFinite(cfg.ZeroDB) {
		return fmt.Errorf("cx: zero dB reference must be positive and finite: %v", cfg.ZeroDB)
	}
	if !core.IsFinite(cfg.KneeDB) {
		return fmt.Errorf("cx: knee must be finite: %v", cfg.KneeDB)
	}
	if cfg.LowBandGain < 0 || !core.IsFinite(cfg.LowBandGain) {
		return fmt.Errorf("cx: low-band gain must be non-negative and finite: %v", cfg.LowBandGain)
	}
	return nil
}

func writeAll(w io.Writer, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("cx: write: %w", err)
	}
	return nil
}
