package cx

// Defaults reproduce the reference CX-14 decoder configuration at
// 44.1 kHz.
const (
	DefaultSampleRate  = 44100.0
	DefaultBlockSize   = 4096
	DefaultMargin      = 256
	DefaultZeroDB      = 14762.0
	DefaultKneeDB      = -22.0
	DefaultCutoffHz    = 500.0
	DefaultTaps        = 255
	DefaultLowBandGain = 1.0
)

// Config holds the expander tunables. Zero values are not meaningful;
// construct via DefaultConfig or New with options.
type Config struct {
	SampleRate float64
	BlockSize  int // samples per processing block, margins included
	Margin     int // carried filter context, samples per side
	ZeroDB     float64
	KneeDB     float64
	CutoffHz   float64
	Taps       int
	// LowBandGain is the low-band multiplier. The reference decoder pins
	// this to 1 with an explicit uncertainty marker; it is exposed here
	// instead of guessed at.
	LowBandGain float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the reference decoder configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:  DefaultSampleRate,
		BlockSize:   DefaultBlockSize,
		Margin:      DefaultMargin,
		ZeroDB:      DefaultZeroDB,
		KneeDB:      DefaultKneeDB,
		CutoffHz:    DefaultCutoffHz,
		Taps:        DefaultTaps,
		LowBandGain: DefaultLowBandGain,
	}
}

// WithSampleRate sets the stream sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) { cfg.SampleRate = sampleRate }
}

// WithBlockSize sets the processing block size in samples.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) { cfg.BlockSize = blockSize }
}

// WithMargin sets the per-side filter context in samples.
func WithMargin(margin int) Option {
	return func(cfg *Config) { cfg.Margin = margin }
}

// WithZeroDB sets the raw sample level treated as the 0 dB reference.
func WithZeroDB(zeroDB float64) Option {
	return func(cfg *Config) { cfg.ZeroDB = zeroDB }
}

// WithKnee sets the level in dB where 2:1 expansion begins.
func WithKnee(kneeDB float64) Option {
	return func(cfg *Config) { cfg.KneeDB = kneeDB }
}

// WithCutoff sets the band-split cutoff frequency in Hz.
func WithCutoff(cutoffHz float64) Option {
	return func(cfg *Config) { cfg.CutoffHz = cutoffHz }
}

// WithTaps sets the FIR kernel length (odd).
func WithTaps(taps int) Option {
	return func(cfg *Config) { cfg.Taps = taps }
}

// WithLowBandGain sets the low-band multiplier.
func WithLowBandGain(gain float64) Option {
	return func(cfg *Config) { cfg.LowBandGain = gain }
}
