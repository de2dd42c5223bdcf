// Command cxexpand applies CX dynamic-range expansion to raw 16-bit
// little-endian interleaved stereo PCM, as recovered from Laserdisc or
// CED captures.
//
// Usage:
//
//	cxexpand [flags] [input] [output]
//
// Input and output default to stdin/stdout, so the command composes in
// a pipeline:
//
//	ld-decode --audio ... | cxexpand | aplay -f S16_LE -c 2 -r 44100
//	cxexpand capture.pcm expanded.pcm
//	cxexpand --play capture.pcm /dev/null
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-cx/dsp/cx"
	"github.com/ebitengine/oto/v3"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Input  string `arg:"" optional:"" default:"-" help:"Input raw PCM file, '-' for stdin."`
	Output string `arg:"" optional:"" default:"-" help:"Output raw PCM file, '-' for stdout."`

	Rate        float64 `default:"44100" help:"Sample rate in Hz."`
	BlockSize   int     `default:"4096" help:"Samples per processing block."`
	Margin      int     `default:"256" help:"Filter context carried per block side, in samples."`
	Zerodb      float64 `default:"14762" help:"Raw sample level treated as the 0 dB reference."`
	Knee        float64 `default:"-22" help:"Level in dB where 2:1 expansion begins."`
	Cutoff      float64 `default:"500" help:"Band-split cutoff in Hz."`
	Taps        int     `default:"255" help:"FIR kernel length, odd."`
	LowBandGain float64 `default:"1" help:"Low-band multiplier (the reference decoder pins this to 1)."`

	Play    bool `help:"Monitor the expanded audio on the default output device."`
	Version bool `short:"v" help:"Show version information."`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("cxexpand"),
		kong.Description("CX dynamic-range expander for raw stereo PCM streams"),
		kong.UsageOnError(),
	)

	if cli.Version {
		fmt.Println("cxexpand", version)
		return
	}

	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, "cxexpand:", err)
		os.Exit(1)
	}
}

func run(cli *CLI) error {
	expander, err := cx.New(
		cx.WithSampleRate(cli.Rate),
		cx.WithBlockSize(cli.BlockSize),
		cx.WithMargin(cli.Margin),
		cx.WithZeroDB(cli.Zerodb),
		cx.WithKnee(cli.Knee),
		cx.WithCutoff(cli.Cutoff),
		cx.WithTaps(cli.Taps),
		cx.WithLowBandGain(cli.LowBandGain),
	)
	if err != nil {
		return err
	}

	in, err := openInput(cli.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(cli.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	buffered := bufio.NewWriterSize(out, 64<<10)
	sink := io.Writer(buffered)

	var monitor *playback
	if cli.Play {
		monitor, err = newPlayback(int(cli.Rate))
		if err != nil {
			return fmt.Errorf("audio monitor: %w", err)
		}
		sink = io.MultiWriter(buffered, monitor)
	}

	err = expander.Process(bufio.NewReaderSize(in, 64<<10), sink)
	if monitor != nil {
		monitor.Drain()
	}
	if err != nil {
		return err
	}

	return buffered.Flush()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// playback streams expanded PCM to the default output device through a
// pipe, so processing backpressures on the audio clock when monitoring.
type playback struct {
	pw     *io.PipeWriter
	player *oto.Player
}

func newPlayback(sampleRate int) (*playback, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	return &playback{pw: pw, player: player}, nil
}

func (p *playback) Write(b []byte) (int, error) {
	return p.pw.Write(b)
}

// Drain closes the feed and waits for buffered audio to finish playing.
func (p *playback) Drain() {
	p.pw.Close()
	for p.player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
	p.player.Close()
}
