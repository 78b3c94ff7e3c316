// Command sparkle-wav renders a WAV file through the Sparklelyzer effect.
//
// Usage:
//
//	sparkle-wav input.wav output.wav
//	sparkle-wav -freq 2000 -drive 8 -mix 60 input.wav output.wav
//	sparkle-wav -onepole -block 128 -dither none -v input.wav output.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/sparklelyzer/dsp/dither"
	"github.com/cwbudde/sparklelyzer/dsp/effects/sparkle"
)

const (
	defaultBlockSize = 512
	minRequiredArgs  = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	freq := flag.Float64("freq", sparkle.DefaultFrequency, "Highpass cutoff in Hz (20-20000)")
	drive := flag.Float64("drive", sparkle.DefaultDrive, "Saturation drive (0-10)")
	mix := flag.Float64("mix", sparkle.DefaultMixPercent, "Dry/wet mix in percent (0-100)")
	q := flag.Float64("q", 0.707, "Highpass Q (biquad only)")
	onePole := flag.Bool("onepole", false, "Use a first-order highpass instead of the biquad")
	ditherName := flag.String("dither", "tpdf", "Output dither: none, rect or tpdf")
	block := flag.Int("block", defaultBlockSize, "Processing block size in samples")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()

		return errors.New("insufficient arguments")
	}

	dt, err := dither.ParseDitherType(*ditherName)
	if err != nil {
		return err
	}

	opts := renderOptions{
		inputPath:  args[0],
		outputPath: args[1],
		frequency:  *freq,
		drive:      *drive,
		mixPercent: *mix,
		q:          *q,
		onePole:    *onePole,
		dither:     dt,
		blockSize:  *block,
		verbose:    *verbose,
	}

	if *verbose {
		log.Printf("Input: %s", opts.inputPath)
		log.Printf("Output: %s", opts.outputPath)
		log.Printf("Frequency: %.0f Hz, drive: %.2f, mix: %.0f%%", opts.frequency, opts.drive, opts.mixPercent)
		log.Printf("Block size: %d, dither: %s", opts.blockSize, opts.dither)
	}

	start := time.Now()

	stats, err := render(opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Printf("Rendered %s -> %s\n", filepath.Base(opts.inputPath), filepath.Base(opts.outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit, %d frames\n", stats.sampleRate, stats.channels, stats.bitDepth, stats.frames)
	fmt.Printf("  Peak: %.1f dBFS in -> %.1f dBFS out\n", stats.inputPeakDB(), stats.outputPeakDB())

	if stats.clipped > 0 {
		fmt.Printf("  Clipped samples: %d\n", stats.clipped)
	}

	if secs := elapsed.Seconds(); secs > 0 && stats.sampleRate > 0 {
		fmt.Printf("  Speed: %.1fx realtime\n", float64(stats.frames)/float64(stats.sampleRate)/secs)
	}

	return nil
}
