// Command sparkle-response prints the steady-state response of the
// Sparklelyzer effect to sine probes.
//
// Usage:
//
//	sparkle-response [flags] [probe-hz ...]
//
// Without probe frequencies it measures a default set spanning the audio
// band.
//
// Examples:
//
//	sparkle-response
//	sparkle-response -freq 2000 -drive 8 100 1000 8000
//	sparkle-response -onepole -mix 50
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/sparklelyzer/dsp/effects/sparkle"
)

var defaultProbes = []float64{50, 100, 250, 500, 750, 1000, 2000, 5000, 10000}

func main() {
	cfg := defaultConfig()

	flag.Float64Var(&cfg.frequency, "freq", cfg.frequency, "highpass cutoff in Hz")
	flag.Float64Var(&cfg.drive, "drive", cfg.drive, "saturation drive (0-10)")
	flag.Float64Var(&cfg.mixPercent, "mix", cfg.mixPercent, "dry/wet mix in percent")
	flag.Float64Var(&cfg.sampleRate, "rate", cfg.sampleRate, "sample rate in Hz")
	flag.Float64Var(&cfg.amplitude, "amp", cfg.amplitude, "probe amplitude (linear)")
	flag.IntVar(&cfg.blockSize, "block", cfg.blockSize, "processing block size in samples")
	flag.IntVar(&cfg.fftSize, "size", cfg.fftSize, "analysis FFT size (power of two)")
	onePole := flag.Bool("onepole", false, "use a first-order highpass instead of the biquad")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sparkle-response [flags] [probe-hz ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints gain and harmonic distortion of the effect for sine probes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *onePole {
		cfg.kind = sparkle.FilterOnePole
	}

	probes := defaultProbes
	if flag.NArg() > 0 {
		probes = probes[:0:0]

		for _, arg := range flag.Args() {
			hz, err := strconv.ParseFloat(arg, 64)
			if err != nil || hz <= 0 {
				fmt.Fprintf(os.Stderr, "warning: ignoring probe %q\n", arg)
				continue
			}

			probes = append(probes, hz)
		}
	}

	if len(probes) == 0 {
		fmt.Fprintf(os.Stderr, "error: no valid probe frequencies\n")
		os.Exit(1)
	}

	rows, err := measureAll(cfg, probes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printRows(cfg, rows)
}

func printRows(cfg config, rows []row) {
	fmt.Printf("cutoff %.0f Hz (%s), drive %.2f, mix %.0f%%, %.0f Hz\n\n",
		cfg.frequency, cfg.kind, cfg.drive, cfg.mixPercent, cfg.sampleRate)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Probe [Hz]\tFilter [dB]\tGain [dB]\tTHD [%%]\tOut RMS\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	if _, err := fmt.Fprintf(tw, "----------\t-----------\t---------\t-------\t-------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.3f\t%.4f\n",
			r.probe, r.filterDB, r.gainDB, r.thd*100, r.outRMS); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
