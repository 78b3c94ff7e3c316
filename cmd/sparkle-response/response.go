package main

import (
	"fmt"

	"github.com/cwbudde/sparklelyzer/dsp/core"
	"github.com/cwbudde/sparklelyzer/dsp/effects/sparkle"
	"github.com/cwbudde/sparklelyzer/dsp/signal"
	"github.com/cwbudde/sparklelyzer/measure/tone"
	"github.com/cwbudde/sparklelyzer/plugin"
)

const maxHarmonic = 9

type config struct {
	frequency  float64
	drive      float64
	mixPercent float64
	sampleRate float64
	amplitude  float64
	blockSize  int
	fftSize    int
	kind       sparkle.FilterKind
}

func defaultConfig() config {
	return config{
		frequency:  sparkle.DefaultFrequency,
		drive:      sparkle.DefaultDrive,
		mixPercent: sparkle.DefaultMixPercent,
		sampleRate: 48000,
		amplitude:  0.5,
		blockSize:  512,
		fftSize:    8192,
		kind:       sparkle.FilterBiquad,
	}
}

type row struct {
	probe    float64
	filterDB float64
	gainDB   float64
	thd      float64
	outRMS   float64
}

func measureAll(cfg config, probes []float64) ([]row, error) {
	analyzer, err := tone.NewAnalyzer(cfg.sampleRate, cfg.fftSize)
	if err != nil {
		return nil, err
	}

	rows := make([]row, 0, len(probes))
	for _, hz := range probes {
		r, err := measure(cfg, analyzer, hz)
		if err != nil {
			return nil, fmt.Errorf("probe %g Hz: %w", hz, err)
		}

		rows = append(rows, r)
	}

	return rows, nil
}

// measure renders a sine probe through a fresh plugin instance and analyses
// the settled tail.
func measure(cfg config, analyzer *tone.Analyzer, probeHz float64) (row, error) {
	if probeHz >= cfg.sampleRate/2 {
		return row{}, fmt.Errorf("probe at or above Nyquist")
	}

	p, err := plugin.New(sparkle.WithFilterKind(cfg.kind))
	if err != nil {
		return row{}, err
	}

	params := p.Parameters()
	params.MustGet(plugin.ParamFrequency).Store(cfg.frequency)
	params.MustGet(plugin.ParamSaturation).Store(cfg.drive)
	params.MustGet(plugin.ParamMix).Store(cfg.mixPercent)

	if err := p.PrepareToPlay(cfg.sampleRate, cfg.blockSize, 1); err != nil {
		return row{}, err
	}

	// One analysis frame of settling time ahead of the measured frame.
	gen := signal.NewGenerator(core.WithSampleRate(cfg.sampleRate))

	in, err := gen.Sine(probeHz, cfg.amplitude, 2*analyzer.Size())
	if err != nil {
		return row{}, err
	}

	out := append([]float32(nil), in...)

	frame := make([][]float32, 1)
	for start := 0; start < len(out); start += cfg.blockSize {
		frame[0] = out[start:min(start+cfg.blockSize, len(out))]
		p.ProcessBlock(frame, 1)
	}

	gain, err := analyzer.GainDB(in, out, probeHz)
	if err != nil {
		return row{}, err
	}

	thd, err := analyzer.HarmonicDistortion(out, probeHz, maxHarmonic)
	if err != nil {
		return row{}, err
	}

	coeffs := p.Processor().Filter()

	return row{
		probe:    probeHz,
		filterDB: coeffs.MagnitudeDB(probeHz, cfg.sampleRate),
		gainDB:   gain,
		thd:      thd,
		outRMS:   tone.RMS(out[len(out)-analyzer.Size():]),
	}, nil
}
