// Package signal generates deterministic float32 test and probe signals.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tphakala/simd/f32"

	"github.com/cwbudde/sparklelyzer/dsp/core"
	"github.com/cwbudde/sparklelyzer/dsp/meter"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() uint64 { return g.seed }

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed uint64) { g.seed = seed }

// Sine generates a sine wave. The phase is accumulated in float64 so long
// probes stay on frequency.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	if freqHz < 0 || freqHz >= g.cfg.Nyquist() {
		return nil, fmt.Errorf("sine frequency must be in [0, %g): %g", g.cfg.Nyquist(), freqHz)
	}

	out := make([]float32, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float32, samples)
	rng := rand.New(rand.NewPCG(g.seed, 0))

	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}

	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float32, targetPeak float32) ([]float32, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, errors.New("normalize input must not be empty")
	}

	out := make([]float32, len(data))

	peak := meter.Peak(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	f32.Scale(out, data, targetPeak/peak)

	return out, nil
}
