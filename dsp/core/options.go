package core

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned by ProcessorConfig.Validate.
var (
	ErrInvalidSampleRate  = errors.New("core: sample rate must be > 0 and finite")
	ErrInvalidBlockSize   = errors.New("core: block size must be > 0")
	ErrInvalidNumChannels = errors.New("core: channel count must be > 0")
)

// ProcessorConfig describes the stream geometry a processor is prepared for.
// It stays fixed between two prepare calls.
type ProcessorConfig struct {
	SampleRate  float64
	BlockSize   int
	NumChannels int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a stereo 48 kHz configuration with 512-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:  48000,
		BlockSize:   512,
		NumChannels: 2,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithNumChannels sets the channel count.
func WithNumChannels(numChannels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if numChannels > 0 {
			cfg.NumChannels = numChannels
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports whether the configuration describes a usable stream.
func (c ProcessorConfig) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, c.SampleRate)
	}

	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, c.BlockSize)
	}

	if c.NumChannels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNumChannels, c.NumChannels)
	}

	return nil
}

// Nyquist returns half the sample rate.
func (c ProcessorConfig) Nyquist() float64 {
	return c.SampleRate / 2
}
