package core

import (
	"errors"
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(2048), WithNumChannels(1))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}

	if cfg.BlockSize != 2048 {
		t.Fatalf("block size = %d, want 2048", cfg.BlockSize)
	}

	if cfg.NumChannels != 1 {
		t.Fatalf("channels = %d, want 1", cfg.NumChannels)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), WithNumChannels(0), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProcessorConfig
		want error
	}{
		{name: "default", cfg: DefaultProcessorConfig()},
		{name: "zero rate", cfg: ProcessorConfig{SampleRate: 0, BlockSize: 1, NumChannels: 1}, want: ErrInvalidSampleRate},
		{name: "nan rate", cfg: ProcessorConfig{SampleRate: math.NaN(), BlockSize: 1, NumChannels: 1}, want: ErrInvalidSampleRate},
		{name: "inf rate", cfg: ProcessorConfig{SampleRate: math.Inf(1), BlockSize: 1, NumChannels: 1}, want: ErrInvalidSampleRate},
		{name: "zero block", cfg: ProcessorConfig{SampleRate: 44100, BlockSize: 0, NumChannels: 1}, want: ErrInvalidBlockSize},
		{name: "zero channels", cfg: ProcessorConfig{SampleRate: 44100, BlockSize: 64, NumChannels: 0}, want: ErrInvalidNumChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNyquist(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(44100))
	if cfg.Nyquist() != 22050 {
		t.Fatalf("Nyquist() = %v, want 22050", cfg.Nyquist())
	}
}
