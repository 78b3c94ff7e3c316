package sparkle

import (
	"fmt"
	"math"
)

// FilterKind selects the highpass topology.
type FilterKind int

const (
	// FilterBiquad is a second-order (12 dB/octave) RBJ highpass.
	FilterBiquad FilterKind = iota
	// FilterOnePole is a first-order (6 dB/octave) highpass.
	FilterOnePole
)

// String returns the filter kind name.
func (k FilterKind) String() string {
	switch k {
	case FilterBiquad:
		return "biquad"
	case FilterOnePole:
		return "one-pole"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

const (
	defaultQ = 0.707
	minQ     = 0.1
	maxQ     = 10.0

	// nyquistGuard keeps the cutoff strictly below Nyquist.
	nyquistGuard = 0.49

	minSampleRate = 1000.0
)

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	q    float64
	kind FilterKind
}

func defaultConfig() config {
	return config{
		q:    defaultQ,
		kind: FilterBiquad,
	}
}

// WithQ sets the quality factor of the biquad highpass in [0.1, 10].
// It has no effect on the one-pole filter.
func WithQ(q float64) Option {
	return func(cfg *config) error {
		if q < minQ || q > maxQ || math.IsNaN(q) {
			return fmt.Errorf("sparkle: filter Q must be in [%g, %g]: %f", minQ, maxQ, q)
		}

		cfg.q = q

		return nil
	}
}

// WithFilterKind selects the highpass topology.
func WithFilterKind(kind FilterKind) Option {
	return func(cfg *config) error {
		if kind != FilterBiquad && kind != FilterOnePole {
			return fmt.Errorf("sparkle: filter kind is invalid: %d", kind)
		}

		cfg.kind = kind

		return nil
	}
}
