// Package meter measures block peak and RMS levels of float32 audio.
package meter

import (
	"math"

	"github.com/tphakala/simd/f32"
)

// Peak returns the maximum absolute sample value.
func Peak(x []float32) float32 {
	var peak float32
	for _, v := range x {
		if v < 0 {
			v = -v
		}

		if v > peak {
			peak = v
		}
	}

	return peak
}

// RMS returns the root-mean-square level, or 0 for an empty slice.
func RMS(x []float32) float32 {
	if len(x) == 0 {
		return 0
	}

	energy := f32.DotProductUnsafe(x, x)

	return float32(math.Sqrt(float64(energy) / float64(len(x))))
}

// Mean returns the arithmetic mean (DC offset), or 0 for an empty slice.
func Mean(x []float32) float32 {
	if len(x) == 0 {
		return 0
	}

	return f32.Sum(x) / float32(len(x))
}

// ChannelLevel is the measured level of one channel for one block.
type ChannelLevel struct {
	Peak float32
	RMS  float32
}

// Levels holds per-channel levels of the most recent block. The slice is
// sized once and reused, so Measure does not allocate in steady state.
type Levels struct {
	Channels []ChannelLevel
}

// Measure records the levels of every channel in buf.
func (l *Levels) Measure(buf [][]float32) {
	if cap(l.Channels) < len(buf) {
		l.Channels = make([]ChannelLevel, len(buf))
	}

	l.Channels = l.Channels[:len(buf)]
	for ch, samples := range buf {
		l.Channels[ch] = ChannelLevel{Peak: Peak(samples), RMS: RMS(samples)}
	}
}

// Peak returns the highest peak over all channels.
func (l Levels) Peak() float32 {
	var peak float32
	for _, c := range l.Channels {
		peak = max(peak, c.Peak)
	}

	return peak
}

// Reset forgets all channel levels but keeps the storage.
func (l *Levels) Reset() {
	for i := range l.Channels {
		l.Channels[i] = ChannelLevel{}
	}
}
