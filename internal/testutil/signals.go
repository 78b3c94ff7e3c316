package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic float32 sine wave starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}

	return out
}

// Noise generates white noise in [-amplitude, amplitude) with a fixed seed.
func Noise(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Planar returns numChannels independent copies of ch, laid out the way a
// host hands a block to a processor.
func Planar(numChannels int, ch []float32) [][]float32 {
	out := make([][]float32, numChannels)
	for i := range out {
		out[i] = append([]float32(nil), ch...)
	}

	return out
}

// Blocks splits x into consecutive slices of at most size samples. The
// slices alias x.
func Blocks(x []float32, size int) [][]float32 {
	if size <= 0 {
		return nil
	}

	out := make([][]float32, 0, (len(x)+size-1)/size)
	for start := 0; start < len(x); start += size {
		out = append(out, x[start:min(start+size, len(x))])
	}

	return out
}
