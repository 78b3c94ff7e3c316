package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer converts normalized samples to signed integer PCM. Full scale
// is 2^(bits-1): -1 maps to the most negative code and values at or above
// 1 clip to the most positive one.
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	rng             *rand.Rand

	scale   float64
	invScl  float64
	limitLo float64
	limitHi float64
}

// NewQuantizer creates a new Quantizer. The default configuration is
// 16-bit with triangular dither of 1 LSB.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	quant := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		rng:             cfg.rng,
	}

	if quant.rng == nil {
		quant.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	quant.scale = math.Exp2(float64(cfg.bitDepth - 1))
	quant.invScl = 1 / quant.scale
	quant.limitLo = -quant.scale
	quant.limitHi = quant.scale - 1

	return quant, nil
}

// Quantize converts one sample. clipped reports whether the result had to
// be limited to the code range; NaN becomes 0 and counts as clipped.
// Exactly +1.0 maps to the top code without counting as clipped.
//
// float32 carries 24 mantissa bits, so Quantize(ToFloat(v)) == v holds for
// every code up to 24 bits. Use [Quantizer.Quantize64] with
// [Quantizer.ToFloat64] for lossless 32-bit conversion.
func (q *Quantizer) Quantize(x float32) (sample int, clipped bool) {
	return q.Quantize64(float64(x))
}

// Quantize64 is Quantize for float64 input.
func (q *Quantizer) Quantize64(x float64) (sample int, clipped bool) {
	if math.IsNaN(x) {
		return 0, true
	}

	v := math.Round(x*q.scale + q.noise())

	switch {
	case v > q.limitHi:
		return int(q.limitHi), v > q.scale
	case v < q.limitLo:
		return int(q.limitLo), true
	}

	return int(v), false
}

// QuantizeBlock converts src into dst over the shorter length and returns
// the number of clipped samples.
func (q *Quantizer) QuantizeBlock(dst []int, src []float32) int {
	n := min(len(dst), len(src))
	clipped := 0

	for i := 0; i < n; i++ {
		s, c := q.Quantize(src[i])
		dst[i] = s

		if c {
			clipped++
		}
	}

	return clipped
}

// ToFloat converts an integer sample back to the normalized range.
func (q *Quantizer) ToFloat(sample int) float32 {
	return float32(q.ToFloat64(sample))
}

// ToFloat64 converts an integer sample to the normalized range without
// losing precision at any supported bit depth.
func (q *Quantizer) ToFloat64(sample int) float64 {
	return float64(sample) * q.invScl
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// DitherAmplitude returns the dither noise amplitude in LSBs.
func (q *Quantizer) DitherAmplitude() float64 { return q.ditherAmplitude }

// FullScale returns the code value that corresponds to 1.0.
func (q *Quantizer) FullScale() float64 { return q.scale }

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}
