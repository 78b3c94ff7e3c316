package param

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned by NewRange for an unusable range.
var ErrInvalidRange = errors.New("param: invalid range")

// Range maps plain values in [Min, Max] to the normalized interval [0, 1].
//
// Interval is the step size plain values snap to (0 for continuous). Skew
// shapes the mapping: normalized = proportion^Skew, so Skew < 1 gives the
// lower part of the range more of the normalized travel. Skew 1 is linear.
type Range struct {
	Min      float64
	Max      float64
	Interval float64
	Skew     float64
}

// NewRange validates and returns a Range.
func NewRange(lo, hi, interval, skew float64) (Range, error) {
	switch {
	case !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0):
		return Range{}, fmt.Errorf("%w: bounds [%g, %g]", ErrInvalidRange, lo, hi)
	case !(interval >= 0) || interval > hi-lo:
		return Range{}, fmt.Errorf("%w: interval %g", ErrInvalidRange, interval)
	case !(skew > 0) || math.IsInf(skew, 0):
		return Range{}, fmt.Errorf("%w: skew %g", ErrInvalidRange, skew)
	}

	return Range{Min: lo, Max: hi, Interval: interval, Skew: skew}, nil
}

// Linear returns a continuous, unskewed range.
func Linear(lo, hi float64) Range {
	return Range{Min: lo, Max: hi, Skew: 1}
}

// Clamp limits v to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}

	return math.Min(math.Max(v, r.Min), r.Max)
}

// Snap clamps v and rounds it to the nearest interval step from Min.
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Interval <= 0 {
		return v
	}

	return r.Clamp(r.Min + math.Round((v-r.Min)/r.Interval)*r.Interval)
}

// ConvertTo0to1 maps a plain value to the normalized interval.
func (r Range) ConvertTo0to1(v float64) float64 {
	proportion := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Skew == 1 || r.Skew == 0 {
		return proportion
	}

	return math.Pow(proportion, r.Skew)
}

// ConvertFrom0to1 maps a normalized value back to the plain range.
func (r Range) ConvertFrom0to1(n float64) float64 {
	if math.IsNaN(n) {
		n = 0
	}

	n = math.Min(math.Max(n, 0), 1)
	if r.Skew != 1 && r.Skew != 0 && n > 0 {
		n = math.Exp(math.Log(n) / r.Skew)
	}

	return r.Min + (r.Max-r.Min)*n
}
