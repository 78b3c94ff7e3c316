package sparkle

import (
	"math"

	"github.com/cwbudde/sparklelyzer/dsp/core"
)

// Parameter ranges and defaults.
const (
	MinFrequency     = 20.0
	MaxFrequency     = 20000.0
	DefaultFrequency = 750.0

	MinDrive     = 0.0
	MaxDrive     = 10.0
	DefaultDrive = 5.0

	MinMixPercent     = 0.0
	MaxMixPercent     = 100.0
	DefaultMixPercent = 100.0
)

// Params is the read-only view of the live parameter values. The processor
// calls each getter once at the start of a block.
type Params interface {
	Frequency() float32
	Drive() float32
	MixPercent() float32
}

// Snapshot is a plain Params value.
type Snapshot struct {
	FrequencyHz float32
	DriveAmount float32
	MixPct      float32
}

// DefaultSnapshot returns the default parameter values.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		FrequencyHz: DefaultFrequency,
		DriveAmount: DefaultDrive,
		MixPct:      DefaultMixPercent,
	}
}

// Frequency implements Params.
func (s Snapshot) Frequency() float32 { return s.FrequencyHz }

// Drive implements Params.
func (s Snapshot) Drive() float32 { return s.DriveAmount }

// MixPercent implements Params.
func (s Snapshot) MixPercent() float32 { return s.MixPct }

// Take reads p once and returns the values clamped to their ranges.
// Non-finite values fall back to the defaults.
func Take(p Params) Snapshot {
	return Snapshot{
		FrequencyHz: sanitize(p.Frequency(), MinFrequency, MaxFrequency, DefaultFrequency),
		DriveAmount: sanitize(p.Drive(), MinDrive, MaxDrive, DefaultDrive),
		MixPct:      sanitize(p.MixPercent(), MinMixPercent, MaxMixPercent, DefaultMixPercent),
	}
}

func sanitize(v float32, lo, hi, def float64) float32 {
	x := float64(v)
	if !core.IsFinite(x) {
		return float32(def)
	}

	return float32(core.Clamp(x, lo, hi))
}

// cutoff limits the frequency to what the sample rate can represent.
func cutoff(freq float32, sampleRate float64) float64 {
	return math.Min(float64(freq), sampleRate*nyquistGuard)
}
