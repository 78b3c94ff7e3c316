package plugin

import (
	"github.com/cwbudde/sparklelyzer/dsp/effects/sparkle"
	"github.com/cwbudde/sparklelyzer/plugin/param"
)

// Parameter IDs.
const (
	ParamFrequency  = "frequency"
	ParamSaturation = "saturation"
	ParamMix        = "mix"
)

// frequencySkew gives the frequency knob its logarithmic feel.
const frequencySkew = 0.25

func newParameters() (*param.Registry, error) {
	freqRange, err := param.NewRange(sparkle.MinFrequency, sparkle.MaxFrequency, 1, frequencySkew)
	if err != nil {
		return nil, err
	}

	freq, err := param.New(ParamFrequency, "Frequency", freqRange, sparkle.DefaultFrequency,
		param.WithUnit("Hz"),
		param.WithFormatter(param.FrequencyFormatter, param.FrequencyParser))
	if err != nil {
		return nil, err
	}

	drive, err := param.New(ParamSaturation, "Saturation", param.Linear(sparkle.MinDrive, sparkle.MaxDrive), sparkle.DefaultDrive,
		param.WithFormatter(param.DecimalFormatter(2), nil))
	if err != nil {
		return nil, err
	}

	mix, err := param.New(ParamMix, "Mix", param.Linear(sparkle.MinMixPercent, sparkle.MaxMixPercent), sparkle.DefaultMixPercent,
		param.WithUnit("%"),
		param.WithFormatter(param.PercentFormatter, param.PercentParser))
	if err != nil {
		return nil, err
	}

	reg := param.NewRegistry()
	if err := reg.Add(freq, drive, mix); err != nil {
		return nil, err
	}

	return reg, nil
}

// paramView reads the three processor parameters with atomic loads. The
// pointers are resolved once so the audio thread never does map lookups.
type paramView struct {
	frequency *param.Parameter
	drive     *param.Parameter
	mix       *param.Parameter
}

var _ sparkle.Params = (*paramView)(nil)

func newParamView(reg *param.Registry) *paramView {
	return &paramView{
		frequency: reg.MustGet(ParamFrequency),
		drive:     reg.MustGet(ParamSaturation),
		mix:       reg.MustGet(ParamMix),
	}
}

func (v *paramView) Frequency() float32  { return v.frequency.Load() }
func (v *paramView) Drive() float32      { return v.drive.Load() }
func (v *paramView) MixPercent() float32 { return v.mix.Load() }
