package plugin

// Info describes the plugin to a host.
type Info struct {
	Name           string
	Vendor         string
	Version        string
	Category       string
	NumInputs      int
	NumOutputs     int
	TailSeconds    float64
	NumPrograms    int
	AcceptsMIDI    bool
	ProducesMIDI   bool
	HasEditor      bool
	SupportsMono   bool
	SupportsStereo bool
}

// DefaultInfo is the metadata of the Sparklelyzer plugin.
var DefaultInfo = Info{
	Name:           "Sparklelyzer",
	Vendor:         "cwbudde",
	Version:        "1.0.0",
	Category:       "Fx|Distortion",
	NumInputs:      2,
	NumOutputs:     2,
	TailSeconds:    0,
	NumPrograms:    1,
	SupportsMono:   true,
	SupportsStereo: true,
}

// SupportsLayout reports whether the plugin runs with the given bus widths.
// Input and output must match and be mono or stereo.
func (i Info) SupportsLayout(numInputs, numOutputs int) bool {
	if numInputs != numOutputs {
		return false
	}

	switch numOutputs {
	case 1:
		return i.SupportsMono
	case 2:
		return i.SupportsStereo
	default:
		return false
	}
}
