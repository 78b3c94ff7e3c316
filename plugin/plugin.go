package plugin

import (
	"errors"
	"fmt"

	"github.com/cwbudde/sparklelyzer/dsp/core"
	"github.com/cwbudde/sparklelyzer/dsp/effects/sparkle"
	"github.com/cwbudde/sparklelyzer/dsp/meter"
	"github.com/cwbudde/sparklelyzer/plugin/param"
)

// ErrUnsupportedLayout is returned by PrepareToPlay for a channel count the
// plugin does not support.
var ErrUnsupportedLayout = errors.New("plugin: unsupported channel layout")

// Plugin is the Sparklelyzer host adapter. Parameter values may be changed
// from any goroutine; PrepareToPlay, ProcessBlock and ReleaseResources must
// be called from one goroutine at a time.
type Plugin struct {
	info   Info
	params *param.Registry
	view   *paramView
	proc   *sparkle.Processor
	levels meter.Levels
}

// New builds the parameter tree and an unprepared processor. opts are
// forwarded to the processor.
func New(opts ...sparkle.Option) (*Plugin, error) {
	proc, err := sparkle.New(opts...)
	if err != nil {
		return nil, err
	}

	reg, err := newParameters()
	if err != nil {
		return nil, fmt.Errorf("plugin: %w", err)
	}

	return &Plugin{
		info:   DefaultInfo,
		params: reg,
		view:   newParamView(reg),
		proc:   proc,
	}, nil
}

// Info returns the plugin metadata.
func (p *Plugin) Info() Info { return p.info }

// Parameters returns the parameter tree.
func (p *Plugin) Parameters() *param.Registry { return p.params }

// Processor returns the underlying block processor.
func (p *Plugin) Processor() *sparkle.Processor { return p.proc }

// PrepareToPlay prepares the processor for numChannels channels of at most
// maxBlockSize samples.
func (p *Plugin) PrepareToPlay(sampleRate float64, maxBlockSize, numChannels int) error {
	if !p.info.SupportsLayout(numChannels, numChannels) {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, numChannels)
	}

	if err := p.proc.Prepare(sampleRate, maxBlockSize, numChannels); err != nil {
		return fmt.Errorf("plugin: %w", err)
	}

	p.levels.Measure(make([][]float32, numChannels))

	return nil
}

// ReleaseResources is called when playback stops. It clears the filter
// memory so the next run starts from silence.
func (p *Plugin) ReleaseResources() {
	p.proc.Reset()
	p.levels.Reset()
}

// ProcessBlock processes one host block in place. Output channels at index
// numInputChannels and above carry no input and are cleared; the remaining
// channels run through the processor with the current parameter values.
func (p *Plugin) ProcessBlock(buf [][]float32, numInputChannels int) {
	numInputChannels = min(max(numInputChannels, 0), len(buf))

	for _, ch := range buf[numInputChannels:] {
		core.Zero32(ch)
	}

	p.proc.Process(buf[:numInputChannels], p.view)
	p.levels.Measure(buf)
}

// OutputLevels returns the per-channel levels of the last processed block.
// The returned value shares storage with the plugin and is overwritten by
// the next ProcessBlock.
func (p *Plugin) OutputLevels() meter.Levels { return p.levels }

// State returns the serialized plugin state. Persistence is owned by the
// host, so there is nothing to save.
func (p *Plugin) State() []byte { return nil }

// SetState restores serialized plugin state. It accepts and ignores any
// input.
func (p *Plugin) SetState([]byte) error { return nil }
