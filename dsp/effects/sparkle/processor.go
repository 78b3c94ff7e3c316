package sparkle

import (
	"errors"
	"fmt"

	"github.com/cwbudde/sparklelyzer/dsp/buffer"
	"github.com/cwbudde/sparklelyzer/dsp/core"
	"github.com/cwbudde/sparklelyzer/dsp/filter/biquad"
	"github.com/cwbudde/sparklelyzer/dsp/filter/design"
	"github.com/cwbudde/sparklelyzer/dsp/mix"
)

var (
	// ErrNotPrepared is the panic value of Process on a processor that has
	// not been prepared.
	ErrNotPrepared = errors.New("sparkle: process called before prepare")

	// ErrBlockGeometry is the panic value of Process when the block has more
	// channels or samples than the processor was prepared for.
	ErrBlockGeometry = errors.New("sparkle: block exceeds prepared geometry")
)

// Processor is the Sparklelyzer block processor. It is not safe for
// concurrent use; parameter values are read through Params, which may be
// backed by atomics written from other goroutines.
type Processor struct {
	q    float64
	kind FilterKind

	cfg      core.ProcessorConfig
	prepared bool

	filters *biquad.Bank
	scratch *buffer.Buffer
	views   [][]float32
	last    Snapshot
}

// New creates an unprepared processor.
func New(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Processor{
		q:    cfg.q,
		kind: cfg.kind,
		last: DefaultSnapshot(),
	}, nil
}

// Prepare binds the processor to a sample rate, a maximum block size and a
// channel count. It allocates one filter per channel and a scratch buffer of
// numChannels x blockSize samples and clears all filter memory. Preparing
// again discards the previous state; on error the processor is left as it
// was.
func (p *Processor) Prepare(sampleRate float64, blockSize, numChannels int) error {
	cfg := core.ProcessorConfig{
		SampleRate:  sampleRate,
		BlockSize:   blockSize,
		NumChannels: numChannels,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("sparkle: %w", err)
	}

	if sampleRate < minSampleRate {
		return fmt.Errorf("sparkle: %w: below %g Hz: %f", core.ErrInvalidSampleRate, minSampleRate, sampleRate)
	}

	if p.filters == nil || p.filters.Channels() != numChannels {
		p.filters = biquad.NewBank(numChannels)
	} else {
		p.filters.Reset()
	}

	if p.scratch == nil {
		p.scratch = buffer.New(numChannels, blockSize)
	} else {
		p.scratch.Resize(numChannels, blockSize)
	}

	if cap(p.views) < numChannels {
		p.views = make([][]float32, numChannels)
	}

	p.views = p.views[:numChannels]
	p.cfg = cfg
	p.prepared = true

	return nil
}

// Prepared reports whether Prepare has succeeded at least once.
func (p *Processor) Prepared() bool { return p.prepared }

// SampleRate returns the prepared sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.cfg.SampleRate }

// BlockSize returns the prepared maximum block size.
func (p *Processor) BlockSize() int { return p.cfg.BlockSize }

// NumChannels returns the prepared channel count.
func (p *Processor) NumChannels() int { return p.cfg.NumChannels }

// FilterKind returns the configured highpass topology.
func (p *Processor) FilterKind() FilterKind { return p.kind }

// Q returns the configured biquad quality factor.
func (p *Processor) Q() float64 { return p.q }

// LastParams returns the clamped parameters used by the most recent block.
func (p *Processor) LastParams() Snapshot { return p.last }

// Filter returns the highpass coefficients installed by the most recent
// block. It is zero before the first block.
func (p *Processor) Filter() biquad.Coefficients {
	if p.filters == nil {
		return biquad.Coefficients{}
	}

	return p.filters.Coefficients()
}

// Design returns the highpass coefficients for freq at the prepared sample
// rate, after the same clamping Process applies.
func (p *Processor) Design(freq float32) biquad.Coefficients {
	fc := cutoff(sanitize(freq, MinFrequency, MaxFrequency, DefaultFrequency), p.cfg.SampleRate)
	if p.kind == FilterOnePole {
		return design.HighpassFirstOrder(fc, p.cfg.SampleRate)
	}

	return design.Highpass(fc, p.q, p.cfg.SampleRate)
}

// Process runs one block in place. buf holds one slice per channel; it may
// have fewer channels and fewer samples than prepared, but not more.
// Parameters are read once at the start of the block and the filter
// coefficients are recomputed from them. Process does not allocate.
func (p *Processor) Process(buf [][]float32, params Params) {
	if !p.prepared {
		panic(ErrNotPrepared)
	}

	if len(buf) > p.cfg.NumChannels {
		panic(fmt.Errorf("%w: %d channels, prepared for %d", ErrBlockGeometry, len(buf), p.cfg.NumChannels))
	}

	n := 0
	for _, ch := range buf {
		n = max(n, len(ch))
	}

	if n > p.cfg.BlockSize {
		panic(fmt.Errorf("%w: %d samples, prepared for %d", ErrBlockGeometry, n, p.cfg.BlockSize))
	}

	snap := Take(params)
	p.last = snap

	p.filters.SetCoefficients(p.Design(snap.FrequencyHz))

	drive := float64(snap.DriveAmount)
	amount := snap.MixPct / 100
	wet := p.scratch.View(p.views, n)

	for ch, dry := range buf {
		w := wet[ch][:len(dry)]
		copy(w, dry)

		p.filters.ProcessChannel(ch, w)
		saturateAdd(w, dry, drive)
		mix.Crossfade(dry, dry, w, amount)
	}
}

// Reset clears the filter memory. The processor stays prepared.
func (p *Processor) Reset() {
	if p.filters != nil {
		p.filters.Reset()
	}
}
