package buffer

import "github.com/cwbudde/sparklelyzer/dsp/core"

// Buffer holds channels × samples float32 audio in planar layout.
// All channel views share one backing array.
type Buffer struct {
	data     []float32
	channels [][]float32
	samples  int
}

// New returns a zero-filled Buffer with the given geometry.
// Negative dimensions are treated as zero.
func New(numChannels, numSamples int) *Buffer {
	b := &Buffer{}
	b.Resize(numChannels, numSamples)

	return b
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.channels)
}

// NumSamples returns the per-channel sample count.
func (b *Buffer) NumSamples() int {
	return b.samples
}

// Channel returns the sample slice of channel ch.
func (b *Buffer) Channel(ch int) []float32 {
	return b.channels[ch]
}

// Channels returns the per-channel slices. The outer slice is owned by the
// buffer and must not be appended to.
func (b *Buffer) Channels() [][]float32 {
	return b.channels
}

// Resize changes the geometry, reusing the backing array when it is large
// enough. The contents are zeroed.
func (b *Buffer) Resize(numChannels, numSamples int) {
	if numChannels < 0 {
		numChannels = 0
	}

	if numSamples < 0 {
		numSamples = 0
	}

	total := numChannels * numSamples
	if cap(b.data) >= total {
		b.data = b.data[:total]
	} else {
		b.data = make([]float32, total)
	}

	if cap(b.channels) >= numChannels {
		b.channels = b.channels[:numChannels]
	} else {
		b.channels = make([][]float32, numChannels)
	}

	for ch := range b.channels {
		start := ch * numSamples
		b.channels[ch] = b.data[start : start+numSamples : start+numSamples]
	}

	b.samples = numSamples
	b.Zero()
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// CopyFrom copies src channel by channel into the buffer and returns the
// number of samples copied per channel. Channels and samples beyond the
// buffer geometry are ignored; the copy never allocates.
func (b *Buffer) CopyFrom(src [][]float32) int {
	n := 0
	for ch := 0; ch < len(src) && ch < len(b.channels); ch++ {
		n = core.CopyInto32(b.channels[ch], src[ch])
	}

	return n
}

// View returns the first numSamples samples of every channel in dst, which
// must have room for NumChannels entries. It lets callers process blocks
// shorter than the buffer size without reslicing by hand.
func (b *Buffer) View(dst [][]float32, numSamples int) [][]float32 {
	numSamples = min(max(numSamples, 0), b.samples)
	dst = dst[:len(b.channels)]

	for ch, s := range b.channels {
		dst[ch] = s[:numSamples]
	}

	return dst
}
