package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/sparklelyzer/dsp/dither"
)

// writeTestWAV writes a sine of freqHz at -6 dBFS to every channel.
func writeTestWAV(t *testing.T, path string, sampleRate, bitDepth, channels, frames int, freqHz float64) []int {
	t.Helper()

	scale := float64(int64(1) << (bitDepth - 1))
	data := make([]int, frames*channels)

	for i := 0; i < frames; i++ {
		v := int(math.Round(0.5 * scale * math.Sin(2*math.Pi*freqHz*float64(i)/float64(sampleRate))))
		for ch := 0; ch < channels; ch++ {
			data[i*channels+ch] = v
		}
	}

	writeWAVData(t, path, sampleRate, bitDepth, channels, data)

	return data
}

// writeWAVData writes interleaved integer samples as they are.
func writeWAVData(t *testing.T, path string, sampleRate, bitDepth, channels int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func readTestWAV(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	return buf
}

func defaultOptions(in, out string) renderOptions {
	return renderOptions{
		inputPath:  in,
		outputPath: out,
		frequency:  750,
		drive:      5,
		mixPercent: 100,
		q:          0.707,
		dither:     dither.DitherNone,
		blockSize:  256,
	}
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	invalidFile := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalidFile, []byte("not a wav file"), 0o644))

	_, err := openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenWAVInput_RejectsSurround(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surround.wav")
	writeTestWAV(t, path, 48000, 16, 6, 64, 1000)

	_, err := openWAVInput(path, false)
	require.ErrorIs(t, err, errUnsupportedFormat)
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", 48000, 16, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestNewQuantizer(t *testing.T) {
	q, err := newQuantizer(24, dither.DitherNone)
	require.NoError(t, err)
	assert.Equal(t, 8388608.0, q.FullScale())

	_, err = newQuantizer(8, dither.DitherNone)
	assert.ErrorIs(t, err, errUnsupportedFormat)
}

func TestSampleConversionRoundTrip(t *testing.T) {
	q, err := newQuantizer(16, dither.DitherNone)
	require.NoError(t, err)

	for _, v := range []int{-32768, -12345, -1, 0, 1, 16384, 32767} {
		got, clipped := q.Quantize(q.ToFloat(v))
		assert.False(t, clipped)
		assert.Equal(t, v, got)
	}
}

func TestRender_Stereo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	const frames = 4410
	writeTestWAV(t, in, 44100, 16, 2, frames, 5000)

	stats, err := render(defaultOptions(in, out))
	require.NoError(t, err)

	assert.Equal(t, 44100, stats.sampleRate)
	assert.Equal(t, 2, stats.channels)
	assert.Equal(t, 16, stats.bitDepth)
	assert.Equal(t, int64(frames), stats.frames)
	assert.InDelta(t, 0.5, stats.inputPeak, 1e-3)
	assert.Greater(t, stats.outputPeak, stats.inputPeak, "additive saturation raises the peak")

	got := readTestWAV(t, out)
	assert.Equal(t, 2, got.Format.NumChannels)
	assert.Equal(t, 44100, got.Format.SampleRate)
	require.Len(t, got.Data, frames*2)

	for i := 0; i < frames; i++ {
		require.Equal(t, got.Data[2*i], got.Data[2*i+1], "channels diverge at frame %d", i)
	}
}

func TestRender_MixZeroIsLossless(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	want := writeTestWAV(t, in, 48000, 24, 1, 1000, 440)

	opts := defaultOptions(in, out)
	opts.mixPercent = 0
	opts.blockSize = 300

	stats, err := render(opts)
	require.NoError(t, err)
	assert.Zero(t, stats.clipped)

	got := readTestWAV(t, out)
	assert.Equal(t, want, got.Data)
}

func TestRender_StereoBypassIsBitExact(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	// Different content per channel, full-scale codes included.
	const frames = 1500

	want := make([]int, 2*frames)
	for i := 0; i < frames; i++ {
		want[2*i] = int(math.Round(16000 * math.Sin(2*math.Pi*440*float64(i)/44100)))
		want[2*i+1] = (i*7919)%65536 - 32768
	}

	want[0], want[1] = 32767, -32768
	writeWAVData(t, in, 44100, 16, 2, want)

	opts := defaultOptions(in, out)
	opts.mixPercent = 0
	opts.blockSize = 256

	stats, err := render(opts)
	require.NoError(t, err)
	assert.Equal(t, int64(frames), stats.frames)
	assert.Zero(t, stats.clipped)
	assert.Equal(t, float32(1), stats.inputPeak)
	assert.Equal(t, stats.inputPeak, stats.outputPeak)

	got := readTestWAV(t, out)
	assert.Equal(t, 2, got.Format.NumChannels)
	assert.Equal(t, want, got.Data)
}

func TestRender_32BitBypassKeepsFullScale(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	want := []int{math.MaxInt32, math.MinInt32, 123456789, -16777217, 0, 1 << 24, -1 << 24, 42}
	writeWAVData(t, in, 48000, 32, 1, want)

	opts := defaultOptions(in, out)
	opts.mixPercent = 0

	stats, err := render(opts)
	require.NoError(t, err)
	assert.Zero(t, stats.clipped)

	got := readTestWAV(t, out)
	require.Len(t, got.Data, len(want))

	// Processing is float32, so 32-bit codes keep 24 significant bits.
	for i := range want {
		assert.InDelta(t, want[i], got.Data[i], 128, "sample %d", i)
	}

	assert.Equal(t, math.MaxInt32, got.Data[0])
	assert.Equal(t, math.MinInt32, got.Data[1])
	assert.Equal(t, 1<<24, got.Data[5])
}

func TestRender_LowFrequencyPassesAlmostUnchanged(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	writeTestWAV(t, in, 44100, 16, 1, 8820, 50)

	opts := defaultOptions(in, out)
	opts.frequency = 5000
	opts.onePole = false

	stats, err := render(opts)
	require.NoError(t, err)
	assert.InDelta(t, stats.inputPeak, stats.outputPeak, 0.01)
}

func TestRender_DitheredStaysClose(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	want := writeTestWAV(t, in, 44100, 16, 1, 2000, 440)

	opts := defaultOptions(in, out)
	opts.mixPercent = 0
	opts.dither = dither.DitherTriangular

	_, err := render(opts)
	require.NoError(t, err)

	got := readTestWAV(t, out)
	require.Len(t, got.Data, len(want))

	for i := range want {
		require.InDelta(t, want[i], got.Data[i], 1, "sample %d", i)
	}
}

func TestRender_InvalidOptions(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeTestWAV(t, in, 44100, 16, 1, 64, 1000)

	opts := defaultOptions(in, filepath.Join(dir, "out.wav"))
	opts.blockSize = 0
	_, err := render(opts)
	require.Error(t, err)

	opts = defaultOptions(in, filepath.Join(dir, "out.wav"))
	opts.q = -1
	_, err = render(opts)
	require.Error(t, err)
}
