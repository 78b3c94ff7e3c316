package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f32"

	"github.com/cwbudde/sparklelyzer/dsp/buffer"
	"github.com/cwbudde/sparklelyzer/dsp/core"
	"github.com/cwbudde/sparklelyzer/dsp/dither"
	"github.com/cwbudde/sparklelyzer/dsp/effects/sparkle"
	"github.com/cwbudde/sparklelyzer/dsp/meter"
	"github.com/cwbudde/sparklelyzer/plugin"
)

const (
	monoChannels   = 1
	stereoChannels = 2

	wavFormatPCM = 1
)

var errUnsupportedFormat = errors.New("unsupported WAV format")

type renderOptions struct {
	inputPath  string
	outputPath string
	frequency  float64
	drive      float64
	mixPercent float64
	q          float64
	onePole    bool
	dither     dither.DitherType
	blockSize  int
	verbose    bool
}

type renderStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
	inputPeak  float32
	outputPeak float32
	clipped    int64
}

func (s *renderStats) inputPeakDB() float64  { return core.LinearToDB(float64(s.inputPeak)) }
func (s *renderStats) outputPeakDB() float64 { return core.LinearToDB(float64(s.outputPeak)) }

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	if format.NumChannels != monoChannels && format.NumChannels != stereoChannels {
		_ = inputFile.Close()
		return nil, fmt.Errorf("%w: %d channels", errUnsupportedFormat, format.NumChannels)
	}

	if err := checkBitDepth(bitDepth); err != nil {
		_ = inputFile.Close()
		return nil, err
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
}

func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
	}, nil
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}

	return w.file.Close()
}

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d-bit", errUnsupportedFormat, bitDepth)
	}
}

func newQuantizer(bitDepth int, dt dither.DitherType) (*dither.Quantizer, error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	return dither.NewQuantizer(dither.WithBitDepth(bitDepth), dither.WithDitherType(dt))
}

func newPlugin(opts renderOptions) (*plugin.Plugin, error) {
	procOpts := []sparkle.Option{sparkle.WithQ(opts.q)}
	if opts.onePole {
		procOpts = append(procOpts, sparkle.WithFilterKind(sparkle.FilterOnePole))
	}

	p, err := plugin.New(procOpts...)
	if err != nil {
		return nil, err
	}

	params := p.Parameters()
	params.MustGet(plugin.ParamFrequency).Store(opts.frequency)
	params.MustGet(plugin.ParamSaturation).Store(opts.drive)
	params.MustGet(plugin.ParamMix).Store(opts.mixPercent)

	return p, nil
}

// render streams the input file through the plugin block by block.
func render(opts renderOptions) (*renderStats, error) {
	if opts.blockSize <= 0 {
		return nil, fmt.Errorf("block size must be > 0: %d", opts.blockSize)
	}

	in, err := openWAVInput(opts.inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	quant, err := newQuantizer(in.bitDepth, opts.dither)
	if err != nil {
		return nil, err
	}

	p, err := newPlugin(opts)
	if err != nil {
		return nil, err
	}

	if err := p.PrepareToPlay(float64(in.rate), opts.blockSize, in.channels); err != nil {
		return nil, err
	}

	out, err := createWAVOutput(opts.outputPath, in.rate, in.bitDepth, in.channels)
	if err != nil {
		return nil, err
	}

	stats := &renderStats{
		sampleRate: in.rate,
		channels:   in.channels,
		bitDepth:   in.bitDepth,
	}

	if err := renderStream(in, out, p, opts, quant, stats); err != nil {
		_ = out.Close()
		return nil, err
	}

	if err := out.Close(); err != nil {
		return nil, err
	}

	if opts.verbose {
		log.Printf("Rendered %d frames, %d clipped samples", stats.frames, stats.clipped)
	}

	return stats, nil
}

func renderStream(in *wavInputInfo, out *wavOutputWriter, p *plugin.Plugin, opts renderOptions, quant *dither.Quantizer, stats *renderStats) error {
	channels := in.channels
	chunk := opts.blockSize * channels

	inBuf := &audio.IntBuffer{
		Format:         in.format,
		Data:           make([]int, chunk),
		SourceBitDepth: in.bitDepth,
	}
	outBuf := &audio.IntBuffer{
		Format:         in.format,
		Data:           make([]int, chunk),
		SourceBitDepth: in.bitDepth,
	}

	planar := buffer.New(channels, opts.blockSize)
	views := make([][]float32, channels)
	interleaved := make([]float32, chunk)

	for {
		n, err := in.decoder.PCMBuffer(inBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read PCM data: %w", err)
		}

		if n == 0 {
			return nil
		}

		frames := n / channels
		block := planar.View(views, frames)

		for i := 0; i < frames; i++ {
			for ch := range block {
				block[ch][i] = quant.ToFloat(inBuf.Data[i*channels+ch])
			}
		}

		for _, ch := range block {
			stats.inputPeak = max(stats.inputPeak, meter.Peak(ch))
		}

		p.ProcessBlock(block, channels)
		stats.outputPeak = max(stats.outputPeak, p.OutputLevels().Peak())

		samples := interleave(interleaved, block, frames)
		outBuf.Data = outBuf.Data[:len(samples)]
		stats.clipped += int64(quant.QuantizeBlock(outBuf.Data, samples))

		if err := out.encoder.Write(outBuf); err != nil {
			return fmt.Errorf("failed to write PCM data: %w", err)
		}

		outBuf.Data = outBuf.Data[:cap(outBuf.Data)]
		stats.frames += int64(frames)

		if opts.verbose && stats.frames%int64(in.rate) < int64(frames) {
			log.Printf("Processed %.1f s", float64(stats.frames)/float64(in.rate))
		}
	}
}

func interleave(dst []float32, block [][]float32, frames int) []float32 {
	dst = dst[:frames*len(block)]

	if len(block) == stereoChannels {
		f32.Interleave2(dst, block[0][:frames], block[1][:frames])
		return dst
	}

	copy(dst, block[0][:frames])

	return dst
}
