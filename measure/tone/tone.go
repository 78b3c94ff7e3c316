package tone

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/sparklelyzer/dsp/window"
)

var (
	ErrShortSignal = errors.New("tone: signal shorter than analyzer size")
	ErrNoTone      = errors.New("tone: no energy at probe frequency")
)

const minSize = 16

// Option configures an Analyzer.
type Option func(*config) error

type config struct {
	window window.Type
}

// WithWindow selects the analysis window. Hann and Blackman-Harris are
// supported.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		if lobeHalfWidth(t) == 0 {
			return fmt.Errorf("tone: unsupported window: %v", t)
		}

		cfg.window = t

		return nil
	}
}

// Analyzer measures tone levels. It is not safe for concurrent use.
type Analyzer struct {
	sampleRate float64
	size       int
	halfWidth  int

	win     []float64
	winNorm float64 // size * sum(w^2)

	plan  *algofft.Plan[complex128]
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	power []float64
	mag   []float64
}

// NewAnalyzer creates an analyzer with a power-of-two FFT size.
func NewAnalyzer(sampleRate float64, size int, opts ...Option) (*Analyzer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("tone: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if size < minSize || size&(size-1) != 0 {
		return nil, fmt.Errorf("tone: size must be a power of two >= %d: %d", minSize, size)
	}

	cfg := config{window: window.TypeBlackmanHarris}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("tone: fft plan: %w", err)
	}

	win := window.Generate(cfg.window, size, window.WithPeriodic())
	bins := size/2 + 1

	return &Analyzer{
		sampleRate: sampleRate,
		size:       size,
		halfWidth:  lobeHalfWidth(cfg.window),
		win:        win,
		winNorm:    float64(size) * floats.Dot(win, win),
		plan:       plan,
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		power:      make([]float64, bins),
		mag:        make([]float64, bins),
	}, nil
}

// Size returns the FFT size in samples.
func (a *Analyzer) Size() int { return a.size }

// BinHz returns the frequency spacing of the spectrum.
func (a *Analyzer) BinHz() float64 { return a.sampleRate / float64(a.size) }

// Spectrum returns the one-sided magnitude spectrum of the last Size samples
// of signal, scaled so a bin-centred sinusoid of amplitude A reads A. The
// returned slice is reused by the next call.
func (a *Analyzer) Spectrum(signal []float32) ([]float64, error) {
	if err := a.transform(signal); err != nil {
		return nil, err
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	sum := floats.Sum(a.win)
	floats.Scale(2/sum, a.mag)

	return a.mag, nil
}

// Level returns the amplitude of the sinusoid at freqHz.
func (a *Analyzer) Level(signal []float32, freqHz float64) (float64, error) {
	if err := a.transform(signal); err != nil {
		return 0, err
	}

	return a.levelAt(freqHz), nil
}

// GainDB returns the level ratio out/in at freqHz in dB.
func (a *Analyzer) GainDB(in, out []float32, freqHz float64) (float64, error) {
	ref, err := a.Level(in, freqHz)
	if err != nil {
		return 0, err
	}

	if ref == 0 {
		return 0, fmt.Errorf("%w: %g Hz", ErrNoTone, freqHz)
	}

	lvl, err := a.Level(out, freqHz)
	if err != nil {
		return 0, err
	}

	return 20 * math.Log10(lvl/ref), nil
}

// HarmonicDistortion returns the ratio of the combined level of harmonics
// 2..maxHarmonic of fundamentalHz to the fundamental level. Harmonics at or
// above Nyquist are skipped.
func (a *Analyzer) HarmonicDistortion(signal []float32, fundamentalHz float64, maxHarmonic int) (float64, error) {
	if err := a.transform(signal); err != nil {
		return 0, err
	}

	fund := a.levelAt(fundamentalHz)
	if fund == 0 {
		return 0, fmt.Errorf("%w: %g Hz", ErrNoTone, fundamentalHz)
	}

	nyquist := a.sampleRate / 2
	sum := 0.0

	for k := 2; k <= maxHarmonic; k++ {
		f := float64(k) * fundamentalHz
		if f >= nyquist-float64(a.halfWidth)*a.BinHz() {
			break
		}

		lvl := a.levelAt(f)
		sum += lvl * lvl
	}

	return math.Sqrt(sum) / fund, nil
}

// DominantFrequency returns the frequency of the strongest non-DC bin,
// refined by parabolic interpolation of the neighbouring magnitudes.
func (a *Analyzer) DominantFrequency(signal []float32) (float64, error) {
	if err := a.transform(signal); err != nil {
		return 0, err
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	k := floats.MaxIdx(a.mag[1:]) + 1
	if a.mag[k] == 0 {
		return 0, ErrNoTone
	}

	offset := 0.0
	if k < len(a.mag)-1 {
		l, c, r := a.mag[k-1], a.mag[k], a.mag[k+1]
		if den := l - 2*c + r; den != 0 {
			offset = 0.5 * (l - r) / den
		}
	}

	return (float64(k) + offset) * a.BinHz(), nil
}

// RMS returns the root-mean-square level of signal.
func RMS(signal []float32) float64 {
	if len(signal) == 0 {
		return 0
	}

	x := make([]float64, len(signal))
	for i, v := range signal {
		x[i] = float64(v)
	}

	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

func (a *Analyzer) transform(signal []float32) error {
	if len(signal) < a.size {
		return fmt.Errorf("%w: %d < %d", ErrShortSignal, len(signal), a.size)
	}

	tail := signal[len(signal)-a.size:]
	for i, v := range tail {
		a.in[i] = complex(float64(v)*a.win[i], 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("tone: fft: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}

	vecmath.Power(a.power, a.re, a.im)

	return nil
}

// levelAt integrates the power of the main lobe around freqHz and converts
// it to a sinusoid amplitude.
func (a *Analyzer) levelAt(freqHz float64) float64 {
	centre := int(math.Round(freqHz / a.BinHz()))
	lo := max(centre-a.halfWidth, 1)
	hi := min(centre+a.halfWidth, len(a.power)-1)

	if lo > hi {
		return 0
	}

	return 2 * math.Sqrt(floats.Sum(a.power[lo:hi+1])/a.winNorm)
}

func lobeHalfWidth(t window.Type) int {
	switch t {
	case window.TypeHann:
		return 2
	case window.TypeBlackmanHarris:
		return 4
	default:
		return 0
	}
}
