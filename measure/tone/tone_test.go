package tone

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/sparklelyzer/dsp/window"
	"github.com/cwbudde/sparklelyzer/internal/testutil"
)

const (
	testRate = 48000.0
	testSize = 4096
)

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()

	a, err := NewAnalyzer(testRate, testSize, opts...)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	return a
}

func TestNewAnalyzerValidation(t *testing.T) {
	if _, err := NewAnalyzer(0, 1024); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewAnalyzer(testRate, 1000); err == nil {
		t.Fatal("expected error for non power of two size")
	}

	if _, err := NewAnalyzer(testRate, 8); err == nil {
		t.Fatal("expected error for tiny size")
	}

	if _, err := NewAnalyzer(testRate, 1024, WithWindow(window.TypeFlatTop)); err == nil {
		t.Fatal("expected error for unsupported window")
	}
}

func TestLevelOffBin(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, freq := range []float64{100, 997, 1000, 5123.4, 15000} {
		sig := testutil.Sine(freq, testRate, 0.5, 2*testSize)

		got, err := a.Level(sig, freq)
		if err != nil {
			t.Fatalf("Level() error = %v", err)
		}

		if math.Abs(got-0.5) > 2e-3 {
			t.Fatalf("Level(%v Hz) = %v, want 0.5", freq, got)
		}
	}
}

func TestLevelHann(t *testing.T) {
	a := newTestAnalyzer(t, WithWindow(window.TypeHann))
	sig := testutil.Sine(1500, testRate, 0.25, testSize)

	got, err := a.Level(sig, 1500)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(got-0.25) > 0.01 {
		t.Fatalf("Hann Level = %v, want 0.25", got)
	}
}

func TestLevelShortSignal(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.Level(make([]float32, testSize-1), 1000)
	if !errors.Is(err, ErrShortSignal) {
		t.Fatalf("error = %v, want ErrShortSignal", err)
	}
}

func TestGainDB(t *testing.T) {
	a := newTestAnalyzer(t)
	in := testutil.Sine(2000, testRate, 0.5, testSize)
	out := testutil.Sine(2000, testRate, 0.25, testSize)

	got, err := a.GainDB(in, out, 2000)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(got-(-6.0206)) > 0.01 {
		t.Fatalf("GainDB = %v, want -6.02", got)
	}

	if _, err := a.GainDB(make([]float32, testSize), out, 2000); !errors.Is(err, ErrNoTone) {
		t.Fatalf("silent reference error = %v, want ErrNoTone", err)
	}
}

func TestHarmonicDistortion(t *testing.T) {
	a := newTestAnalyzer(t)
	fund := 1000.0

	pure := testutil.Sine(fund, testRate, 0.5, testSize)

	thd, err := a.HarmonicDistortion(pure, fund, 9)
	if err != nil {
		t.Fatal(err)
	}

	if thd > 1e-3 {
		t.Fatalf("pure sine THD = %v", thd)
	}

	third := testutil.Sine(3*fund, testRate, 0.05, testSize)
	sig := make([]float32, testSize)
	for i := range sig {
		sig[i] = pure[i] + third[i]
	}

	thd, err = a.HarmonicDistortion(sig, fund, 9)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(thd-0.1) > 2e-3 {
		t.Fatalf("THD = %v, want 0.1", thd)
	}
}

func TestDominantFrequency(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, freq := range []float64{440, 3333, 12000} {
		got, err := a.DominantFrequency(testutil.Sine(freq, testRate, 0.8, testSize))
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(got-freq) > a.BinHz()/2 {
			t.Fatalf("DominantFrequency = %v, want %v", got, freq)
		}
	}

	if _, err := a.DominantFrequency(make([]float32, testSize)); !errors.Is(err, ErrNoTone) {
		t.Fatalf("silence error = %v, want ErrNoTone", err)
	}
}

func TestSpectrumPeak(t *testing.T) {
	a := newTestAnalyzer(t)
	bin := 64
	freq := float64(bin) * a.BinHz()

	mag, err := a.Spectrum(testutil.Sine(freq, testRate, 0.5, testSize))
	if err != nil {
		t.Fatal(err)
	}

	if len(mag) != testSize/2+1 {
		t.Fatalf("len(mag) = %d", len(mag))
	}

	if math.Abs(mag[bin]-0.5) > 1e-6 {
		t.Fatalf("mag[%d] = %v, want 0.5", bin, mag[bin])
	}
}

func TestRMS(t *testing.T) {
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) should be 0")
	}

	if got := RMS(testutil.DC(-0.5, 100)); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("RMS(DC) = %v", got)
	}

	if got := RMS(testutil.Sine(1000, testRate, 1, 48000)); math.Abs(got-math.Sqrt2/2) > 1e-4 {
		t.Fatalf("RMS(sine) = %v", got)
	}
}
