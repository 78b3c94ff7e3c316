package biquad

import (
	"math"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	c := traced()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)

		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := traced()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		db := c.MagnitudeDB(freq, sr)

		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, sr))
		if !almostEqual(db, fromSq, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestPassthroughResponseIsFlat(t *testing.T) {
	c := passthrough()
	for _, freq := range []float64{0, 100, 12000, 23999} {
		if db := c.MagnitudeDB(freq, 48000); !almostEqual(db, 0, 1e-9) {
			t.Fatalf("freq=%v: %v dB, want 0", freq, db)
		}
	}
}
