//go:build fastmath

package sparkle

import (
	"github.com/meko-christian/algo-approx"
)

// tanhLimit is where tanh rounds to ±1 in float32.
const tanhLimit = 9.0

// mathTanh computes tanh(x) using fast approximation.
// Uses the identity: tanh(x) = 1 - 2/(e^(2x) + 1)
func mathTanh(x float64) float64 {
	switch {
	case x != x:
		return x
	case x >= tanhLimit:
		return 1
	case x <= -tanhLimit:
		return -1
	}

	return 1 - 2/(approx.FastExp(2*x)+1)
}
