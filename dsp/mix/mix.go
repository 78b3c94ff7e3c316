// Package mix provides float32 dry/wet blending kernels for block processing.
package mix

import (
	"github.com/tphakala/simd/f32"
)

// Crossfade writes dst = dry*(1-amount) + wet*amount.
//
// amount is clamped to [0, 1]. wet is scaled in place and must not be read
// afterwards; dst may alias dry. With amount 0 dst is an exact copy of dry,
// with amount 1 an exact copy of wet.
func Crossfade(dst, dry, wet []float32, amount float32) {
	n := min(len(dst), len(dry), len(wet))
	if n == 0 {
		return
	}

	dst, dry, wet = dst[:n], dry[:n], wet[:n]

	switch {
	case !(amount > 0):
		copy(dst, dry)
		return
	case amount >= 1:
		copy(dst, wet)
		return
	}

	f32.Scale(dst, dry, 1-amount)
	f32.Scale(wet, wet, amount)
	AddInPlace(dst, wet)
}

// AddInPlace adds src to dst element-wise over the shorter length.
func AddInPlace(dst, src []float32) {
	n := min(len(dst), len(src))
	dst, src = dst[:n], src[:n]

	for i := range dst {
		dst[i] += src[i]
	}
}
