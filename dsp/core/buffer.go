package core

// EnsureLen32 returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen32(buf []float32, n int) []float32 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float32, n)
}

// Zero32 sets all values in buf to 0.
func Zero32(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto32 copies src into dst and returns the number of copied elements.
func CopyInto32(dst, src []float32) int {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])

	return n
}
