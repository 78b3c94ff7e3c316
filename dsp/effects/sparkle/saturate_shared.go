package sparkle

// saturateAdd computes wet[i] = dry[i] + tanh(wet[i]*drive) over the shorter
// length, where wet holds the highpass output on entry.
func saturateAdd(wet, dry []float32, drive float64) {
	n := min(len(wet), len(dry))
	wet, dry = wet[:n], dry[:n]

	for i := range wet {
		wet[i] = dry[i] + float32(mathTanh(float64(wet[i])*drive))
	}
}

// Saturate returns tanh(x*drive), the shaping curve applied to the
// highpass output.
func Saturate(x, drive float64) float64 {
	return mathTanh(x * drive)
}
