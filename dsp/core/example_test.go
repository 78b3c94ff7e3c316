package core_test

import (
	"fmt"

	"github.com/cwbudde/sparklelyzer/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d valid=%v\n",
		cfg.SampleRate, cfg.BlockSize, cfg.NumChannels, cfg.Validate() == nil)

	// Output:
	// sampleRate=44100 blockSize=256 channels=2 valid=true
}

func ExampleEnsureLen32() {
	buf := make([]float32, 2, 4)
	buf[0], buf[1] = 1, 2
	buf = core.EnsureLen32(buf, 4)

	copied := core.CopyInto32(buf[2:], []float32{3, 4})
	fmt.Println(copied, buf)

	core.Zero32(buf[:2])
	fmt.Println(buf)

	// Output:
	// 2 [1 2 3 4]
	// [0 0 3 4]
}
