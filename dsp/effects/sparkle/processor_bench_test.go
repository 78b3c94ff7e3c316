package sparkle

import (
	"fmt"
	"testing"

	"github.com/cwbudde/sparklelyzer/internal/testutil"
)

func BenchmarkProcess(b *testing.B) {
	for _, blockSize := range []int{64, 512} {
		b.Run(fmt.Sprintf("block%d", blockSize), func(b *testing.B) {
			p, _ := New()
			if err := p.Prepare(48000, blockSize, 2); err != nil {
				b.Fatal(err)
			}

			buf := [][]float32{testutil.Noise(1, 0.5, blockSize), testutil.Noise(2, 0.5, blockSize)}

			var params Params = DefaultSnapshot()

			b.SetBytes(int64(2 * blockSize * 4))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				p.Process(buf, params)
			}
		})
	}
}
