package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New(2, 8)
	if b.NumChannels() != 2 || b.NumSamples() != 8 {
		t.Fatalf("geometry = %dx%d, want 2x8", b.NumChannels(), b.NumSamples())
	}

	for ch := range b.NumChannels() {
		for i, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestNewNegativeGeometry(t *testing.T) {
	b := New(-1, -4)
	if b.NumChannels() != 0 || b.NumSamples() != 0 {
		t.Fatalf("geometry = %dx%d, want 0x0", b.NumChannels(), b.NumSamples())
	}
}

func TestChannelsDoNotOverlap(t *testing.T) {
	b := New(3, 4)
	for ch := range 3 {
		for i := range b.Channel(ch) {
			b.Channel(ch)[i] = float32(ch + 1)
		}
	}

	for ch := range 3 {
		for i, v := range b.Channel(ch) {
			if v != float32(ch+1) {
				t.Fatalf("Channel(%d)[%d] = %v, want %d", ch, i, v, ch+1)
			}
		}
	}

	if cap(b.Channel(0)) != 4 {
		t.Fatalf("cap(Channel(0)) = %d, want 4", cap(b.Channel(0)))
	}
}

func TestResizeReusesAndZeroes(t *testing.T) {
	b := New(2, 16)
	b.Channel(1)[3] = 7
	before := &b.data[0]

	b.Resize(1, 8)
	if b.NumChannels() != 1 || b.NumSamples() != 8 {
		t.Fatalf("geometry = %dx%d, want 1x8", b.NumChannels(), b.NumSamples())
	}

	if &b.data[0] != before {
		t.Fatal("Resize to a smaller geometry should reuse the backing array")
	}

	for i, v := range b.Channel(0) {
		if v != 0 {
			t.Fatalf("Channel(0)[%d] = %v, want 0 after Resize", i, v)
		}
	}

	b.Resize(4, 64)
	if b.NumChannels() != 4 || len(b.Channel(3)) != 64 {
		t.Fatalf("geometry = %dx%d, want 4x64", b.NumChannels(), len(b.Channel(3)))
	}
}

func TestCopyFrom(t *testing.T) {
	b := New(2, 3)
	n := b.CopyFrom([][]float32{{1, 2, 3, 4}, {5, 6}, {9, 9, 9}})
	if n != 2 {
		t.Fatalf("CopyFrom() = %d, want 2 (last copied channel)", n)
	}

	if got := b.Channel(0); got[0] != 1 || got[2] != 3 {
		t.Fatalf("Channel(0) = %v", got)
	}

	if got := b.Channel(1); got[0] != 5 || got[1] != 6 || got[2] != 0 {
		t.Fatalf("Channel(1) = %v", got)
	}
}

func TestCopyFromDoesNotAllocate(t *testing.T) {
	b := New(2, 256)
	src := [][]float32{make([]float32, 256), make([]float32, 256)}

	allocs := testing.AllocsPerRun(100, func() {
		b.CopyFrom(src)
	})
	if allocs != 0 {
		t.Fatalf("CopyFrom allocated %v times per run", allocs)
	}
}

func TestView(t *testing.T) {
	b := New(2, 8)
	dst := make([][]float32, 2)

	v := b.View(dst, 5)
	if len(v) != 2 || len(v[0]) != 5 || len(v[1]) != 5 {
		t.Fatalf("View geometry = %d channels, %d samples", len(v), len(v[0]))
	}

	v = b.View(dst, 100)
	if len(v[0]) != 8 {
		t.Fatalf("View clamps to buffer size: got %d, want 8", len(v[0]))
	}
}
