package blend

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
)

func solid(width, height int, p Rgba8) []byte {
	return bytes.Repeat([]byte{p.R, p.G, p.B, p.A}, width*height)
}

func noise(rng *rand.Rand, width, height int) []byte {
	pix := make([]byte, width*height*4)
	for i := range pix {
		pix[i] = uint8(rng.UintN(256))
	}
	// make sure the special alphas show up
	for i := 3; i < len(pix); i += 4 * 7 {
		pix[i] = []uint8{0, 255}[(i/28)%2]
	}
	return pix
}

func TestBlendSurfaceSolid(t *testing.T) {
	const width, height = 4, 4
	src := solid(width, height, Rgba8{255, 0, 0, 128})
	dst := solid(width, height, Rgba8{0, 0, 255, 255})

	out, err := BlendSurface(src, dst, width, height)
	if err != nil {
		t.Fatalf("BlendSurface() error = %v", err)
	}
	if len(out) != width*height*4 {
		t.Fatalf("len(out) = %d, want %d", len(out), width*height*4)
	}

	want := BlendPixel(Rgba8{255, 0, 0, 128}, Rgba8{0, 0, 255, 255})
	if want.R <= 100 || want.B <= 100 || want.G >= 50 || want.A != 255 {
		t.Errorf("unexpected blend result %v", want)
	}
	for i := 0; i < len(out); i += 4 {
		if got := at(out, i); got != want {
			t.Fatalf("pixel %d = %v, want %v", i/4, got, want)
		}
	}
}

func TestBlendSurfaceMatchesBlendPixel(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const width, height = 131, 97
	src := noise(rng, width, height)
	dst := noise(rng, width, height)
	srcCopy, dstCopy := bytes.Clone(src), bytes.Clone(dst)

	for _, workers := range []int{1, 2, 3, 8, 0} {
		out, err := BlendSurfaceWorkers(src, dst, width, height, workers)
		if err != nil {
			t.Fatalf("workers=%d: BlendSurfaceWorkers() error = %v", workers, err)
		}
		for i := 0; i < len(out); i += 4 {
			if got, want := at(out, i), BlendPixel(at(src, i), at(dst, i)); got != want {
				t.Fatalf("workers=%d: pixel %d = %v, want %v", workers, i/4, got, want)
			}
		}
	}

	if !bytes.Equal(src, srcCopy) || !bytes.Equal(dst, dstCopy) {
		t.Error("BlendSurface modified its inputs")
	}
}

func TestBlendSurfaceSizeMismatch(t *testing.T) {
	const width, height = 8, 8
	n := width * height * 4

	tests := []struct {
		name     string
		src, dst []byte
		wantMsg  string
	}{
		{"short destination", make([]byte, n), make([]byte, n-1), "expected 256, got src:256 dst:255"},
		{"short source", make([]byte, 5), make([]byte, n), "expected 256, got src:5 dst:256"},
		{"both wrong", []byte("short"), []byte("also_short"), "expected 256, got src:5 dst:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := BlendSurface(tt.src, tt.dst, width, height)
			if !errors.Is(err, ErrSizeMismatch) {
				t.Fatalf("BlendSurface() error = %v, want %v", err, ErrSizeMismatch)
			}
			if out != nil {
				t.Errorf("BlendSurface() returned %d bytes on error", len(out))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestBlendSurfaceInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		pix           []byte
	}{
		{"negative", -2, -2, make([]byte, 16)},
		{"length overflows", 1 << 62, 1, nil},
		{"area overflows", math.MaxInt / 2, 3, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := BlendSurface(tt.pix, tt.pix, tt.width, tt.height)
			if !errors.Is(err, ErrSizeMismatch) {
				t.Fatalf("BlendSurface(%d, %d) error = %v, want %v", tt.width, tt.height, err, ErrSizeMismatch)
			}
			if out != nil {
				t.Errorf("BlendSurface() returned %d bytes on error", len(out))
			}
		})
	}
}

func TestBlendSurfaceEmpty(t *testing.T) {
	out, err := BlendSurface(nil, []byte{}, 0, 0)
	if err != nil {
		t.Fatalf("BlendSurface() error = %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("BlendSurface() = %v, want empty buffer", out)
	}
}

func BenchmarkBlendSurface(b *testing.B) {
	for _, size := range []int{64, 256, 1024} {
		src := solid(size, size, Rgba8{255, 0, 0, 128})
		dst := solid(size, size, Rgba8{0, 0, 255, 255})
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(src)))
			for b.Loop() {
				if _, err := BlendSurface(src, dst, size, size); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
