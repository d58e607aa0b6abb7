package blend

import (
	"fmt"

	"blendy/parallel"
)

// minChunk is the smallest number of pixels handed to one worker.
const minChunk = 4096

// BlendSurface composites every pixel of src over the pixel at the same index
// of dst and returns the result in a new buffer. Both buffers must hold
// exactly width*height pixels. Neither input is modified.
func BlendSurface(src, dst []byte, width, height int) ([]byte, error) {
	return BlendSurfaceWorkers(src, dst, width, height, 0)
}

// BlendSurfaceWorkers is BlendSurface spread over at most workers goroutines;
// workers < 1 means GOMAXPROCS. The result does not depend on workers.
func BlendSurfaceWorkers(src, dst []byte, width, height, workers int) ([]byte, error) {
	n, err := bufferLen(width, height)
	if err != nil {
		return nil, err
	}
	if len(src) != n || len(dst) != n {
		return nil, fmt.Errorf("%w: expected %d, got src:%d dst:%d", ErrSizeMismatch, n, len(src), len(dst))
	}

	Logger().Debug("blending surface", "width", width, "height", height, "workers", workers)

	out := make([]byte, n)
	parallel.For(workers, width*height, minChunk, func(lo, hi int) {
		for i := lo * 4; i < hi*4; i += 4 {
			put(out, i, BlendPixel(at(src, i), at(dst, i)))
		}
	})

	return out, nil
}
