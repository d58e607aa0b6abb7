package blend

import (
	"fmt"
	"slices"
)

// Rect is a sub-rectangle of a buffer: origin (X, Y), extent W x H.
type Rect struct {
	X, Y, W, H int
}

// BlendRect composites the sr region of the srcW x srcH buffer src over the
// dstW x dstH buffer dst with its top-left corner at (dstX, dstY). The
// result is a blended copy of dst; neither input is modified.
//
// Every coordinate must be non-negative and both rectangles must lie inside
// their buffers. Source problems are reported as ErrSrcRectOutOfBounds,
// destination ones as ErrDstRectOutOfBounds, and buffers whose length does
// not match their dimensions as ErrSizeMismatch.
func BlendRect(src []byte, srcW, srcH int, sr Rect, dst []byte, dstW, dstH, dstX, dstY int) ([]byte, error) {
	if sr.X < 0 || sr.Y < 0 || sr.W < 0 || sr.H < 0 || srcW < 0 || srcH < 0 ||
		sr.W > srcW-sr.X || sr.H > srcH-sr.Y {
		return nil, fmt.Errorf("%w: %dx%d+%d+%d in %dx%d", ErrSrcRectOutOfBounds, sr.W, sr.H, sr.X, sr.Y, srcW, srcH)
	}
	if dstX < 0 || dstY < 0 || dstW < 0 || dstH < 0 ||
		sr.W > dstW-dstX || sr.H > dstH-dstY {
		return nil, fmt.Errorf("%w: %dx%d+%d+%d in %dx%d", ErrDstRectOutOfBounds, sr.W, sr.H, dstX, dstY, dstW, dstH)
	}
	if err := checkLen("source", src, srcW, srcH); err != nil {
		return nil, err
	}
	if err := checkLen("destination", dst, dstW, dstH); err != nil {
		return nil, err
	}

	out := slices.Clone(dst)
	if out == nil {
		out = []byte{}
	}
	for y := range sr.H {
		si := ((sr.Y+y)*srcW + sr.X) * 4
		di := ((dstY+y)*dstW + dstX) * 4
		for range sr.W {
			put(out, di, BlendPixel(at(src, si), at(out, di)))
			si += 4
			di += 4
		}
	}

	return out, nil
}
