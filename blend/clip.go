package blend

import "image"

// Clip reduces the source rectangle sr of a srcW x srcH buffer, to be drawn
// at (dstX, dstY) in a dstW x dstH buffer, to the part that lies inside both
// buffers. Source and destination stay in step: whatever is cut from one
// side is cut from the other. ok is false when nothing is left to draw.
//
// Source edges are clipped first (left/top, then right/bottom), then
// destination edges in the same order.
//
// All comparisons are made against remaining extents, so coordinates anywhere
// in the int range clip correctly instead of wrapping.
func Clip(sr Rect, srcW, srcH, dstX, dstY, dstW, dstH int) (src Rect, dst image.Point, ok bool) {
	sx, dx, w, okX := clipSpan(sr.X, dstX, sr.W, srcW, dstW)
	sy, dy, h, okY := clipSpan(sr.Y, dstY, sr.H, srcH, dstH)
	if !okX || !okY {
		return Rect{}, image.Point{}, false
	}
	return Rect{X: sx, Y: sy, W: w, H: h}, image.Pt(dx, dy), true
}

// clipSpan clips one axis: a span of n starting at s in a buffer of srcN,
// drawn at d in a buffer of dstN.
func clipSpan(s, d, n, srcN, dstN int) (int, int, int, bool) {
	if n <= 0 || srcN <= 0 || dstN <= 0 {
		return 0, 0, 0, false
	}

	if s < 0 {
		if s <= -n {
			return 0, 0, 0, false
		}
		k := -s
		// d+k would land at or past the destination edge.
		if d >= dstN-k {
			return 0, 0, 0, false
		}
		d += k
		n -= k
		s = 0
	}
	if n > srcN-s {
		n = srcN - s
	}
	if n <= 0 {
		return 0, 0, 0, false
	}

	if d < 0 {
		if d <= -n {
			return 0, 0, 0, false
		}
		k := -d
		s += k
		n -= k
		d = 0
	}
	if n > dstN-d {
		n = dstN - d
	}
	if n <= 0 {
		return 0, 0, 0, false
	}
	return s, d, n, true
}
