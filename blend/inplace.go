package blend

import "unsafe"

// View is a borrowed window on caller-owned pixel memory: Width*Height
// RGBA8888 pixels in Pix. The caller keeps ownership and must not touch the
// memory from elsewhere while an operation is using the view.
type View struct {
	Pix    []byte
	Width  int
	Height int
}

// NewView wraps pix after checking its length against the dimensions.
func NewView(pix []byte, width, height int) (View, error) {
	if err := checkLen("view", pix, width, height); err != nil {
		return View{}, err
	}
	return View{Pix: pix, Width: width, Height: height}, nil
}

// ViewOf wraps width*height*4 bytes starting at ptr, for memory allocated
// outside Go (a C surface, an mmap'd frame buffer). The memory must stay
// valid and at least that long for as long as the view is used.
func ViewOf(ptr unsafe.Pointer, width, height int) View {
	return View{
		Pix:    unsafe.Slice((*byte)(ptr), width*height*4),
		Width:  width,
		Height: height,
	}
}

// BlendRectInPlace composites the sr region of src over dst with its top-left
// corner at (dstX, dstY), writing into dst.Pix. The rectangle may reach
// outside either buffer, coordinates may be negative; only the part inside
// both is drawn, and nothing at all if that part is empty.
//
// Fully transparent source pixels leave dst untouched and fully opaque ones
// are copied with alpha 255; only the rest go through Over.
//
// Views whose Pix is shorter than their dimensions panic on index.
func BlendRectInPlace(src, dst View, sr Rect, dstX, dstY int) {
	r, d, ok := Clip(sr, src.Width, src.Height, dstX, dstY, dst.Width, dst.Height)
	if !ok {
		Logger().Debug("blit clipped away", "rect", sr, "x", dstX, "y", dstY)
		return
	}

	for y := range r.H {
		si := ((r.Y+y)*src.Width + r.X) * 4
		di := ((d.Y+y)*dst.Width + d.X) * 4
		for range r.W {
			s := src.Pix[si : si+4 : si+4]
			switch s[3] {
			case 0:
				// nothing to draw
			case 255:
				t := dst.Pix[di : di+4 : di+4]
				t[0], t[1], t[2], t[3] = s[0], s[1], s[2], 255
			default:
				put(dst.Pix, di, BlendPixel(Rgba8{R: s[0], G: s[1], B: s[2], A: s[3]}, at(dst.Pix, di)))
			}
			si += 4
			di += 4
		}
	}
}
