// Package blend composites 8-bit RGBA pixel buffers with the Porter-Duff
// "over" operator evaluated on linearly rescaled samples.
//
// A buffer is a row-major RGBA8888 byte slice of length width*height*4 with
// no row padding and straight (non-premultiplied) alpha, which is the layout
// of image.NRGBA.Pix for a zero-origin image. Samples are mapped to [0, 1]
// by a plain division by 255; no sRGB transfer curve is applied.
package blend

import (
	"image/color"
	"math"
)

// Rgba8 is one stored sample of a buffer.
type Rgba8 struct {
	R, G, B, A uint8
}

// Rgba8Model converts any color.Color to an Rgba8.
var Rgba8Model = color.ModelFunc(rgba8Convert)

func rgba8Convert(c color.Color) color.Color {
	if _, ok := c.(Rgba8); ok {
		return c
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Rgba8{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color, returning alpha-premultiplied 16-bit values.
func (p Rgba8) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// Linear rescales each channel to [0, 1].
func (p Rgba8) Linear() Linear {
	return Linear{
		R: float32(p.R) / 255,
		G: float32(p.G) / 255,
		B: float32(p.B) / 255,
		A: float32(p.A) / 255,
	}
}

// Linear is a sample rescaled to [0, 1], alpha included. Values may leave
// that range transiently; Rgba8 clamps them.
type Linear struct {
	R, G, B, A float32
}

// Rgba8 clamps each channel to [0, 1] and rounds it to the nearest 8-bit value,
// halves away from zero.
func (l Linear) Rgba8() Rgba8 {
	return Rgba8{
		R: quantize(l.R),
		G: quantize(l.G),
		B: quantize(l.B),
		A: quantize(l.A),
	}
}

func quantize(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(math.Round(float64(v * 255)))
}

// Over composites src over dst:
//
//	a = sa + da*(1-sa)
//	c = (sc*sa + dc*da*(1-sa)) / a
//
// A zero result alpha yields transparent black.
//
// The explicit float32 conversions round every product on its own so no
// fused multiply-add changes results between architectures.
func Over(src, dst Linear) Linear {
	inv := 1 - src.A
	k := float32(dst.A * inv)
	a := float32(src.A + k)
	if a <= 0 {
		return Linear{}
	}

	return Linear{
		R: float32(float32(src.R*src.A)+float32(float32(dst.R*dst.A)*inv)) / a,
		G: float32(float32(src.G*src.A)+float32(float32(dst.G*dst.A)*inv)) / a,
		B: float32(float32(src.B*src.A)+float32(float32(dst.B*dst.A)*inv)) / a,
		A: a,
	}
}

// BlendPixel composites one stored sample over another.
func BlendPixel(src, dst Rgba8) Rgba8 {
	return Over(src.Linear(), dst.Linear()).Rgba8()
}

func at(pix []byte, i int) Rgba8 {
	s := pix[i : i+4 : i+4]
	return Rgba8{R: s[0], G: s[1], B: s[2], A: s[3]}
}

func put(pix []byte, i int, p Rgba8) {
	s := pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = p.R, p.G, p.B, p.A
}
