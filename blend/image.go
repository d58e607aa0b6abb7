package blend

import (
	"image"

	"golang.org/x/image/draw"
)

// Pixels returns img as a buffer together with its dimensions. A zero-origin
// *image.NRGBA without row padding is returned as is, sharing its memory;
// anything else is converted into a new buffer.
func Pixels(img image.Image) (pix []byte, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()

	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == width*4 {
		return n.Pix[:width*height*4], width, height
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix, width, height
}

// ToImage wraps a buffer as an *image.NRGBA without copying.
func ToImage(pix []byte, width, height int) (*image.NRGBA, error) {
	if err := checkLen("image", pix, width, height); err != nil {
		return nil, err
	}

	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
