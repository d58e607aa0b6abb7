package overlay

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"
)

// fit scales img to exactly width x height. Straight alpha is kept by
// scaling into an NRGBA picture with the Src operator.
func fit(logger *slog.Logger, img *image.NRGBA, width, height int) *image.NRGBA {
	srcBounds := img.Bounds()
	if (srcBounds.Dx() == width) && (srcBounds.Dy() == height) {
		return img
	}

	logger.Info("fitting overlay", "from", srcBounds.Size(), "width", width, "height", height)
	dest := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, srcBounds, draw.Src, nil)

	return dest
}
