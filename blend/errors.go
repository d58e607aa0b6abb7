package blend

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrSizeMismatch       = errors.New("buffer size mismatch")
	ErrSrcRectOutOfBounds = errors.New("source rect out of bounds")
	ErrDstRectOutOfBounds = errors.New("destination rect out of bounds")
)

// bufferLen returns width*height*4, failing on negative dimensions and on
// sizes that do not fit in an int.
func bufferLen(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: invalid dimensions %dx%d", ErrSizeMismatch, width, height)
	}
	if width > 0 && height > math.MaxInt/4/width {
		return 0, fmt.Errorf("%w: dimensions %dx%d overflow", ErrSizeMismatch, width, height)
	}
	return width * height * 4, nil
}

func checkLen(name string, pix []byte, width, height int) error {
	n, err := bufferLen(width, height)
	if err != nil {
		return err
	}
	if len(pix) != n {
		return fmt.Errorf("%w: %s expected %d, got %d", ErrSizeMismatch, name, n, len(pix))
	}
	return nil
}
