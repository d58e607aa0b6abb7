package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// encodable lists the formats save can write.
var encodable = map[string]bool{"gif": true, "jpeg": true, "png": true, "bmp": true, "tiff": true}

// outputFormat resolves "same" to the input format, falling back to png for
// inputs without an encoder (webp).
func outputFormat(imgType, outType string) string {
	if outType != "same" {
		return outType
	}
	if encodable[imgType] {
		return imgType
	}
	return "png"
}

func save(img image.Image, imgType, outType, destDir, srcName string) (err error) {
	outType = outputFormat(imgType, outType)

	oldExt := filepath.Ext(srcName)
	destName := fmt.Sprintf("%s.%s", strings.TrimSuffix(srcName, oldExt), outType)
	destPath := filepath.Join(destDir, destName)

	if err := checkDest(destPath); err != nil {
		return err
	}

	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	tmpName := outFile.Name()
	defer func() {
		if err != nil {
			_ = outFile.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = encode(outFile, img, outType); err != nil {
		return fmt.Errorf("could not encode destination %q: %w", destName, err)
	}
	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush temporary destination %q: %w", destName, err)
	}
	if err = outFile.Close(); err != nil {
		return fmt.Errorf("could not close temporary destination %q: %w", destName, err)
	}
	if err = os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("could not rename destination file %q: %w", destName, err)
	}
	return nil
}

func encode(f *os.File, img image.Image, outType string) error {
	switch outType {
	case "gif":
		return gif.Encode(f, img, nil)
	case "jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		return enc.Encode(f, img)
	case "bmp":
		return bmp.Encode(f, img)
	case "tiff":
		return tiff.Encode(f, img, nil)
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}
}

// checkDest refuses to overwrite existing files.
func checkDest(dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	return fmt.Errorf("destination file already exists: %q", info.Name())
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
