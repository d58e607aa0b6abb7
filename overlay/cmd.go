package overlay

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"blendy/blend"
	"blendy/parallel"
	"blendy/pixel"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Dest    string `help:"Destination folder for composited pictures. Relative to scan dir if not absolute." default:"blended"`
	Image   string `help:"Overlay picture composited over every scanned picture" xor:"overlay" group:"overlay"`
	Color   string `help:"Solid overlay color (#RGB, #RGBA, #RRGGBB or #RRGGBBAA) used instead of a picture" xor:"overlay" group:"overlay"`
	Fit     bool   `help:"Scale the overlay picture to each scanned picture's size" default:"false" group:"overlay"`
	Mode    string `help:"Blend strategy: whole surface, bounds-checked rect or clipped in-place rect" enum:"surface,rect,inplace" default:"inplace"`
	X       int    `help:"Horizontal offset of the overlay in the scanned picture"`
	Y       int    `help:"Vertical offset of the overlay in the scanned picture"`
	SrcRect []int  `help:"Overlay region to use as x,y,w,h (default: whole overlay)" sep:","`
	Format  string `help:"Output format. 'same' keeps the input format where an encoder exists" enum:"same,png,jpeg,gif,bmp,tiff" default:"png"`

	overlay *image.NRGBA `kong:"-"`
	color   blend.Rgba8  `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.Image != "":
		if c.overlay, err = loadOverlay(c.Image); err != nil {
			return err
		}
	case c.Color != "":
		if c.color, err = pixel.ParseHex(c.Color); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --image or --color is required")
	}

	if c.SrcRect != nil {
		if len(c.SrcRect) != 4 {
			return fmt.Errorf("invalid source rect %v: want x,y,w,h", c.SrcRect)
		}
		if c.SrcRect[2] < 0 || c.SrcRect[3] < 0 {
			return fmt.Errorf("invalid source rect size: %dx%d", c.SrcRect[2], c.SrcRect[3])
		}
	}

	if c.Mode == "surface" && (c.X != 0 || c.Y != 0 || c.SrcRect != nil) {
		return fmt.Errorf("surface mode blends whole pictures, offsets and source rect are not supported")
	}

	return nil
}

// Run composites every file of the scan folder on its own pool worker.
func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	blendWorkers := surfaceWorkers(pool.Workers())
	slog.Debug("scanning", "dir", c.Scan, "files", len(files), "surface_workers", blendWorkers)

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func(fileName string) func() {
			return func() {
				filePath := filepath.Join(c.Scan, fileName)
				logger := slog.Default().With("file", filePath)

				img, imgType, err := decode(filePath)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not decode image", "error", err)
					return
				}

				img, err = c.composite(logger, img, blendWorkers)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not composite image", "mode", c.Mode, "error", err)
					return
				}

				if err = save(img, imgType, c.Format, c.Dest, fileName); err != nil {
					errCount.Add(1)
					logger.Error("could not save image", "dir", c.Dest, "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	pool.Wait(false)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func decode(name string) (image.Image, string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, "", fmt.Errorf("could not open %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", name, "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode %q: %w", name, err)
	}
	return img, imgType, nil
}

func loadOverlay(name string) (*image.NRGBA, error) {
	img, _, err := decode(name)
	if err != nil {
		return nil, fmt.Errorf("invalid overlay: %w", err)
	}
	pix, w, h := blend.Pixels(img)
	return blend.ToImage(pix, w, h)
}

// surfaceWorkers splits the CPUs between files blended concurrently, so a
// surface blend never fans out on top of a busy file pool.
func surfaceWorkers(fileWorkers int) int {
	return max(1, runtime.GOMAXPROCS(0)/max(1, fileWorkers))
}

// composite blends the overlay over img with the configured strategy.
// Surface blends use at most workers goroutines.
func (c *CLICmd) composite(logger *slog.Logger, img image.Image, workers int) (image.Image, error) {
	pix, w, h := blend.Pixels(img)
	src, sw, sh := c.source(logger, w, h)

	sr := blend.Rect{W: sw, H: sh}
	if c.SrcRect != nil {
		sr = blend.Rect{X: c.SrcRect[0], Y: c.SrcRect[1], W: c.SrcRect[2], H: c.SrcRect[3]}
	}

	var out []byte
	switch c.Mode {
	case "surface":
		if sw != w || sh != h {
			return nil, fmt.Errorf("overlay is %dx%d, picture is %dx%d (use --fit)", sw, sh, w, h)
		}
		var err error
		if out, err = blend.BlendSurfaceWorkers(src, pix, w, h, workers); err != nil {
			return nil, err
		}
	case "rect":
		var err error
		if out, err = blend.BlendRect(src, sw, sh, sr, pix, w, h, c.X, c.Y); err != nil {
			return nil, err
		}
	case "inplace":
		srcView, err := blend.NewView(src, sw, sh)
		if err != nil {
			return nil, err
		}
		dstView, err := blend.NewView(pix, w, h)
		if err != nil {
			return nil, err
		}
		blend.BlendRectInPlace(srcView, dstView, sr, c.X, c.Y)
		out = pix
	default:
		return nil, fmt.Errorf("unsupported blend mode: %s", c.Mode)
	}

	logger.Info("composited", "mode", c.Mode, "width", w, "height", h)
	return blend.ToImage(out, w, h)
}

// source returns the overlay buffer for a w x h picture. Solid colors cover
// the source rect if one is set, the whole picture otherwise.
func (c *CLICmd) source(logger *slog.Logger, w, h int) ([]byte, int, int) {
	if c.overlay == nil {
		if c.SrcRect != nil {
			w, h = max(c.SrcRect[0]+c.SrcRect[2], 0), max(c.SrcRect[1]+c.SrcRect[3], 0)
		}
		return bytes.Repeat([]byte{c.color.R, c.color.G, c.color.B, c.color.A}, w*h), w, h
	}

	if c.Fit {
		return blend.Pixels(fit(logger, c.overlay, w, h))
	}
	return blend.Pixels(c.overlay)
}
