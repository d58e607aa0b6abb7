package pixel

import (
	"fmt"

	"blendy/blend"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Src string `arg:"" help:"Source color (#RGB, #RGBA, #RRGGBB or #RRGGBBAA)"`
	Dst string `arg:"" help:"Destination color (#RGB, #RGBA, #RRGGBB or #RRGGBBAA)"`

	src, dst blend.Rgba8 `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error
	if c.src, err = ParseHex(c.Src); err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}
	if c.dst, err = ParseHex(c.Dst); err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context) error {
	p := blend.BlendPixel(c.src, c.dst)
	_, err := fmt.Fprintf(kctx.Stdout, "%s (%d, %d, %d, %d)\n", FormatHex(p), p.R, p.G, p.B, p.A)
	return err
}
