package main

import (
	"log/slog"
	"os"

	"blendy/blend"
	"blendy/overlay"
	"blendy/parallel"
	"blendy/pixel"

	"github.com/alecthomas/kong"
)

var cli struct {
	Workers  int        `help:"Number of files processed concurrently, 0 uses all CPUs. Surface blends share the remaining CPUs." default:"0" env:"BLENDY_WORKERS"`
	LogLevel slog.Level `help:"Log level (debug, info, warn, error)" default:"info" env:"BLENDY_LOG_LEVEL"`

	Overlay overlay.CLICmd `cmd:"" help:"Composite an overlay picture or color onto every picture in a folder"`
	Pixel   pixel.CLICmd   `cmd:"" help:"Composite one color over another"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("blendy"),
		kong.Description("Porter-Duff over compositing of RGBA pictures."),
		kong.UsageOnError(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cli.LogLevel}))
	slog.SetDefault(logger)
	blend.SetLogger(logger)

	slog.Debug("running", "command", kctx.Command(), "workers", cli.Workers)

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool)
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
