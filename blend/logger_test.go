package blend

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if _, err := BlendSurface(solid(2, 2, Rgba8{}), solid(2, 2, Rgba8{}), 2, 2); err != nil {
		t.Fatalf("BlendSurface() error = %v", err)
	}
	if !strings.Contains(buf.String(), "blending surface") {
		t.Errorf("log output = %q, want surface record", buf.String())
	}

	buf.Reset()
	v := View{Pix: solid(1, 1, Rgba8{}), Width: 1, Height: 1}
	BlendRectInPlace(v, v, Rect{0, 0, 1, 1}, 5, 5)
	if !strings.Contains(buf.String(), "blit clipped away") {
		t.Errorf("log output = %q, want clip record", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
