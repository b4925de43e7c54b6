package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetGlobal(t *testing.T) {
	t.Cleanup(func() { SetGlobal(nil, false) })

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetGlobal(l, true)

	if !IsDebug() {
		t.Errorf("IsDebug() = false; want true")
	}
	Get().Debug("hello", "table", "orders")
	if !strings.Contains(buf.String(), "table=orders") {
		t.Errorf("global logger output = %q; want it to contain table=orders", buf.String())
	}
}

func TestNewLevels(t *testing.T) {
	ctx := context.Background()
	if New(false).Enabled(ctx, slog.LevelDebug) {
		t.Errorf("New(false) should not enable debug")
	}
	if !New(true).Enabled(ctx, slog.LevelDebug) {
		t.Errorf("New(true) should enable debug")
	}
}
