package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kungfusheep/kli"
)

func TestBuildDemoStructure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tiles = 3
	d := buildDemo(cfg, zap.NewNop())

	if got := len(d.tiles); got != 3 {
		t.Fatalf("tiles = %d, want 3", got)
	}
	if !strings.Contains(d.scene.UnstyledText(), "Hello Kli") {
		t.Error("scene text is missing the heading")
	}
	if got := len(d.scene.Focusables()); got != 2 {
		t.Errorf("focusables = %d, want the two panes", got)
	}
}

func TestSnapshotPlain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tiles = 2

	var out bytes.Buffer
	if err := snapshot(context.Background(), &out, cfg, zap.NewNop(), 100, 30, 0, false); err != nil {
		t.Fatalf("snapshot() error = %v", err)
	}
	text := out.String()
	for _, want := range []string{"╭", "Hello", "shaders", "●"} {
		if !strings.Contains(text, want) {
			t.Errorf("snapshot missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "\x1b[") {
		t.Error("plain snapshot contains escape sequences")
	}
}

func TestSnapshotANSI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tiles = 1

	var out bytes.Buffer
	if err := snapshot(context.Background(), &out, cfg, zap.NewNop(), 80, 20, 3, true); err != nil {
		t.Fatalf("snapshot() error = %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[1;1H") {
		t.Errorf("ansi snapshot does not position the cursor: %q", out.String()[:min(40, out.Len())])
	}
}

func TestSnapshotRejectsEmptySize(t *testing.T) {
	err := snapshot(context.Background(), &bytes.Buffer{}, DefaultConfig(), zap.NewNop(), 0, 10, 0, false)
	if err == nil {
		t.Error("snapshot() error = nil, want size error")
	}
}

func TestAdvanceWrapsPhase(t *testing.T) {
	d := buildDemo(DefaultConfig(), zap.NewNop())
	d.phase = 19.5
	d.advance(kli.Frame{Delta: kli.FrameInterval(1)})
	if d.phase < 0 || d.phase > 20 {
		t.Errorf("phase = %v, want it kept within [0,20]", d.phase)
	}
}
