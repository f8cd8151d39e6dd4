package kli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTTYCloseTwice(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "tty"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	tty := &TTY{
		out:    out,
		opts:   TTYOptions{Mouse: true},
		resize: make(chan Size, 1),
		sig:    make(chan os.Signal, 1),
	}
	if err := tty.Close(); err != nil {
		t.Fatalf("first Close error = %v", err)
	}
	if err := tty.Close(); err != nil {
		t.Fatalf("second Close error = %v", err)
	}

	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if n := strings.Count(got, seqShowCursor); n != 1 {
		t.Errorf("teardown written %d times, want once: %q", n, got)
	}
	if !strings.HasPrefix(got, seqMouseOff) || !strings.HasSuffix(got, seqAltScreenExit) {
		t.Errorf("teardown = %q, want mouse off first and alt screen exit last", got)
	}
}

func TestStaticTerminalResize(t *testing.T) {
	term := NewStaticTerminal(&strings.Builder{}, 4, 2)
	if w, h := term.Size(); w != 4 || h != 2 {
		t.Fatalf("Size = %dx%d", w, h)
	}
	term.SetSize(7, 3)
	select {
	case s := <-term.Resize():
		if s != (Size{Width: 7, Height: 3}) {
			t.Errorf("resize event = %+v", s)
		}
	default:
		t.Fatal("no resize event")
	}
	if w, h := term.Size(); w != 7 || h != 3 {
		t.Errorf("Size after SetSize = %dx%d", w, h)
	}
}
