package kli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestRenderer(t *testing.T, width, height int) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := NewRenderer(NewStaticTerminal(&out, width, height), nil, Options{})
	return r, &out
}

// pass draws with fn into a buffer of the given size and executes rt.
func pass(r *Renderer, width, height int, rt RenderTarget, fn func()) error {
	r.BeginRender(width, height)
	fn()
	r.ExecuteRender(rt)
	return r.EndRender()
}

func TestRendererBasic(t *testing.T) {
	r, out := newTestRenderer(t, 6, 2)
	err := pass(r, 6, 2, r.FullScreen(), func() {
		r.DrawString(0, 0, "hi", TextStyle{})
	})
	if err != nil {
		t.Fatalf("pass error = %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\x1b[1;1H") {
		t.Errorf("output does not start at the origin: %q", got)
	}
	if !strings.Contains(got, "hi    ") {
		t.Errorf("output missing row text: %q", got)
	}
	if !strings.Contains(got, "\x1b[2;1H") {
		t.Errorf("output missing second row: %q", got)
	}
	if !strings.HasSuffix(got, seqReset) {
		t.Errorf("output does not end with a reset: %q", got)
	}
}

func TestRendererStyles(t *testing.T) {
	r, out := newTestRenderer(t, 3, 1)
	red := RGB(255, 0, 0)
	err := pass(r, 3, 1, r.FullScreen(), func() {
		r.DrawString(0, 0, "ab", TextStyle{FG: &red, Bold: ptr(true)})
	})
	if err != nil {
		t.Fatal(err)
	}
	got := out.String()
	// one SGR for the styled run, one for the plain cell after it
	if n := strings.Count(got, "\x1b[0;1;38;2;255;0;0m"); n != 1 {
		t.Errorf("styled SGR count = %d, want 1: %q", n, got)
	}
	if !strings.Contains(got, "\x1b[0;1;38;2;255;0;0mab\x1b[0m ") {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRendererSkipsUnchangedRows(t *testing.T) {
	r, out := newTestRenderer(t, 5, 3)
	draw := func() { r.DrawString(0, 1, "xyz", TextStyle{}) }

	if err := pass(r, 5, 3, r.FullScreen(), draw); err != nil {
		t.Fatal(err)
	}
	if got := r.Stats().RowsWritten; got != 3 {
		t.Fatalf("first pass wrote %d rows, want 3", got)
	}

	out.Reset()
	if err := pass(r, 5, 3, r.FullScreen(), draw); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("identical pass wrote %q", out.String())
	}
	if got := r.Stats().RowsSkipped; got != 3 {
		t.Errorf("RowsSkipped = %d, want 3", got)
	}

	out.Reset()
	err := pass(r, 5, 3, r.FullScreen(), func() { r.DrawString(0, 1, "xyw", TextStyle{}) })
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.HasPrefix(got, "\x1b[2;1H") || strings.Contains(got, "\x1b[1;1H") {
		t.Errorf("changed pass should rewrite only row 2: %q", got)
	}
}

func TestRendererWideGlyphs(t *testing.T) {
	t.Run("covered cell skipped", func(t *testing.T) {
		r, out := newTestRenderer(t, 4, 1)
		err := pass(r, 4, 1, r.FullScreen(), func() {
			r.DrawString(0, 0, "你a", TextStyle{})
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "你a ") {
			t.Errorf("output = %q, want the wide glyph followed directly by a", out.String())
		}
	})

	t.Run("cut at edge becomes blank", func(t *testing.T) {
		r, out := newTestRenderer(t, 4, 1)
		err := pass(r, 4, 1, r.FullScreen(), func() {
			r.DrawString(0, 0, "abc", TextStyle{})
			r.Buffer().SetChar(3, 0, 1, 1, "你", 2, TextStyle{}, false)
		})
		if err != nil {
			t.Fatal(err)
		}
		got := out.String()
		if strings.Contains(got, "你") {
			t.Errorf("wide glyph past the edge was written: %q", got)
		}
		if !strings.Contains(got, "abc ") {
			t.Errorf("output = %q, want a blank in the last column", got)
		}
	})
}

func TestRendererViewport(t *testing.T) {
	r, out := newTestRenderer(t, 4, 1)
	r.SetViewport(3, 0)
	err := pass(r, 10, 1, RenderTarget{Target: NewRect(0, 0, 4, 1)}, func() {
		r.DrawString(0, 0, "0123456789", TextStyle{})
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "3456") || strings.Contains(got, "2") {
		t.Errorf("panned output = %q, want columns 3..6", got)
	}
}

func TestRendererOutsideFiller(t *testing.T) {
	t.Run("left of the buffer", func(t *testing.T) {
		r, out := newTestRenderer(t, 4, 1)
		r.SetViewport(-2, 0)
		err := pass(r, 4, 1, RenderTarget{Target: NewRect(0, 0, 4, 1)}, func() {
			r.DrawString(0, 0, "ab", TextStyle{})
		})
		if err != nil {
			t.Fatal(err)
		}
		got := out.String()
		if !strings.HasPrefix(got, "\x1b[1;1H\x1b[0;48;2;0;0;0m  ") {
			t.Errorf("output = %q, want two black filler cells first", got)
		}
		if !strings.Contains(got, "ab") {
			t.Errorf("output = %q, want buffer content after the filler", got)
		}
	})

	t.Run("custom filler color", func(t *testing.T) {
		r, out := newTestRenderer(t, 2, 1)
		r.SetViewport(0, 5)
		blue := RGB(0, 0, 255)
		rt := RenderTarget{Target: NewRect(0, 0, 2, 1), ClearEmptyColor: &blue}
		if err := pass(r, 2, 1, rt, func() {}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "48;2;0;0;255m  ") {
			t.Errorf("output = %q, want blue filler", out.String())
		}
	})

	t.Run("beyond a short buffer", func(t *testing.T) {
		r, out := newTestRenderer(t, 3, 2)
		err := pass(r, 2, 1, RenderTarget{Target: NewRect(0, 0, 3, 2)}, func() {
			r.DrawString(0, 0, "ab", TextStyle{})
		})
		if err != nil {
			t.Fatal(err)
		}
		got := out.String()
		if !strings.Contains(got, "ab\x1b[0;48;2;0;0;0m ") {
			t.Errorf("output = %q, want the row tail filled", got)
		}
		if !strings.Contains(got, "\x1b[2;1H\x1b[0;48;2;0;0;0m   ") {
			t.Errorf("output = %q, want the row below filled", got)
		}
	})
}

func TestRendererClearScreen(t *testing.T) {
	t.Run("before frame", func(t *testing.T) {
		r, out := newTestRenderer(t, 2, 1)
		rt := r.FullScreen()
		rt.ClearScreen = true
		if err := pass(r, 2, 1, rt, func() {}); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out.String(), seqClearScreen) {
			t.Errorf("output = %q, want a clear first", out.String())
		}
	})

	t.Run("target off screen", func(t *testing.T) {
		r, out := newTestRenderer(t, 2, 1)
		red := RGB(255, 0, 0)
		rt := RenderTarget{Target: NewRect(10, 10, 2, 1), ClearScreen: true, ClearScreenColor: &red}
		if err := pass(r, 2, 1, rt, func() { r.DrawString(0, 0, "zz", TextStyle{}) }); err != nil {
			t.Fatal(err)
		}
		want := "\x1b[0;48;2;255;0;0m" + seqClearScreen + seqReset
		if got := out.String(); got != want {
			t.Errorf("output = %q, want only the clear %q", got, want)
		}
	})

	t.Run("clear forces full redraw", func(t *testing.T) {
		r, out := newTestRenderer(t, 2, 1)
		if err := pass(r, 2, 1, r.FullScreen(), func() {}); err != nil {
			t.Fatal(err)
		}
		out.Reset()
		rt := r.FullScreen()
		rt.ClearScreen = true
		if err := pass(r, 2, 1, rt, func() {}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "\x1b[1;1H") {
			t.Errorf("row skipped after clear: %q", out.String())
		}
	})
}

func TestRendererFillAndMask(t *testing.T) {
	r, _ := newTestRenderer(t, 6, 3)
	bg := RGB(1, 2, 3)
	r.BeginRender(6, 3)
	r.PushMask(NewRect(1, 1, 2, 1))
	r.Fill(NewRect(0, 0, 6, 3), &bg)
	r.PopMask()

	for y := range 3 {
		for x := range 6 {
			inside := y == 1 && (x == 1 || x == 2)
			if got := r.Buffer().Get(x, y).Style.HasBG; got != inside {
				t.Errorf("cell (%d,%d) filled = %v, want %v", x, y, got, inside)
			}
		}
	}

	// a new pass starts with no masks and a blank buffer
	r.BeginRender(6, 3)
	if got := r.Buffer().Get(1, 1); got != EmptyCell() {
		t.Errorf("cell after BeginRender = %+v, want empty", got)
	}
	if got := r.Buffer().Mask(); got != r.Buffer().Bounds() {
		t.Errorf("mask after BeginRender = %+v", got)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestRendererWriteError(t *testing.T) {
	boom := errors.New("boom")
	scene := NewScene(SceneOptions{})
	scene.Root().AddChild(NewTextBlock("x"))
	r := NewRenderer(NewStaticTerminal(failingWriter{boom}, 4, 1), scene, Options{})

	err := r.RenderOnce(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("RenderOnce error = %v, want it to wrap boom", err)
	}

	// a failed write invalidates the front buffer, so the next pass repaints
	var out bytes.Buffer
	r.term = NewStaticTerminal(&out, 4, 1)
	if err := r.RenderOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "x") {
		t.Errorf("repaint after failure = %q", out.String())
	}
}

func TestRenderOnceCanceled(t *testing.T) {
	r, out := newTestRenderer(t, 2, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.RenderOnce(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderOnce error = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("canceled pass wrote %q", out.String())
	}
}

func TestRenderScene(t *testing.T) {
	var out bytes.Buffer
	scene := NewScene(SceneOptions{})
	box := NewBox()
	box.SetBorderType(BorderRound)
	box.SetWidth(Px(8))
	box.SetHeight(Px(3))
	box.AddChild(NewTextBlock("你好"))
	scene.Root().AddChild(box)

	r := NewRenderer(NewStaticTerminal(&out, 10, 4), scene, Options{})
	if err := r.RenderOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := "╭──────╮\n│你好  │\n╰──────╯"
	if got := r.Buffer().String(); got != want {
		t.Errorf("buffer:\n%s\nwant:\n%s", got, want)
	}
}
