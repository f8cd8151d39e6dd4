package kli

import (
	"strings"
	"testing"
)

func TestDrawBorder(t *testing.T) {
	tests := []struct {
		name string
		bt   BorderType
		rect Rect
		want string
	}{
		{
			name: "round",
			bt:   BorderRound,
			rect: NewRect(0, 0, 5, 3),
			want: "╭───╮\n│   │\n╰───╯",
		},
		{
			name: "single offset",
			bt:   BorderSingle,
			rect: NewRect(1, 1, 3, 3),
			want: "\n ┌─┐\n │ │\n └─┘",
		},
		{
			name: "double minimal",
			bt:   BorderDouble,
			rect: NewRect(0, 0, 2, 2),
			want: "╔╗\n╚╝",
		},
		{
			name: "too small",
			bt:   BorderBold,
			rect: NewRect(0, 0, 1, 3),
			want: "",
		},
		{
			name: "none",
			bt:   BorderNone,
			rect: NewRect(0, 0, 5, 3),
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewCellBuffer(6, 4)
			buf.DrawBorder(tt.rect, tt.bt, TextStyle{}, false)
			if got := buf.String(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestDrawBorderOverFill(t *testing.T) {
	bg := RGB(10, 20, 30)
	fg := RGB(200, 100, 0)
	buf := NewCellBuffer(4, 3)
	buf.SetChar(0, 0, 4, 3, "", 1, TextStyle{BG: &bg}, true)
	buf.DrawBorder(NewRect(0, 0, 4, 3), BorderSingle, TextStyle{FG: &fg}, false)

	corner := buf.Get(0, 0)
	if corner.Content != BoxTopLeft {
		t.Errorf("corner = %q, want %q", corner.Content, BoxTopLeft)
	}
	// the border keeps the fill's background and adds its foreground
	if want := (CellStyle{}).Foreground(fg).Background(bg); corner.Style != want {
		t.Errorf("corner style = %+v, want %+v", corner.Style, want)
	}
	if inner := buf.Get(1, 1); inner.Content != "" || inner.Style != (CellStyle{}).Background(bg) {
		t.Errorf("interior = %+v, want untouched fill", inner)
	}
}

func TestDrawBorderClipped(t *testing.T) {
	buf := NewCellBuffer(5, 3)
	buf.PushMask(NewRect(0, 0, 3, 3))
	buf.DrawBorder(NewRect(0, 0, 5, 3), BorderRound, TextStyle{}, false)
	want := "╭──\n│\n╰──"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDrawTitle(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		buf := NewCellBuffer(12, 3)
		r := NewRect(0, 0, 12, 3)
		buf.DrawBorder(r, BorderSingle, TextStyle{}, false)
		buf.DrawTitle(r, "logs", TextStyle{}, DefaultWidth)
		if got := buf.Line(0); got != "┌─logs─────┐" {
			t.Errorf("Line(0) = %q", got)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		buf := NewCellBuffer(8, 3)
		r := NewRect(0, 0, 8, 3)
		buf.DrawBorder(r, BorderSingle, TextStyle{}, false)
		buf.DrawTitle(r, "a very long title", TextStyle{}, DefaultWidth)
		line := buf.Line(0)
		if !strings.HasPrefix(line, "┌─") || !strings.HasSuffix(line, "─┐") {
			t.Errorf("corners damaged: %q", line)
		}
		if !strings.Contains(line, DefaultEllipsis) {
			t.Errorf("Line(0) = %q, want an ellipsis", line)
		}
	})

	t.Run("wide", func(t *testing.T) {
		buf := NewCellBuffer(10, 3)
		r := NewRect(0, 0, 10, 3)
		buf.DrawBorder(r, BorderSingle, TextStyle{}, false)
		buf.DrawTitle(r, "你好", TextStyle{}, DefaultWidth)
		if got := buf.Line(0); got != "┌─你好───┐" {
			t.Errorf("Line(0) = %q", got)
		}
	})

	t.Run("no room", func(t *testing.T) {
		buf := NewCellBuffer(4, 2)
		buf.DrawTitle(NewRect(0, 0, 4, 2), "x", TextStyle{}, DefaultWidth)
		if got := buf.String(); got != "" {
			t.Errorf("String = %q, want nothing drawn", got)
		}
	})
}

func TestBorderByName(t *testing.T) {
	tests := []struct {
		name string
		want BorderType
		ok   bool
	}{
		{"", BorderNone, true},
		{"round", BorderRound, true},
		{"rounded", BorderRound, true},
		{"single", BorderSingle, true},
		{"double", BorderDouble, true},
		{"heavy", BorderBold, true},
		{"wavy", BorderNone, false},
	}
	for _, tt := range tests {
		got, ok := BorderByName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BorderByName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
