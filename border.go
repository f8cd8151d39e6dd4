package kli

import "github.com/mattn/go-runewidth"

// Box drawing characters for borders.
const (
	BoxHorizontal         = "─"
	BoxVertical           = "│"
	BoxTopLeft            = "┌"
	BoxTopRight           = "┐"
	BoxBottomLeft         = "└"
	BoxBottomRight        = "┘"
	BoxRoundedTopLeft     = "╭"
	BoxRoundedTopRight    = "╮"
	BoxRoundedBottomLeft  = "╰"
	BoxRoundedBottomRight = "╯"
	BoxDoubleHorizontal   = "═"
	BoxDoubleVertical     = "║"
	BoxDoubleTopLeft      = "╔"
	BoxDoubleTopRight     = "╗"
	BoxDoubleBottomLeft   = "╚"
	BoxDoubleBottomRight  = "╝"
	BoxHeavyHorizontal    = "━"
	BoxHeavyVertical      = "┃"
	BoxHeavyTopLeft       = "┏"
	BoxHeavyTopRight      = "┓"
	BoxHeavyBottomLeft    = "┗"
	BoxHeavyBottomRight   = "┛"
)

// BorderType is the set of glyphs a box border is drawn with.
type BorderType struct {
	TopLeft, Top, TopRight          string
	Left, Right                     string
	BottomLeft, Bottom, BottomRight string
}

// IsZero reports whether no border is set.
func (bt BorderType) IsZero() bool {
	return bt == BorderType{}
}

// Standard border types.
var (
	BorderNone   = BorderType{}
	BorderSingle = BorderType{
		TopLeft: BoxTopLeft, Top: BoxHorizontal, TopRight: BoxTopRight,
		Left: BoxVertical, Right: BoxVertical,
		BottomLeft: BoxBottomLeft, Bottom: BoxHorizontal, BottomRight: BoxBottomRight,
	}
	BorderRound = BorderType{
		TopLeft: BoxRoundedTopLeft, Top: BoxHorizontal, TopRight: BoxRoundedTopRight,
		Left: BoxVertical, Right: BoxVertical,
		BottomLeft: BoxRoundedBottomLeft, Bottom: BoxHorizontal, BottomRight: BoxRoundedBottomRight,
	}
	BorderDouble = BorderType{
		TopLeft: BoxDoubleTopLeft, Top: BoxDoubleHorizontal, TopRight: BoxDoubleTopRight,
		Left: BoxDoubleVertical, Right: BoxDoubleVertical,
		BottomLeft: BoxDoubleBottomLeft, Bottom: BoxDoubleHorizontal, BottomRight: BoxDoubleBottomRight,
	}
	BorderBold = BorderType{
		TopLeft: BoxHeavyTopLeft, Top: BoxHeavyHorizontal, TopRight: BoxHeavyTopRight,
		Left: BoxHeavyVertical, Right: BoxHeavyVertical,
		BottomLeft: BoxHeavyBottomLeft, Bottom: BoxHeavyHorizontal, BottomRight: BoxHeavyBottomRight,
	}
)

// BorderByName looks up a preset by its configuration name.
func BorderByName(name string) (BorderType, bool) {
	switch name {
	case "", "none":
		return BorderNone, true
	case "single":
		return BorderSingle, true
	case "round", "rounded":
		return BorderRound, true
	case "double":
		return BorderDouble, true
	case "bold", "heavy":
		return BorderBold, true
	}
	return BorderNone, false
}

// DrawBorder draws bt around r, corners first. Only the border cells are
// touched. Rects smaller than 2x2 are ignored.
func (b *CellBuffer) DrawBorder(r Rect, bt BorderType, style TextStyle, clearStyle bool) {
	if r.Width < 2 || r.Height < 2 || bt.IsZero() {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1

	b.SetChar(r.X, r.Y, 1, 1, bt.TopLeft, 1, style, clearStyle)
	b.SetChar(right, r.Y, 1, 1, bt.TopRight, 1, style, clearStyle)
	b.SetChar(r.X, bottom, 1, 1, bt.BottomLeft, 1, style, clearStyle)
	b.SetChar(right, bottom, 1, 1, bt.BottomRight, 1, style, clearStyle)

	if inner := r.Width - 2; inner > 0 {
		b.SetChar(r.X+1, r.Y, inner, 1, bt.Top, 1, style, clearStyle)
		b.SetChar(r.X+1, bottom, inner, 1, bt.Bottom, 1, style, clearStyle)
	}
	if inner := r.Height - 2; inner > 0 {
		b.SetChar(r.X, r.Y+1, 1, inner, bt.Left, 1, style, clearStyle)
		b.SetChar(right, r.Y+1, 1, inner, bt.Right, 1, style, clearStyle)
	}
}

// DrawTitle writes title into the top edge of r, truncated to fit between
// the corners with one column of padding on each side.
func (b *CellBuffer) DrawTitle(r Rect, title string, style TextStyle, wc WidthClassifier) {
	room := r.Width - 4
	if room <= 0 || title == "" {
		return
	}
	title = runewidth.Truncate(title, room, DefaultEllipsis)
	x := r.X + 2
	for _, g := range wc.Segment(title) {
		if g.Width == 0 {
			continue
		}
		if x+g.Width > r.X+2+room {
			break
		}
		b.SetChar(x, r.Y, 1, 1, g.Text, g.Width, style, false)
		x += g.Width
	}
}
