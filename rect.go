package kli

import "math"

// Position is a cell coordinate.
type Position struct {
	X, Y int
}

// Rect is an integer cell rectangle. Width and Height are never negative.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect returns a rect with width and height clamped to >= 0.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: max(w, 0), Height: max(h, 0)}
}

// RectF floors float coordinates into a Rect.
func RectF(x, y, w, h float64) Rect {
	return NewRect(floorInt(x), floorInt(y), floorInt(w), floorInt(h))
}

func floorInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Floor(v))
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the cell (x,y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and o. A zero-area overlap is reported
// as disjoint.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	left := max(r.X, o.X)
	top := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}, false
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}, true
}

// Inset shrinks r by the given edge amounts, clamping the size at zero.
func (r Rect) Inset(left, top, right, bottom int) Rect {
	return NewRect(r.X+left, r.Y+top, r.Width-left-right, r.Height-top-bottom)
}

// Offset translates r.
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}
