package kli

import (
	"iter"
	"strings"
)

// Cell is one slot of the grid. A cell with SpanWidth n covers the n-1
// cells to its right, which are never rendered on their own.
type Cell struct {
	Content   string
	SpanWidth uint16
	Style     CellStyle
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{SpanWidth: 1}
}

// Text returns the content to print, a space for blank cells.
func (c Cell) Text() string {
	if c.Content == "" {
		return " "
	}
	return c.Content
}

// CellBuffer is a 2D grid of cells with a stack of clip masks.
type CellBuffer struct {
	cells  []Cell
	width  int
	height int
	masks  []Rect
}

// NewCellBuffer creates a blank buffer with the given dimensions.
func NewCellBuffer(width, height int) *CellBuffer {
	b := &CellBuffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width.
func (b *CellBuffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *CellBuffer) Height() int {
	return b.height
}

// Bounds returns the full buffer rect.
func (b *CellBuffer) Bounds() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *CellBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *CellBuffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates, or an empty cell if out of
// bounds.
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Resize changes the dimensions, keeping the overlapping top-left region.
// Newly exposed cells are blank and the mask stack is cleared.
func (b *CellBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	b.masks = b.masks[:0]
	if width == b.width && height == b.height && b.cells != nil {
		return
	}

	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	rows := min(b.height, height)
	cols := min(b.width, width)
	for y := 0; y < rows; y++ {
		copy(cells[y*width:y*width+cols], b.cells[y*b.width:y*b.width+cols])
	}

	b.cells = cells
	b.width = width
	b.height = height
}

// Clear blanks every cell. The mask stack is left alone.
func (b *CellBuffer) Clear() {
	empty := EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
}

// Mask returns the active clip rect, the full bounds when no mask is pushed.
func (b *CellBuffer) Mask() Rect {
	if n := len(b.masks); n > 0 {
		return b.masks[n-1]
	}
	return b.Bounds()
}

// PushMask narrows the clip to r intersected with the current clip.
// A disjoint rect pushes an empty clip so that the matching PopMask still
// balances.
func (b *CellBuffer) PushMask(r Rect) {
	clip, ok := b.Mask().Intersect(r)
	if !ok {
		clip = Rect{}
	}
	b.masks = append(b.masks, clip)
}

// PopMask restores the clip that was active before the last PushMask.
func (b *CellBuffer) PopMask() {
	if n := len(b.masks); n > 0 {
		b.masks = b.masks[:n-1]
	}
}

// clipped returns the part of the rect that writes may touch.
func (b *CellBuffer) clipped(x, y, w, h int) (Rect, bool) {
	if w <= 0 || h <= 0 {
		return Rect{}, false
	}
	return b.Mask().Intersect(Rect{X: x, Y: y, Width: w, Height: h})
}

// SetChar writes content into every cell of the rect that lies inside the
// clip. Style fields set in style overwrite the cell's; with clearStyle the
// cell style is reset first.
func (b *CellBuffer) SetChar(x, y, w, h int, content string, spanWidth int, style TextStyle, clearStyle bool) {
	r, ok := b.clipped(x, y, w, h)
	if !ok {
		return
	}
	span := uint16(max(spanWidth, 1))
	for cy := r.Y; cy < r.Bottom(); cy++ {
		row := b.cells[b.index(r.X, cy):b.index(r.Right(), cy)]
		for i := range row {
			c := &row[i]
			c.Content = content
			c.SpanWidth = span
			if clearStyle {
				c.Style = CellStyle{}
			}
			c.Style = c.Style.apply(style)
		}
	}
}

// SetTextStyle applies style to the clipped rect without touching content.
func (b *CellBuffer) SetTextStyle(x, y, w, h int, style TextStyle, clearStyle bool) {
	if style.IsZero() && !clearStyle {
		return
	}
	r, ok := b.clipped(x, y, w, h)
	if !ok {
		return
	}
	for cy := r.Y; cy < r.Bottom(); cy++ {
		row := b.cells[b.index(r.X, cy):b.index(r.Right(), cy)]
		for i := range row {
			c := &row[i]
			if clearStyle {
				c.Style = CellStyle{}
			}
			c.Style = c.Style.apply(style)
		}
	}
}

// CellVisit is one step of Iterate. Cell is nil for coordinates left of or
// above the buffer.
type CellVisit struct {
	X, Y     int
	Cell     *Cell
	RowStart bool
	RowEnd   bool
}

// Iterate walks the rect row by row, stopping at the right and bottom edges
// of the buffer. Negative coordinates are visited with a nil Cell.
func (b *CellBuffer) Iterate(x, y, w, h int) iter.Seq[CellVisit] {
	return func(yield func(CellVisit) bool) {
		right := min(x+w, b.width)
		bottom := min(y+h, b.height)
		if right <= x || bottom <= y {
			return
		}
		for cy := y; cy < bottom; cy++ {
			for cx := x; cx < right; cx++ {
				v := CellVisit{X: cx, Y: cy, RowStart: cx == x, RowEnd: cx == right-1}
				if cx >= 0 && cy >= 0 {
					v.Cell = &b.cells[b.index(cx, cy)]
				}
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Line returns row y as a string with trailing blanks removed. Covered cells
// of wide glyphs are skipped.
func (b *CellBuffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	skip := 0
	for x := 0; x < b.width; x++ {
		if skip > 0 {
			skip--
			continue
		}
		c := b.cells[b.index(x, y)]
		sb.WriteString(c.Text())
		skip = int(c.SpanWidth) - 1
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns the buffer contents with trailing blanks and blank trailing
// lines removed.
func (b *CellBuffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.Line(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
