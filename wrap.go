package kli

import (
	"math"
	"strings"
)

// DefaultEllipsis marks the point where a non-wrapping line was cut.
const DefaultEllipsis = "…"

// Unbounded is the width used when measuring without a constraint.
const Unbounded = math.MaxInt32

// WrapResult is the outcome of laying out spans into lines.
type WrapResult struct {
	Width  int
	Height int
	Spans  []PositionedSpan
}

// Lines renders the visible spans as one string per line, with trailing
// blanks removed. Cells covered by nothing are spaces.
func (r WrapResult) Lines() []string {
	if r.Height == 0 {
		return nil
	}
	rows := make([][]string, r.Height)
	for _, s := range r.Spans {
		if !s.Visible() || s.Y >= r.Height {
			continue
		}
		row := rows[s.Y]
		w := s.Width
		text := s.Content
		if s.Override != "" {
			text, w = s.Override, 1
		}
		for len(row) < s.X+w {
			row = append(row, " ")
		}
		row[s.X] = text
		for i := 1; i < w; i++ {
			row[s.X+i] = ""
		}
		rows[s.Y] = row
	}
	out := make([]string, r.Height)
	for y, row := range rows {
		out[y] = strings.TrimRight(strings.Join(row, ""), " ")
	}
	return out
}

// wrapper is the per-call state of Wrap.
type wrapper struct {
	spans    []GlyphSpan
	out      []PositionedSpan
	maxW     int
	maxH     int
	ellipsis string

	x, y     int
	lineUsed int
	width    int
	// lastPlaced is the index of the last span placed on the current line.
	lastPlaced int
	// softPending is set by a soft break until something is placed after it.
	softPending bool
}

// Wrap positions spans into lines at most maxWidth columns wide and
// maxHeight lines tall. Non-positive limits yield an empty result.
func Wrap(spans []GlyphSpan, maxWidth, maxHeight int, ellipsis string) WrapResult {
	out := make([]PositionedSpan, len(spans))
	for i, s := range spans {
		out[i] = PositionedSpan{GlyphSpan: s, X: -1, Y: -1}
	}
	if maxWidth <= 0 || maxHeight <= 0 || len(spans) == 0 {
		return WrapResult{Spans: out}
	}

	w := &wrapper{
		spans:      spans,
		out:        out,
		maxW:       maxWidth,
		maxH:       maxHeight,
		ellipsis:   ellipsis,
		lastPlaced: -1,
	}
	w.run()

	height := min(w.y+1, w.maxH)
	if w.softPending && w.y < w.maxH {
		height--
	}
	return WrapResult{Width: w.width, Height: height, Spans: out}
}

func (w *wrapper) run() {
	i := 0
	for i < len(w.spans) && w.y < w.maxH {
		s := w.spans[i]
		switch {
		case s.IsBreak:
			w.newLine(false)
			i++
		case s.Width <= 0:
			i++
		case s.Wrap == TextWrapNoWrap:
			i = w.noWrap(i)
		default:
			i = w.wrapUnit(i)
		}
	}
}

// unit returns the end of the unbreakable unit starting at i and its width
// without trailing spaces.
func (w *wrapper) unit(i int) (end, visible int) {
	first := w.spans[i]
	switch first.Break {
	case TextBreakAll:
		return i + 1, w.visibleWidth(i, i+1)
	case TextBreakKeepAll:
		end = i
		for end < len(w.spans) && w.sameRun(first, w.spans[end]) {
			end++
		}
		return end, w.visibleWidth(i, end)
	}

	if first.Width == 2 {
		return i + 1, w.visibleWidth(i, i+1)
	}
	end = i
	for end < len(w.spans) {
		s := w.spans[end]
		if !w.sameRun(first, s) || s.Width == 2 {
			break
		}
		end++
		if s.isWordEnd() {
			break
		}
	}
	return end, w.visibleWidth(i, end)
}

func (w *wrapper) sameRun(first, s GlyphSpan) bool {
	return !s.IsBreak && s.Break == first.Break && s.Wrap == first.Wrap
}

func (w *wrapper) visibleWidth(start, end int) int {
	total, trailing := 0, 0
	for _, s := range w.spans[start:end] {
		total += s.Width
		if s.isSpace() {
			trailing += s.Width
		} else {
			trailing = 0
		}
	}
	return total - trailing
}

func (w *wrapper) wrapUnit(i int) int {
	end, visible := w.unit(i)
	if w.x+visible <= w.maxW {
		for j := i; j < end; j++ {
			w.place(j)
		}
		return end
	}
	if w.x > 0 {
		w.newLine(true)
		return i
	}

	// Nothing on this line yet and the unit is wider than the line:
	// break it between graphemes.
	j := i
	for j < end && w.x+w.spans[j].Width <= w.maxW {
		w.place(j)
		j++
	}
	if j == i {
		// A single grapheme wider than the line is dropped.
		return i + 1
	}
	if j < end {
		w.newLine(true)
	}
	return j
}

func (w *wrapper) noWrap(i int) int {
	s := w.spans[i]
	if w.x+s.Width <= w.maxW {
		w.place(i)
		return i + 1
	}
	w.truncate(i)
	for i < len(w.spans) && !w.spans[i].IsBreak {
		i++
	}
	return i
}

// truncate marks the last visible column of the line with the ellipsis.
// i is the span that did not fit.
func (w *wrapper) truncate(i int) {
	if w.ellipsis == "" {
		return
	}
	switch {
	case w.x < w.maxW:
		w.out[i].X, w.out[i].Y = w.x, w.y
		w.out[i].Override = w.ellipsis
	case w.lastPlaced >= 0:
		w.out[w.lastPlaced].Override = w.ellipsis
	default:
		return
	}
	w.softPending = false
	w.lineUsed = w.maxW
	w.width = max(w.width, w.lineUsed)
}

// place puts span i at the cursor. Spaces hanging past the edge are hidden.
func (w *wrapper) place(i int) {
	s := w.spans[i]
	if s.Width <= 0 || w.x+s.Width > w.maxW {
		return
	}
	w.out[i].X, w.out[i].Y = w.x, w.y
	w.x += s.Width
	w.lastPlaced = i
	w.softPending = false
	if !s.isSpace() {
		w.lineUsed = w.x
		w.width = max(w.width, w.lineUsed)
	}
}

func (w *wrapper) newLine(soft bool) {
	w.y++
	w.x = 0
	w.lineUsed = 0
	w.lastPlaced = -1
	w.softPending = soft
}

// MeasureMode mirrors the layout engine's measure constraint kinds.
type MeasureMode uint8

const (
	MeasureUnconstrained MeasureMode = iota
	MeasureExactly
	MeasureAtMost
)

// MeasureText wraps spans under a layout constraint and returns the size the
// text wants.
func MeasureText(spans []GlyphSpan, width int, widthMode MeasureMode, height int, heightMode MeasureMode) (int, int) {
	maxW := width
	if widthMode == MeasureUnconstrained {
		maxW = Unbounded
	}
	maxH := height
	if heightMode == MeasureUnconstrained {
		maxH = Unbounded
	}
	res := Wrap(spans, maxW, maxH, DefaultEllipsis)

	w, h := res.Width, res.Height
	switch widthMode {
	case MeasureExactly:
		w = width
	case MeasureAtMost:
		w = min(w, width)
	}
	switch heightMode {
	case MeasureExactly:
		h = height
	case MeasureAtMost:
		h = min(h, height)
	}
	return max(w, 0), max(h, 0)
}
