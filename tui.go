// Package kli is a retained-mode terminal UI engine.
//
// A Scene holds a tree of Boxes and TextContainers laid out by a flexbox
// engine. Rich inline text is collected into glyph spans, wrapped to the
// content rect of its container and drawn into a CellBuffer, which the
// Renderer serializes into a minimal stream of ANSI escape sequences.
package kli

// Attribute represents text styling attributes that can be combined.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrItalic
	AttrUnderline
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// set adds or removes attr depending on on.
func (a Attribute) set(attr Attribute, on bool) Attribute {
	if on {
		return a.With(attr)
	}
	return a.Without(attr)
}

// CellStyle is the fully resolved style stored in a cell.
// A colour without its Has flag renders as the terminal default.
type CellStyle struct {
	FG    Color
	BG    Color
	HasFG bool
	HasBG bool
	Attr  Attribute
}

// Foreground returns a new style with the given foreground color.
func (s CellStyle) Foreground(c Color) CellStyle {
	s.FG, s.HasFG = c, true
	return s
}

// Background returns a new style with the given background color.
func (s CellStyle) Background(c Color) CellStyle {
	s.BG, s.HasBG = c, true
	return s
}

// Bold returns a new style with bold enabled.
func (s CellStyle) Bold() CellStyle {
	s.Attr = s.Attr.With(AttrBold)
	return s
}

// Italic returns a new style with italic enabled.
func (s CellStyle) Italic() CellStyle {
	s.Attr = s.Attr.With(AttrItalic)
	return s
}

// Underline returns a new style with underline enabled.
func (s CellStyle) Underline() CellStyle {
	s.Attr = s.Attr.With(AttrUnderline)
	return s
}

// apply overwrites the fields ts specifies.
func (s CellStyle) apply(ts TextStyle) CellStyle {
	if ts.FG != nil {
		s.FG, s.HasFG = *ts.FG, true
	}
	if ts.BG != nil {
		s.BG, s.HasBG = *ts.BG, true
	}
	if ts.Bold != nil {
		s.Attr = s.Attr.set(AttrBold, *ts.Bold)
	}
	if ts.Italic != nil {
		s.Attr = s.Attr.set(AttrItalic, *ts.Italic)
	}
	if ts.Underline != nil {
		s.Attr = s.Attr.set(AttrUnderline, *ts.Underline)
	}
	return s
}

// TextStyle is a partial style. Nil fields are unspecified and inherit from
// the enclosing scope, or leave a cell's existing value untouched.
type TextStyle struct {
	FG        *Color
	BG        *Color
	Bold      *bool
	Italic    *bool
	Underline *bool
}

// Merge returns s with every unspecified field taken from parent.
func (s TextStyle) Merge(parent TextStyle) TextStyle {
	if s.FG == nil {
		s.FG = parent.FG
	}
	if s.BG == nil {
		s.BG = parent.BG
	}
	if s.Bold == nil {
		s.Bold = parent.Bold
	}
	if s.Italic == nil {
		s.Italic = parent.Italic
	}
	if s.Underline == nil {
		s.Underline = parent.Underline
	}
	return s
}

// IsZero reports whether no field is specified.
func (s TextStyle) IsZero() bool {
	return s.FG == nil && s.BG == nil && s.Bold == nil && s.Italic == nil && s.Underline == nil
}

// WithFG returns a copy with the foreground set.
func (s TextStyle) WithFG(c Color) TextStyle {
	s.FG = &c
	return s
}

// WithBG returns a copy with the background set.
func (s TextStyle) WithBG(c Color) TextStyle {
	s.BG = &c
	return s
}

// WithBold returns a copy with bold set to on.
func (s TextStyle) WithBold(on bool) TextStyle {
	s.Bold = &on
	return s
}

// WithItalic returns a copy with italic set to on.
func (s TextStyle) WithItalic(on bool) TextStyle {
	s.Italic = &on
	return s
}

// WithUnderline returns a copy with underline set to on.
func (s TextStyle) WithUnderline(on bool) TextStyle {
	s.Underline = &on
	return s
}

// Equal compares two partial styles by value.
func (s TextStyle) Equal(o TextStyle) bool {
	return eqPtr(s.FG, o.FG) && eqPtr(s.BG, o.BG) &&
		eqPtr(s.Bold, o.Bold) && eqPtr(s.Italic, o.Italic) && eqPtr(s.Underline, o.Underline)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
