package kli

import "strings"

// TextWrap selects whether a span may move to a new line when it does not
// fit.
type TextWrap uint8

const (
	TextWrapWrap TextWrap = iota
	TextWrapNoWrap
)

func (w TextWrap) String() string {
	if w == TextWrapNoWrap {
		return "nowrap"
	}
	return "wrap"
}

// TextBreak selects where a wrapping line may be broken.
type TextBreak uint8

const (
	// TextBreakWord breaks after spaces and hyphens and between wide characters.
	TextBreakWord TextBreak = iota
	// TextBreakAll breaks between any two graphemes.
	TextBreakAll
	// TextBreakKeepAll only breaks where the break mode changes or at an
	// explicit break.
	TextBreakKeepAll
)

func (b TextBreak) String() string {
	switch b {
	case TextBreakAll:
		return "all"
	case TextBreakKeepAll:
		return "keep-all"
	}
	return "word"
}

// GlyphSpan is one grapheme, or an explicit line break, with its resolved
// style and wrapping behaviour.
type GlyphSpan struct {
	Content string
	Width   int
	Wrap    TextWrap
	Break   TextBreak
	Style   TextStyle
	IsBreak bool
}

// PositionedSpan is a GlyphSpan placed by Wrap. X and Y are -1 for spans
// that are not drawn. Override, when set, is drawn instead of Content.
type PositionedSpan struct {
	GlyphSpan
	X, Y     int
	Override string
}

// Visible reports whether the span was placed.
func (p PositionedSpan) Visible() bool {
	return p.X >= 0 && p.Y >= 0
}

// isSpace reports whether s is a break opportunity that is hidden when it
// hangs past the end of a line.
func (s GlyphSpan) isSpace() bool {
	return s.Content == " " || s.Content == "\t" || s.Content == "　"
}

func (s GlyphSpan) isWordEnd() bool {
	return s.isSpace() || s.Content == "-" || s.Content == "‐"
}

// spansText joins span contents, rendering breaks as newlines.
func spansText(spans []GlyphSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.IsBreak {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(s.Content)
	}
	return sb.String()
}
