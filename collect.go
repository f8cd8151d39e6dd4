package kli

import "strings"

// Collect flattens an inline text tree into glyph spans. Style, wrap mode
// and break mode are inherited, with the nearest explicit value winning;
// the defaults are TextWrapWrap and TextBreakWord.
func Collect(root *Text, wc WidthClassifier) []GlyphSpan {
	if root == nil {
		return nil
	}
	c := collector{wc: wc}
	c.walk(root, TextStyle{}, TextWrapWrap, TextBreakWord)
	return c.spans
}

type collector struct {
	wc    WidthClassifier
	spans []GlyphSpan
}

func (c *collector) walk(n Node, style TextStyle, wrap TextWrap, brk TextBreak) {
	switch n := n.(type) {
	case *Text:
		style = n.style.Merge(style)
		if n.wrap != nil {
			wrap = *n.wrap
		}
		if n.brk != nil {
			brk = *n.brk
		}
		for _, child := range n.children {
			c.walk(child, style, wrap, brk)
		}
	case *TextContent:
		for i, line := range strings.Split(n.content, "\n") {
			if i > 0 {
				c.lineBreak(style, wrap, brk)
			}
			for _, g := range c.wc.Segment(line) {
				c.spans = append(c.spans, GlyphSpan{
					Content: g.Text,
					Width:   g.Width,
					Wrap:    wrap,
					Break:   brk,
					Style:   style,
				})
			}
		}
	case *Break:
		c.lineBreak(style, wrap, brk)
	}
}

func (c *collector) lineBreak(style TextStyle, wrap TextWrap, brk TextBreak) {
	c.spans = append(c.spans, GlyphSpan{Wrap: wrap, Break: brk, Style: style, IsBreak: true})
}
