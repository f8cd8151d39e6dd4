package kli

import (
	"fmt"
	"strings"
)

// TextContainer is a layout leaf holding one *Text tree. It measures the
// text for the layout engine and draws the wrapped result into its content
// rect.
type TextContainer struct {
	nodeBase
	Layout

	text        *Text
	spans       []GlyphSpan
	wc          WidthClassifier
	ellipsis    string
	ellipsisSet bool
	focusable   bool

	wrapped   WrapResult
	wrapW     int
	wrapH     int
	wrapValid bool
}

// NewTextContainer creates a detached, empty text container.
func NewTextContainer() *TextContainer {
	tc := &TextContainer{Layout: newLayout(), ellipsis: DefaultEllipsis}
	tc.Layout.onChange = tc.notifySceneChange
	tc.Layout.setMeasure(tc.measure)
	return tc
}

// NewTextBlock creates a text container holding a single run of content.
func NewTextBlock(content string) *TextContainer {
	tc := NewTextContainer()
	t := NewText()
	t.AddChild(NewTextContent(content))
	tc.SetText(t)
	return tc
}

// Text returns the held text, or nil.
func (tc *TextContainer) Text() *Text {
	return tc.text
}

// Spans returns the collected spans. The slice must not be modified.
func (tc *TextContainer) Spans() []GlyphSpan {
	return tc.spans
}

// SetText replaces the held text, detaching t from its old parent.
func (tc *TextContainer) SetText(t *Text) {
	if t == nil {
		tc.ClearText()
		return
	}
	if t.parent == Node(tc) {
		return
	}
	detach(t)
	if tc.text != nil {
		tc.text.parent = nil
	}
	tc.text = t
	t.parent = tc
	tc.notifyTextChange()
}

// AddChild is the entry point for declarative adapters. Only *Text is
// accepted; anything else is a programming error and panics.
func (tc *TextContainer) AddChild(n Node) {
	t, ok := n.(*Text)
	if !ok {
		panic(fmt.Errorf("%w: text container child must be *Text, got %s", ErrStructure, nodeKind(n)))
	}
	tc.SetText(t)
}

// RemoveChild detaches t if it is the held text.
func (tc *TextContainer) RemoveChild(t *Text) bool {
	if t == nil || tc.text != t {
		return false
	}
	tc.text = nil
	t.parent = nil
	tc.notifyTextChange()
	return true
}

// ClearText removes the held text. It returns false if there was none.
func (tc *TextContainer) ClearText() bool {
	return tc.RemoveChild(tc.text)
}

// SetEllipsis sets the glyph that marks cut-off non-wrapping text. It
// overrides the renderer's default.
func (tc *TextContainer) SetEllipsis(s string) {
	tc.ellipsis = s
	tc.ellipsisSet = true
	tc.wrapValid = false
	tc.notifySceneChange()
}

// SetWidthClassifier changes how grapheme widths are computed.
func (tc *TextContainer) SetWidthClassifier(wc WidthClassifier) {
	if tc.wc == wc {
		return
	}
	tc.wc = wc
	tc.notifyTextChange()
}

// SetFocusable marks the container as a focus target.
func (tc *TextContainer) SetFocusable(on bool) {
	tc.focusable = on
	if s := sceneOf(tc); s != nil && !on && s.focused == Node(tc) {
		s.Blur()
	}
}

// Focusable reports whether the container takes part in focus traversal.
func (tc *TextContainer) Focusable() bool {
	return tc.focusable
}

// Wrapped returns the most recent wrap result.
func (tc *TextContainer) Wrapped() WrapResult {
	return tc.wrapped
}

// UnstyledText returns the held text's content.
func (tc *TextContainer) UnstyledText() string {
	if tc.text == nil {
		return ""
	}
	return tc.text.UnstyledText()
}

// Dispose detaches the container and releases its layout handle.
func (tc *TextContainer) Dispose(recursive bool) {
	if tc.disposed {
		return
	}
	detach(tc)
	if t := tc.text; t != nil {
		tc.text = nil
		t.parent = nil
		if recursive {
			t.Dispose(true)
		}
	}
	tc.release()
	tc.disposed = true
}

// notifyTextChange recollects spans after content or structure changed and
// asks the layout engine to measure again.
func (tc *TextContainer) notifyTextChange() {
	tc.collect()
	if tc.node != nil {
		tc.markDirty()
	}
	tc.notifySceneChange()
}

// notifyStyleChange recollects spans after a style change. The size of the
// text is unaffected.
func (tc *TextContainer) notifyStyleChange() {
	tc.collect()
	tc.notifySceneChange()
}

// notifyLayoutChange handles wrap and break mode changes.
func (tc *TextContainer) notifyLayoutChange() {
	tc.notifyTextChange()
}

func (tc *TextContainer) notifySceneChange() {
	if s := sceneOf(tc); s != nil {
		s.NotifyChange()
	}
}

func (tc *TextContainer) collect() {
	tc.spans = Collect(tc.text, tc.wc)
	tc.wrapValid = false
}

func (tc *TextContainer) measure(w int, wm MeasureMode, h int, hm MeasureMode) (int, int) {
	return MeasureText(tc.spans, w, wm, h, hm)
}

// rewrap wraps the spans for the current content size unless the cached
// result already matches it.
func (tc *TextContainer) rewrap() {
	cw, ch := tc.content.Width, tc.content.Height
	if tc.wrapValid && cw == tc.wrapW && ch == tc.wrapH {
		return
	}
	tc.wrapped = Wrap(tc.spans, cw, ch, tc.ellipsis)
	tc.wrapW, tc.wrapH = cw, ch
	tc.wrapValid = true
}

func (tc *TextContainer) draw(r *Renderer) {
	if tc.hidden() {
		return
	}
	tc.rewrap()
	cr := tc.content
	r.PushMask(cr)
	for _, s := range tc.wrapped.Spans {
		if !s.Visible() {
			continue
		}
		x, y := cr.X+s.X, cr.Y+s.Y
		if s.Override != "" {
			r.back.SetChar(x, y, 1, 1, s.Override, 1, s.Style, false)
			if s.Width > 1 {
				r.back.SetChar(x+1, y, s.Width-1, 1, "", 1, s.Style, false)
			}
			continue
		}
		r.back.SetChar(x, y, 1, 1, s.Content, s.Width, s.Style, false)
	}
	r.PopMask()
}

// Text is a styled inline scope. Its children are *Text, *TextContent and
// *Break. Unset style fields and modes inherit from the enclosing Text.
type Text struct {
	nodeBase

	style    TextStyle
	wrap     *TextWrap
	brk      *TextBreak
	children []Node
}

// NewText creates a text scope with the given children.
func NewText(children ...Node) *Text {
	t := &Text{}
	for _, c := range children {
		t.AddChild(c)
	}
	return t
}

// Children returns the child nodes in order. The slice must not be modified.
func (t *Text) Children() []Node {
	return t.children
}

// Container returns the TextContainer holding this text, or nil.
func (t *Text) Container() *TextContainer {
	return textContainerOf(t)
}

func textContainerOf(n Node) *TextContainer {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch p := cur.(type) {
		case *TextContainer:
			return p
		case *Text:
			continue
		default:
			return nil
		}
	}
	return nil
}

// Style returns the explicitly set style fields.
func (t *Text) Style() TextStyle {
	return t.style
}

// SetStyle replaces all style fields.
func (t *Text) SetStyle(s TextStyle) {
	t.style = s
	t.styleChanged()
}

// SetColor sets the foreground. Nil inherits.
func (t *Text) SetColor(c *Color) {
	t.style.FG = c
	t.styleChanged()
}

// SetBackground sets the background. Nil inherits.
func (t *Text) SetBackground(c *Color) {
	t.style.BG = c
	t.styleChanged()
}

// SetBold sets bold. Nil inherits.
func (t *Text) SetBold(on *bool) {
	t.style.Bold = on
	t.styleChanged()
}

// SetItalic sets italic. Nil inherits.
func (t *Text) SetItalic(on *bool) {
	t.style.Italic = on
	t.styleChanged()
}

// SetUnderline sets underline. Nil inherits.
func (t *Text) SetUnderline(on *bool) {
	t.style.Underline = on
	t.styleChanged()
}

// SetWrap sets the wrap mode. Nil inherits.
func (t *Text) SetWrap(w *TextWrap) {
	t.wrap = w
	if tc := t.Container(); tc != nil {
		tc.notifyLayoutChange()
	}
}

// SetBreak sets the break mode. Nil inherits.
func (t *Text) SetBreak(b *TextBreak) {
	t.brk = b
	if tc := t.Container(); tc != nil {
		tc.notifyLayoutChange()
	}
}

func (t *Text) styleChanged() {
	if tc := t.Container(); tc != nil {
		tc.notifyStyleChange()
	}
}

func (t *Text) textChanged() {
	if tc := t.Container(); tc != nil {
		tc.notifyTextChange()
	}
}

// AddChild appends n. It returns false for node kinds that cannot appear in
// inline text and for moves that would create a cycle.
func (t *Text) AddChild(n Node) bool {
	return t.InsertChild(n, len(t.children))
}

// InsertChild adds n at index idx, clamped to the child count.
func (t *Text) InsertChild(n Node, idx int) bool {
	if n == nil || n.base().disposed {
		return false
	}
	switch n.(type) {
	case *Text, *TextContent, *Break:
	default:
		return false
	}
	if n.Parent() == Node(t) {
		return true
	}
	if isAncestor(n, t) {
		return false
	}
	detach(n)
	idx = max(0, min(idx, len(t.children)))
	t.children = append(t.children, nil)
	copy(t.children[idx+1:], t.children[idx:])
	t.children[idx] = n
	n.base().parent = t
	t.textChanged()
	return true
}

// RemoveChild detaches n. It returns false if n is not a child of t.
func (t *Text) RemoveChild(n Node) bool {
	idx := t.indexOf(n)
	if idx < 0 {
		return false
	}
	t.children = append(t.children[:idx], t.children[idx+1:]...)
	n.base().parent = nil
	t.textChanged()
	return true
}

// MoveChild moves child n to index to, clamped to the child range.
func (t *Text) MoveChild(n Node, to int) bool {
	from := t.indexOf(n)
	if from < 0 {
		return false
	}
	if moveTo(t.children, from, to) != from {
		t.textChanged()
	}
	return true
}

// MoveBefore moves child n in front of sibling. A nil sibling moves n to
// the end.
func (t *Text) MoveBefore(n, sibling Node) bool {
	from := t.indexOf(n)
	if from < 0 {
		return false
	}
	if sibling == nil {
		return t.MoveChild(n, len(t.children)-1)
	}
	to := t.indexOf(sibling)
	if to < 0 {
		return false
	}
	if from < to {
		to--
	}
	return t.MoveChild(n, to)
}

func (t *Text) indexOf(n Node) int {
	if n == nil {
		return -1
	}
	for i, c := range t.children {
		if c == n {
			return i
		}
	}
	return -1
}

// UnstyledText concatenates the children's text.
func (t *Text) UnstyledText() string {
	var sb strings.Builder
	for _, c := range t.children {
		sb.WriteString(c.UnstyledText())
	}
	return sb.String()
}

// Dispose marks the text disposed, recursing into children if asked.
func (t *Text) Dispose(recursive bool) {
	if t.disposed {
		return
	}
	if recursive {
		for _, c := range t.children {
			c.Dispose(true)
		}
	}
	t.disposed = true
}

// TextContent is a literal run of text. Newlines become explicit breaks.
type TextContent struct {
	nodeBase
	content string
}

// NewTextContent creates a detached run.
func NewTextContent(content string) *TextContent {
	return &TextContent{content: content}
}

// Content returns the run's text.
func (c *TextContent) Content() string {
	return c.content
}

// SetContent replaces the run's text.
func (c *TextContent) SetContent(s string) {
	if s == c.content {
		return
	}
	c.content = s
	if tc := textContainerOf(c); tc != nil {
		tc.notifyTextChange()
	}
}

// UnstyledText returns the content.
func (c *TextContent) UnstyledText() string {
	return c.content
}

// Dispose marks the run disposed.
func (c *TextContent) Dispose(bool) {
	c.disposed = true
}

// Break is an explicit line break.
type Break struct {
	nodeBase
}

// NewBreak creates a detached line break.
func NewBreak() *Break {
	return &Break{}
}

// UnstyledText returns a newline.
func (b *Break) UnstyledText() string {
	return "\n"
}

// Dispose marks the break disposed.
func (b *Break) Dispose(bool) {
	b.disposed = true
}
