package kli

import (
	"strings"

	"go.uber.org/zap"
)

// Box is a flex container holding Boxes and TextContainers. It can paint a
// background, a shader and a border, and clips its children when its
// overflow is hidden.
type Box struct {
	nodeBase
	Layout

	children []Node

	background  *Color
	shader      Shader
	border      BorderType
	borderColor *Color
	title       string
	focusable   bool

	// scene is set on a scene's root box only.
	scene *Scene
}

// NewBox creates a detached box.
func NewBox() *Box {
	b := &Box{Layout: newLayout()}
	b.Layout.onChange = b.notifyChange
	return b
}

// Children returns the child nodes in order. The slice must not be modified.
func (b *Box) Children() []Node {
	return b.children
}

// AddChild appends n, detaching it from its previous parent first.
// It returns false if n is not a *Box or *TextContainer, or if adding it
// would create a cycle. Adding a child that is already here is a no-op.
func (b *Box) AddChild(n Node) bool {
	return b.InsertChild(n, len(b.children))
}

// InsertChild adds n at index idx, clamped to the child count.
func (b *Box) InsertChild(n Node, idx int) bool {
	if n == nil || b.disposed || n.base().disposed {
		return false
	}
	switch n.(type) {
	case *Box, *TextContainer:
	default:
		b.reject("insert", n, "box children must be boxes or text containers")
		return false
	}
	if n.Parent() == Node(b) {
		return true
	}
	if isAncestor(n, b) {
		b.reject("insert", n, "cycle")
		return false
	}

	detach(n)
	idx = max(0, min(idx, len(b.children)))
	b.children = append(b.children, nil)
	copy(b.children[idx+1:], b.children[idx:])
	b.children[idx] = n
	n.base().parent = b
	b.Layout.insertChild(layoutOf(n), idx)

	if s := sceneOf(b); s != nil {
		s.adopt(n)
	}
	b.notifyChange()
	return true
}

// RemoveChild detaches n. It returns false if n is not a child of b.
func (b *Box) RemoveChild(n Node) bool {
	idx := b.indexOf(n)
	if idx < 0 {
		return false
	}
	s := sceneOf(b)
	b.children = append(b.children[:idx], b.children[idx+1:]...)
	b.Layout.removeChild(layoutOf(n))
	n.base().parent = nil
	if s != nil {
		s.detached(n)
	}
	b.notifyChange()
	return true
}

// MoveChild moves child n to index to, clamped to the child range.
func (b *Box) MoveChild(n Node, to int) bool {
	from := b.indexOf(n)
	if from < 0 {
		return false
	}
	to = moveTo(b.children, from, to)
	if from == to {
		return true
	}
	b.Layout.removeChild(layoutOf(n))
	b.Layout.insertChild(layoutOf(n), to)
	b.notifyChange()
	return true
}

// MoveBefore moves child n in front of sibling. A nil sibling moves n to
// the end.
func (b *Box) MoveBefore(n, sibling Node) bool {
	from := b.indexOf(n)
	if from < 0 {
		return false
	}
	if sibling == nil {
		return b.MoveChild(n, len(b.children)-1)
	}
	to := b.indexOf(sibling)
	if to < 0 {
		return false
	}
	if from < to {
		to--
	}
	return b.MoveChild(n, to)
}

func (b *Box) indexOf(n Node) int {
	if n == nil {
		return -1
	}
	for i, c := range b.children {
		if c == n {
			return i
		}
	}
	return -1
}

// SetBackground fills the box with c. Nil removes the fill.
func (b *Box) SetBackground(c *Color) {
	b.background = c
	b.notifyChange()
}

// SetShader paints the content rect with s on every pass. Nil removes it.
func (b *Box) SetShader(s Shader) {
	b.shader = s
	b.notifyChange()
}

// SetBorderType sets the border glyphs and reserves one cell of layout
// border on every edge, or none for BorderNone.
func (b *Box) SetBorderType(bt BorderType) {
	b.border = bt
	width := float32(0)
	if !bt.IsZero() {
		width = 1
	}
	b.Layout.SetBorder(EdgeAll, width)
}

// SetBorderColor sets the border foreground. Nil uses the terminal default.
func (b *Box) SetBorderColor(c *Color) {
	b.borderColor = c
	b.notifyChange()
}

// SetTitle sets text drawn into the top border.
func (b *Box) SetTitle(title string) {
	b.title = title
	b.notifyChange()
}

// SetFocusable marks the box as a focus target. Clearing it blurs the box
// if it is focused.
func (b *Box) SetFocusable(on bool) {
	b.focusable = on
	if s := sceneOf(b); s != nil && !on && s.focused == Node(b) {
		s.Blur()
	}
}

// Focusable reports whether the box takes part in focus traversal.
func (b *Box) Focusable() bool {
	return b.focusable
}

// UnstyledText joins the children's text with newlines.
func (b *Box) UnstyledText() string {
	parts := make([]string, 0, len(b.children))
	for _, c := range b.children {
		parts = append(parts, c.UnstyledText())
	}
	return strings.Join(parts, "\n")
}

// Dispose detaches the box and releases its layout handle. With recursive
// the children are disposed too; otherwise they are left detached.
func (b *Box) Dispose(recursive bool) {
	if b.disposed {
		return
	}
	detach(b)
	children := b.children
	b.children = nil
	for _, c := range children {
		b.Layout.removeChild(layoutOf(c))
		c.base().parent = nil
		if recursive {
			c.Dispose(true)
		}
	}
	b.release()
	b.disposed = true
}

func (b *Box) notifyChange() {
	if s := sceneOf(b); s != nil {
		s.NotifyChange()
	}
}

func (b *Box) reject(op string, n Node, reason string) {
	if s := sceneOf(b); s != nil {
		s.log.Debug("structural change rejected",
			zap.String("op", op),
			zap.String("child", nodeKind(n)),
			zap.String("reason", reason),
		)
	}
}

func (b *Box) draw(r *Renderer) {
	if b.hidden() {
		return
	}
	rect := b.rect
	if b.background != nil {
		r.Fill(rect, b.background)
	}
	if b.shader != nil {
		runShader(r.back, b.content, b.shader, r.opts.Width)
	}
	if !b.border.IsZero() {
		style := TextStyle{FG: b.borderColor}
		r.DrawBoxBorder(rect, b.border, style, false)
		r.back.DrawTitle(rect, b.title, style, r.opts.Width)
	}

	clip := b.overflow == OverflowHidden || b.overflow == OverflowScroll
	if clip {
		r.PushMask(rect.Inset(int(b.Layout.border[physLeft]), int(b.Layout.border[physTop]),
			int(b.Layout.border[physRight]), int(b.Layout.border[physBottom])))
	}
	for _, c := range b.children {
		drawNode(c, r)
	}
	if clip {
		r.PopMask()
	}
}

// drawNode dispatches drawing by node kind.
func drawNode(n Node, r *Renderer) {
	switch n := n.(type) {
	case *Box:
		n.draw(r)
	case *TextContainer:
		n.draw(r)
	}
}

// layoutOf returns the layout handle of a box or text container.
func layoutOf(n Node) *Layout {
	switch n := n.(type) {
	case *Box:
		return &n.Layout
	case *TextContainer:
		return &n.Layout
	}
	return nil
}

// sceneOf finds the scene n belongs to by walking to the root.
func sceneOf(n Node) *Scene {
	var top Node
	for cur := n; cur != nil; cur = cur.Parent() {
		top = cur
	}
	if b, ok := top.(*Box); ok {
		return b.scene
	}
	return nil
}

func nodeKind(n Node) string {
	switch n.(type) {
	case *Box:
		return "box"
	case *TextContainer:
		return "text-container"
	case *Text:
		return "text"
	case *TextContent:
		return "text-content"
	case *Break:
		return "break"
	}
	return "unknown"
}
