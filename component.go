package kli

// Node is an element of the scene graph. The implementations are *Box,
// *TextContainer, *Text, *TextContent and *Break; the set is closed.
type Node interface {
	// Parent returns the node this one is attached to, or nil.
	Parent() Node
	// UnstyledText returns the plain text of the subtree.
	UnstyledText() string
	// Dispose releases layout resources, recursing into children if asked.
	// A disposed node must not be reused.
	Dispose(recursive bool)

	base() *nodeBase
}

// nodeBase holds the state every node shares.
type nodeBase struct {
	parent   Node
	disposed bool
}

// Parent returns the parent node.
func (b *nodeBase) Parent() Node {
	return b.parent
}

func (b *nodeBase) base() *nodeBase {
	return b
}

// Disposed reports whether Dispose was called.
func (b *nodeBase) Disposed() bool {
	return b.disposed
}

// isAncestor reports whether anc is n or one of n's ancestors.
func isAncestor(anc, n Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur == anc {
			return true
		}
	}
	return false
}

// detach removes n from whatever parent currently holds it.
func detach(n Node) {
	switch p := n.Parent().(type) {
	case *Box:
		p.RemoveChild(n)
	case *Text:
		p.RemoveChild(n)
	case *TextContainer:
		if t, ok := n.(*Text); ok {
			p.RemoveChild(t)
		}
	}
}

// moveTo moves the element at from to index to, clamping to the valid range.
// It returns the clamped index.
func moveTo(children []Node, from, to int) int {
	to = max(0, min(to, len(children)-1))
	n := children[from]
	if from < to {
		copy(children[from:to], children[from+1:to+1])
	} else {
		copy(children[to+1:from+1], children[to:from])
	}
	children[to] = n
	return to
}

// walk visits n and its descendants depth-first in document order. Returning
// false from fn skips a node's children.
func walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Box:
		for _, c := range n.children {
			walk(c, fn)
		}
	case *TextContainer:
		if n.text != nil {
			walk(n.text, fn)
		}
	case *Text:
		for _, c := range n.children {
			walk(c, fn)
		}
	}
}
