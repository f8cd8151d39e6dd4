package kli

// focusable is implemented by nodes that can receive focus.
type focusable interface {
	Node
	Focusable() bool
}

// Focused returns the focused node, or nil.
func (s *Scene) Focused() Node {
	return s.focused
}

// Focus moves focus to n. It returns false if n is not a focusable node of
// this scene.
func (s *Scene) Focus(n Node) bool {
	f, ok := n.(focusable)
	if !ok || !f.Focusable() || sceneOf(n) != s {
		return false
	}
	if s.focused == n {
		return true
	}
	s.focused = n
	s.OnFocusChanged.Trigger(n)
	s.NotifyChange()
	return true
}

// Blur clears focus.
func (s *Scene) Blur() {
	if s.focused == nil {
		return
	}
	s.focused = nil
	s.OnFocusChanged.Trigger(nil)
	s.NotifyChange()
}

// Focusables returns the focusable nodes in document order.
func (s *Scene) Focusables() []Node {
	var out []Node
	walk(s.root, func(n Node) bool {
		if l := layoutOf(n); l != nil && l.hidden() {
			return false
		}
		if f, ok := n.(focusable); ok && f.Focusable() {
			out = append(out, n)
		}
		_, isBox := n.(*Box)
		return isBox
	})
	return out
}

// FocusNext moves focus to the next focusable node, wrapping around. With
// nothing focused it picks the first. It returns false if the scene has no
// focusable nodes.
func (s *Scene) FocusNext() bool {
	return s.moveFocus(1)
}

// FocusPrev moves focus to the previous focusable node, wrapping around.
// With nothing focused it picks the last.
func (s *Scene) FocusPrev() bool {
	return s.moveFocus(-1)
}

func (s *Scene) moveFocus(delta int) bool {
	items := s.Focusables()
	if len(items) == 0 {
		return false
	}
	current := -1
	for i, n := range items {
		if n == s.focused {
			current = i
			break
		}
	}
	var next int
	switch {
	case current >= 0:
		next = (current + len(items) + delta) % len(items)
	case delta > 0:
		next = 0
	default:
		next = len(items) - 1
	}
	return s.Focus(items[next])
}

// detached blurs the focused node when it leaves the tree with n.
func (s *Scene) detached(n Node) {
	if s.focused != nil && isAncestor(n, s.focused) {
		s.Blur()
	}
}
