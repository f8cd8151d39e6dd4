package kli

import (
	"errors"
	"testing"
)

// changeCounter counts OnChanged notifications of a scene.
func changeCounter(s *Scene) *int {
	n := new(int)
	s.OnChanged.Connect(func(struct{}) { *n++ })
	return n
}

func childNames(b *Box) []string {
	var out []string
	for _, c := range b.Children() {
		out = append(out, c.UnstyledText())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBoxChildren(t *testing.T) {
	t.Run("AddAndRemove", func(t *testing.T) {
		s := NewScene(SceneOptions{})
		changes := changeCounter(s)
		a, b := NewTextBlock("a"), NewTextBlock("b")

		if !s.Root().AddChild(a) || !s.Root().AddChild(b) {
			t.Fatal("AddChild returned false")
		}
		if a.Parent() != Node(s.Root()) {
			t.Error("parent not set")
		}
		if got := childNames(s.Root()); !equalStrings(got, []string{"a", "b"}) {
			t.Errorf("children = %v", got)
		}
		if *changes == 0 {
			t.Error("adding children did not notify the scene")
		}

		if !s.Root().RemoveChild(a) {
			t.Error("RemoveChild returned false")
		}
		if a.Parent() != nil {
			t.Error("removed child still has a parent")
		}
		if s.Root().RemoveChild(a) {
			t.Error("removing a non-child returned true")
		}
	})

	t.Run("InsertClamps", func(t *testing.T) {
		b := NewBox()
		b.AddChild(NewTextBlock("a"))
		b.InsertChild(NewTextBlock("z"), 99)
		b.InsertChild(NewTextBlock("first"), -4)
		if got := childNames(b); !equalStrings(got, []string{"first", "a", "z"}) {
			t.Errorf("children = %v", got)
		}
	})

	t.Run("ReparentDetaches", func(t *testing.T) {
		p1, p2 := NewBox(), NewBox()
		c := NewTextBlock("c")
		p1.AddChild(c)
		p2.AddChild(c)
		if len(p1.Children()) != 0 || len(p2.Children()) != 1 || c.Parent() != Node(p2) {
			t.Errorf("reparent left p1=%d p2=%d", len(p1.Children()), len(p2.Children()))
		}
	})

	t.Run("AddExistingChildIsNoop", func(t *testing.T) {
		b := NewBox()
		c := NewTextBlock("c")
		b.AddChild(c)
		b.AddChild(NewTextBlock("d"))
		if !b.AddChild(c) {
			t.Error("re-adding returned false")
		}
		if got := childNames(b); !equalStrings(got, []string{"c", "d"}) {
			t.Errorf("children = %v, want order unchanged", got)
		}
	})

	t.Run("RejectsWrongKinds", func(t *testing.T) {
		b := NewBox()
		for _, n := range []Node{NewText(), NewTextContent("x"), NewBreak(), nil} {
			if b.AddChild(n) {
				t.Errorf("AddChild(%s) = true", nodeKind(n))
			}
		}
		if len(b.Children()) != 0 {
			t.Errorf("children = %d, want none", len(b.Children()))
		}
	})

	t.Run("RejectsCycles", func(t *testing.T) {
		outer, inner := NewBox(), NewBox()
		outer.AddChild(inner)
		if inner.AddChild(outer) {
			t.Error("adding an ancestor succeeded")
		}
		if outer.AddChild(outer) {
			t.Error("adding self succeeded")
		}
		if outer.Parent() != nil {
			t.Error("failed add changed the tree")
		}
	})

	t.Run("MoveChild", func(t *testing.T) {
		b := NewBox()
		nodes := []*TextContainer{NewTextBlock("a"), NewTextBlock("b"), NewTextBlock("c"), NewTextBlock("d")}
		for _, n := range nodes {
			b.AddChild(n)
		}
		b.MoveChild(nodes[0], 2)
		if got := childNames(b); !equalStrings(got, []string{"b", "c", "a", "d"}) {
			t.Errorf("after MoveChild(a,2) = %v", got)
		}
		b.MoveChild(nodes[3], 0)
		if got := childNames(b); !equalStrings(got, []string{"d", "b", "c", "a"}) {
			t.Errorf("after MoveChild(d,0) = %v", got)
		}
		b.MoveChild(nodes[1], 100)
		if got := childNames(b); !equalStrings(got, []string{"d", "c", "a", "b"}) {
			t.Errorf("after MoveChild(b,100) = %v", got)
		}
		if b.MoveChild(NewTextBlock("x"), 0) {
			t.Error("moving a non-child returned true")
		}
	})

	t.Run("MoveBefore", func(t *testing.T) {
		b := NewBox()
		x, y, z := NewTextBlock("x"), NewTextBlock("y"), NewTextBlock("z")
		b.AddChild(x)
		b.AddChild(y)
		b.AddChild(z)
		b.MoveBefore(z, x)
		if got := childNames(b); !equalStrings(got, []string{"z", "x", "y"}) {
			t.Errorf("after MoveBefore(z,x) = %v", got)
		}
		b.MoveBefore(z, y)
		if got := childNames(b); !equalStrings(got, []string{"x", "z", "y"}) {
			t.Errorf("after MoveBefore(z,y) = %v", got)
		}
		b.MoveBefore(x, nil)
		if got := childNames(b); !equalStrings(got, []string{"z", "y", "x"}) {
			t.Errorf("after MoveBefore(x,nil) = %v", got)
		}
	})
}

func TestDispose(t *testing.T) {
	t.Run("Recursive", func(t *testing.T) {
		s := NewScene(SceneOptions{})
		box := NewBox()
		content := NewTextContent("x")
		tc := NewTextContainer()
		tc.SetText(NewText(content))
		box.AddChild(tc)
		s.Root().AddChild(box)

		box.Dispose(true)
		if !box.Disposed() || !tc.Disposed() || !content.Disposed() {
			t.Error("subtree not disposed")
		}
		if len(s.Root().Children()) != 0 {
			t.Error("disposed box still attached")
		}
		if s.Root().AddChild(box) {
			t.Error("disposed node was accepted")
		}
		box.Dispose(true) // second call is a no-op
	})

	t.Run("NonRecursiveDetachesChildren", func(t *testing.T) {
		box := NewBox()
		tc := NewTextBlock("kept")
		box.AddChild(tc)
		box.Dispose(false)
		if tc.Disposed() || tc.Parent() != nil {
			t.Error("child should survive detached")
		}
		other := NewBox()
		if !other.AddChild(tc) {
			t.Error("surviving child cannot be reused")
		}
	})
}

func TestTextContainerChildren(t *testing.T) {
	t.Run("AddChildPanicsOnWrongKind", func(t *testing.T) {
		tc := NewTextContainer()
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, ErrStructure) {
				t.Errorf("recover() = %v, want ErrStructure", r)
			}
		}()
		tc.AddChild(NewBox())
	})

	t.Run("SetTextReplaces", func(t *testing.T) {
		tc := NewTextContainer()
		first, second := NewText(NewTextContent("1")), NewText(NewTextContent("2"))
		tc.SetText(first)
		tc.AddChild(second)
		if tc.Text() != second || first.Parent() != nil || second.Container() != tc {
			t.Error("text not replaced")
		}
		if tc.UnstyledText() != "2" {
			t.Errorf("UnstyledText = %q", tc.UnstyledText())
		}
		if !tc.ClearText() || tc.ClearText() {
			t.Error("ClearText should succeed once")
		}
		if len(tc.Spans()) != 0 {
			t.Error("spans remain after ClearText")
		}
	})

	t.Run("TextMovesBetweenContainers", func(t *testing.T) {
		a, b := NewTextContainer(), NewTextContainer()
		txt := NewText(NewTextContent("t"))
		a.SetText(txt)
		b.SetText(txt)
		if a.Text() != nil || b.Text() != txt {
			t.Error("text was not moved")
		}
	})
}

func TestTextChildren(t *testing.T) {
	t.Run("Kinds", func(t *testing.T) {
		txt := NewText()
		if txt.AddChild(NewBox()) || txt.AddChild(NewTextContainer()) {
			t.Error("text accepted a layout node")
		}
		if !txt.AddChild(NewTextContent("a")) || !txt.AddChild(NewBreak()) || !txt.AddChild(NewText()) {
			t.Error("text rejected an inline node")
		}
	})

	t.Run("Cycle", func(t *testing.T) {
		outer := NewText()
		inner := NewText()
		outer.AddChild(inner)
		if inner.AddChild(outer) || outer.AddChild(outer) {
			t.Error("cycle accepted")
		}
	})

	t.Run("MutationsRecollect", func(t *testing.T) {
		s := NewScene(SceneOptions{})
		tc := NewTextContainer()
		s.Root().AddChild(tc)
		txt := NewText()
		tc.SetText(txt)
		changes := changeCounter(s)

		c := NewTextContent("ab")
		txt.AddChild(c)
		if got := spansText(tc.Spans()); got != "ab" {
			t.Errorf("spans after add = %q", got)
		}
		c.SetContent("xyz")
		if got := spansText(tc.Spans()); got != "xyz" {
			t.Errorf("spans after SetContent = %q", got)
		}
		br := NewBreak()
		txt.InsertChild(br, 0)
		if got := spansText(tc.Spans()); got != "\nxyz" {
			t.Errorf("spans after break = %q", got)
		}
		txt.MoveChild(br, 1)
		if got := spansText(tc.Spans()); got != "xyz\n" {
			t.Errorf("spans after move = %q", got)
		}
		txt.RemoveChild(br)
		if got := spansText(tc.Spans()); got != "xyz" {
			t.Errorf("spans after remove = %q", got)
		}
		red := RGB(255, 0, 0)
		txt.SetColor(&red)
		if fg := tc.Spans()[0].Style.FG; fg == nil || *fg != red {
			t.Error("style change not collected")
		}
		if *changes < 6 {
			t.Errorf("changes = %d, want a notification per mutation", *changes)
		}
	})

	t.Run("UnstyledText", func(t *testing.T) {
		txt := NewText(NewTextContent("a"), NewBreak(), NewText(NewTextContent("b")))
		if got := txt.UnstyledText(); got != "a\nb" {
			t.Errorf("UnstyledText = %q", got)
		}
		box := NewBox()
		box.AddChild(NewTextBlock("one"))
		box.AddChild(NewTextBlock("two"))
		if got := box.UnstyledText(); got != "one\ntwo" {
			t.Errorf("box UnstyledText = %q", got)
		}
	})
}
