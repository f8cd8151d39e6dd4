package kli

import "go.uber.org/zap"

// SceneOptions configures a Scene.
type SceneOptions struct {
	// Logger receives structural rejections at debug level. Nil disables
	// logging.
	Logger *zap.Logger
	// Width classifies grapheme widths for every text container in the
	// scene.
	Width WidthClassifier
}

// Scene owns a tree of nodes under a root Box, the change signal that
// drives rendering and the focused node.
type Scene struct {
	root     *Box
	log      *zap.Logger
	width    WidthClassifier
	ellipsis string
	size     Size

	// OnChanged fires after any mutation that affects what is drawn.
	// Renderers coalesce bursts into a single pass.
	OnChanged Signal[struct{}]
	// OnFocusChanged fires with the newly focused node, or nil on blur.
	OnFocusChanged Signal[Node]

	focused  Node
	renderer *Renderer
}

// NewScene creates an empty scene whose root fills the screen.
func NewScene(opts SceneOptions) *Scene {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Scene{log: opts.Logger, width: opts.Width}
	s.root = NewBox()
	s.root.scene = s
	return s
}

// Root returns the root box.
func (s *Scene) Root() *Box {
	return s.root
}

// Size returns the size of the last layout.
func (s *Scene) Size() Size {
	return s.size
}

// Renderer returns the renderer attached by NewRenderer, or nil.
func (s *Scene) Renderer() *Renderer {
	return s.renderer
}

func (s *Scene) setRenderer(r *Renderer) {
	s.renderer = r
	s.ellipsis = r.opts.Ellipsis
	s.SetWidthClassifier(r.opts.Width)
}

// SetWidthClassifier applies wc to every text container in the scene and
// to containers added later.
func (s *Scene) SetWidthClassifier(wc WidthClassifier) {
	s.width = wc
	s.adopt(s.root)
}

// adopt applies scene-wide settings to a subtree entering the scene.
func (s *Scene) adopt(n Node) {
	walk(n, func(n Node) bool {
		if tc, ok := n.(*TextContainer); ok {
			tc.SetWidthClassifier(s.width)
			if s.ellipsis != "" && !tc.ellipsisSet {
				tc.ellipsis = s.ellipsis
				tc.wrapValid = false
			}
			return false
		}
		return true
	})
}

// NotifyChange fires OnChanged.
func (s *Scene) NotifyChange() {
	s.OnChanged.Trigger(struct{}{})
}

// CalculateLayout lays the tree out in a width x height screen and resolves
// every node's rect.
func (s *Scene) CalculateLayout(width, height int) {
	width, height = max(width, 0), max(height, 0)
	s.size = Size{Width: width, Height: height}
	s.root.width, s.root.height = Px(float32(width)), Px(float32(height))
	s.root.apply(-1, 0)
	prepareLayout(s.root)
	calculateLayout(&s.root.Layout, width, height)
	s.root.resolve(Position{})
	resolveChildren(s.root)
}

// prepareLayout pushes gap and box sizing into the engine before a run.
func prepareLayout(b *Box) {
	edge, gap := b.leadingGap()
	first := true
	for _, c := range b.children {
		l := layoutOf(c)
		gapEdge := -1
		if l.inFlow() {
			if !first && gap > 0 {
				gapEdge = edge
			}
			first = false
		}
		l.apply(gapEdge, gap)
		if cb, ok := c.(*Box); ok {
			prepareLayout(cb)
		}
	}
}

func resolveChildren(b *Box) {
	origin := b.childOrigin()
	for _, c := range b.children {
		l := layoutOf(c)
		l.resolve(origin)
		if cb, ok := c.(*Box); ok {
			resolveChildren(cb)
		}
	}
}

func (s *Scene) draw(r *Renderer) {
	s.root.draw(r)
}

// UnstyledText returns the text of the whole tree.
func (s *Scene) UnstyledText() string {
	return s.root.UnstyledText()
}

// Dispose releases every node and disconnects all listeners.
func (s *Scene) Dispose() {
	s.focused = nil
	s.root.Dispose(true)
	s.OnChanged.Clear()
	s.OnFocusChanged.Clear()
}
