package kli

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configures a Renderer.
type Options struct {
	// Logger receives pass timings and write failures. Nil disables logging.
	Logger *zap.Logger
	// Width classifies grapheme widths for text and shader output.
	Width WidthClassifier
	// Ellipsis marks truncated non-wrapping text. Defaults to "…".
	Ellipsis string
	// ClearEmptyColor paints cells outside the drawn buffer. Defaults to
	// black.
	ClearEmptyColor *Color
}

// RenderTarget describes where ExecuteRender puts the buffer on screen.
type RenderTarget struct {
	// Target is the screen rect to fill. It is clipped to the terminal.
	Target Rect
	// ClearScreen clears the whole terminal first, and is the only output
	// when Target lies off screen.
	ClearScreen bool
	// Deprecated: ClearEmpty has no effect. Target cells the buffer does
	// not cover are always painted with ClearEmptyColor.
	ClearEmpty       bool
	ClearScreenColor *Color
	ClearEmptyColor  *Color
}

// RenderStats counts renderer work since creation.
type RenderStats struct {
	Passes      int
	Bytes       int
	RowsWritten int
	RowsSkipped int
}

// Renderer draws a Scene into a CellBuffer and serializes it to a Terminal.
// Passes are serialized: at most one runs at a time and requests made
// meanwhile collapse into a single follow-up pass.
type Renderer struct {
	term  Terminal
	scene *Scene
	log   *zap.Logger
	opts  Options

	back     *CellBuffer
	viewport Position
	out      []byte

	// front mirrors what the terminal displays, in screen coordinates.
	front      []Cell
	frontW     int
	frontH     int
	frontValid bool
	lastStyle  CellStyle
	styleValid bool

	stats RenderStats

	requests   chan struct{}
	wake       chan struct{}
	tasksMu    sync.Mutex
	tasks      []func()
	disconnect func()
}

// NewRenderer creates a renderer for scene on term. Scene changes queue a
// render automatically.
func NewRenderer(term Terminal, scene *Scene, opts Options) *Renderer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Ellipsis == "" {
		opts.Ellipsis = DefaultEllipsis
	}
	if opts.ClearEmptyColor == nil {
		black := Black
		opts.ClearEmptyColor = &black
	}
	r := &Renderer{
		term:     term,
		scene:    scene,
		log:      opts.Logger,
		opts:     opts,
		back:     NewCellBuffer(0, 0),
		requests: make(chan struct{}, 1),
		wake:     make(chan struct{}, 1),
	}
	if scene != nil {
		scene.setRenderer(r)
		r.disconnect = scene.OnChanged.Connect(func(struct{}) { r.QueueRender() })
	}
	return r
}

// Buffer returns the back buffer being drawn into.
func (r *Renderer) Buffer() *CellBuffer {
	return r.back
}

// Stats returns counters for the work done so far.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Close detaches the renderer from its scene.
func (r *Renderer) Close() {
	if r.disconnect != nil {
		r.disconnect()
		r.disconnect = nil
	}
}

// BeginRender starts a pass at the given size with a blank buffer, no masks
// and an empty output accumulator.
func (r *Renderer) BeginRender(width, height int) {
	r.back.Resize(width, height)
	r.back.Clear()
	r.out = r.out[:0]
}

// SetViewport pans the region of the buffer shown at the target's origin.
func (r *Renderer) SetViewport(x, y int) {
	r.viewport = Position{X: x, Y: y}
}

// DrawScene lays the scene out at the buffer size and draws it.
func (r *Renderer) DrawScene() {
	if r.scene == nil {
		return
	}
	r.scene.CalculateLayout(r.back.Width(), r.back.Height())
	r.scene.draw(r)
}

// Fill sets the rect to blanks with the given background. A nil bg resets
// the cells to the terminal default.
func (r *Renderer) Fill(rect Rect, bg *Color) {
	r.back.SetChar(rect.X, rect.Y, rect.Width, rect.Height, "", 1, TextStyle{BG: bg}, true)
}

// DrawChar writes one grapheme at (x,y) and returns its width.
func (r *Renderer) DrawChar(x, y int, g string, style TextStyle) int {
	w := r.opts.Width.StringWidth(g)
	if w == 0 {
		return 0
	}
	r.back.SetChar(x, y, 1, 1, g, w, style, false)
	return w
}

// DrawString writes s starting at (x,y) on one row and returns the columns
// used.
func (r *Renderer) DrawString(x, y int, s string, style TextStyle) int {
	start := x
	for _, g := range r.opts.Width.Segment(s) {
		if g.Width == 0 {
			continue
		}
		r.back.SetChar(x, y, 1, 1, g.Text, g.Width, style, false)
		x += g.Width
	}
	return x - start
}

// DrawTextStyle restyles the rect without changing content.
func (r *Renderer) DrawTextStyle(rect Rect, style TextStyle, clearStyle bool) {
	r.back.SetTextStyle(rect.X, rect.Y, rect.Width, rect.Height, style, clearStyle)
}

// DrawBoxBorder draws a border along the edge of rect.
func (r *Renderer) DrawBoxBorder(rect Rect, bt BorderType, style TextStyle, clearStyle bool) {
	r.back.DrawBorder(rect, bt, style, clearStyle)
}

// PushMask narrows the clip for subsequent drawing.
func (r *Renderer) PushMask(rect Rect) {
	r.back.PushMask(rect)
}

// PopMask restores the clip active before the matching PushMask.
func (r *Renderer) PopMask() {
	r.back.PopMask()
}

// FullScreen returns a target covering the terminal.
func (r *Renderer) FullScreen() RenderTarget {
	w, h := r.term.Size()
	return RenderTarget{Target: NewRect(0, 0, w, h)}
}

// ExecuteRender serializes the viewport region of the buffer into the
// output accumulator. Rows identical to what the terminal already shows are
// skipped.
func (r *Renderer) ExecuteRender(rt RenderTarget) {
	termW, termH := r.term.Size()
	r.syncFront(termW, termH)

	if rt.ClearScreen {
		r.clearScreen(rt.ClearScreenColor)
	}
	target, ok := rt.Target.Intersect(NewRect(0, 0, termW, termH))
	if !ok {
		return
	}

	emptyColor := rt.ClearEmptyColor
	if emptyColor == nil {
		emptyColor = r.opts.ClearEmptyColor
	}
	filler := Cell{SpanWidth: 1, Style: CellStyle{}.Background(*emptyColor)}
	frame := r.compose(target, filler)

	for j := 0; j < target.Height; j++ {
		row := frame[j*target.Width : (j+1)*target.Width]
		if r.rowUnchanged(target.X, target.Y+j, row) {
			r.stats.RowsSkipped++
			continue
		}
		r.writeRow(target.X, target.Y+j, row)
		r.stats.RowsWritten++
	}
}

// unpainted marks zero cells, which ExecuteRender leaves alone.
const unpainted = 0

// compose builds the cells to show in target: buffer cells from the
// viewport, filler for coordinates outside the buffer and for the part of
// target the viewport does not reach, so stale terminal content is always
// overwritten.
func (r *Renderer) compose(target Rect, filler Cell) []Cell {
	frame := make([]Cell, target.Width*target.Height)
	for i := range frame {
		frame[i] = filler
	}
	vx, vy := r.viewport.X, r.viewport.Y
	for v := range r.back.Iterate(vx, vy, target.Width, target.Height) {
		if v.Cell != nil {
			frame[(v.Y-vy)*target.Width+(v.X-vx)] = *v.Cell
		}
	}
	return frame
}

func (r *Renderer) rowUnchanged(x, y int, row []Cell) bool {
	if !r.frontValid {
		return false
	}
	front := r.front[y*r.frontW+x : y*r.frontW+x+len(row)]
	for i := range row {
		if row[i].SpanWidth == unpainted {
			continue
		}
		if row[i] != front[i] {
			return false
		}
	}
	return true
}

// writeRow emits one row. Wide glyphs are written once and the columns they
// cover are skipped; a wide glyph cut by the row end becomes a blank.
func (r *Renderer) writeRow(x, y int, row []Cell) {
	front := r.front[y*r.frontW+x : y*r.frontW+x+len(row)]
	move := true
	skip := 0
	for i, c := range row {
		if skip > 0 {
			skip--
			front[i] = c
			continue
		}
		if c.SpanWidth == unpainted {
			move = true
			continue
		}
		span := int(c.SpanWidth)
		if i+span > len(row) {
			c = Cell{SpanWidth: 1, Style: c.Style}
			span = 1
		}
		if move {
			r.out = appendCursor(r.out, x+i, y)
			move = false
		}
		if !r.styleValid || c.Style != r.lastStyle {
			r.out = appendStyle(r.out, c.Style)
			r.lastStyle, r.styleValid = c.Style, true
		}
		r.out = append(r.out, c.Text()...)
		front[i] = c
		skip = span - 1
	}
	r.out = append(r.out, seqReset...)
	r.styleValid = false
}

// syncFront resizes the shadow of the terminal, forgetting its contents
// when the size changed.
func (r *Renderer) syncFront(w, h int) {
	if w == r.frontW && h == r.frontH && r.front != nil {
		return
	}
	r.front = make([]Cell, w*h)
	r.frontW, r.frontH = w, h
	r.frontValid = false
}

func (r *Renderer) clearScreen(bg *Color) {
	if bg != nil {
		r.out = appendStyle(r.out, CellStyle{}.Background(*bg))
	}
	r.out = append(r.out, seqClearScreen...)
	r.out = append(r.out, seqReset...)
	r.styleValid = false
	r.frontValid = false
}

// EndRender writes the accumulated output in a single call.
func (r *Renderer) EndRender() error {
	return r.write(r.out)
}

func (r *Renderer) write(frame []byte) error {
	if len(frame) == 0 {
		return r.finishWrite(0, 0, nil)
	}
	n, err := r.term.Write(frame)
	return r.finishWrite(len(frame), n, err)
}

// finishWrite records the outcome of a frame write. It runs on the loop.
func (r *Renderer) finishWrite(size, n int, err error) error {
	r.stats.Passes++
	r.stats.Bytes += n
	if err != nil {
		r.frontValid = false
		r.log.Error("frame write failed", zap.Error(err), zap.Int("bytes", size))
		return fmt.Errorf("kli: write frame: %w", err)
	}
	r.frontValid = true
	return nil
}

// prepare runs every stage of a pass except the write.
func (r *Renderer) prepare() {
	start := time.Now()
	w, h := r.term.Size()
	r.BeginRender(w, h)
	r.DrawScene()
	r.ExecuteRender(r.FullScreen())
	r.log.Debug("render pass",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("bytes", len(r.out)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
