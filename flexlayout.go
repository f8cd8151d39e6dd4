package kli

import (
	"math"

	"github.com/kjk/flex"
)

// Flexbox enums, shared with the layout engine.
type (
	Edge          = flex.Edge
	FlexDirection = flex.FlexDirection
	Align         = flex.Align
	Justify       = flex.Justify
	PositionType  = flex.PositionType
	FlexWrap      = flex.Wrap
	Overflow      = flex.Overflow
	Display       = flex.Display
)

const (
	EdgeLeft       = flex.EdgeLeft
	EdgeTop        = flex.EdgeTop
	EdgeRight      = flex.EdgeRight
	EdgeBottom     = flex.EdgeBottom
	EdgeStart      = flex.EdgeStart
	EdgeEnd        = flex.EdgeEnd
	EdgeHorizontal = flex.EdgeHorizontal
	EdgeVertical   = flex.EdgeVertical
	EdgeAll        = flex.EdgeAll

	Row           = flex.FlexDirectionRow
	RowReverse    = flex.FlexDirectionRowReverse
	Column        = flex.FlexDirectionColumn
	ColumnReverse = flex.FlexDirectionColumnReverse

	AlignAuto         = flex.AlignAuto
	AlignStart        = flex.AlignFlexStart
	AlignCenter       = flex.AlignCenter
	AlignEnd          = flex.AlignFlexEnd
	AlignStretch      = flex.AlignStretch
	AlignBaseline     = flex.AlignBaseline
	AlignSpaceBetween = flex.AlignSpaceBetween
	AlignSpaceAround  = flex.AlignSpaceAround

	JustifyStart        = flex.JustifyFlexStart
	JustifyCenter       = flex.JustifyCenter
	JustifyEnd          = flex.JustifyFlexEnd
	JustifySpaceBetween = flex.JustifySpaceBetween
	JustifySpaceAround  = flex.JustifySpaceAround

	PositionRelative = flex.PositionTypeRelative
	PositionAbsolute = flex.PositionTypeAbsolute

	NoWrap      = flex.WrapNoWrap
	WrapLines   = flex.WrapWrap
	WrapReverse = flex.WrapWrapReverse

	OverflowVisible = flex.OverflowVisible
	OverflowHidden  = flex.OverflowHidden
	OverflowScroll  = flex.OverflowScroll

	DisplayFlex = flex.DisplayFlex
	DisplayNone = flex.DisplayNone
)

// Gutter selects which gap a SetGap call changes.
type Gutter uint8

const (
	GutterAll Gutter = iota
	GutterRow
	GutterColumn
)

// BoxSizing selects whether width and height include padding and border.
type BoxSizing uint8

const (
	BorderBox BoxSizing = iota
	ContentBox
)

type valueUnit uint8

const (
	unitUndefined valueUnit = iota
	unitPoint
	unitPercent
	unitAuto
)

// Value is a layout length: points, a percentage of the parent, or auto.
// The zero Value is unset.
type Value struct {
	unit valueUnit
	v    float32
}

// Px returns a length in cells.
func Px(v float32) Value { return Value{unit: unitPoint, v: v} }

// Percent returns a length relative to the parent.
func Percent(v float32) Value { return Value{unit: unitPercent, v: v} }

// Auto lets the layout engine choose.
var Auto = Value{unit: unitAuto}

// Unset clears a previously set length.
var Unset = Value{}

const (
	physLeft = iota
	physTop
	physRight
	physBottom
)

// physicalEdges expands a logical edge. Start and End map to Left and Right.
func physicalEdges(e Edge) []int {
	switch e {
	case EdgeLeft, EdgeStart:
		return []int{physLeft}
	case EdgeTop:
		return []int{physTop}
	case EdgeRight, EdgeEnd:
		return []int{physRight}
	case EdgeBottom:
		return []int{physBottom}
	case EdgeHorizontal:
		return []int{physLeft, physRight}
	case EdgeVertical:
		return []int{physTop, physBottom}
	}
	return []int{physLeft, physTop, physRight, physBottom}
}

var flexEdges = [4]Edge{EdgeLeft, EdgeTop, EdgeRight, EdgeBottom}

var layoutConfig = flex.NewConfig()

// Layout is a node's handle into the layout engine. Box and TextContainer
// embed one.
type Layout struct {
	node *flex.Node

	width, height Value
	margin        [4]Value
	padding       [4]Value
	border        [4]float32
	gapRow        float32
	gapColumn     float32
	boxSizing     BoxSizing
	direction     FlexDirection
	position      PositionType
	display       Display
	overflow      Overflow
	innerOffset   Position

	rect         Rect
	content      Rect
	hasNewLayout bool

	// onChange is called after every style setter.
	onChange func()
}

func (l *Layout) changed() {
	if l.onChange != nil {
		l.onChange()
	}
}

func newLayout() Layout {
	return Layout{node: flex.NewNodeWithConfig(layoutConfig), width: Auto, height: Auto, direction: Column}
}

// Rect returns the computed rect in screen coordinates.
func (l *Layout) Rect() Rect { return l.rect }

// ContentRect returns the computed rect minus border and padding.
func (l *Layout) ContentRect() Rect { return l.content }

// HasNewLayout reports whether the last layout moved or resized the node.
func (l *Layout) HasNewLayout() bool { return l.hasNewLayout }

// SetFlexDirection sets the main axis for children.
func (l *Layout) SetFlexDirection(d FlexDirection) {
	if l.node == nil {
		return
	}
	l.direction = d
	l.node.StyleSetFlexDirection(d)
	l.changed()
}

// SetFlexGrow sets how much of the free space this node takes.
func (l *Layout) SetFlexGrow(v float32) {
	if l.node == nil {
		return
	}
	l.node.StyleSetFlexGrow(v)
	l.changed()
}

// SetFlexShrink sets how much this node gives up when space is short.
func (l *Layout) SetFlexShrink(v float32) {
	if l.node == nil {
		return
	}
	l.node.StyleSetFlexShrink(v)
	l.changed()
}

// SetFlexBasis sets the initial main size.
func (l *Layout) SetFlexBasis(v Value) {
	if l.node == nil {
		return
	}
	switch v.unit {
	case unitPoint:
		l.node.StyleSetFlexBasis(v.v)
	case unitPercent:
		l.node.StyleSetFlexBasisPercent(v.v)
	default:
		l.node.StyleSetFlexBasis(flex.Undefined)
	}
	l.changed()
}

// SetFlexWrap sets whether children wrap onto several lines.
func (l *Layout) SetFlexWrap(w FlexWrap) {
	if l.node == nil {
		return
	}
	l.node.StyleSetFlexWrap(w)
	l.changed()
}

// SetAlignItems sets cross-axis alignment of children.
func (l *Layout) SetAlignItems(a Align) {
	if l.node == nil {
		return
	}
	l.node.StyleSetAlignItems(a)
	l.changed()
}

// SetAlignContent sets alignment of wrapped lines.
func (l *Layout) SetAlignContent(a Align) {
	if l.node == nil {
		return
	}
	l.node.StyleSetAlignContent(a)
	l.changed()
}

// SetAlignSelf overrides the parent's AlignItems for this node.
func (l *Layout) SetAlignSelf(a Align) {
	if l.node == nil {
		return
	}
	l.node.StyleSetAlignSelf(a)
	l.changed()
}

// SetJustifyContent sets main-axis distribution of children.
func (l *Layout) SetJustifyContent(j Justify) {
	if l.node == nil {
		return
	}
	l.node.StyleSetJustifyContent(j)
	l.changed()
}

// SetAspectRatio fixes width/height.
func (l *Layout) SetAspectRatio(v float32) {
	if l.node == nil {
		return
	}
	l.node.StyleSetAspectRatio(v)
	l.changed()
}

// SetDisplay hides the node from layout and drawing with DisplayNone.
func (l *Layout) SetDisplay(d Display) {
	if l.node == nil {
		return
	}
	l.display = d
	l.node.StyleSetDisplay(d)
	l.changed()
}

// SetOverflow sets overflow. Hidden clips children while drawing.
func (l *Layout) SetOverflow(o Overflow) {
	if l.node == nil {
		return
	}
	l.overflow = o
	l.node.StyleSetOverflow(o)
	l.changed()
}

// SetPositionType selects relative or absolute positioning.
func (l *Layout) SetPositionType(p PositionType) {
	if l.node == nil {
		return
	}
	l.position = p
	l.node.StyleSetPositionType(p)
	l.changed()
}

// SetPosition sets an offset for the given edge.
func (l *Layout) SetPosition(e Edge, v Value) {
	if l.node == nil {
		return
	}
	switch v.unit {
	case unitPoint:
		l.node.StyleSetPosition(e, v.v)
	case unitPercent:
		l.node.StyleSetPositionPercent(e, v.v)
	default:
		l.node.StyleSetPosition(e, flex.Undefined)
	}
	l.changed()
}

// SetWidth sets the width.
func (l *Layout) SetWidth(v Value) {
	l.width = v
	l.changed()
}

// SetHeight sets the height.
func (l *Layout) SetHeight(v Value) {
	l.height = v
	l.changed()
}

// SetMinWidth sets the minimum width.
func (l *Layout) SetMinWidth(v Value) {
	if l.node == nil {
		return
	}
	setLimit(v, l.node.StyleSetMinWidth, l.node.StyleSetMinWidthPercent)
	l.changed()
}

// SetMaxWidth sets the maximum width.
func (l *Layout) SetMaxWidth(v Value) {
	if l.node == nil {
		return
	}
	setLimit(v, l.node.StyleSetMaxWidth, l.node.StyleSetMaxWidthPercent)
	l.changed()
}

// SetMinHeight sets the minimum height.
func (l *Layout) SetMinHeight(v Value) {
	if l.node == nil {
		return
	}
	setLimit(v, l.node.StyleSetMinHeight, l.node.StyleSetMinHeightPercent)
	l.changed()
}

// SetMaxHeight sets the maximum height.
func (l *Layout) SetMaxHeight(v Value) {
	if l.node == nil {
		return
	}
	setLimit(v, l.node.StyleSetMaxHeight, l.node.StyleSetMaxHeightPercent)
	l.changed()
}

func setLimit(v Value, point, percent func(float32)) {
	switch v.unit {
	case unitPoint:
		point(v.v)
	case unitPercent:
		percent(v.v)
	default:
		point(flex.Undefined)
	}
}

// SetMargin sets the margin of one or more edges.
func (l *Layout) SetMargin(e Edge, v Value) {
	for _, p := range physicalEdges(e) {
		l.margin[p] = v
	}
	l.changed()
}

// SetPadding sets the padding of one or more edges. Auto is treated as zero.
func (l *Layout) SetPadding(e Edge, v Value) {
	if l.node == nil {
		return
	}
	for _, p := range physicalEdges(e) {
		l.padding[p] = v
		switch v.unit {
		case unitPoint:
			l.node.StyleSetPadding(flexEdges[p], v.v)
		case unitPercent:
			l.node.StyleSetPaddingPercent(flexEdges[p], v.v)
		default:
			l.node.StyleSetPadding(flexEdges[p], 0)
		}
	}
	l.changed()
}

// SetBorder sets the border width of one or more edges.
func (l *Layout) SetBorder(e Edge, v float32) {
	if l.node == nil {
		return
	}
	for _, p := range physicalEdges(e) {
		l.border[p] = v
		l.node.StyleSetBorder(flexEdges[p], v)
	}
	l.changed()
}

// SetGap sets the spacing between children.
func (l *Layout) SetGap(g Gutter, v float32) {
	switch g {
	case GutterRow:
		l.gapRow = v
	case GutterColumn:
		l.gapColumn = v
	default:
		l.gapRow, l.gapColumn = v, v
	}
	l.changed()
}

// SetBoxSizing selects whether width and height include padding and border.
func (l *Layout) SetBoxSizing(b BoxSizing) {
	l.boxSizing = b
	l.changed()
}

// SetInnerOffset scrolls children by the given amount.
func (l *Layout) SetInnerOffset(x, y int) {
	l.innerOffset = Position{X: x, Y: y}
	l.changed()
}

// setMeasure installs the callback used to size a leaf.
func (l *Layout) setMeasure(measure func(w int, wm MeasureMode, h int, hm MeasureMode) (int, int)) {
	l.node.SetMeasureFunc(func(_ *flex.Node, width float32, widthMode flex.MeasureMode, height float32, heightMode flex.MeasureMode) flex.Size {
		w, h := measure(toCells(width), measureMode(widthMode), toCells(height), measureMode(heightMode))
		return flex.Size{Width: float32(w), Height: float32(h)}
	})
}

// markDirty asks the engine to measure a leaf again.
func (l *Layout) markDirty() {
	if l.node == nil {
		return
	}
	l.node.MarkDirty()
}

func measureMode(m flex.MeasureMode) MeasureMode {
	switch m {
	case flex.MeasureModeExactly:
		return MeasureExactly
	case flex.MeasureModeAtMost:
		return MeasureAtMost
	}
	return MeasureUnconstrained
}

func toCells(v float32) int {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return Unbounded
	}
	return int(math.Floor(float64(v)))
}

func (l *Layout) insertChild(child *Layout, idx int) {
	l.node.InsertChild(child.node, idx)
}

func (l *Layout) removeChild(child *Layout) {
	l.node.RemoveChild(child.node)
}

// release drops the handle. The node must already be detached from its
// parent's handle.
func (l *Layout) release() {
	l.node = nil
}

// leadingGap returns the physical edge of a child that receives this node's
// main-axis gap, and the gap size.
func (l *Layout) leadingGap() (edge int, gap float32) {
	switch l.direction {
	case Row:
		return physLeft, l.gapColumn
	case RowReverse:
		return physRight, l.gapColumn
	case ColumnReverse:
		return physBottom, l.gapRow
	}
	return physTop, l.gapRow
}

// apply writes the properties that depend on siblings or on box sizing.
// gapEdge is -1 when no gap applies.
func (l *Layout) apply(gapEdge int, gap float32) {
	for p, v := range l.margin {
		extra := float32(0)
		if p == gapEdge {
			extra = gap
		}
		switch v.unit {
		case unitPoint:
			l.node.StyleSetMargin(flexEdges[p], v.v+extra)
		case unitPercent:
			l.node.StyleSetMarginPercent(flexEdges[p], v.v)
		case unitAuto:
			l.node.StyleSetMarginAuto(flexEdges[p])
		default:
			l.node.StyleSetMargin(flexEdges[p], extra)
		}
	}

	padW := l.border[physLeft] + l.border[physRight]
	padH := l.border[physTop] + l.border[physBottom]
	if l.padding[physLeft].unit == unitPoint {
		padW += l.padding[physLeft].v
	}
	if l.padding[physRight].unit == unitPoint {
		padW += l.padding[physRight].v
	}
	if l.padding[physTop].unit == unitPoint {
		padH += l.padding[physTop].v
	}
	if l.padding[physBottom].unit == unitPoint {
		padH += l.padding[physBottom].v
	}
	if l.boxSizing != ContentBox {
		padW, padH = 0, 0
	}
	setDimension(l.width, padW, l.node.StyleSetWidth, l.node.StyleSetWidthPercent, l.node.StyleSetWidthAuto)
	setDimension(l.height, padH, l.node.StyleSetHeight, l.node.StyleSetHeightPercent, l.node.StyleSetHeightAuto)
}

func setDimension(v Value, extra float32, point, percent func(float32), auto func()) {
	switch v.unit {
	case unitPoint:
		point(v.v + extra)
	case unitPercent:
		percent(v.v)
	default:
		auto()
	}
}

// resolve reads the computed layout, placing the node relative to origin.
func (l *Layout) resolve(origin Position) {
	n := l.node
	x := float64(origin.X) + float64(n.LayoutGetLeft())
	y := float64(origin.Y) + float64(n.LayoutGetTop())
	rect := RectF(x, y, float64(n.LayoutGetWidth()), float64(n.LayoutGetHeight()))

	inset := func(e Edge) int {
		return floorInt(float64(n.LayoutGetBorder(e) + n.LayoutGetPadding(e)))
	}
	content := rect.Inset(inset(EdgeLeft), inset(EdgeTop), inset(EdgeRight), inset(EdgeBottom))

	l.hasNewLayout = rect != l.rect || content != l.content
	l.rect, l.content = rect, content
}

// childOrigin is where children's computed offsets are measured from.
func (l *Layout) childOrigin() Position {
	return Position{X: l.rect.X + l.innerOffset.X, Y: l.rect.Y + l.innerOffset.Y}
}

// inFlow reports whether the node takes part in sibling spacing.
func (l *Layout) inFlow() bool {
	return l.display != DisplayNone && l.position != PositionAbsolute
}

// hidden reports whether the node takes no part in layout or drawing.
func (l *Layout) hidden() bool {
	return l.display == DisplayNone
}

// calculateLayout runs the engine on root at the given size.
func calculateLayout(root *Layout, width, height int) {
	flex.CalculateLayout(root.node, float32(width), float32(height), flex.DirectionLTR)
}
