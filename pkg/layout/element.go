package layout

import (
	"fmt"
	"math"
)

// Element is the capability every layout node exposes, leaf or panel.
// Containers hold children only through this interface.
type Element interface {
	// Measure computes DesiredSize for the given available size. Either
	// dimension may be +Inf for an intrinsic size query.
	Measure(available Size)

	// Arrange positions the element inside final and computes RenderSize.
	Arrange(final Rect)

	// DesiredSize returns the result of the last Measure, margins included.
	DesiredSize() Size

	// RenderSize returns the size computed by the last Arrange.
	RenderSize() Size

	// InvalidateMeasure marks the element and its ancestors for re-measure.
	InvalidateMeasure()

	// Base returns the shared layout state of the element.
	Base() *Node
}

// Overrides is implemented by concrete element types to provide their own
// sizing logic. Node calls these with margins and explicit sizes already
// applied.
type Overrides interface {
	MeasureOverride(available Size) Size
	ArrangeOverride(final Size) Size
}

// Alignment positions an element inside a slot larger than the element.
type Alignment int

const (
	Stretch Alignment = iota
	Start
	Center
	End
)

func (a Alignment) String() string {
	switch a {
	case Start:
		return "start"
	case Center:
		return "center"
	case End:
		return "end"
	}
	return "stretch"
}

// Node holds the layout state shared by all elements: margin, explicit and
// min/max sizes, alignment, cached measure/arrange results and dirty flags.
// Concrete elements embed Node and call Init from their constructor.
type Node struct {
	self   Overrides
	owner  Element
	parent Element
	name   string

	margin    Thickness
	width     float64
	height    float64
	widthSet  bool
	heightSet bool
	minWidth  float64
	maxWidth  float64
	minHeight float64
	maxHeight float64
	hAlign    Alignment
	vAlign    Alignment

	desired    Size
	unclipped  Size // desired content size before margin and available clipping
	render     Size
	slot       Rect
	bounds     Rect
	constraint Size

	// Dirty state. measureValid is false until the first Measure.
	measureValid   bool
	arrangeValid   bool
	measuring      bool
	arranging      bool
	pendingMeasure bool
	pendingArrange bool
	lastAvailable  Size
	lastFinal      Rect

	measureCount int
	arrangeCount int
}

// Init wires the node to the element embedding it. self should be the
// outer element; if it implements Overrides its methods are used, otherwise
// the element measures to zero and arranges to the offered size.
func (n *Node) Init(self Element) {
	n.owner = self
	if o, ok := self.(Overrides); ok {
		n.self = o
	}
	n.maxWidth = math.Inf(1)
	n.maxHeight = math.Inf(1)
}

// Base implements Element.
func (n *Node) Base() *Node {
	return n
}

// Owner returns the element that embeds this node.
func (n *Node) Owner() Element {
	return n.owner
}

// Parent returns the panel this element was added to, or nil.
func (n *Node) Parent() Element {
	return n.parent
}

// Name returns the debug name of the element.
func (n *Node) Name() string {
	return n.name
}

// SetName sets a debug name used by reports and renderers.
func (n *Node) SetName(name string) {
	n.name = name
}

// Margin returns the outer margin.
func (n *Node) Margin() Thickness {
	return n.margin
}

// SetMargin sets the outer margin. Negative edges are rejected.
func (n *Node) SetMargin(m Thickness) error {
	if m.Left < 0 || m.Top < 0 || m.Right < 0 || m.Bottom < 0 || !finiteThickness(m) {
		return fmt.Errorf("margin %v: %w", m, ErrInvalidArgument)
	}
	n.margin = m
	n.InvalidateMeasure()
	return nil
}

// Width returns the explicit width and whether one is set.
func (n *Node) Width() (float64, bool) {
	return n.width, n.widthSet
}

// SetWidth sets an explicit width.
func (n *Node) SetWidth(w float64) error {
	if err := checkLength("width", w); err != nil {
		return err
	}
	n.width, n.widthSet = w, true
	n.InvalidateMeasure()
	return nil
}

// ClearWidth removes the explicit width.
func (n *Node) ClearWidth() {
	n.width, n.widthSet = 0, false
	n.InvalidateMeasure()
}

// Height returns the explicit height and whether one is set.
func (n *Node) Height() (float64, bool) {
	return n.height, n.heightSet
}

// SetHeight sets an explicit height.
func (n *Node) SetHeight(h float64) error {
	if err := checkLength("height", h); err != nil {
		return err
	}
	n.height, n.heightSet = h, true
	n.InvalidateMeasure()
	return nil
}

// ClearHeight removes the explicit height.
func (n *Node) ClearHeight() {
	n.height, n.heightSet = 0, false
	n.InvalidateMeasure()
}

// SetMinWidth sets the minimum width (default 0).
func (n *Node) SetMinWidth(v float64) error {
	if err := checkLength("min width", v); err != nil {
		return err
	}
	n.minWidth = v
	n.InvalidateMeasure()
	return nil
}

// SetMaxWidth sets the maximum width (default +Inf).
func (n *Node) SetMaxWidth(v float64) error {
	if err := checkMax("max width", v); err != nil {
		return err
	}
	n.maxWidth = v
	n.InvalidateMeasure()
	return nil
}

// SetMinHeight sets the minimum height (default 0).
func (n *Node) SetMinHeight(v float64) error {
	if err := checkLength("min height", v); err != nil {
		return err
	}
	n.minHeight = v
	n.InvalidateMeasure()
	return nil
}

// SetMaxHeight sets the maximum height (default +Inf).
func (n *Node) SetMaxHeight(v float64) error {
	if err := checkMax("max height", v); err != nil {
		return err
	}
	n.maxHeight = v
	n.InvalidateMeasure()
	return nil
}

// SetAlignment sets how the element sits inside a larger slot.
func (n *Node) SetAlignment(horizontal, vertical Alignment) {
	n.hAlign, n.vAlign = horizontal, vertical
	n.InvalidateArrange()
}

// Alignment returns the horizontal and vertical alignment.
func (n *Node) Alignment() (horizontal, vertical Alignment) {
	return n.hAlign, n.vAlign
}

// DesiredSize implements Element.
func (n *Node) DesiredSize() Size {
	return n.desired
}

// RenderSize implements Element. It stays zero until the element has been
// arranged by a parent (or directly by the host).
func (n *Node) RenderSize() Size {
	return n.render
}

// ActualWidth is RenderSize().Width.
func (n *Node) ActualWidth() float64 {
	return n.render.Width
}

// ActualHeight is RenderSize().Height.
func (n *Node) ActualHeight() float64 {
	return n.render.Height
}

// LayoutSlot returns the rectangle passed to the last Arrange.
func (n *Node) LayoutSlot() Rect {
	return n.slot
}

// Bounds returns where the element was placed by the last Arrange, in its
// parent's coordinates, after margin and alignment.
func (n *Node) Bounds() Rect {
	return n.bounds
}

// MeasureConstraint returns the size most recently passed to MeasureOverride.
func (n *Node) MeasureConstraint() Size {
	return n.constraint
}

// MeasureCount returns how many times MeasureOverride has run.
func (n *Node) MeasureCount() int {
	return n.measureCount
}

// ArrangeCount returns how many times ArrangeOverride has run.
func (n *Node) ArrangeCount() int {
	return n.arrangeCount
}

// IsMeasureValid reports whether the cached DesiredSize is current.
func (n *Node) IsMeasureValid() bool {
	return n.measureValid
}

// IsArrangeValid reports whether the cached arrangement is current.
func (n *Node) IsArrangeValid() bool {
	return n.arrangeValid
}

// Measure implements Element.
func (n *Node) Measure(available Size) {
	available = Size{Width: sanitize(available.Width), Height: sanitize(available.Height)}
	if n.measureValid && available == n.lastAvailable {
		return
	}

	n.measuring = true
	n.measureValid = true
	n.arrangeValid = false
	n.lastAvailable = available

	b := n.minMax()
	frame := available.Deflate(n.margin)
	frame.Width = Clamp(frame.Width, b.minWidth, b.maxWidth)
	frame.Height = Clamp(frame.Height, b.minHeight, b.maxHeight)
	n.constraint = frame

	var desired Size
	if n.self != nil {
		desired = n.self.MeasureOverride(frame)
	}
	n.measureCount++

	desired.Width = Clamp(finite(desired.Width), b.minWidth, b.maxWidth)
	desired.Height = Clamp(finite(desired.Height), b.minHeight, b.maxHeight)
	n.unclipped = desired
	n.desired = desired.Inflate(n.margin).Min(available)

	n.measuring = false
	if n.pendingMeasure {
		n.pendingMeasure = false
		n.measureValid = false
	}
}

// Arrange implements Element.
func (n *Node) Arrange(final Rect) {
	if !n.measureValid {
		avail := n.lastAvailable
		if n.measureCount == 0 {
			avail = final.Size()
		}
		n.Measure(avail)
	}
	if n.arrangeValid && final == n.lastFinal {
		return
	}

	n.arranging = true
	n.arrangeValid = true
	n.lastFinal = final
	n.slot = final

	b := n.minMax()
	inner := final.Deflate(n.margin)
	size := inner.Size()
	if n.hAlign != Stretch {
		size.Width = math.Min(size.Width, n.unclipped.Width)
	}
	if n.vAlign != Stretch {
		size.Height = math.Min(size.Height, n.unclipped.Height)
	}
	size.Width = Clamp(size.Width, b.minWidth, b.maxWidth)
	size.Height = Clamp(size.Height, b.minHeight, b.maxHeight)

	render := size
	if n.self != nil {
		render = n.self.ArrangeOverride(size)
	}
	n.arrangeCount++

	render.Width = math.Max(0, finite(render.Width))
	render.Height = math.Max(0, finite(render.Height))
	n.render = render
	n.bounds = Rect{
		X:      inner.X + alignOffset(n.hAlign, inner.Width, render.Width),
		Y:      inner.Y + alignOffset(n.vAlign, inner.Height, render.Height),
		Width:  render.Width,
		Height: render.Height,
	}

	n.arranging = false
	if n.pendingArrange {
		n.pendingArrange = false
		n.arrangeValid = false
	}
}

// InvalidateMeasure implements Element. Invalidation raised while the node
// (or an ancestor) is inside its own Measure is recorded and applied when
// that pass ends, so the running pass always terminates.
func (n *Node) InvalidateMeasure() {
	for node := n; node != nil; {
		if node.measuring {
			if !node.pendingMeasure {
				logger.Printf("%s: measure invalidated during measure, deferred", node.describe())
			}
			node.pendingMeasure = true
		} else {
			node.measureValid = false
		}
		node.invalidateArrangeOnly()
		if node.parent == nil {
			break
		}
		node = node.parent.Base()
	}
}

// InvalidateArrange marks the element and its ancestors for re-arrange
// without discarding DesiredSize.
func (n *Node) InvalidateArrange() {
	for node := n; node != nil; {
		node.invalidateArrangeOnly()
		if node.parent == nil {
			break
		}
		node = node.parent.Base()
	}
}

func (n *Node) invalidateArrangeOnly() {
	if n.arranging {
		n.pendingArrange = true
		return
	}
	n.arrangeValid = false
}

func (n *Node) describe() string {
	if n.name != "" {
		return n.name
	}
	return fmt.Sprintf("%T", n.owner)
}

// minMax is the effective size range of a node once an explicit
// width/height is folded into its min/max bounds.
type minMax struct {
	minWidth, maxWidth   float64
	minHeight, maxHeight float64
}

func (n *Node) minMax() minMax {
	m := minMax{
		minWidth:  n.minWidth,
		maxWidth:  n.maxWidth,
		minHeight: n.minHeight,
		maxHeight: n.maxHeight,
	}
	if n.widthSet {
		w := Clamp(n.width, n.minWidth, n.maxWidth)
		m.minWidth, m.maxWidth = w, w
	}
	if n.heightSet {
		h := Clamp(n.height, n.minHeight, n.maxHeight)
		m.minHeight, m.maxHeight = h, h
	}
	return m
}

func alignOffset(a Alignment, space, size float64) float64 {
	switch a {
	case Center:
		return (space - size) / 2
	case End:
		return space - size
	}
	return 0
}

// finite maps NaN and infinities to zero. Overrides must return finite
// sizes; this keeps a misbehaving leaf from poisoning its ancestors.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func finiteThickness(t Thickness) bool {
	return finite(t.Left) == t.Left && finite(t.Top) == t.Top &&
		finite(t.Right) == t.Right && finite(t.Bottom) == t.Bottom
}

func checkLength(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s %v: %w", what, v, ErrInvalidArgument)
	}
	return nil
}

func checkMax(what string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return fmt.Errorf("%s %v: %w", what, v, ErrInvalidArgument)
	}
	return nil
}
