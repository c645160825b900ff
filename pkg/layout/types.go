package layout

import "math"

// Size represents dimensions (width and height).
// Either dimension may be +Inf when used as an available size.
type Size struct {
	Width  float64
	Height float64
}

// NewSize creates a Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Infinite is the available size used for intrinsic ("size to content") queries.
var Infinite = Size{Width: math.Inf(1), Height: math.Inf(1)}

// IsInfinite reports whether either dimension is unbounded.
func (s Size) IsInfinite() bool {
	return math.IsInf(s.Width, 1) || math.IsInf(s.Height, 1)
}

// Deflate shrinks the size by the given thickness. Infinite dimensions stay
// infinite and finite ones never go below zero.
func (s Size) Deflate(t Thickness) Size {
	return Size{
		Width:  math.Max(0, s.Width-t.Horizontal()),
		Height: math.Max(0, s.Height-t.Vertical()),
	}
}

// Inflate grows the size by the given thickness.
func (s Size) Inflate(t Thickness) Size {
	return Size{
		Width:  math.Max(0, s.Width+t.Horizontal()),
		Height: math.Max(0, s.Height+t.Vertical()),
	}
}

// Min returns the component-wise minimum of two sizes.
func (s Size) Min(o Size) Size {
	return Size{Width: math.Min(s.Width, o.Width), Height: math.Min(s.Height, o.Height)}
}

// Rect represents a rectangular region: the layout slot handed to a child
// during Arrange.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Deflate returns the rect inset by t, never producing negative dimensions.
func (r Rect) Deflate(t Thickness) Rect {
	return Rect{
		X:      r.X + t.Left,
		Y:      r.Y + t.Top,
		Width:  math.Max(0, r.Width-t.Horizontal()),
		Height: math.Max(0, r.Height-t.Vertical()),
	}
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Thickness holds four edge values, used for margins, padding and border widths.
type Thickness struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Uniform creates a Thickness with the same value on all sides.
func Uniform(v float64) Thickness {
	return Thickness{Left: v, Top: v, Right: v, Bottom: v}
}

// Horizontal returns Left + Right.
func (t Thickness) Horizontal() float64 {
	return t.Left + t.Right
}

// Vertical returns Top + Bottom.
func (t Thickness) Vertical() float64 {
	return t.Top + t.Bottom
}

// Orientation selects the stacking axis of a StackPanel.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Clamp restricts v to [lo, hi]. When the bounds conflict (hi < lo) the
// larger bound wins, so lo is returned.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// sanitize replaces NaN with +Inf and negative values with zero so that a
// bad available size from a caller degrades to an intrinsic query.
func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return math.Inf(1)
	}
	if v < 0 {
		return 0
	}
	return v
}
