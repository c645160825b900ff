package layout

import "fmt"

// Border decorates a single child with padding and a border thickness.
// Both are subtracted from the space offered to the child.
type Border struct {
	Node
	child     Element
	padding   Thickness
	thickness Thickness
}

// NewBorder creates an empty border.
func NewBorder() *Border {
	b := &Border{}
	b.Init(b)
	return b
}

// Child returns the decorated element, or nil.
func (b *Border) Child() Element {
	return b.child
}

// SetChild replaces the decorated element. A nil child clears it.
func (b *Border) SetChild(child Element) error {
	if isNil(child) {
		child = nil
	} else if child == b.child {
		return nil
	} else if child.Base().parent != nil {
		return fmt.Errorf("%s: %w", child.Base().describe(), ErrAlreadyParented)
	}
	if b.child != nil {
		b.child.Base().parent = nil
		forgetAttached(b.child)
	}
	b.child = child
	if child != nil {
		child.Base().parent = b
	}
	b.InvalidateMeasure()
	return nil
}

// SetPadding sets the inner padding.
func (b *Border) SetPadding(t Thickness) error {
	if !finiteThickness(t) || t.Left < 0 || t.Top < 0 || t.Right < 0 || t.Bottom < 0 {
		return fmt.Errorf("padding %v: %w", t, ErrInvalidArgument)
	}
	b.padding = t
	b.InvalidateMeasure()
	return nil
}

// Padding returns the inner padding.
func (b *Border) Padding() Thickness {
	return b.padding
}

// SetThickness sets the border stroke widths.
func (b *Border) SetThickness(t Thickness) error {
	if !finiteThickness(t) || t.Left < 0 || t.Top < 0 || t.Right < 0 || t.Bottom < 0 {
		return fmt.Errorf("border thickness %v: %w", t, ErrInvalidArgument)
	}
	b.thickness = t
	b.InvalidateMeasure()
	return nil
}

// Thickness returns the border stroke widths.
func (b *Border) Thickness() Thickness {
	return b.thickness
}

func (b *Border) chrome() Thickness {
	return Thickness{
		Left:   b.padding.Left + b.thickness.Left,
		Top:    b.padding.Top + b.thickness.Top,
		Right:  b.padding.Right + b.thickness.Right,
		Bottom: b.padding.Bottom + b.thickness.Bottom,
	}
}

// MeasureOverride implements Overrides.
func (b *Border) MeasureOverride(available Size) Size {
	chrome := b.chrome()
	var desired Size
	if b.child != nil {
		b.child.Measure(available.Deflate(chrome))
		desired = b.child.DesiredSize()
	}
	return desired.Inflate(chrome)
}

// ArrangeOverride implements Overrides.
func (b *Border) ArrangeOverride(final Size) Size {
	if b.child != nil {
		b.child.Arrange(Rect{Width: final.Width, Height: final.Height}.Deflate(b.chrome()))
	}
	return final
}
