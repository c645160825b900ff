package layout

import "math"

// StackPanel lines children up along one axis. Along the stacking axis each
// child is offered unbounded space; across it, the panel's own constraint.
type StackPanel struct {
	Panel
	orientation Orientation
}

// NewStackPanel creates an empty stack panel.
func NewStackPanel(o Orientation) *StackPanel {
	s := &StackPanel{orientation: o}
	s.Init(s)
	return s
}

// Orientation returns the stacking axis.
func (s *StackPanel) Orientation() Orientation {
	return s.orientation
}

// SetOrientation changes the stacking axis.
func (s *StackPanel) SetOrientation(o Orientation) {
	if s.orientation == o {
		return
	}
	s.orientation = o
	s.InvalidateMeasure()
}

// MeasureOverride implements Overrides.
func (s *StackPanel) MeasureOverride(available Size) Size {
	childAvail := available
	if s.orientation == Vertical {
		childAvail.Height = math.Inf(1)
	} else {
		childAvail.Width = math.Inf(1)
	}

	var total Size
	for _, child := range s.children {
		child.Measure(childAvail)
		d := child.DesiredSize()
		if s.orientation == Vertical {
			total.Width = math.Max(total.Width, d.Width)
			total.Height += d.Height
		} else {
			total.Width += d.Width
			total.Height = math.Max(total.Height, d.Height)
		}
	}
	return total
}

// ArrangeOverride implements Overrides.
func (s *StackPanel) ArrangeOverride(final Size) Size {
	var offset float64
	for _, child := range s.children {
		d := child.DesiredSize()
		if s.orientation == Vertical {
			child.Arrange(Rect{X: 0, Y: offset, Width: final.Width, Height: d.Height})
			offset += d.Height
		} else {
			child.Arrange(Rect{X: offset, Y: 0, Width: d.Width, Height: final.Height})
			offset += d.Width
		}
	}
	return final
}
