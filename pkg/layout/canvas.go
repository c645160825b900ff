package layout

import (
	"fmt"
	"math"
)

func validateOffset(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("offset %v: %w", v, ErrInvalidArgument)
	}
	return nil
}

var (
	// CanvasLeft is the x offset of a Canvas child.
	CanvasLeft = NewAttachedProperty[float64]("Canvas.Left", 0, validateOffset)
	// CanvasTop is the y offset of a Canvas child.
	CanvasTop = NewAttachedProperty[float64]("Canvas.Top", 0, validateOffset)
)

// Canvas places children at absolute offsets and never constrains them:
// children are measured with an infinite size and arranged at their desired
// size. A canvas reports a desired size of zero regardless of its children.
type Canvas struct {
	Panel
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	c := &Canvas{}
	c.Init(c)
	return c
}

// MeasureOverride implements Overrides.
func (c *Canvas) MeasureOverride(available Size) Size {
	for _, child := range c.children {
		child.Measure(Infinite)
	}
	return Size{}
}

// ArrangeOverride implements Overrides.
func (c *Canvas) ArrangeOverride(final Size) Size {
	for _, child := range c.children {
		d := child.DesiredSize()
		child.Arrange(Rect{X: CanvasLeft.Get(child), Y: CanvasTop.Get(child), Width: d.Width, Height: d.Height})
	}
	return final
}
