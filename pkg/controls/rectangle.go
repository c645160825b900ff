// Package controls provides leaf elements: shapes, text and a single-child
// content host.
package controls

import (
	"image/color"

	"lattice/pkg/layout"
)

// Rectangle is a filled box. It has no content of its own, so without an
// explicit Width and Height it measures to zero and stretches to its slot.
type Rectangle struct {
	layout.Node
	fill   color.Color
	stroke color.Color
}

// NewRectangle creates a rectangle with an explicit size.
func NewRectangle(width, height float64) (*Rectangle, error) {
	r := &Rectangle{fill: color.Gray{Y: 0xc0}}
	r.Init(r)
	if err := r.SetWidth(width); err != nil {
		return nil, err
	}
	if err := r.SetHeight(height); err != nil {
		return nil, err
	}
	return r, nil
}

// Fill returns the fill color.
func (r *Rectangle) Fill() color.Color { return r.fill }

// SetFill changes the fill color.
func (r *Rectangle) SetFill(c color.Color) { r.fill = c }

// Stroke returns the outline color, or nil.
func (r *Rectangle) Stroke() color.Color { return r.stroke }

// SetStroke changes the outline color. nil disables the outline.
func (r *Rectangle) SetStroke(c color.Color) { r.stroke = c }
