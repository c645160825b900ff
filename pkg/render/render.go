// Package render draws an arranged element tree into an image.
package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"lattice/pkg/controls"
	"lattice/pkg/grid"
	"lattice/pkg/layout"
)

// Renderer rasterizes element trees with gg.
type Renderer struct {
	context *gg.Context

	// GridLines draws the row and column boundaries of every grid.
	GridLines bool
	// Outlines draws the bounds of every element.
	Outlines bool
}

// NewRenderer creates a renderer with a width x height canvas.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// NewRendererForImage creates a renderer that draws into target.
func NewRendererForImage(target *image.RGBA) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target)}
}

var (
	gridLineColor = color.RGBA{R: 0x40, G: 0x80, B: 0xe0, A: 0xff}
	outlineColor  = color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0x80}
	borderColor   = color.Gray{Y: 0x40}
)

// Render clears the canvas and draws root and its descendants. root must
// have been arranged; elements are placed by their Bounds.
func (r *Renderer) Render(root layout.Element) {
	r.context.SetColor(color.White)
	r.context.Clear()
	r.draw(root, 0, 0)
}

// draw paints e whose parent's origin is at (ox, oy) on the canvas.
func (r *Renderer) draw(e layout.Element, ox, oy float64) {
	b := e.Base().Bounds().Translate(ox, oy)
	if b.Width <= 0 && b.Height <= 0 && len(children(e)) == 0 {
		return
	}

	switch el := e.(type) {
	case *controls.Rectangle:
		r.drawRectangle(el, b)
	case *controls.TextBlock:
		r.drawText(el, b)
	case *layout.Border:
		r.drawBorder(el, b)
	}

	for _, child := range children(e) {
		r.draw(child, b.X, b.Y)
	}

	if g, ok := e.(*grid.Grid); ok && r.GridLines {
		r.drawGridLines(g, b)
	}
	if r.Outlines {
		r.context.SetColor(outlineColor)
		r.context.SetLineWidth(1)
		r.context.DrawRectangle(b.X+0.5, b.Y+0.5, b.Width-1, b.Height-1)
		r.context.Stroke()
	}
}

func children(e layout.Element) []layout.Element {
	switch el := e.(type) {
	case interface{ Children() []layout.Element }:
		return el.Children()
	case interface{ Child() layout.Element }:
		if c := el.Child(); c != nil {
			return []layout.Element{c}
		}
	}
	return nil
}

func (r *Renderer) drawRectangle(el *controls.Rectangle, b layout.Rect) {
	if fill := el.Fill(); fill != nil {
		r.context.SetColor(fill)
		r.context.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		r.context.Fill()
	}
	if stroke := el.Stroke(); stroke != nil {
		r.context.SetColor(stroke)
		r.context.SetLineWidth(1)
		r.context.DrawRectangle(b.X+0.5, b.Y+0.5, b.Width-1, b.Height-1)
		r.context.Stroke()
	}
}

func (r *Renderer) drawText(el *controls.TextBlock, b layout.Rect) {
	m := el.Measurer()
	style := el.Style()
	lineHeight := m.LineHeight(style)

	r.context.Push()
	defer r.context.Pop()
	r.context.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	r.context.Clip()
	r.context.SetFontFace(m.Face(style))
	r.context.SetColor(el.Color())
	for i, line := range el.Lines() {
		r.context.DrawStringAnchored(line, b.X, b.Y+float64(i)*lineHeight, 0, 1)
	}
}

func (r *Renderer) drawBorder(el *layout.Border, b layout.Rect) {
	t := el.Thickness()
	r.context.SetColor(borderColor)
	edges := []layout.Rect{
		{X: b.X, Y: b.Y, Width: b.Width, Height: t.Top},
		{X: b.X, Y: b.Bottom() - t.Bottom, Width: b.Width, Height: t.Bottom},
		{X: b.X, Y: b.Y, Width: t.Left, Height: b.Height},
		{X: b.Right() - t.Right, Y: b.Y, Width: t.Right, Height: b.Height},
	}
	for _, edge := range edges {
		if edge.Width > 0 && edge.Height > 0 {
			r.context.DrawRectangle(edge.X, edge.Y, edge.Width, edge.Height)
		}
	}
	r.context.Fill()
}

func (r *Renderer) drawGridLines(g *grid.Grid, b layout.Rect) {
	r.context.Push()
	defer r.context.Pop()
	r.context.SetColor(gridLineColor)
	r.context.SetLineWidth(1)
	r.context.SetDash(4, 3)

	y := b.Y
	for _, row := range g.Rows() {
		y += row.ActualHeight()
		r.context.DrawLine(b.X, y, b.Right(), y)
	}
	x := b.X
	for _, col := range g.Columns() {
		x += col.ActualWidth()
		r.context.DrawLine(x, b.Y, x, b.Bottom())
	}
	r.context.Stroke()
}

// Image returns the rendered canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the canvas to a PNG file.
func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// EncodePNG writes the canvas as PNG to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}
