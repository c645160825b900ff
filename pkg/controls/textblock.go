package controls

import (
	"image/color"
	"math"

	"lattice/pkg/layout"
	"lattice/pkg/text"
)

// TextBlock displays a string. With wrapping on, a bounded width breaks the
// text into several lines.
type TextBlock struct {
	layout.Node
	text     string
	style    text.Style
	wrap     bool
	color    color.Color
	measurer *text.Measurer

	lines []string
}

// NewTextBlock creates a text block using the default measurer.
func NewTextBlock(s string) *TextBlock {
	t := &TextBlock{
		text:     s,
		style:    text.DefaultStyle,
		color:    color.Black,
		measurer: text.Default,
	}
	t.Init(t)
	return t
}

// Text returns the displayed string.
func (t *TextBlock) Text() string { return t.text }

// SetText changes the displayed string.
func (t *TextBlock) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.InvalidateMeasure()
}

// Style returns the font style.
func (t *TextBlock) Style() text.Style { return t.style }

// SetStyle changes the font style.
func (t *TextBlock) SetStyle(s text.Style) {
	t.style = s
	t.InvalidateMeasure()
}

// SetWrap turns word wrapping on or off.
func (t *TextBlock) SetWrap(on bool) {
	t.wrap = on
	t.InvalidateMeasure()
}

// SetMeasurer replaces the measurer, mostly for tests.
func (t *TextBlock) SetMeasurer(m *text.Measurer) {
	t.measurer = m
	t.InvalidateMeasure()
}

// Measurer returns the measurer used for layout and drawing.
func (t *TextBlock) Measurer() *text.Measurer { return t.measurer }

// Color returns the text color.
func (t *TextBlock) Color() color.Color { return t.color }

// SetColor changes the text color.
func (t *TextBlock) SetColor(c color.Color) { t.color = c }

// Lines returns the lines computed by the last measure.
func (t *TextBlock) Lines() []string { return t.lines }

// MeasureOverride implements layout.Overrides.
func (t *TextBlock) MeasureOverride(available layout.Size) layout.Size {
	width := math.Inf(1)
	if t.wrap {
		width = available.Width
	}
	t.lines = t.measurer.Wrap(t.text, t.style, width)
	lineHeight := t.measurer.LineHeight(t.style)
	var size layout.Size
	for _, line := range t.lines {
		w, _ := t.measurer.Measure(line, t.style)
		size.Width = math.Max(size.Width, w)
	}
	size.Height = float64(len(t.lines)) * lineHeight
	return size
}

// ArrangeOverride implements layout.Overrides.
func (t *TextBlock) ArrangeOverride(final layout.Size) layout.Size {
	return final
}
