package controls

import (
	"errors"
	"testing"

	"lattice/pkg/grid"
	"lattice/pkg/layout"
	"lattice/pkg/text"
)

func bitmapText(s string) *TextBlock {
	t := NewTextBlock(s)
	t.SetMeasurer(text.NewMeasurer(text.FontConfig{}))
	return t
}

func TestRectangle_ExplicitSize(t *testing.T) {
	r, err := NewRectangle(40, 30)
	if err != nil {
		t.Fatal(err)
	}
	r.Measure(layout.Infinite)
	if got := r.DesiredSize(); got != layout.NewSize(40, 30) {
		t.Errorf("Expected 40x30, got %+v", got)
	}
	r.Arrange(layout.NewRect(0, 0, 100, 100))
	if got := r.RenderSize(); got != layout.NewSize(40, 30) {
		t.Errorf("Expected the explicit size to win over the slot, got %+v", got)
	}

	if _, err := NewRectangle(-1, 5); !errors.Is(err, layout.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestTextBlock_Measure(t *testing.T) {
	tb := bitmapText("Hello")
	tb.Measure(layout.Infinite)
	if got := tb.DesiredSize(); got != layout.NewSize(35, 13) {
		t.Errorf("Expected 35x13, got %+v", got)
	}

	tb.SetText("Hello, wide world")
	tb.SetWrap(true)
	tb.Measure(layout.NewSize(60, 200))
	if len(tb.Lines()) < 2 {
		t.Errorf("Expected wrapped lines, got %q", tb.Lines())
	}
	if got := tb.DesiredSize(); got.Width > 60 || got.Height != float64(len(tb.Lines()))*13 {
		t.Errorf("Unexpected wrapped size %+v for %q", got, tb.Lines())
	}
}

func TestContentControl(t *testing.T) {
	r, err := NewRectangle(20, 10)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewContentControl(r)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetMargin(layout.Uniform(2)); err != nil {
		t.Fatal(err)
	}
	c.Measure(layout.Infinite)
	if got := c.DesiredSize(); got != layout.NewSize(24, 14) {
		t.Errorf("Expected content plus margin, got %+v", got)
	}

	other, err := NewContentControl(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := other.SetContent(r); !errors.Is(err, layout.ErrAlreadyParented) {
		t.Errorf("Expected ErrAlreadyParented, got %v", err)
	}
	if err := c.SetContent(nil); err != nil || c.Content() != nil || r.Parent() != nil {
		t.Errorf("Expected SetContent(nil) to detach, got %v", err)
	}
	if err := other.SetContent(r); err != nil {
		t.Errorf("Expected detached content to be reusable, got %v", err)
	}
}

// A text cell in an auto column sizes the column to the text.
func TestTextInGrid(t *testing.T) {
	g := grid.New()
	if err := g.AddColumns(grid.Auto, grid.Star(1)); err != nil {
		t.Fatal(err)
	}
	label := bitmapText("Name:")
	if err := g.Add(label); err != nil {
		t.Fatal(err)
	}
	g.Measure(layout.NewSize(200, 50))
	g.Arrange(layout.NewRect(0, 0, 200, 50))
	if w := g.Columns()[0].ActualWidth(); w != 35 {
		t.Errorf("Expected the auto column to fit the label, got %v", w)
	}
	if w := g.Columns()[1].ActualWidth(); w != 165 {
		t.Errorf("Expected the star column to take the rest, got %v", w)
	}
}
