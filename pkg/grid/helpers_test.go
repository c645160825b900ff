package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"lattice/pkg/layout"
)

// poker is a leaf whose content size is computed by fn. It records every
// size it was asked to measure against.
type poker struct {
	layout.Node
	fn   func(available layout.Size) layout.Size
	args []layout.Size
}

func newPoker(fn func(layout.Size) layout.Size) *poker {
	p := &poker{fn: fn}
	p.Init(p)
	return p
}

// content returns a leaf that wants w x h.
func content(w, h float64) *poker {
	return newPoker(func(layout.Size) layout.Size { return layout.NewSize(w, h) })
}

// sized returns a leaf with an explicit width and height.
func sized(t *testing.T, w, h float64) *poker {
	t.Helper()
	p := content(0, 0)
	if err := p.SetWidth(w); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	if err := p.SetHeight(h); err != nil {
		t.Fatalf("SetHeight: %v", err)
	}
	return p
}

func (p *poker) MeasureOverride(available layout.Size) layout.Size {
	p.args = append(p.args, available)
	return p.fn(available)
}

func (p *poker) ArrangeOverride(final layout.Size) layout.Size {
	return final
}

func (p *poker) lastArg() layout.Size {
	if len(p.args) == 0 {
		return layout.Size{}
	}
	return p.args[len(p.args)-1]
}

var approx = cmpopts.EquateApprox(0, 0.01)

func newGrid(t *testing.T, rows, cols []Length) *Grid {
	t.Helper()
	g := New()
	if err := g.AddRows(rows...); err != nil {
		t.Fatalf("AddRows: %v", err)
	}
	if err := g.AddColumns(cols...); err != nil {
		t.Fatalf("AddColumns: %v", err)
	}
	return g
}

func add(t *testing.T, g *Grid, e layout.Element, c Cell) {
	t.Helper()
	if err := Place(e, c); err != nil {
		t.Fatalf("Place(%+v): %v", c, err)
	}
	if err := g.Add(e); err != nil {
		t.Fatalf("Add: %v", err)
	}
}

func moveRow(t *testing.T, e layout.Element, row int) {
	t.Helper()
	if err := SetRow(e, row); err != nil {
		t.Fatalf("SetRow(%d): %v", row, err)
	}
}

// layoutToContent measures g without constraints and arranges it at its
// desired size, the way a host sizing a grid to content would.
func layoutToContent(g *Grid) {
	g.Measure(layout.Infinite)
	d := g.DesiredSize()
	g.Arrange(layout.NewRect(0, 0, d.Width, d.Height))
}

func rowHeights(g *Grid) []float64 {
	out := make([]float64, len(g.Rows()))
	for i, r := range g.Rows() {
		out[i] = r.ActualHeight()
	}
	return out
}

func columnWidths(g *Grid) []float64 {
	out := make([]float64, len(g.Columns()))
	for i, c := range g.Columns() {
		out[i] = c.ActualWidth()
	}
	return out
}

func checkLengths(t *testing.T, what string, got, want []float64) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", what, diff)
	}
}

func checkSize(t *testing.T, what string, got, want layout.Size) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", what, diff)
	}
}

func autos(n int) []Length {
	out := make([]Length, n)
	for i := range out {
		out[i] = Auto
	}
	return out
}

func diffRect(want, got layout.Rect) string {
	return cmp.Diff(want, got, approx)
}
