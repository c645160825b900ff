package grid

import "lattice/pkg/layout"

// ArrangeOverride implements layout.Overrides. Pixel and auto tracks keep
// the lengths found by Measure; star tracks share whatever is left of final.
func (g *Grid) ArrangeOverride(final layout.Size) layout.Size {
	if g.rowTracks == nil || g.colTracks == nil {
		g.MeasureOverride(final)
	}
	heights := g.rowTracks.resolve(final.Height)
	widths := g.colTracks.resolve(final.Width)
	for i, r := range g.rows {
		r.actual = heights[i]
	}
	for i, c := range g.cols {
		c.actual = widths[i]
	}

	ys := offsets(heights)
	xs := offsets(widths)
	clear(g.slots)
	for _, c := range g.cells(len(heights), len(widths)) {
		slot := layout.Rect{
			X:      xs[c.col],
			Y:      ys[c.row],
			Width:  xs[c.colTo+1] - xs[c.col],
			Height: ys[c.rowTo+1] - ys[c.row],
		}
		c.child.Arrange(slot)
		g.slots[c.child] = slot
	}
	return final
}

// offsets returns the start of every track plus the end of the last one.
func offsets(lengths []float64) []float64 {
	out := make([]float64, len(lengths)+1)
	for i, l := range lengths {
		out[i+1] = out[i] + l
	}
	return out
}
