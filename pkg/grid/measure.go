package grid

import (
	"math"
	"sort"

	"lattice/pkg/layout"
)

// cell is a child's placement after clamping to the defined tracks.
type cell struct {
	child      layout.Element
	row, rowTo int // inclusive
	col, colTo int
}

func (c cell) span() int {
	return (c.rowTo - c.row + 1) + (c.colTo - c.col + 1)
}

func clampIndex(i, n int) int {
	if i > n-1 {
		return n - 1
	}
	return i
}

// cells resolves the placement of every child. Indices past the last track
// land on the last track; spans stop at the grid edge.
func (g *Grid) cells(rows, cols int) []cell {
	out := make([]cell, 0, g.Len())
	for _, child := range g.Children() {
		r := clampIndex(Row(child), rows)
		c := clampIndex(Column(child), cols)
		out = append(out, cell{
			child: child,
			row:   r,
			rowTo: r + min(RowSpan(child), rows-r) - 1,
			col:   c,
			colTo: c + min(ColumnSpan(child), cols-c) - 1,
		})
	}
	return out
}

func (g *Grid) rowSegments() []segment {
	if len(g.rows) == 0 {
		return []segment{newSegment(Star(1), 0, math.Inf(1))}
	}
	segs := make([]segment, len(g.rows))
	for i, r := range g.rows {
		segs[i] = newSegment(r.length, r.min, r.max)
	}
	return segs
}

func (g *Grid) columnSegments() []segment {
	if len(g.cols) == 0 {
		return []segment{newSegment(Star(1), 0, math.Inf(1))}
	}
	segs := make([]segment, len(g.cols))
	for i, c := range g.cols {
		segs[i] = newSegment(c.length, c.min, c.max)
	}
	return segs
}

// MeasureOverride implements layout.Overrides.
//
// Children that touch no star track are measured first, smaller spans
// before larger ones, and size the auto tracks. Children touching a star
// track are then measured against provisional star lengths. Their auto
// contributions can change the space left for stars, so that second step
// repeats, up to MaxMeasureIterations times, until the auto and pixel
// totals stop changing.
func (g *Grid) MeasureOverride(available layout.Size) layout.Size {
	g.rowTracks = newAllocator(g.rowSegments())
	g.colTracks = newAllocator(g.columnSegments())
	g.publishMeasured()

	var plain, starred []cell
	for _, c := range g.cells(len(g.rowTracks.tracks), len(g.colTracks.tracks)) {
		if g.rowTracks.spans(c.row, c.rowTo, StarUnit) || g.colTracks.spans(c.col, c.colTo, StarUnit) {
			starred = append(starred, c)
		} else {
			plain = append(plain, c)
		}
	}
	bySpan(plain)
	bySpan(starred)

	g.measureCells(plain)
	g.converged, g.iterations = true, 0
	if len(starred) == 0 {
		return g.desiredSize()
	}

	rowBase, colBase := g.rowTracks.save(), g.colTracks.save()
	rowFixed, colFixed := g.rowTracks.nonStarTotal(), g.colTracks.nonStarTotal()
	g.converged = false
	for g.iterations < MaxMeasureIterations {
		g.iterations++
		g.rowTracks.restore(rowBase)
		g.colTracks.restore(colBase)
		g.rowTracks.provisionStarsFrom(available.Height, rowFixed)
		g.colTracks.provisionStarsFrom(available.Width, colFixed)

		g.measureCells(starred)

		rowNext, colNext := g.rowTracks.nonStarTotal(), g.colTracks.nonStarTotal()
		if settled(g.rowTracks, available.Height, rowFixed, rowNext) &&
			settled(g.colTracks, available.Width, colFixed, colNext) {
			g.converged = true
			break
		}
		rowFixed, colFixed = rowNext, colNext
	}
	if !g.converged {
		layout.Logf("%s: track sizes still changing after %d passes", describe(g), g.iterations)
	}
	return g.desiredSize()
}

// measureCells measures cs in order, then feeds their sizes to the tracks.
func (g *Grid) measureCells(cs []cell) {
	var rows, cols contributions
	for _, c := range cs {
		c.child.Measure(layout.Size{
			Width:  g.colTracks.constraint(c.col, c.colTo),
			Height: g.rowTracks.constraint(c.row, c.rowTo),
		})
		d := c.child.DesiredSize()
		cols.push(c.col, c.colTo, d.Width)
		rows.push(c.row, c.rowTo, d.Height)
	}
	cols.flush(g.colTracks)
	rows.flush(g.rowTracks)
}

// settled reports whether the star lengths handed out on an axis still hold.
// Star lengths only depend on the other tracks when the axis has stars and
// a bounded length.
func settled(a *allocator, available, before, after float64) bool {
	if !a.hasStars() || math.IsInf(available, 1) {
		return true
	}
	return math.Abs(before-after) <= epsilon
}

// bySpan orders cells by total span, keeping insertion order among equals.
func bySpan(cs []cell) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].span() < cs[j].span()
	})
}

// publishMeasured sets ActualWidth/ActualHeight as known after measuring:
// pixel tracks have their length, the others are unresolved until Arrange.
func (g *Grid) publishMeasured() {
	for i, r := range g.rows {
		r.actual = measuredActual(g.rowTracks.tracks[i])
	}
	for i, c := range g.cols {
		c.actual = measuredActual(g.colTracks.tracks[i])
	}
}

func measuredActual(s segment) float64 {
	if s.unit == Pixel {
		return s.desired
	}
	return math.Inf(1)
}

func (g *Grid) desiredSize() layout.Size {
	return layout.Size{Width: g.colTracks.total(), Height: g.rowTracks.total()}
}

func describe(g *Grid) string {
	if g.Name() != "" {
		return g.Name()
	}
	return "grid"
}
