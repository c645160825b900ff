// Package grid implements a panel that lays its children out in rows and
// columns. Each track is a fixed pixel length, sized to its content (Auto),
// or a weighted share of the space left over (Star).
package grid

import (
	"fmt"

	"lattice/pkg/layout"
)

// MaxMeasureIterations bounds how many times a measure pass re-measures the
// children of star tracks while Auto tracks keep changing size.
const MaxMeasureIterations = 3

// Grid is a panel with row and column definitions. Children are placed with
// SetRow, SetColumn, SetRowSpan and SetColumnSpan (or Place). Placements
// outside the defined tracks are clamped to the last row/column and spans
// are cut at the grid edge.
type Grid struct {
	layout.Panel

	rows []*RowDefinition
	cols []*ColumnDefinition

	rowTracks *allocator
	colTracks *allocator

	slots      map[layout.Element]layout.Rect
	converged  bool
	iterations int
}

// New returns an empty grid. With no definitions it behaves as a single
// star row and column.
func New() *Grid {
	g := &Grid{slots: make(map[layout.Element]layout.Rect)}
	g.Init(g)
	return g
}

// AddRow appends row definitions. A definition that already belongs to a
// grid is rejected and nothing is added.
func (g *Grid) AddRow(defs ...*RowDefinition) error {
	shared := make([]*definition, len(defs))
	for i, d := range defs {
		if d != nil {
			shared[i] = &d.definition
		}
	}
	if err := adopt(shared, "row"); err != nil {
		return err
	}
	for _, d := range defs {
		d.owner = g
	}
	g.rows = append(g.rows, defs...)
	g.InvalidateMeasure()
	return nil
}

// AddRows appends one row per length.
func (g *Grid) AddRows(lengths ...Length) error {
	defs := make([]*RowDefinition, 0, len(lengths))
	for _, l := range lengths {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", len(g.rows)+len(defs), err)
		}
		defs = append(defs, NewRow(l))
	}
	return g.AddRow(defs...)
}

// InsertRow places d at index i.
func (g *Grid) InsertRow(i int, d *RowDefinition) error {
	if i < 0 || i > len(g.rows) {
		return fmt.Errorf("insert row at %d of %d: %w", i, len(g.rows), layout.ErrInvalidArgument)
	}
	if d == nil {
		return fmt.Errorf("nil row definition: %w", layout.ErrInvalidArgument)
	}
	if err := adopt([]*definition{&d.definition}, "row"); err != nil {
		return err
	}
	d.owner = g
	g.rows = append(g.rows, nil)
	copy(g.rows[i+1:], g.rows[i:])
	g.rows[i] = d
	g.InvalidateMeasure()
	return nil
}

// RemoveRow detaches the row at index i.
func (g *Grid) RemoveRow(i int) error {
	if i < 0 || i >= len(g.rows) {
		return fmt.Errorf("remove row %d of %d: %w", i, len(g.rows), layout.ErrInvalidArgument)
	}
	g.rows[i].owner = nil
	g.rows = append(g.rows[:i], g.rows[i+1:]...)
	g.InvalidateMeasure()
	return nil
}

// ClearRows removes every row definition.
func (g *Grid) ClearRows() {
	for _, d := range g.rows {
		d.owner = nil
	}
	g.rows = nil
	g.InvalidateMeasure()
}

// Rows returns the row definitions. The slice must not be modified.
func (g *Grid) Rows() []*RowDefinition {
	return g.rows
}

// AddColumn appends column definitions.
func (g *Grid) AddColumn(defs ...*ColumnDefinition) error {
	shared := make([]*definition, len(defs))
	for i, d := range defs {
		if d != nil {
			shared[i] = &d.definition
		}
	}
	if err := adopt(shared, "column"); err != nil {
		return err
	}
	for _, d := range defs {
		d.owner = g
	}
	g.cols = append(g.cols, defs...)
	g.InvalidateMeasure()
	return nil
}

// AddColumns appends one column per length.
func (g *Grid) AddColumns(lengths ...Length) error {
	defs := make([]*ColumnDefinition, 0, len(lengths))
	for _, l := range lengths {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("column %d: %w", len(g.cols)+len(defs), err)
		}
		defs = append(defs, NewColumn(l))
	}
	return g.AddColumn(defs...)
}

// InsertColumn places d at index i.
func (g *Grid) InsertColumn(i int, d *ColumnDefinition) error {
	if i < 0 || i > len(g.cols) {
		return fmt.Errorf("insert column at %d of %d: %w", i, len(g.cols), layout.ErrInvalidArgument)
	}
	if d == nil {
		return fmt.Errorf("nil column definition: %w", layout.ErrInvalidArgument)
	}
	if err := adopt([]*definition{&d.definition}, "column"); err != nil {
		return err
	}
	d.owner = g
	g.cols = append(g.cols, nil)
	copy(g.cols[i+1:], g.cols[i:])
	g.cols[i] = d
	g.InvalidateMeasure()
	return nil
}

// RemoveColumn detaches the column at index i.
func (g *Grid) RemoveColumn(i int) error {
	if i < 0 || i >= len(g.cols) {
		return fmt.Errorf("remove column %d of %d: %w", i, len(g.cols), layout.ErrInvalidArgument)
	}
	g.cols[i].owner = nil
	g.cols = append(g.cols[:i], g.cols[i+1:]...)
	g.InvalidateMeasure()
	return nil
}

// ClearColumns removes every column definition.
func (g *Grid) ClearColumns() {
	for _, d := range g.cols {
		d.owner = nil
	}
	g.cols = nil
	g.InvalidateMeasure()
}

// Columns returns the column definitions. The slice must not be modified.
func (g *Grid) Columns() []*ColumnDefinition {
	return g.cols
}

// SlotOf returns the cell rectangle e was arranged into, in grid
// coordinates, and whether e has been arranged by this grid.
func (g *Grid) SlotOf(e layout.Element) (layout.Rect, bool) {
	r, ok := g.slots[e]
	return r, ok
}

// Converged reports whether the last measure pass settled before hitting
// MaxMeasureIterations.
func (g *Grid) Converged() bool {
	return g.converged
}

// Iterations returns how many star passes the last measure ran.
func (g *Grid) Iterations() int {
	return g.iterations
}

// adopt checks that defs can all be attached: none nil, none owned by a
// grid, no duplicates.
func adopt(defs []*definition, kind string) error {
	seen := make(map[*definition]bool, len(defs))
	for _, d := range defs {
		if d == nil {
			return fmt.Errorf("nil %s definition: %w", kind, layout.ErrInvalidArgument)
		}
		if d.owner != nil || seen[d] {
			return fmt.Errorf("%s definition: %w", kind, layout.ErrAlreadyParented)
		}
		seen[d] = true
	}
	return nil
}
