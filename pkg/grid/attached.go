package grid

import (
	"fmt"

	"lattice/pkg/layout"
)

func validateIndex(v int) error {
	if v < 0 {
		return fmt.Errorf("index %d: %w", v, layout.ErrInvalidArgument)
	}
	return nil
}

func validateSpan(v int) error {
	if v < 1 {
		return fmt.Errorf("span %d: %w", v, layout.ErrInvalidArgument)
	}
	return nil
}

// Cell placement of grid children. Values are kept in a side table keyed by
// the child, so any element can be placed in a grid.
var (
	RowProperty        = layout.NewAttachedProperty("Grid.Row", 0, validateIndex)
	ColumnProperty     = layout.NewAttachedProperty("Grid.Column", 0, validateIndex)
	RowSpanProperty    = layout.NewAttachedProperty("Grid.RowSpan", 1, validateSpan)
	ColumnSpanProperty = layout.NewAttachedProperty("Grid.ColumnSpan", 1, validateSpan)
)

// SetRow places e in row v (v >= 0).
func SetRow(e layout.Element, v int) error { return RowProperty.Set(e, v) }

// Row returns the row of e (default 0).
func Row(e layout.Element) int { return RowProperty.Get(e) }

// SetColumn places e in column v (v >= 0).
func SetColumn(e layout.Element, v int) error { return ColumnProperty.Set(e, v) }

// Column returns the column of e (default 0).
func Column(e layout.Element) int { return ColumnProperty.Get(e) }

// SetRowSpan makes e span v rows (v >= 1).
func SetRowSpan(e layout.Element, v int) error { return RowSpanProperty.Set(e, v) }

// RowSpan returns the row span of e (default 1).
func RowSpan(e layout.Element) int { return RowSpanProperty.Get(e) }

// SetColumnSpan makes e span v columns (v >= 1).
func SetColumnSpan(e layout.Element, v int) error { return ColumnSpanProperty.Set(e, v) }

// ColumnSpan returns the column span of e (default 1).
func ColumnSpan(e layout.Element) int { return ColumnSpanProperty.Get(e) }

// Cell is a placement for Place.
type Cell struct {
	Row, Column         int
	RowSpan, ColumnSpan int
}

// At returns a single-cell placement.
func At(row, column int) Cell {
	return Cell{Row: row, Column: column, RowSpan: 1, ColumnSpan: 1}
}

// Spanning returns c with the given spans.
func (c Cell) Spanning(rows, columns int) Cell {
	c.RowSpan, c.ColumnSpan = rows, columns
	return c
}

// Place sets all four placement properties of e. Every value is validated
// before any is stored, so an invalid cell leaves e unchanged.
func Place(e layout.Element, c Cell) error {
	for _, err := range []error{
		validateIndex(c.Row), validateIndex(c.Column),
		validateSpan(c.RowSpan), validateSpan(c.ColumnSpan),
	} {
		if err != nil {
			return err
		}
	}
	if err := SetRow(e, c.Row); err != nil {
		return err
	}
	if err := SetColumn(e, c.Column); err != nil {
		return err
	}
	if err := SetRowSpan(e, c.RowSpan); err != nil {
		return err
	}
	return SetColumnSpan(e, c.ColumnSpan)
}
