package grid

import (
	"fmt"
	"math"

	"lattice/pkg/layout"
)

// definition is the state shared by row and column definitions.
type definition struct {
	owner  *Grid
	length Length
	min    float64
	max    float64
	actual float64
}

func newDefinition(l Length) definition {
	return definition{length: l, max: math.Inf(1)}
}

func (d *definition) setLength(l Length) error {
	if err := l.Validate(); err != nil {
		return err
	}
	d.length = l
	d.invalidate()
	return nil
}

func (d *definition) setMin(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("min %v: %w", v, layout.ErrInvalidArgument)
	}
	d.min = v
	d.invalidate()
	return nil
}

// setMax accepts +Inf. A max below min is allowed; min wins when clamping.
func (d *definition) setMax(v float64) error {
	if math.IsNaN(v) || v < 0 {
		return fmt.Errorf("max %v: %w", v, layout.ErrInvalidArgument)
	}
	d.max = v
	d.invalidate()
	return nil
}

func (d *definition) invalidate() {
	if d.owner != nil {
		d.owner.InvalidateMeasure()
	}
}

// RowDefinition describes one grid row.
type RowDefinition struct {
	definition
}

// NewRow creates a row definition with the given height.
// An invalid length falls back to Star(1); use SetHeight to get the error.
func NewRow(height Length) *RowDefinition {
	if height.Validate() != nil {
		height = Star(1)
	}
	return &RowDefinition{definition: newDefinition(height)}
}

// Height returns the declared height.
func (r *RowDefinition) Height() Length { return r.length }

// SetHeight changes the declared height.
func (r *RowDefinition) SetHeight(l Length) error { return r.setLength(l) }

// MinHeight returns the lower bound (default 0).
func (r *RowDefinition) MinHeight() float64 { return r.min }

// SetMinHeight sets the lower bound.
func (r *RowDefinition) SetMinHeight(v float64) error { return r.setMin(v) }

// MaxHeight returns the upper bound (default +Inf).
func (r *RowDefinition) MaxHeight() float64 { return r.max }

// SetMaxHeight sets the upper bound.
func (r *RowDefinition) SetMaxHeight(v float64) error { return r.setMax(v) }

// ActualHeight is the resolved height. After Measure it is the clamped
// length for pixel rows and +Inf for Auto and Star rows; Arrange resolves
// every row to a finite value.
func (r *RowDefinition) ActualHeight() float64 { return r.actual }

// ColumnDefinition describes one grid column.
type ColumnDefinition struct {
	definition
}

// NewColumn creates a column definition with the given width.
// An invalid length falls back to Star(1); use SetWidth to get the error.
func NewColumn(width Length) *ColumnDefinition {
	if width.Validate() != nil {
		width = Star(1)
	}
	return &ColumnDefinition{definition: newDefinition(width)}
}

// Width returns the declared width.
func (c *ColumnDefinition) Width() Length { return c.length }

// SetWidth changes the declared width.
func (c *ColumnDefinition) SetWidth(l Length) error { return c.setLength(l) }

// MinWidth returns the lower bound (default 0).
func (c *ColumnDefinition) MinWidth() float64 { return c.min }

// SetMinWidth sets the lower bound.
func (c *ColumnDefinition) SetMinWidth(v float64) error { return c.setMin(v) }

// MaxWidth returns the upper bound (default +Inf).
func (c *ColumnDefinition) MaxWidth() float64 { return c.max }

// SetMaxWidth sets the upper bound.
func (c *ColumnDefinition) SetMaxWidth(v float64) error { return c.setMax(v) }

// ActualWidth is the resolved width; see RowDefinition.ActualHeight.
func (c *ColumnDefinition) ActualWidth() float64 { return c.actual }
