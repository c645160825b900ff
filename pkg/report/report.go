// Package report prints the resolved tracks and child slots of grids.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"lattice/pkg/grid"
	"lattice/pkg/layout"
)

// Track is one row or column.
type Track struct {
	Index    int
	Length   grid.Length
	Min, Max float64
	Actual   float64
}

// Slot is a child's placement and arranged rectangle.
type Slot struct {
	Name                string
	Row, Column         int
	RowSpan, ColumnSpan int
	Rect                layout.Rect
	Arranged            bool
}

// Grid is a snapshot of one grid after layout.
type Grid struct {
	Name       string
	Size       layout.Size
	Converged  bool
	Iterations int
	Rows       []Track
	Columns    []Track
	Slots      []Slot
}

// Build snapshots g.
func Build(g *grid.Grid) Grid {
	r := Grid{
		Name:       nameOf(g),
		Size:       g.RenderSize(),
		Converged:  g.Converged(),
		Iterations: g.Iterations(),
	}
	for i, d := range g.Rows() {
		r.Rows = append(r.Rows, Track{Index: i, Length: d.Height(), Min: d.MinHeight(), Max: d.MaxHeight(), Actual: d.ActualHeight()})
	}
	for i, d := range g.Columns() {
		r.Columns = append(r.Columns, Track{Index: i, Length: d.Width(), Min: d.MinWidth(), Max: d.MaxWidth(), Actual: d.ActualWidth()})
	}
	for _, child := range g.Children() {
		rect, ok := g.SlotOf(child)
		r.Slots = append(r.Slots, Slot{
			Name:       nameOf(child),
			Row:        grid.Row(child),
			Column:     grid.Column(child),
			RowSpan:    grid.RowSpan(child),
			ColumnSpan: grid.ColumnSpan(child),
			Rect:       rect,
			Arranged:   ok,
		})
	}
	return r
}

// nameOf returns the element name, or its type name when it has none.
func nameOf(e layout.Element) string {
	if n := e.Base().Name(); n != "" {
		return n
	}
	t := fmt.Sprintf("%T", e)
	if i := strings.LastIndex(t, "."); i >= 0 {
		t = t[i+1:]
	}
	return strings.ToLower(t)
}

func num(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// Printer writes grid reports. A styled printer uses rounded borders and
// colors when the writer supports them; a plain one uses ASCII only.
type Printer struct {
	w        io.Writer
	styled   bool
	renderer *lipgloss.Renderer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, styled bool) *Printer {
	return &Printer{w: w, styled: styled, renderer: lipgloss.NewRenderer(w)}
}

// Print writes one section per grid.
func (p *Printer) Print(grids ...Grid) error {
	for i, g := range grids {
		if i > 0 {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(p.w, p.section(g)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) section(g Grid) string {
	status := fmt.Sprintf("converged after %d passes", g.Iterations)
	switch {
	case g.Iterations == 0:
		status = "no star passes"
	case !g.Converged:
		status = fmt.Sprintf("not converged after %d passes", g.Iterations)
	}
	title := fmt.Sprintf("grid %s %sx%s (%s)", g.Name, num(g.Size.Width), num(g.Size.Height), status)

	parts := []string{p.title(title)}
	if len(g.Rows) > 0 {
		parts = append(parts, p.tracks("row", g.Rows))
	}
	if len(g.Columns) > 0 {
		parts = append(parts, p.tracks("column", g.Columns))
	}
	if len(g.Slots) > 0 {
		parts = append(parts, p.slots(g.Slots))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (p *Printer) title(s string) string {
	if !p.styled {
		return s
	}
	return p.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Render(s)
}

func (p *Printer) table(headers ...string) *table.Table {
	t := table.New().Headers(headers...)
	if !p.styled {
		return t.Border(lipgloss.ASCIIBorder())
	}
	header := p.renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := p.renderer.NewStyle().Padding(0, 1)
	return t.Border(lipgloss.RoundedBorder()).
		BorderStyle(p.renderer.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func (p *Printer) tracks(what string, ts []Track) string {
	t := p.table(what, "length", "min", "max", "actual")
	for _, tr := range ts {
		t.Row(strconv.Itoa(tr.Index), tr.Length.String(), num(tr.Min), num(tr.Max), num(tr.Actual))
	}
	return t.String()
}

func (p *Printer) slots(ss []Slot) string {
	t := p.table("child", "cell", "span", "slot")
	for _, s := range ss {
		slot := "-"
		if s.Arranged {
			slot = fmt.Sprintf("%s,%s %sx%s", num(s.Rect.X), num(s.Rect.Y), num(s.Rect.Width), num(s.Rect.Height))
		}
		t.Row(s.Name,
			fmt.Sprintf("%d,%d", s.Row, s.Column),
			fmt.Sprintf("%dx%d", s.RowSpan, s.ColumnSpan),
			slot)
	}
	return t.String()
}
