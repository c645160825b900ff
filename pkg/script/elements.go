package script

import (
	"fmt"
	"math"

	"github.com/dop251/goja"

	"lattice/pkg/controls"
	"lattice/pkg/grid"
	"lattice/pkg/layout"
	"lattice/pkg/text"
)

// elementAccessor implements goja.DynamicObject for any element. Properties
// shared by all elements come first; the rest depend on the concrete type.
type elementAccessor struct {
	engine *Engine
	el     layout.Element
}

var commonKeys = []string{
	"kind", "name", "parent",
	"width", "height", "minWidth", "maxWidth", "minHeight", "maxHeight",
	"margin", "hAlign", "vAlign",
	"desiredWidth", "desiredHeight", "actualWidth", "actualHeight",
	"bounds", "slot", "measureCount", "arrangeCount",
	"measure", "arrange", "layout", "place", "invalidate",
}

func kind(el layout.Element) string {
	switch el.(type) {
	case *grid.Grid:
		return "grid"
	case *layout.Canvas:
		return "canvas"
	case *layout.StackPanel:
		return "stack"
	case *layout.Border:
		return "border"
	case *controls.ContentControl:
		return "content"
	case *controls.Rectangle:
		return "rect"
	case *controls.TextBlock:
		return "text"
	}
	return "element"
}

func (a *elementAccessor) vm() *goja.Runtime {
	return a.engine.vm
}

func (a *elementAccessor) fn(f func(call goja.FunctionCall) goja.Value) goja.Value {
	return a.vm().ToValue(f)
}

func (a *elementAccessor) rect(r layout.Rect) goja.Value {
	return a.vm().ToValue(map[string]any{
		"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height,
	})
}

func (a *elementAccessor) Get(key string) goja.Value {
	if v, ok := a.getCommon(key); ok {
		return v
	}
	var v goja.Value
	switch el := a.el.(type) {
	case *grid.Grid:
		v = a.getGrid(el, key)
	case *layout.Canvas:
		v = a.getPanel(&el.Panel, key)
	case *layout.StackPanel:
		if key == "orientation" {
			return a.vm().ToValue(orientationName(el.Orientation()))
		}
		v = a.getPanel(&el.Panel, key)
	case *layout.Border:
		switch key {
		case "child":
			return a.engine.proxy(el.Child())
		case "padding":
			return a.vm().ToValue(thicknessValue(el.Padding()))
		case "thickness":
			return a.vm().ToValue(thicknessValue(el.Thickness()))
		}
	case *controls.ContentControl:
		if key == "content" {
			return a.engine.proxy(el.Content())
		}
	case *controls.Rectangle:
		switch key {
		case "fill":
			return a.vm().ToValue(colorValue(el.Fill()))
		case "stroke":
			return a.vm().ToValue(colorValue(el.Stroke()))
		}
	case *controls.TextBlock:
		switch key {
		case "text":
			return a.vm().ToValue(el.Text())
		case "fontSize":
			return a.vm().ToValue(el.Style().Size)
		case "bold":
			return a.vm().ToValue(el.Style().Bold)
		case "mono":
			return a.vm().ToValue(el.Style().Mono)
		case "color":
			return a.vm().ToValue(colorValue(el.Color()))
		case "lines":
			return a.vm().ToValue(el.Lines())
		}
	}
	if v == nil {
		return goja.Undefined()
	}
	return v
}

func (a *elementAccessor) getCommon(key string) (goja.Value, bool) {
	n := a.el.Base()
	vm := a.vm()
	switch key {
	case "kind":
		return vm.ToValue(kind(a.el)), true
	case "name":
		return vm.ToValue(n.Name()), true
	case "parent":
		return a.engine.proxy(n.Parent()), true
	case "width":
		if w, ok := n.Width(); ok {
			return vm.ToValue(w), true
		}
		return goja.Undefined(), true
	case "height":
		if h, ok := n.Height(); ok {
			return vm.ToValue(h), true
		}
		return goja.Undefined(), true
	case "margin":
		return vm.ToValue(thicknessValue(n.Margin())), true
	case "hAlign":
		h, _ := n.Alignment()
		return vm.ToValue(h.String()), true
	case "vAlign":
		_, v := n.Alignment()
		return vm.ToValue(v.String()), true
	case "desiredWidth":
		return vm.ToValue(n.DesiredSize().Width), true
	case "desiredHeight":
		return vm.ToValue(n.DesiredSize().Height), true
	case "actualWidth":
		return vm.ToValue(n.ActualWidth()), true
	case "actualHeight":
		return vm.ToValue(n.ActualHeight()), true
	case "bounds":
		return a.rect(n.Bounds()), true
	case "slot":
		return a.rect(n.LayoutSlot()), true
	case "measureCount":
		return vm.ToValue(n.MeasureCount()), true
	case "arrangeCount":
		return vm.ToValue(n.ArrangeCount()), true
	case "measure":
		// measure(width, height); a missing dimension is unbounded.
		return a.fn(func(call goja.FunctionCall) goja.Value {
			a.el.Measure(layout.NewSize(
				number(call.Argument(0), math.Inf(1)),
				number(call.Argument(1), math.Inf(1)),
			))
			return a.engine.proxy(a.el)
		}), true
	case "arrange":
		// arrange(width, height) or arrange(x, y, width, height).
		return a.fn(func(call goja.FunctionCall) goja.Value {
			a.el.Arrange(arrangeRect(call))
			return a.engine.proxy(a.el)
		}), true
	case "layout":
		// layout(width, height) measures and arranges at the origin.
		return a.fn(func(call goja.FunctionCall) goja.Value {
			w, h := number(call.Argument(0), 0), number(call.Argument(1), 0)
			a.el.Measure(layout.NewSize(w, h))
			a.el.Arrange(layout.NewRect(0, 0, w, h))
			return a.engine.proxy(a.el)
		}), true
	case "place":
		// place(row, column, rowSpan, columnSpan)
		return a.fn(func(call goja.FunctionCall) goja.Value {
			c := grid.At(integer(call.Argument(0), 0), integer(call.Argument(1), 0)).
				Spanning(integer(call.Argument(2), 1), integer(call.Argument(3), 1))
			if err := grid.Place(a.el, c); err != nil {
				a.engine.throw(err)
			}
			return a.engine.proxy(a.el)
		}), true
	case "invalidate":
		return a.fn(func(goja.FunctionCall) goja.Value {
			a.el.InvalidateMeasure()
			return goja.Undefined()
		}), true
	}
	return nil, false
}

func arrangeRect(call goja.FunctionCall) layout.Rect {
	if len(call.Arguments) >= 4 {
		return layout.NewRect(
			number(call.Argument(0), 0), number(call.Argument(1), 0),
			number(call.Argument(2), 0), number(call.Argument(3), 0),
		)
	}
	return layout.NewRect(0, 0, number(call.Argument(0), 0), number(call.Argument(1), 0))
}

// getPanel serves the child list of canvas and stack panels. Grid adds
// placement on top of it.
func (a *elementAccessor) getPanel(p *layout.Panel, key string) goja.Value {
	switch key {
	case "count":
		return a.vm().ToValue(p.Len())
	case "children":
		children := p.Children()
		vs := make([]any, len(children))
		for i, c := range children {
			vs[i] = a.engine.proxy(c)
		}
		return a.vm().NewArray(vs...)
	case "add":
		// add(child, options) returns the child.
		return a.fn(func(call goja.FunctionCall) goja.Value {
			child := a.engine.element(call.Argument(0))
			if err := a.position(child, call.Argument(1)); err != nil {
				a.engine.throw(err)
			}
			if err := p.Add(child); err != nil {
				a.engine.throw(err)
			}
			return call.Argument(0)
		})
	case "remove":
		return a.fn(func(call goja.FunctionCall) goja.Value {
			return a.vm().ToValue(p.Remove(a.engine.element(call.Argument(0))))
		})
	}
	return nil
}

// position applies the options object given to add: {row, column, rowSpan,
// columnSpan} for a grid, {left, top} for a canvas.
func (a *elementAccessor) position(child layout.Element, opts goja.Value) error {
	if child == nil {
		return layout.ErrNilChild
	}
	if missing(opts) {
		return nil
	}
	o := opts.ToObject(a.vm())
	switch a.el.(type) {
	case *grid.Grid:
		c := grid.At(integer(o.Get("row"), grid.Row(child)), integer(o.Get("column"), grid.Column(child))).
			Spanning(integer(o.Get("rowSpan"), grid.RowSpan(child)), integer(o.Get("columnSpan"), grid.ColumnSpan(child)))
		return grid.Place(child, c)
	case *layout.Canvas:
		if err := layout.CanvasLeft.Set(child, number(o.Get("left"), layout.CanvasLeft.Get(child))); err != nil {
			return err
		}
		return layout.CanvasTop.Set(child, number(o.Get("top"), layout.CanvasTop.Get(child)))
	}
	return nil
}

func (a *elementAccessor) getGrid(g *grid.Grid, key string) goja.Value {
	vm := a.vm()
	switch key {
	case "rowCount":
		return vm.ToValue(len(g.Rows()))
	case "columnCount":
		return vm.ToValue(len(g.Columns()))
	case "converged":
		return vm.ToValue(g.Converged())
	case "iterations":
		return vm.ToValue(g.Iterations())
	case "rowHeights":
		return a.fn(func(goja.FunctionCall) goja.Value {
			var hs []any
			for _, r := range g.Rows() {
				hs = append(hs, r.ActualHeight())
			}
			return vm.NewArray(hs...)
		})
	case "columnWidths":
		return a.fn(func(goja.FunctionCall) goja.Value {
			var ws []any
			for _, c := range g.Columns() {
				ws = append(ws, c.ActualWidth())
			}
			return vm.NewArray(ws...)
		})
	case "addRow":
		// addRow(length, min, max)
		return a.fn(func(call goja.FunctionCall) goja.Value {
			l, err := length(call.Argument(0))
			if err != nil {
				a.engine.throw(err)
			}
			d := grid.NewRow(l)
			if err := bounds(d.SetMinHeight, d.SetMaxHeight, call); err != nil {
				a.engine.throw(err)
			}
			if err := g.AddRow(d); err != nil {
				a.engine.throw(err)
			}
			return vm.ToValue(len(g.Rows()) - 1)
		})
	case "addColumn":
		// addColumn(length, min, max)
		return a.fn(func(call goja.FunctionCall) goja.Value {
			l, err := length(call.Argument(0))
			if err != nil {
				a.engine.throw(err)
			}
			d := grid.NewColumn(l)
			if err := bounds(d.SetMinWidth, d.SetMaxWidth, call); err != nil {
				a.engine.throw(err)
			}
			if err := g.AddColumn(d); err != nil {
				a.engine.throw(err)
			}
			return vm.ToValue(len(g.Columns()) - 1)
		})
	case "removeRow":
		return a.fn(func(call goja.FunctionCall) goja.Value {
			if err := g.RemoveRow(integer(call.Argument(0), -1)); err != nil {
				a.engine.throw(err)
			}
			return goja.Undefined()
		})
	case "removeColumn":
		return a.fn(func(call goja.FunctionCall) goja.Value {
			if err := g.RemoveColumn(integer(call.Argument(0), -1)); err != nil {
				a.engine.throw(err)
			}
			return goja.Undefined()
		})
	case "slotOf":
		return a.fn(func(call goja.FunctionCall) goja.Value {
			r, ok := g.SlotOf(a.engine.element(call.Argument(0)))
			if !ok {
				return goja.Null()
			}
			return a.rect(r)
		})
	}
	return a.getPanel(&g.Panel, key)
}

func bounds(setMin, setMax func(float64) error, call goja.FunctionCall) error {
	if v := call.Argument(1); !missing(v) {
		if err := setMin(v.ToFloat()); err != nil {
			return err
		}
	}
	if v := call.Argument(2); !missing(v) {
		return setMax(v.ToFloat())
	}
	return nil
}

func (a *elementAccessor) Set(key string, val goja.Value) bool {
	ok, err := a.set(key, val)
	if err != nil {
		a.engine.throw(fmt.Errorf("%s.%s: %w", kind(a.el), key, err))
	}
	return ok
}

func (a *elementAccessor) set(key string, val goja.Value) (bool, error) {
	n := a.el.Base()
	switch key {
	case "name":
		n.SetName(val.String())
		return true, nil
	case "width":
		if missing(val) {
			n.ClearWidth()
			return true, nil
		}
		return true, n.SetWidth(val.ToFloat())
	case "height":
		if missing(val) {
			n.ClearHeight()
			return true, nil
		}
		return true, n.SetHeight(val.ToFloat())
	case "minWidth":
		return true, n.SetMinWidth(val.ToFloat())
	case "maxWidth":
		return true, n.SetMaxWidth(val.ToFloat())
	case "minHeight":
		return true, n.SetMinHeight(val.ToFloat())
	case "maxHeight":
		return true, n.SetMaxHeight(val.ToFloat())
	case "margin":
		t, err := a.engine.thickness(val)
		if err != nil {
			return true, err
		}
		return true, n.SetMargin(t)
	case "hAlign", "vAlign":
		al, err := alignment(val.String())
		if err != nil {
			return true, err
		}
		h, v := n.Alignment()
		if key == "hAlign" {
			h = al
		} else {
			v = al
		}
		n.SetAlignment(h, v)
		return true, nil
	}

	switch el := a.el.(type) {
	case *layout.StackPanel:
		if key == "orientation" {
			o, err := orientation(val)
			if err == nil {
				el.SetOrientation(o)
			}
			return true, err
		}
	case *layout.Border:
		switch key {
		case "child":
			return true, el.SetChild(a.engine.element(val))
		case "padding", "thickness":
			t, err := a.engine.thickness(val)
			if err != nil {
				return true, err
			}
			if key == "padding" {
				return true, el.SetPadding(t)
			}
			return true, el.SetThickness(t)
		}
	case *controls.ContentControl:
		if key == "content" {
			return true, el.SetContent(a.engine.element(val))
		}
	case *controls.Rectangle:
		switch key {
		case "fill", "stroke":
			c, err := parseColor(val.String())
			if err != nil {
				return true, err
			}
			if key == "fill" {
				el.SetFill(c)
			} else {
				el.SetStroke(c)
			}
			return true, nil
		}
	case *controls.TextBlock:
		return a.setText(el, key, val)
	}
	return false, nil
}

func (a *elementAccessor) setText(t *controls.TextBlock, key string, val goja.Value) (bool, error) {
	style := t.Style()
	switch key {
	case "text":
		t.SetText(val.String())
	case "wrap":
		t.SetWrap(val.ToBoolean())
	case "fontSize":
		size := val.ToFloat()
		if !(size > 0) || math.IsInf(size, 0) {
			return true, fmt.Errorf("font size %v: %w", size, layout.ErrInvalidArgument)
		}
		t.SetStyle(text.Style{Size: size, Bold: style.Bold, Mono: style.Mono})
	case "bold":
		t.SetStyle(text.Style{Size: style.Size, Bold: val.ToBoolean(), Mono: style.Mono})
	case "mono":
		t.SetStyle(text.Style{Size: style.Size, Bold: style.Bold, Mono: val.ToBoolean()})
	case "color":
		c, err := parseColor(val.String())
		if err != nil {
			return true, err
		}
		t.SetColor(c)
	default:
		return false, nil
	}
	return true, nil
}

func (a *elementAccessor) Has(key string) bool {
	for _, k := range a.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func (a *elementAccessor) Delete(key string) bool {
	return false
}

func (a *elementAccessor) Keys() []string {
	keys := append([]string(nil), commonKeys...)
	panelKeys := []string{"count", "children", "add", "remove"}
	switch a.el.(type) {
	case *grid.Grid:
		keys = append(keys, panelKeys...)
		keys = append(keys, "rowCount", "columnCount", "converged", "iterations",
			"rowHeights", "columnWidths", "addRow", "addColumn", "removeRow", "removeColumn", "slotOf")
	case *layout.Canvas:
		keys = append(keys, panelKeys...)
	case *layout.StackPanel:
		keys = append(keys, panelKeys...)
		keys = append(keys, "orientation")
	case *layout.Border:
		keys = append(keys, "child", "padding", "thickness")
	case *controls.ContentControl:
		keys = append(keys, "content")
	case *controls.Rectangle:
		keys = append(keys, "fill", "stroke")
	case *controls.TextBlock:
		keys = append(keys, "text", "wrap", "fontSize", "bold", "mono", "color", "lines")
	}
	return keys
}
