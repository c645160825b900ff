package script

import (
	"fmt"

	"github.com/dop251/goja"

	"lattice/pkg/controls"
	"lattice/pkg/grid"
	"lattice/pkg/layout"
	"lattice/pkg/text"
)

func (e *Engine) registerGlobals() {
	e.vm.Set("grid", e.newGrid)
	e.vm.Set("rect", e.newRect)
	e.vm.Set("text", e.newText)
	e.vm.Set("canvas", e.newCanvas)
	e.vm.Set("stack", e.newStack)
	e.vm.Set("border", e.newBorder)
	e.vm.Set("content", e.newContent)
	e.vm.Set("setRoot", e.setRoot)
}

// grid(rows, columns) takes two optional length lists, e.g.
// grid("auto, *, 2*", [100, "*"]).
func (e *Engine) newGrid(call goja.FunctionCall) goja.Value {
	g := grid.New()
	rows, err := e.lengths(call.Argument(0))
	if err != nil {
		e.throw(fmt.Errorf("grid rows: %w", err))
	}
	cols, err := e.lengths(call.Argument(1))
	if err != nil {
		e.throw(fmt.Errorf("grid columns: %w", err))
	}
	if err := g.AddRows(rows...); err != nil {
		e.throw(err)
	}
	if err := g.AddColumns(cols...); err != nil {
		e.throw(err)
	}
	return e.proxy(g)
}

// rect(width, height) gives a rectangle with an explicit size. A missing
// dimension is left unset so the rectangle stretches along it.
func (e *Engine) newRect(call goja.FunctionCall) goja.Value {
	w, h := call.Argument(0), call.Argument(1)
	r, err := controls.NewRectangle(number(w, 0), number(h, 0))
	if err != nil {
		e.throw(err)
	}
	if missing(w) {
		r.ClearWidth()
	}
	if missing(h) {
		r.ClearHeight()
	}
	return e.proxy(r)
}

// text(s, size)
func (e *Engine) newText(call goja.FunctionCall) goja.Value {
	t := controls.NewTextBlock(call.Argument(0).String())
	t.SetMeasurer(e.measurer)
	if size := call.Argument(1); !missing(size) {
		t.SetStyle(text.Style{Size: size.ToFloat()})
	}
	return e.proxy(t)
}

func (e *Engine) newCanvas(call goja.FunctionCall) goja.Value {
	return e.proxy(layout.NewCanvas())
}

// stack(orientation) with "vertical" (default) or "horizontal".
func (e *Engine) newStack(call goja.FunctionCall) goja.Value {
	o, err := orientation(call.Argument(0))
	if err != nil {
		e.throw(err)
	}
	return e.proxy(layout.NewStackPanel(o))
}

func (e *Engine) newBorder(call goja.FunctionCall) goja.Value {
	b := layout.NewBorder()
	if err := b.SetChild(e.element(call.Argument(0))); err != nil {
		e.throw(err)
	}
	return e.proxy(b)
}

func (e *Engine) newContent(call goja.FunctionCall) goja.Value {
	c, err := controls.NewContentControl(e.element(call.Argument(0)))
	if err != nil {
		e.throw(err)
	}
	return e.proxy(c)
}

func (e *Engine) setRoot(call goja.FunctionCall) goja.Value {
	el := e.element(call.Argument(0))
	if el == nil {
		panic(e.vm.NewTypeError("setRoot: an element is required"))
	}
	if el.Base().Parent() != nil {
		e.throw(fmt.Errorf("setRoot: %w", layout.ErrAlreadyParented))
	}
	e.root = el
	return call.Argument(0)
}

// proxy returns the JS object standing for el. The same element always maps
// to the same object.
func (e *Engine) proxy(el layout.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if obj, ok := e.proxies[el]; ok {
		return obj
	}
	obj := e.vm.NewDynamicObject(&elementAccessor{engine: e, el: el})
	e.proxies[el] = obj
	e.elements[obj] = el
	return obj
}

// element unwraps a proxy. undefined and null give nil; anything else that
// is not a proxy raises a TypeError.
func (e *Engine) element(v goja.Value) layout.Element {
	if missing(v) {
		return nil
	}
	if obj, ok := v.(*goja.Object); ok {
		if el, ok := e.elements[obj]; ok {
			return el
		}
	}
	panic(e.vm.NewTypeError("not an element: %s", v.String()))
}
