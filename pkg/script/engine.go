// Package script builds element trees from JavaScript. A scene script
// creates elements with global constructors (grid, rect, text, canvas,
// stack, border, content), wires them together and hands the root to
// setRoot. Layout results can be read back from the same script.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dop251/goja"

	"lattice/pkg/layout"
	"lattice/pkg/text"
)

// ErrNoRoot is returned by Root when no script called setRoot.
var ErrNoRoot = errors.New("script did not call setRoot")

// Engine executes scene scripts.
type Engine struct {
	vm       *goja.Runtime
	console  *consoleAPI
	measurer *text.Measurer
	root     layout.Element

	proxies  map[layout.Element]*goja.Object
	elements map[*goja.Object]layout.Element
}

// New creates a new engine with a fresh goja runtime. Console output goes to
// stdout and stderr.
func New() *Engine {
	vm := goja.New()
	e := &Engine{
		vm:       vm,
		console:  &consoleAPI{out: os.Stdout, err: os.Stderr},
		measurer: text.Default,
		proxies:  make(map[layout.Element]*goja.Object),
		elements: make(map[*goja.Object]layout.Element),
	}
	e.console.register(vm)
	e.registerGlobals()
	return e
}

// SetOutput redirects console.log and console.warn/error.
func (e *Engine) SetOutput(out, errOut io.Writer) {
	e.console.out, e.console.err = out, errOut
}

// SetMeasurer sets the measurer given to text blocks created afterwards.
func (e *Engine) SetMeasurer(m *text.Measurer) {
	e.measurer = m
}

// Execute runs the scripts in order and stops at the first error.
func (e *Engine) Execute(scripts ...string) error {
	for i, src := range scripts {
		if _, err := e.vm.RunString(src); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// RunFile reads and executes a script file.
func (e *Engine) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := e.vm.RunScript(path, string(src)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Root returns the element passed to setRoot.
func (e *Engine) Root() (layout.Element, error) {
	if e.root == nil {
		return nil, ErrNoRoot
	}
	return e.root, nil
}

// Lookup returns the first element in the tree under the root whose name is
// name.
func (e *Engine) Lookup(name string) (layout.Element, bool) {
	if e.root == nil {
		return nil, false
	}
	return find(e.root, name)
}

func find(el layout.Element, name string) (layout.Element, bool) {
	if el.Base().Name() == name {
		return el, true
	}
	for _, child := range childrenOf(el) {
		if found, ok := find(child, name); ok {
			return found, true
		}
	}
	return nil, false
}

func childrenOf(el layout.Element) []layout.Element {
	switch c := el.(type) {
	case interface{ Children() []layout.Element }:
		return c.Children()
	case interface{ Child() layout.Element }:
		if child := c.Child(); child != nil {
			return []layout.Element{child}
		}
	}
	return nil
}

// throw raises err as a JavaScript exception. It must only be called from
// code running inside the VM.
func (e *Engine) throw(err error) {
	panic(e.vm.NewGoError(err))
}
