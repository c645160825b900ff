// Package scene loads element trees from scene scripts, lays them out and
// renders them.
package scene

import (
	"fmt"
	"image"
	"io"

	"lattice/pkg/grid"
	"lattice/pkg/layout"
	"lattice/pkg/render"
	"lattice/pkg/script"
	"lattice/pkg/text"
)

// Scene is an element tree built by a script.
type Scene struct {
	engine *script.Engine
	root   layout.Element
}

// Options configure how a scene script runs.
type Options struct {
	// Measurer measures text blocks. Nil means text.Default.
	Measurer *text.Measurer
	// Stdout and Stderr receive console output. Nil keeps the process streams.
	Stdout, Stderr io.Writer
}

func newEngine(opts Options) *script.Engine {
	e := script.New()
	if opts.Measurer != nil {
		e.SetMeasurer(opts.Measurer)
	}
	if opts.Stdout != nil || opts.Stderr != nil {
		out, errOut := opts.Stdout, opts.Stderr
		if out == nil {
			out = io.Discard
		}
		if errOut == nil {
			errOut = io.Discard
		}
		e.SetOutput(out, errOut)
	}
	return e
}

// Load runs the script at path.
func Load(path string, opts Options) (*Scene, error) {
	e := newEngine(opts)
	if err := e.RunFile(path); err != nil {
		return nil, err
	}
	return fromEngine(e)
}

// Parse runs script source.
func Parse(src string, opts Options) (*Scene, error) {
	e := newEngine(opts)
	if err := e.Execute(src); err != nil {
		return nil, err
	}
	return fromEngine(e)
}

func fromEngine(e *script.Engine) (*Scene, error) {
	root, err := e.Root()
	if err != nil {
		return nil, err
	}
	return &Scene{engine: e, root: root}, nil
}

// Root returns the element passed to setRoot.
func (s *Scene) Root() layout.Element {
	return s.root
}

// Lookup finds an element by name.
func (s *Scene) Lookup(name string) (layout.Element, bool) {
	return s.engine.Lookup(name)
}

// Layout measures and arranges the root in a width x height viewport.
func (s *Scene) Layout(width, height float64) {
	s.root.Measure(layout.NewSize(width, height))
	s.root.Arrange(layout.NewRect(0, 0, width, height))
}

// Grids returns every grid in the tree, parents before children.
func (s *Scene) Grids() []*grid.Grid {
	var gs []*grid.Grid
	walk(s.root, func(e layout.Element) {
		if g, ok := e.(*grid.Grid); ok {
			gs = append(gs, g)
		}
	})
	return gs
}

func walk(e layout.Element, visit func(layout.Element)) {
	visit(e)
	switch c := e.(type) {
	case interface{ Children() []layout.Element }:
		for _, child := range c.Children() {
			walk(child, visit)
		}
	case interface{ Child() layout.Element }:
		if child := c.Child(); child != nil {
			walk(child, visit)
		}
	}
}

// Draw lays the scene out at the target's size and renders it into target.
func (s *Scene) Draw(target *image.RGBA, gridLines bool) {
	b := target.Bounds()
	s.Layout(float64(b.Dx()), float64(b.Dy()))
	r := render.NewRendererForImage(target)
	r.GridLines = gridLines
	r.Render(s.root)
}

// Renderer renders scene script source onto an image.
type Renderer interface {
	Render(src string, target *image.RGBA) error
}

// ScriptRenderer implements Renderer by running the script with Parse.
type ScriptRenderer struct {
	opts      Options
	GridLines bool
}

// NewScriptRenderer creates a renderer. If fonts is omitted the bundled
// fonts are used.
func NewScriptRenderer(fonts ...text.FontConfig) *ScriptRenderer {
	m := text.Default
	if len(fonts) > 0 {
		m = text.NewMeasurer(fonts[0])
	}
	return &ScriptRenderer{opts: Options{Measurer: m}}
}

// Render runs src, lays out its root at the size of target and draws it.
func (r *ScriptRenderer) Render(src string, target *image.RGBA) error {
	s, err := Parse(src, r.opts)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}
	s.Draw(target, r.GridLines)
	return nil
}
