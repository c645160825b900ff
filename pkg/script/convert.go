package script

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/dop251/goja"
	"github.com/lucasb-eyer/go-colorful"

	"lattice/pkg/grid"
	"lattice/pkg/layout"
)

func missing(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

func number(v goja.Value, def float64) float64 {
	if missing(v) {
		return def
	}
	return v.ToFloat()
}

func integer(v goja.Value, def int) int {
	if missing(v) {
		return def
	}
	return int(v.ToInteger())
}

// length converts 40, "40", "auto", "*" or "2*" to a track length.
func length(v goja.Value) (grid.Length, error) {
	if missing(v) {
		return grid.Auto, nil
	}
	if s, ok := v.Export().(string); ok {
		return grid.ParseLength(s)
	}
	l := grid.Pixels(v.ToFloat())
	return l, l.Validate()
}

// lengths converts a comma separated string or an array of lengths.
func (e *Engine) lengths(v goja.Value) ([]grid.Length, error) {
	if missing(v) {
		return nil, nil
	}
	var items []goja.Value
	if s, ok := v.Export().(string); ok {
		for _, part := range strings.Split(s, ",") {
			items = append(items, e.vm.ToValue(part))
		}
	} else {
		obj := v.ToObject(e.vm)
		n := int(obj.Get("length").ToInteger())
		for i := 0; i < n; i++ {
			items = append(items, obj.Get(fmt.Sprint(i)))
		}
	}
	ls := make([]grid.Length, 0, len(items))
	for i, item := range items {
		l, err := length(item)
		if err != nil {
			return nil, fmt.Errorf("length %d: %w", i, err)
		}
		ls = append(ls, l)
	}
	return ls, nil
}

// thickness accepts one value for all sides, two for horizontal and
// vertical, or four in left, top, right, bottom order.
func (e *Engine) thickness(v goja.Value) (layout.Thickness, error) {
	if missing(v) {
		return layout.Thickness{}, nil
	}
	if _, ok := v.Export().([]any); !ok {
		return layout.Uniform(v.ToFloat()), nil
	}
	var vs []float64
	if err := e.vm.ExportTo(v, &vs); err != nil {
		return layout.Thickness{}, err
	}
	switch len(vs) {
	case 1:
		return layout.Uniform(vs[0]), nil
	case 2:
		return layout.Thickness{Left: vs[0], Top: vs[1], Right: vs[0], Bottom: vs[1]}, nil
	case 4:
		return layout.Thickness{Left: vs[0], Top: vs[1], Right: vs[2], Bottom: vs[3]}, nil
	}
	return layout.Thickness{}, fmt.Errorf("thickness with %d values: %w", len(vs), layout.ErrInvalidArgument)
}

func thicknessValue(t layout.Thickness) []float64 {
	return []float64{t.Left, t.Top, t.Right, t.Bottom}
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"gray":   "#808080",
	"silver": "#c0c0c0",
	"red":    "#ff0000",
	"green":  "#008000",
	"lime":   "#00ff00",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"teal":   "#008080",
	"navy":   "#000080",
}

// parseColor reads "#rgb", "#rrggbb" or a basic color name. "none" and
// "transparent" give nil.
func parseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return nil, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, layout.ErrInvalidArgument)
	}
	return c.Clamped(), nil
}

func colorValue(c color.Color) string {
	if c == nil {
		return "none"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cf.Hex()
}

func alignment(s string) (layout.Alignment, error) {
	switch strings.ToLower(s) {
	case "stretch":
		return layout.Stretch, nil
	case "start", "left", "top":
		return layout.Start, nil
	case "center":
		return layout.Center, nil
	case "end", "right", "bottom":
		return layout.End, nil
	}
	return layout.Stretch, fmt.Errorf("alignment %q: %w", s, layout.ErrInvalidArgument)
}

func orientation(v goja.Value) (layout.Orientation, error) {
	if missing(v) {
		return layout.Vertical, nil
	}
	switch strings.ToLower(v.String()) {
	case "vertical", "v":
		return layout.Vertical, nil
	case "horizontal", "h":
		return layout.Horizontal, nil
	}
	return layout.Vertical, fmt.Errorf("orientation %q: %w", v.String(), layout.ErrInvalidArgument)
}

func orientationName(o layout.Orientation) string {
	if o == layout.Horizontal {
		return "horizontal"
	}
	return "vertical"
}
