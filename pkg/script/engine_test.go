package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lattice/pkg/grid"
	"lattice/pkg/text"
)

// newEngine measures text with the bitmap face so sizes are exact.
func newEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	e.SetMeasurer(text.NewMeasurer(text.FontConfig{}))
	var out bytes.Buffer
	e.SetOutput(&out, &out)
	return e
}

func TestGridFromScript(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var g = grid("auto, auto, *", [100]);
		g.add(rect(50, 30), {row: 0});
		g.add(rect(50, 20), {row: 1});
		setRoot(g);
		g.layout(100, 100);
		var hs = g.rowHeights();
		if (hs[0] !== 30) throw new Error("row 0: " + hs[0]);
		if (hs[1] !== 20) throw new Error("row 1: " + hs[1]);
		if (hs[2] !== 50) throw new Error("row 2: " + hs[2]);
		if (g.columnWidths()[0] !== 100) throw new Error("column: " + g.columnWidths()[0]);
	`)
	if err != nil {
		t.Fatal(err)
	}

	root, err := engine.Root()
	if err != nil {
		t.Fatal(err)
	}
	g, ok := root.(*grid.Grid)
	if !ok {
		t.Fatalf("Expected a grid root, got %T", root)
	}
	if got := g.Rows()[2].ActualHeight(); got != 50 {
		t.Errorf("Expected the star row to take 50, got %v", got)
	}
}

func TestSpanFromScript(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var g = grid(["auto", "auto"], "*");
		var r = rect(50, 60);
		g.add(r, {row: 0, rowSpan: 2});
		g.measure(100, Infinity);
		var hs = g.rowHeights();
		if (hs[0] !== Infinity) throw new Error("auto rows report Infinity before arrange: " + hs[0]);
		g.arrange(100, 60);
		hs = g.rowHeights();
		if (hs[0] !== 30 || hs[1] !== 30) throw new Error("expected an even split, got " + hs[0] + ", " + hs[1]);
		var slot = g.slotOf(r);
		if (slot.height !== 60) throw new Error("slot height " + slot.height);
		if (!g.converged) throw new Error("expected convergence");
	`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestAddRowWithBounds(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var g = grid();
		var i = g.addRow("auto", 0, 40);
		if (i !== 0) throw new Error("index " + i);
		g.addRow("*");
		g.add(rect(10, 100));
		g.layout(10, 200);
		var hs = g.rowHeights();
		if (hs[0] !== 40) throw new Error("max height ignored: " + hs[0]);
		if (g.rowCount !== 2 || g.columnCount !== 0) throw new Error("counts " + g.rowCount + ", " + g.columnCount);
	`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestProxyIdentity(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var g = grid();
		var r = rect(1, 1);
		if (g.add(r) !== r) throw new Error("add should return the child");
		if (r.parent !== g) throw new Error("parent proxy differs");
		if (g.children[0] !== r) throw new Error("children proxy differs");
		if (g.count !== 1) throw new Error("count " + g.count);
		if (r.kind !== "rect" || g.kind !== "grid") throw new Error("kinds " + r.kind + ", " + g.kind);
		if (!g.remove(r) || r.parent !== null) throw new Error("remove failed");
	`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestElementProperties(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var r = rect();
		if (r.width !== undefined) throw new Error("width should be unset");
		r.width = 20;
		r.height = 10;
		r.margin = [1, 2, 3, 4];
		r.hAlign = "center";
		r.fill = "red";
		r.name = "box";
		r.measure();
		if (r.desiredWidth !== 24 || r.desiredHeight !== 16) throw new Error("desired " + r.desiredWidth + "x" + r.desiredHeight);
		if (r.margin[2] !== 3) throw new Error("margin " + r.margin);
		if (r.hAlign !== "center" || r.vAlign !== "stretch") throw new Error("alignment " + r.hAlign + "/" + r.vAlign);
		if (r.fill !== "#ff0000") throw new Error("fill " + r.fill);
		r.stroke = "none";
		if (r.stroke !== "none") throw new Error("stroke " + r.stroke);
		setRoot(r);
	`)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := engine.Lookup("box"); !ok {
		t.Error("Expected to find the named rectangle")
	}
	if _, ok := engine.Lookup("missing"); ok {
		t.Error("Expected no element named missing")
	}
}

func TestTextFromScript(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var t = text("Hello");
		t.measure();
		if (t.desiredWidth !== 35 || t.desiredHeight !== 13) throw new Error("text " + t.desiredWidth + "x" + t.desiredHeight);
		t.text = "Hello, wide world";
		t.wrap = true;
		t.measure(60);
		if (t.lines.length < 2) throw new Error("expected wrapping, got " + t.lines.length + " lines");
		t.bold = true;
		if (!t.bold || t.fontSize !== 14) throw new Error("style " + t.bold + ", " + t.fontSize);
	`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestPanelsFromScript(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var c = canvas();
		var r = rect(10, 10);
		c.add(r, {left: 5, top: 7});
		c.layout(100, 100);
		if (r.bounds.x !== 5 || r.bounds.y !== 7) throw new Error("canvas offset " + r.bounds.x + "," + r.bounds.y);

		var s = stack("horizontal");
		s.add(rect(10, 5));
		s.add(rect(20, 5));
		s.measure();
		if (s.desiredWidth !== 30) throw new Error("stack width " + s.desiredWidth);
		if (s.orientation !== "horizontal") throw new Error("orientation " + s.orientation);

		var b = border(rect(10, 10));
		b.thickness = 1;
		b.padding = [2, 3];
		b.measure();
		if (b.desiredWidth !== 16 || b.desiredHeight !== 18) throw new Error("border " + b.desiredWidth + "x" + b.desiredHeight);

		var cc = content(text("ab"));
		cc.measure();
		if (cc.desiredWidth !== 14) throw new Error("content " + cc.desiredWidth);
		if (cc.content.kind !== "text") throw new Error("content kind " + cc.content.kind);
	`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"bad length", `grid("auto, wide")`, "invalid argument"},
		{"negative width", `rect(-1, 1)`, "invalid argument"},
		{"negative margin", `rect(1, 1).margin = -2`, "rect.margin"},
		{"bad color", `rect(1, 1).fill = "#zz"`, "rect.fill"},
		{"twice parented", `var g = grid(); var r = rect(1, 1); g.add(r); grid().add(r);`, "already has a parent"},
		{"not an element", `grid().add(42)`, "not an element"},
		{"bad placement", `rect(1, 1).place(-1, 0)`, "invalid argument"},
		{"bad orientation", `stack("diagonal")`, "orientation"},
		{"bad font size", `text("a").fontSize = 0`, "font size"},
		{"parented root", `var g = grid(); var r = rect(1, 1); g.add(r); setRoot(r);`, "setRoot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newEngine(t).Execute(tt.script)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected %q in %v", tt.want, err)
			}
			if !strings.HasPrefix(err.Error(), "script 0: ") {
				t.Errorf("Expected the script index in %v", err)
			}
		})
	}
}

func TestErrorsAreCatchable(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(`
		var caught = false;
		try {
			rect(1, 1).maxWidth = -5;
		} catch (e) {
			caught = true;
		}
		if (!caught) throw new Error("expected an exception");
	`)
	if err != nil {
		t.Fatal(err)
	}
}

func TestNoRoot(t *testing.T) {
	engine := newEngine(t)
	if err := engine.Execute(`grid()`); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Root(); !errors.Is(err, ErrNoRoot) {
		t.Errorf("Expected ErrNoRoot, got %v", err)
	}
}

func TestConsole(t *testing.T) {
	engine := New()
	var out, errOut bytes.Buffer
	engine.SetOutput(&out, &errOut)
	if err := engine.Execute(`console.log("rows", 3); console.warn("careful"); console.error("bad");`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "rows 3\n" {
		t.Errorf("Expected log output, got %q", got)
	}
	if got := errOut.String(); got != "WARN: careful\nERROR: bad\n" {
		t.Errorf("Expected warn and error output, got %q", got)
	}
}

func TestScriptsShareState(t *testing.T) {
	engine := newEngine(t)
	err := engine.Execute(
		`var g = grid("*", "*"); setRoot(g);`,
		`g.add(rect(5, 5)); if (g.count !== 1) throw new Error("count " + g.count);`,
	)
	if err != nil {
		t.Fatal(err)
	}
}
