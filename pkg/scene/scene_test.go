package scene

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"lattice/pkg/script"
	"lattice/pkg/text"
)

var _ Renderer = (*ScriptRenderer)(nil)

const twoPanes = `
	var g = grid("*", "40, *");
	g.name = "root";
	var side = rect();
	side.fill = "#0000ff";
	side.name = "side";
	g.add(side, {column: 0});
	var inner = grid("auto, *", "*");
	inner.add(text("title"), {row: 0});
	g.add(inner, {column: 1});
	setRoot(g);
`

func bitmap() Options {
	return Options{Measurer: text.NewMeasurer(text.FontConfig{})}
}

func TestParseAndLayout(t *testing.T) {
	s, err := Parse(twoPanes, bitmap())
	if err != nil {
		t.Fatal(err)
	}
	s.Layout(200, 100)

	side, ok := s.Lookup("side")
	if !ok {
		t.Fatal("side not found")
	}
	if got := side.RenderSize(); got.Width != 40 || got.Height != 100 {
		t.Errorf("Expected the side pane to fill 40x100, got %+v", got)
	}

	gs := s.Grids()
	if len(gs) != 2 {
		t.Fatalf("Expected 2 grids, got %d", len(gs))
	}
	if gs[0] != s.Root() {
		t.Error("Expected the root grid first")
	}
	if h := gs[1].Rows()[0].ActualHeight(); h != 13 {
		t.Errorf("Expected the title row to fit the bitmap face, got %v", h)
	}
}

func TestDraw(t *testing.T) {
	s, err := Parse(twoPanes, bitmap())
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	s.Draw(img, false)

	if r, g, b, _ := img.At(10, 50).RGBA(); r > 0x1000 || g > 0x1000 || b < 0xf000 {
		t.Errorf("Expected blue in the side pane, got rgb(%x, %x, %x)", r>>8, g>>8, b>>8)
	}
	if r, g, b, _ := img.At(150, 80).RGBA(); r < 0xf000 || g < 0xf000 || b < 0xf000 {
		t.Errorf("Expected white background, got rgb(%x, %x, %x)", r>>8, g>>8, b>>8)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.js")
	if err := os.WriteFile(path, []byte(twoPanes), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path, bitmap())
	if err != nil {
		t.Fatal(err)
	}
	if s.Root().Base().Name() != "root" {
		t.Errorf("Expected the root grid, got %q", s.Root().Base().Name())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.js"), bitmap()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestParse_NoRoot(t *testing.T) {
	if _, err := Parse(`grid()`, bitmap()); !errors.Is(err, script.ErrNoRoot) {
		t.Errorf("Expected ErrNoRoot, got %v", err)
	}
}

func TestScriptRenderer(t *testing.T) {
	r := NewScriptRenderer(text.FontConfig{})
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	if err := r.Render(`var x = rect(); x.fill = "red"; setRoot(x);`, img); err != nil {
		t.Fatal(err)
	}
	if red, g, _, _ := img.At(25, 25).RGBA(); red < 0xf000 || g > 0x1000 {
		t.Errorf("Expected the rectangle to stretch over the image, got r=%x g=%x", red>>8, g>>8)
	}
	if err := r.Render(`throw new Error("boom")`, img); err == nil {
		t.Error("Expected the script error to be returned")
	}
}
