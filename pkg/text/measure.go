// Package text measures strings for text leaves. Fonts are loaded with gg;
// when no font file is configured or found, a built-in bitmap face is used
// so layout still works on a bare machine.
package text

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontConfig holds paths to font files used for text measurement and rendering.
type FontConfig struct {
	Regular   string
	Bold      string
	Monospace string
}

// defaultFontsDir returns the fonts directory next to the executable, or
// relative to this source file.
func defaultFontsDir() string {
	if dir := os.Getenv("LATTICE_FONTS"); dir != "" {
		return dir
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "..", "fonts")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "fonts")
}

// DefaultFontConfig returns a FontConfig pointing at the bundled Atkinson
// Hyperlegible fonts. Missing files are not an error; see Measurer.Face.
func DefaultFontConfig() FontConfig {
	dir := defaultFontsDir()
	return FontConfig{
		Regular:   filepath.Join(dir, "AtkinsonHyperlegible-Regular.ttf"),
		Bold:      filepath.Join(dir, "AtkinsonHyperlegible-Bold.ttf"),
		Monospace: filepath.Join(dir, "AtkinsonHyperlegibleMono-Regular.otf"),
	}
}

// FontPath returns the font path for the given style combination.
func (fc FontConfig) FontPath(bold, mono bool) string {
	if mono && fc.Monospace != "" {
		return fc.Monospace
	}
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	return fc.Regular
}

// Style selects a face.
type Style struct {
	Size float64
	Bold bool
	Mono bool
}

// DefaultStyle is 14pt regular.
var DefaultStyle = Style{Size: 14}

type faceKey struct {
	path string
	size float64
}

// Measurer measures strings. Loaded faces are cached; a Measurer is safe
// for concurrent use.
type Measurer struct {
	fonts FontConfig

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewMeasurer creates a measurer for the given fonts.
func NewMeasurer(fc FontConfig) *Measurer {
	return &Measurer{fonts: fc, faces: make(map[faceKey]font.Face)}
}

// Default measures with DefaultFontConfig.
var Default = NewMeasurer(DefaultFontConfig())

// Face returns the face for style. If the font cannot be loaded the 7x13
// bitmap face is returned; it ignores Size.
func (m *Measurer) Face(style Style) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(style)
}

func (m *Measurer) face(style Style) font.Face {
	key := faceKey{path: m.fonts.FontPath(style.Bold, style.Mono), size: style.Size}
	if f, ok := m.faces[key]; ok {
		return f
	}
	var f font.Face = basicfont.Face7x13
	if key.path != "" && style.Size > 0 {
		if loaded, err := gg.LoadFontFace(key.path, style.Size); err == nil {
			f = loaded
		}
	}
	m.faces[key] = f
	return f
}

// context returns a scratch drawing context set up for style. Callers hold
// m.mu.
func (m *Measurer) context(style Style) *gg.Context {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(m.face(style))
	return dc
}

// LineHeight returns the height of one line of text in style.
func (m *Measurer) LineHeight(style Style) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.context(style).FontHeight()
}

// Measure returns the size of s laid out without wrapping. Explicit line
// breaks start new lines.
func (m *Measurer) Measure(s string, style Style) (width, height float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dc := m.context(style)
	return measureLines(dc, strings.Split(s, "\n"))
}

// Wrap breaks s into lines no wider than maxWidth where word boundaries
// allow it. A word wider than maxWidth gets a line of its own.
func (m *Measurer) Wrap(s string, style Style, maxWidth float64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	dc := m.context(style)
	if math.IsInf(maxWidth, 1) {
		return strings.Split(s, "\n")
	}
	return dc.WordWrap(s, maxWidth)
}

// MeasureWrapped returns the size of s wrapped to maxWidth.
func (m *Measurer) MeasureWrapped(s string, style Style, maxWidth float64) (width, height float64) {
	lines := m.Wrap(s, style, maxWidth)
	m.mu.Lock()
	defer m.mu.Unlock()
	return measureLines(m.context(style), lines)
}

func measureLines(dc *gg.Context, lines []string) (width, height float64) {
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		width = math.Max(width, w)
	}
	return width, float64(len(lines)) * dc.FontHeight()
}

// MeasureText measures the width and height of text with the default fonts.
func MeasureText(text string, fontSize float64, bold bool) (width, height float64) {
	return Default.Measure(text, Style{Size: fontSize, Bold: bold})
}
