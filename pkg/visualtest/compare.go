// Package visualtest compares rendered scenes pixel by pixel.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"lattice/pkg/layout"
	"lattice/pkg/render"
	"lattice/pkg/scene"
	"lattice/pkg/text"
)

// Result contains the results of an image comparison.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference, 0-255
	Diff            *image.RGBA
}

// Options configures a comparison.
type Options struct {
	// Tolerance is the largest allowed difference per channel (0-255).
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this radius.
	FuzzyRadius int

	// MaxDifferentPercent passes the comparison if at most this share of
	// pixels differ.
	MaxDifferentPercent float64

	// KeepDiff fills Result.Diff with differing pixels in red over a
	// grayscale copy of the actual image.
	KeepDiff bool
}

// DefaultOptions allows for anti-aliasing noise only.
func DefaultOptions() Options {
	return Options{Tolerance: 2}
}

// Compare compares two images of the same size.
func Compare(actual, expected image.Image, opts Options) (Result, error) {
	b := actual.Bounds()
	if b != expected.Bounds() {
		return Result{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", b, expected.Bounds())
	}
	res := Result{Match: true, TotalPixels: b.Dx() * b.Dy()}
	if opts.KeepDiff {
		res.Diff = image.NewRGBA(b)
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := distance(actual.At(x, y), expected.At(x, y))
			res.MaxDifference = max(res.MaxDifference, d)
			if d <= opts.Tolerance || (opts.FuzzyRadius > 0 && fuzzyMatch(actual, expected, x, y, opts)) {
				if res.Diff != nil {
					res.Diff.Set(x, y, color.GrayModel.Convert(actual.At(x, y)))
				}
				continue
			}
			res.Match = false
			res.DifferentPixels++
			if res.Diff != nil {
				res.Diff.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
			}
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(res.DifferentPixels) / float64(res.TotalPixels) * 100
		res.Match = pct <= opts.MaxDifferentPercent
	}
	return res, nil
}

// distance is the largest 8-bit channel difference between a and b.
func distance(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDiff(ar, br),
		absDiff(ag, bg),
		absDiff(ab, bb),
		absDiff(aa, ba),
	)
}

func absDiff(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}

func fuzzyMatch(actual, expected image.Image, x, y int, opts Options) bool {
	b := actual.Bounds()
	c := actual.At(x, y)
	for dy := -opts.FuzzyRadius; dy <= opts.FuzzyRadius; dy++ {
		for dx := -opts.FuzzyRadius; dx <= opts.FuzzyRadius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(b) && distance(c, expected.At(p.X, p.Y)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

// RenderTree lays out root at width x height and renders it.
func RenderTree(root layout.Element, width, height int) image.Image {
	root.Measure(layout.NewSize(float64(width), float64(height)))
	root.Arrange(layout.NewRect(0, 0, float64(width), float64(height)))
	r := render.NewRenderer(width, height)
	r.Render(root)
	return r.Image()
}

// RenderScript builds a scene from src and renders it with the bitmap
// fallback face, so results do not depend on installed fonts.
func RenderScript(src string, width, height int) (image.Image, error) {
	s, err := scene.Parse(src, scene.Options{Measurer: text.NewMeasurer(text.FontConfig{})})
	if err != nil {
		return nil, err
	}
	target := image.NewRGBA(image.Rect(0, 0, width, height))
	s.Draw(target, false)
	return target, nil
}

// SavePNG writes img to path, typically a diff image of a failed test.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
