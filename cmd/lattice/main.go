package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/term"

	"lattice/pkg/layout"
	"lattice/pkg/render"
	"lattice/pkg/report"
	"lattice/pkg/scene"
)

type options struct {
	width, height int
	output        string
	gridLines     bool
	quiet         bool
	styled        bool
}

func main() {
	width := flag.Int("w", 800, "viewport width in pixels")
	height := flag.Int("h", 600, "viewport height in pixels")
	output := flag.String("o", "", "output PNG file path")
	gridLines := flag.Bool("grid", false, "draw grid track boundaries")
	quiet := flag.Bool("q", false, "do not print the track report")
	verbose := flag.Bool("v", false, "log layout diagnostics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lattice [flags] <scene.js>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		layout.SetLogOutput(os.Stderr)
	}

	opts := options{
		width:     *width,
		height:    *height,
		output:    *output,
		gridLines: *gridLines,
		quiet:     *quiet,
		styled:    term.IsTerminal(int(os.Stdout.Fd())),
	}
	if err := run(flag.Arg(0), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, opts options, stdout io.Writer) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("viewport %dx%d: %w", opts.width, opts.height, layout.ErrInvalidArgument)
	}
	s, err := scene.Load(path, scene.Options{Stdout: stdout, Stderr: os.Stderr})
	if err != nil {
		return err
	}
	s.Layout(float64(opts.width), float64(opts.height))

	if !opts.quiet {
		var reports []report.Grid
		for _, g := range s.Grids() {
			reports = append(reports, report.Build(g))
		}
		if err := report.NewPrinter(stdout, opts.styled).Print(reports...); err != nil {
			return err
		}
	}

	if opts.output == "" {
		return nil
	}
	target := image.NewRGBA(image.Rect(0, 0, opts.width, opts.height))
	r := render.NewRendererForImage(target)
	r.GridLines = opts.gridLines
	r.Render(s.Root())
	if err := r.SavePNG(opts.output); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return nil
}
