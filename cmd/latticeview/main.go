package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"lattice/pkg/layout"
	"lattice/pkg/scene"
)

// viewer holds the scene shown in the window. The raster callback and the
// reload button both touch it.
type viewer struct {
	path string

	mu        sync.Mutex
	scene     *scene.Scene
	gridLines bool
}

func (v *viewer) load() error {
	s, err := scene.Load(v.path, scene.Options{})
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.scene = s
	v.mu.Unlock()
	return nil
}

// draw lays the scene out at the raster's pixel size.
func (v *viewer) draw(w, h int) image.Image {
	target := image.NewRGBA(image.Rect(0, 0, w, h))
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scene != nil && w > 0 && h > 0 {
		v.scene.Draw(target, v.gridLines)
	}
	return target
}

func main() {
	verbose := flag.Bool("v", false, "log layout diagnostics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: latticeview [flags] <scene.js>\n\nFlags:\n")
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

	v := &viewer{path: flag.Arg(0)}
	status := widget.NewLabel(v.path)
	if err := v.load(); err != nil {
		status.SetText("Error: " + err.Error())
	}

	a := app.New()
	w := a.NewWindow("lattice: " + v.path)
	w.Resize(fyne.NewSize(800, 600))

	raster := canvas.NewRaster(v.draw)

	reload := widget.NewButton("Reload", func() {
		if err := v.load(); err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		status.SetText(v.path)
		raster.Refresh()
	})
	lines := widget.NewCheck("Grid lines", func(on bool) {
		v.mu.Lock()
		v.gridLines = on
		v.mu.Unlock()
		raster.Refresh()
	})

	bottom := container.NewBorder(nil, nil, nil, container.NewHBox(lines, reload), status)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, raster))
	w.ShowAndRun()
}
