// Package chart draws the per-symbol price / moving-average panels into a
// single PNG grid.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"MarketGrid/internal/model"
)

var (
	priceColor     = color.RGBA{R: 169, G: 169, B: 169, A: 255} // darkgray
	fastColor      = color.RGBA{R: 139, A: 255}                 // darkred
	slowColor      = color.RGBA{G: 100, A: 255}                 // darkgreen
	lastCloseColor = color.RGBA{B: 255, A: 255}                 // blue
)

// GridRenderer collects one panel per symbol and writes the grid on Flush.
type GridRenderer struct {
	Path    string
	Columns int
	Width   vg.Length
	Height  vg.Length
	DPI     int

	panels  []*plot.Plot
	written bool
}

// NewGridRenderer returns a renderer for a 12x8 inch, two-column figure.
func NewGridRenderer(path string) *GridRenderer {
	return &GridRenderer{
		Path:    path,
		Columns: 2,
		Width:   12 * vg.Inch,
		Height:  8 * vg.Inch,
		DPI:     100,
	}
}

// Reset drops buffered panels and forgets the previously written chart.
func (g *GridRenderer) Reset() {
	g.panels = nil
	g.written = false
}

// Written returns Path if the last Flush since Reset wrote it.
func (g *GridRenderer) Written() (string, bool) {
	return g.Path, g.written
}

func (g *GridRenderer) Present(_ context.Context, r *model.SymbolReport) error {
	p, err := newPanel(r)
	if err != nil {
		return fmt.Errorf("chart %s: %w", r.Symbol, err)
	}
	g.panels = append(g.panels, p)
	return nil
}

// Flush writes the collected panels to Path and resets the renderer.
func (g *GridRenderer) Flush(_ context.Context) error {
	g.written = false
	if len(g.panels) == 0 {
		return nil
	}
	defer func() { g.panels = nil }()

	if dir := filepath.Dir(g.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	f, err := os.Create(g.Path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	if err := g.Render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart: %w", err)
	}
	g.written = true
	log.Printf("[INFO] chart written: %s (%d panels)", g.Path, len(g.panels))
	return nil
}

// Render draws the current panels as a PNG to w, filling the grid row by row.
func (g *GridRenderer) Render(w io.Writer) error {
	cols := g.Columns
	if cols <= 0 {
		cols = 2
	}
	rows := (len(g.panels) + cols - 1) / cols
	if rows == 0 {
		return fmt.Errorf("no panels to render")
	}

	grid := make([][]*plot.Plot, rows)
	for j := range grid {
		grid[j] = make([]*plot.Plot, cols)
	}
	for i, p := range g.panels {
		grid[i/cols][i%cols] = p
	}

	img := vgimg.NewWith(vgimg.UseWH(g.Width, g.Height), vgimg.UseDPI(g.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 6,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(grid, tiles, dc)
	for j := range grid {
		for i, p := range grid[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
