// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// saveGrid renders plots tiled row by row into one PNG, with an optional
// headline centered above the tiles.
func (w *Writer) saveGrid(kind, headline string, width, height vg.Length, plots [][]*plot.Plot) (string, error) {
	path, err := w.path(kind, "png")
	if err != nil {
		return "", err
	}
	img := vgimg.New(width, height)
	dc := draw.New(img)

	pad := vg.Points(8)
	top := pad
	if headline != "" {
		top = vg.Points(30)
	}
	tiles := draw.Tiles{
		Rows: len(plots), Cols: len(plots[0]),
		PadX: pad, PadY: pad,
		PadTop: top, PadBottom: pad, PadLeft: pad, PadRight: pad,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r, row := range plots {
		for c, p := range row {
			if p != nil {
				p.Draw(canvases[r][c])
			}
		}
	}
	if headline != "" {
		sty := text.Style{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, vg.Points(14)),
			XAlign:  draw.XCenter,
			YAlign:  draw.YTop,
			Handler: text.Plain{Fonts: font.DefaultCache},
		}
		dc.FillText(sty, vg.Point{X: width / 2, Y: height - vg.Points(4)}, headline)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save %s chart: %w", kind, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", fmt.Errorf("save %s chart: %w", kind, err)
	}
	return path, nil
}

func (w *Writer) saveRow(kind, headline string, width, height vg.Length, plots ...*plot.Plot) (string, error) {
	return w.saveGrid(kind, headline, width, height, [][]*plot.Plot{plots})
}

// swatch is a filled legend box for area marks.
type swatch struct{ c color.Color }

func (s swatch) Thumbnail(dc *draw.Canvas) {
	pts := []vg.Point{
		{X: dc.Min.X, Y: dc.Min.Y},
		{X: dc.Min.X, Y: dc.Max.Y},
		{X: dc.Max.X, Y: dc.Max.Y},
		{X: dc.Max.X, Y: dc.Min.Y},
	}
	dc.FillPolygon(s.c, dc.ClipPolygonY(pts))
}

// Compare writes the three-panel distribution comparison: overlaid density
// histograms, kernel density curves, and grouped boxes.
func (w *Writer) Compare(column, groupCol string, groups []Group) (string, error) {
	var total int
	for _, g := range groups {
		total += len(g.Values)
	}
	if total == 0 {
		return "", fmt.Errorf("compare %q by %q: %w", column, groupCol, ErrNoValues)
	}

	hists := newPlot("直方图对比", column, "密度")
	for i, g := range groups {
		if len(g.Values) == 0 {
			continue
		}
		h, err := plotter.NewHistogram(plotter.Values(g.Values), 15)
		if err != nil {
			return "", fmt.Errorf("compare %q group %q: %w", column, g.Name, err)
		}
		h.Normalize(1)
		fill := translucent(seriesColor(i), 0x80)
		h.FillColor = fill
		h.LineStyle.Color = seriesColor(i)
		hists.Add(h)
		hists.Legend.Add(g.Name, swatch{fill})
	}
	hists.Legend.Top = true

	kdes := newPlot("核密度估计对比", column, "密度")
	for i, g := range groups {
		if !kdeable(g.Values) {
			continue
		}
		grid := kdeGrid(g.Values, 200)
		line, err := plotter.NewLine(xyPairs(grid, gaussianKDE(g.Values, grid)))
		if err != nil {
			return "", fmt.Errorf("compare %q group %q: %w", column, g.Name, err)
		}
		line.Width = vg.Points(2)
		line.Color = seriesColor(i)
		kdes.Add(line)
		kdes.Legend.Add(g.Name, line)
	}
	kdes.Legend.Top = true

	boxes := newPlot("箱线图对比", groupCol, column)
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
		if len(g.Values) == 0 {
			continue
		}
		bp, err := plotter.NewBoxPlot(vg.Points(25), float64(i), plotter.Values(g.Values))
		if err != nil {
			return "", fmt.Errorf("compare %q group %q: %w", column, g.Name, err)
		}
		bp.FillColor = translucent(seriesColor(i), 0x99)
		boxes.Add(bp)
	}
	boxes.NominalX(names...)

	headline := fmt.Sprintf("%s 按 %s 分组的分布对比", column, groupCol)
	return w.saveRow("compare", headline, 12*vg.Inch, 5*vg.Inch, hists, kdes, boxes)
}

// PairGrid writes the pairwise matrix for the named columns: kernel density
// on the diagonal, scatters elsewhere. cols must be complete rows, one slice
// per name.
func (w *Writer) PairGrid(names []string, cols [][]float64) (string, error) {
	k := len(names)
	if k < 2 || len(cols) != k {
		return "", fmt.Errorf("pair grid: %w", ErrNoValues)
	}

	grid := make([][]*plot.Plot, k)
	for i := range grid {
		grid[i] = make([]*plot.Plot, k)
		for j := range grid[i] {
			var xlabel, ylabel string
			if i == k-1 {
				xlabel = names[j]
			}
			if j == 0 {
				ylabel = names[i]
			}
			p := newPlot("", xlabel, ylabel)
			if i == j {
				if kdeable(cols[i]) {
					pts := kdeGrid(cols[i], 200)
					line, err := plotter.NewLine(xyPairs(pts, gaussianKDE(cols[i], pts)))
					if err != nil {
						return "", fmt.Errorf("pair grid %q: %w", names[i], err)
					}
					line.Width = vg.Points(1.5)
					line.Color = steelBlue
					p.Add(line)
				}
			} else {
				sc, err := plotter.NewScatter(xyPairs(cols[j], cols[i]))
				if err != nil {
					return "", fmt.Errorf("pair grid %q vs %q: %w", names[j], names[i], err)
				}
				sc.GlyphStyle.Color = translucent(steelBlue, 0x99)
				sc.GlyphStyle.Radius = vg.Points(2)
				p.Add(sc)
			}
			grid[i][j] = p
		}
	}

	headline := fmt.Sprintf("配对图矩阵 (%d个变量)", k)
	side := vg.Length(k) * 2 * vg.Inch
	if side < 6*vg.Inch {
		side = 6 * vg.Inch
	}
	return w.saveGrid("pairs", headline, side, side, grid)
}
