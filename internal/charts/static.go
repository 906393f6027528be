// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/shayne/vitals/internal/stats"
)

const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 6 * vg.Inch
)

var (
	skyBlue   = color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	steelBlue = color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}
	fitRed    = color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	axisGray  = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// newPlot returns a plot with the shared chrome. useCJKFont must run before
// plot.New so the default typeface is already swapped.
func newPlot(title, xlabel, ylabel string) *plot.Plot {
	useCJKFont()
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

func (w *Writer) save(p *plot.Plot, kind string) (string, error) {
	path, err := w.path(kind, w.imageExt())
	if err != nil {
		return "", err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return "", fmt.Errorf("save %s chart: %w", kind, err)
	}
	return path, nil
}

func xyPairs(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return xys
}

// dashed styles a line as a dashed guide.
func dashed(l *plotter.Line, c color.Color) {
	l.Color = c
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
}

// Histogram draws a density histogram with a kernel density overlay.
func (w *Writer) Histogram(column string, values []float64, bins int) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("histogram %q: %w", column, ErrNoValues)
	}
	if bins <= 0 {
		bins = 30
	}
	p := newPlot(column+" 的分布", column, "密度")
	h, err := plotter.NewHistogram(plotter.Values(values), bins)
	if err != nil {
		return "", fmt.Errorf("histogram %q: %w", column, err)
	}
	h.Normalize(1)
	h.FillColor = skyBlue
	p.Add(h)

	if kdeable(values) {
		grid := kdeGrid(values, 200)
		line, err := plotter.NewLine(xyPairs(grid, gaussianKDE(values, grid)))
		if err != nil {
			return "", fmt.Errorf("histogram %q: %w", column, err)
		}
		line.Width = vg.Points(2)
		line.Color = steelBlue
		p.Add(line)
	}
	return w.save(p, "hist")
}

// CountHistogram draws a frequency histogram, the bar command's rendering
// for high-cardinality numeric columns.
func (w *Writer) CountHistogram(column string, values []float64) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("histogram %q: %w", column, ErrNoValues)
	}
	p := newPlot(column+" 分布直方图", column, "频数")
	h, err := plotter.NewHistogram(plotter.Values(values), 30)
	if err != nil {
		return "", fmt.Errorf("histogram %q: %w", column, err)
	}
	h.FillColor = skyBlue
	p.Add(h)
	p.Add(plotter.NewGrid())
	return w.save(p, "bar")
}

// Line draws values against x, or against the row index when x is nil.
func (w *Writer) Line(yCol string, y []float64, xCol string, x []float64) (string, error) {
	if len(y) == 0 {
		return "", fmt.Errorf("line %q: %w", yCol, ErrNoValues)
	}
	var p *plot.Plot
	if x != nil {
		p = newPlot(fmt.Sprintf("%s 随 %s 变化趋势", yCol, xCol), xCol, yCol)
	} else {
		p = newPlot(yCol+" 趋势图", "样本编号", yCol)
		x = make([]float64, len(y))
		for i := range x {
			x[i] = float64(i)
		}
	}
	line, pts, err := plotter.NewLinePoints(xyPairs(x, y))
	if err != nil {
		return "", fmt.Errorf("line %q: %w", yCol, err)
	}
	line.Width = vg.Points(2)
	line.Color = steelBlue
	pts.GlyphStyle.Color = steelBlue
	pts.GlyphStyle.Radius = vg.Points(2)
	p.Add(plotter.NewGrid(), line, pts)
	return w.save(p, "line")
}

// Bar draws category counts.
func (w *Writer) Bar(column string, levels []string, counts []float64) (string, error) {
	if len(levels) == 0 {
		return "", fmt.Errorf("bar %q: %w", column, ErrNoValues)
	}
	p := newPlot(column+" 分布统计", column, "频数")
	bc, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(30))
	if err != nil {
		return "", fmt.Errorf("bar %q: %w", column, err)
	}
	bc.Color = skyBlue
	p.Add(plotter.NewGrid(), bc)
	p.NominalX(levels...)
	return w.save(p, "bar")
}

// Box draws one box per group. A single group with an empty name is a plain
// single-column box plot.
func (w *Writer) Box(valueCol, groupCol string, groups []Group) (string, error) {
	if len(groups) == 0 {
		return "", fmt.Errorf("box %q: %w", valueCol, ErrNoValues)
	}
	var p *plot.Plot
	if groupCol == "" {
		p = newPlot(valueCol+" 箱线图", "", valueCol)
	} else {
		p = newPlot(fmt.Sprintf("%s 按 %s 分组", valueCol, groupCol), groupCol, valueCol)
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
		if len(g.Values) == 0 {
			continue
		}
		bp, err := plotter.NewBoxPlot(vg.Points(30), float64(i), plotter.Values(g.Values))
		if err != nil {
			return "", fmt.Errorf("box %q group %q: %w", valueCol, g.Name, err)
		}
		bp.FillColor = translucent(seriesColor(i), 0x99)
		p.Add(bp)
	}
	p.NominalX(names...)
	return w.save(p, "box")
}

// Violin draws kernel density silhouettes with a narrow box inside each.
func (w *Writer) Violin(valueCol, groupCol string, groups []Group) (string, error) {
	if len(groups) == 0 {
		return "", fmt.Errorf("violin %q: %w", valueCol, ErrNoValues)
	}
	p := newPlot(fmt.Sprintf("%s 的分布 (按 %s 分组)", valueCol, groupCol), groupCol, valueCol)
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
		if !kdeable(g.Values) {
			continue
		}
		grid := kdeGrid(g.Values, 100)
		dens := gaussianKDE(g.Values, grid)
		peak := floats.Max(dens)
		loc := float64(i)

		// Silhouette: right side up, left side down, closed polygon.
		outline := make(plotter.XYs, 0, 2*len(grid))
		for j := range grid {
			outline = append(outline, plotter.XY{X: loc + dens[j]/peak*0.4, Y: grid[j]})
		}
		for j := len(grid) - 1; j >= 0; j-- {
			outline = append(outline, plotter.XY{X: loc - dens[j]/peak*0.4, Y: grid[j]})
		}
		poly, err := plotter.NewPolygon(outline)
		if err != nil {
			return "", fmt.Errorf("violin %q group %q: %w", valueCol, g.Name, err)
		}
		poly.Color = translucent(seriesColor(i), 0x66)
		poly.LineStyle.Color = seriesColor(i)
		p.Add(poly)

		bp, err := plotter.NewBoxPlot(vg.Points(6), loc, plotter.Values(g.Values))
		if err != nil {
			return "", fmt.Errorf("violin %q group %q: %w", valueCol, g.Name, err)
		}
		p.Add(bp)
	}
	p.NominalX(names...)
	return w.save(p, "violin")
}

// QQ draws sample quantiles against normal quantiles with a least-squares
// reference line.
func (w *Writer) QQ(column string, values []float64) (string, error) {
	if len(values) < 3 {
		return "", fmt.Errorf("qq %q: %w", column, ErrNoValues)
	}
	n := len(values)
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	theoretical := make([]float64, n)
	for i := range theoretical {
		theoretical[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
	}

	p := newPlot(column+" 的Q-Q图 (正态性检验)", "Theoretical quantiles", "Ordered Values")
	sc, err := plotter.NewScatter(xyPairs(theoretical, sorted))
	if err != nil {
		return "", fmt.Errorf("qq %q: %w", column, err)
	}
	sc.GlyphStyle.Color = steelBlue
	sc.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(sc)

	if fit, err := stats.LinearRegression(theoretical, sorted); err == nil {
		lo, hi := theoretical[0], theoretical[n-1]
		ref, err := plotter.NewLine(plotter.XYs{
			{X: lo, Y: fit.Intercept + fit.Slope*lo},
			{X: hi, Y: fit.Intercept + fit.Slope*hi},
		})
		if err != nil {
			return "", fmt.Errorf("qq %q: %w", column, err)
		}
		ref.Color = fitRed
		ref.Width = vg.Points(2)
		p.Add(ref)
	}
	return w.save(p, "qq")
}

// Scatter draws x against y, optionally with the fitted regression line.
func (w *Writer) Scatter(xCol, yCol string, x, y []float64, fit *stats.RegressionResult) (string, error) {
	if len(x) == 0 {
		return "", fmt.Errorf("scatter %q/%q: %w", xCol, yCol, ErrNoValues)
	}
	p := newPlot(fmt.Sprintf("%s vs %s", yCol, xCol), xCol, yCol)
	sc, err := plotter.NewScatter(xyPairs(x, y))
	if err != nil {
		return "", fmt.Errorf("scatter %q/%q: %w", xCol, yCol, err)
	}
	sc.GlyphStyle.Color = translucent(steelBlue, 0x99)
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc)

	if fit != nil {
		lo, hi := floats.Min(x), floats.Max(x)
		line, err := plotter.NewLine(plotter.XYs{
			{X: lo, Y: fit.Intercept + fit.Slope*lo},
			{X: hi, Y: fit.Intercept + fit.Slope*hi},
		})
		if err != nil {
			return "", fmt.Errorf("scatter %q/%q: %w", xCol, yCol, err)
		}
		line.Color = fitRed
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Y = %.4f×X %+.4f", fit.Slope, fit.Intercept), line)
		p.Legend.Top = true
	}
	return w.save(p, "scatter")
}

// corrGrid adapts a correlation matrix to the heat map's grid interface,
// first variable on the top row like the reports.
type corrGrid struct{ m stats.Matrix }

func (g corrGrid) Dims() (c, r int) { n := len(g.m.Names); return n, n }
func (g corrGrid) X(c int) float64  { return float64(c) }
func (g corrGrid) Y(r int) float64  { return float64(r) }
func (g corrGrid) Z(c, r int) float64 {
	return g.m.R[len(g.m.Names)-1-r][c]
}

// Heatmap draws the correlation matrix with a blue-red diverging palette
// and value labels.
func (w *Writer) Heatmap(m stats.Matrix) (string, error) {
	n := len(m.Names)
	if n < 2 {
		return "", fmt.Errorf("heatmap: %w", ErrNoValues)
	}
	p := newPlot("变量相关性热力图 (Pearson)", "", "")

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{m}, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)

	xys := make(plotter.XYs, 0, n*n)
	cellText := make([]string, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			cellText = append(cellText, fmt.Sprintf("%.3f", m.R[i][j]))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: cellText})
	if err != nil {
		return "", fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(9)
	}
	p.Add(labels)

	reversed := make([]string, n)
	for i, name := range m.Names {
		reversed[n-1-i] = name
	}
	p.NominalX(m.Names...)
	p.NominalY(reversed...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return w.save(p, "heatmap")
}
