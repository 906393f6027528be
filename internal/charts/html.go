// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"fmt"
	"io"
	"os"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"

	"github.com/shayne/vitals/internal/mlearn"
)

// viridis is the color ramp for value-mapped 3D charts.
var viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

const (
	pageTitle  = "健康数据分析工具"
	pageWidth  = "900px"
	pageHeight = "600px"
)

type htmlChart interface {
	Render(w io.Writer) error
}

func (w *Writer) renderHTML(kind string, chart htmlChart) (string, error) {
	path, err := w.path(kind, "html")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save %s chart: %w", kind, err)
	}
	defer f.Close()
	if err := chart.Render(f); err != nil {
		return "", fmt.Errorf("save %s chart: %w", kind, err)
	}
	return path, nil
}

func initOpts() opts.Initialization {
	return opts.Initialization{PageTitle: pageTitle, Width: pageWidth, Height: pageHeight}
}

// Pie writes an HTML pie chart of the level counts of a categorical column.
func (w *Writer) Pie(column string, levels []string, counts []float64) (string, error) {
	if len(levels) == 0 {
		return "", fmt.Errorf("pie %q: %w", column, ErrNoValues)
	}
	pie := echarts.NewPie()
	pie.SetGlobalOptions(
		echarts.WithInitializationOpts(initOpts()),
		echarts.WithTitleOpts(opts.Title{Title: column + " 占比分布"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "vertical", Left: "left"}),
	)
	items := make([]opts.PieData, len(levels))
	for i, level := range levels {
		items[i] = opts.PieData{Name: level, Value: counts[i]}
	}
	pie.AddSeries(column, items).SetSeriesOptions(
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
	)
	return w.renderHTML("pie", pie)
}

// RadarGroup is one polygon on the radar chart. Values are the group means
// rescaled to the unit interval, one per indicator column.
type RadarGroup struct {
	Name   string
	Values []float64
}

// Radar writes an HTML radar chart comparing normalized column means.
func (w *Writer) Radar(columns []string, groups []RadarGroup) (string, error) {
	if len(columns) == 0 || len(groups) == 0 {
		return "", fmt.Errorf("radar: %w", ErrNoValues)
	}
	indicators := make([]*opts.Indicator, len(columns))
	for i, c := range columns {
		indicators[i] = &opts.Indicator{Name: c, Max: 1}
	}
	radar := echarts.NewRadar()
	radar.SetGlobalOptions(
		echarts.WithInitializationOpts(initOpts()),
		echarts.WithTitleOpts(opts.Title{Title: "雷达图 (归一化后的均值)"}),
		echarts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators, SplitNumber: 5}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Left: "right"}),
	)
	for _, g := range groups {
		vals := make([]float32, len(g.Values))
		for i, v := range g.Values {
			vals[i] = float32(v)
		}
		radar.AddSeries(g.Name, []opts.RadarData{{Name: g.Name, Value: vals}},
			echarts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.25)}),
		)
	}
	return w.renderHTML("radar", radar)
}

// Series3D is one named batch of points for the 3D charts.
type Series3D struct {
	Name    string
	X, Y, Z []float64
}

func points3D(s Series3D) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(s.X))
	for i := range s.X {
		data[i] = opts.Chart3DData{Value: []interface{}{s.X[i], s.Y[i], s.Z[i]}}
	}
	return data
}

// Scatter3D writes an HTML 3D scatter. A single unnamed series is colored by
// its z values; named series get one color and legend entry each.
func (w *Writer) Scatter3D(xCol, yCol, zCol string, series []Series3D) (string, error) {
	var total int
	for _, s := range series {
		total += len(s.X)
	}
	if total == 0 {
		return "", fmt.Errorf("3d scatter: %w", ErrNoValues)
	}
	sc := echarts.NewScatter3D()
	global := []echarts.GlobalOpts{
		echarts.WithInitializationOpts(initOpts()),
		echarts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("3D散点图: %s vs %s vs %s", xCol, yCol, zCol)}),
		echarts.WithXAxis3DOpts(opts.XAxis3D{Name: xCol, Show: opts.Bool(true)}),
		echarts.WithYAxis3DOpts(opts.YAxis3D{Name: yCol, Show: opts.Bool(true)}),
		echarts.WithZAxis3DOpts(opts.ZAxis3D{Name: zCol, Show: opts.Bool(true)}),
	}
	if len(series) == 1 && series[0].Name == "" {
		lo, hi := floats.Min(series[0].Z), floats.Max(series[0].Z)
		global = append(global, echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}))
	} else {
		global = append(global, echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}))
	}
	sc.SetGlobalOptions(global...)
	for _, s := range series {
		sc.AddSeries(s.Name, points3D(s))
	}
	return w.renderHTML("scatter3d", sc)
}

// Surface3D writes an HTML surface fitted to scattered observations, with
// the observations overlaid. The surface is z interpolated over a 25x25 grid
// by inverse squared distance.
func (w *Writer) Surface3D(xCol, yCol, zCol string, x, y, z []float64) (string, error) {
	if len(x) == 0 || len(x) != len(y) || len(x) != len(z) {
		return "", fmt.Errorf("3d surface: %w", ErrNoValues)
	}
	const gridSize = 25
	xmin, xmax := floats.Min(x), floats.Max(x)
	ymin, ymax := floats.Min(y), floats.Max(y)
	if xmin == xmax || ymin == ymax {
		return "", fmt.Errorf("3d surface: %w", ErrNoValues)
	}

	grid := make([]opts.Chart3DData, 0, gridSize*gridSize)
	for i := 0; i < gridSize; i++ {
		gy := ymin + (ymax-ymin)*float64(i)/(gridSize-1)
		for j := 0; j < gridSize; j++ {
			gx := xmin + (xmax-xmin)*float64(j)/(gridSize-1)
			gz := idw(x, y, z, gx, gy, xmax-xmin, ymax-ymin)
			grid = append(grid, opts.Chart3DData{Value: []interface{}{gx, gy, gz}})
		}
	}

	surf := echarts.NewSurface3D()
	surf.SetGlobalOptions(
		echarts.WithInitializationOpts(initOpts()),
		echarts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("3D曲面图: %s = f(%s, %s)", zCol, xCol, yCol)}),
		echarts.WithXAxis3DOpts(opts.XAxis3D{Name: xCol, Show: opts.Bool(true)}),
		echarts.WithYAxis3DOpts(opts.YAxis3D{Name: yCol, Show: opts.Bool(true)}),
		echarts.WithZAxis3DOpts(opts.ZAxis3D{Name: zCol, Show: opts.Bool(true)}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(floats.Min(z)),
			Max:        float32(floats.Max(z)),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	surf.AddSeries(zCol, grid)
	surf.MultiSeries = append(surf.MultiSeries, echarts.SingleSeries{
		Name:             "原始数据点",
		Type:             "scatter3D",
		CoordinateSystem: "cartesian3D",
		Data:             points3D(Series3D{X: x, Y: y, Z: z}),
		ItemStyle:        &opts.ItemStyle{Color: "#d62728"},
	})
	return w.renderHTML("surface3d", surf)
}

// idw is Shepard interpolation with inverse squared distances, measured in
// units of the axis ranges so both axes weigh equally.
func idw(x, y, z []float64, gx, gy, xrange, yrange float64) float64 {
	var num, den float64
	for i := range x {
		dx := (x[i] - gx) / xrange
		dy := (y[i] - gy) / yrange
		d2 := dx*dx + dy*dy
		if d2 < 1e-12 {
			return z[i]
		}
		w := 1 / d2
		num += w * z[i]
		den += w
	}
	return num / den
}

// PCA3D writes an HTML 3D scatter of the first three component scores.
func (w *Writer) PCA3D(res *mlearn.PCAResult, assign []int, groupNames []string) (string, error) {
	rows, cols := res.Scores.Dims()
	if rows == 0 || cols < 3 {
		return "", fmt.Errorf("3d pca: %w", ErrNoValues)
	}
	series := make([]Series3D, 1)
	if assign != nil {
		series = make([]Series3D, len(groupNames))
		for g, name := range groupNames {
			series[g].Name = name
		}
	}
	for i := 0; i < rows; i++ {
		g := 0
		if assign != nil {
			g = assign[i]
		}
		series[g].X = append(series[g].X, res.Scores.At(i, 0))
		series[g].Y = append(series[g].Y, res.Scores.At(i, 1))
		series[g].Z = append(series[g].Z, res.Scores.At(i, 2))
	}

	sc := echarts.NewScatter3D()
	global := []echarts.GlobalOpts{
		echarts.WithInitializationOpts(initOpts()),
		echarts.WithTitleOpts(opts.Title{
			Title:    "PCA 3D降维可视化",
			Subtitle: fmt.Sprintf("总解释方差: %.1f%%", res.Cumulative[2]*100),
		}),
		echarts.WithXAxis3DOpts(opts.XAxis3D{Name: fmt.Sprintf("PC1 (%.1f%%)", res.Ratios[0]*100), Show: opts.Bool(true)}),
		echarts.WithYAxis3DOpts(opts.YAxis3D{Name: fmt.Sprintf("PC2 (%.1f%%)", res.Ratios[1]*100), Show: opts.Bool(true)}),
		echarts.WithZAxis3DOpts(opts.ZAxis3D{Name: fmt.Sprintf("PC3 (%.1f%%)", res.Ratios[2]*100), Show: opts.Bool(true)}),
	}
	if assign != nil {
		global = append(global, echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}))
	}
	sc.SetGlobalOptions(global...)
	for _, s := range series {
		if len(s.X) == 0 {
			continue
		}
		sc.AddSeries(s.Name, points3D(s))
	}
	return w.renderHTML("pca3d", sc)
}
