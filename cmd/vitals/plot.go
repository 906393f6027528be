// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/shayne/vitals/internal/charts"
	"github.com/shayne/vitals/internal/dataset"
	"github.com/shayne/vitals/internal/stats"
	"github.com/shayne/yargs"
)

// barDistinctMax is where the bar command stops counting categories and
// draws a frequency histogram instead.
const barDistinctMax = 10

// pairGridMax caps the pair grid size; anything larger is unreadable.
const pairGridMax = 5

// radarDefaultColumns is how many continuous columns an unqualified radar
// chart compares.
const radarDefaultColumns = 6

type plotArgs struct {
	Kind string `pos:"0" help:"hist|line|bar|pie|box|violin|qq|scatter|heatmap|pairs|radar|compare|scatter3d|surface3d"`
	File string `pos:"1" help:"CSV data file"`
}

type plotFlags struct {
	Column  string   `flag:"column" short:"c" help:"column to plot"`
	Columns []string `flag:"columns" help:"columns for heatmap, pairs, and radar"`
	X       string   `flag:"x" help:"x column"`
	Y       string   `flag:"y" help:"y column"`
	Z       string   `flag:"z" help:"z column for 3D charts"`
	Group   string   `flag:"group" short:"g" help:"grouping column"`
	Bins    string   `flag:"bins" help:"histogram bin count, default 30"`
	Out     string   `flag:"out" help:"directory for the chart file"`
	Open    bool     `flag:"open" help:"open the chart after writing"`
}

func handlePlotCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, plotFlags, plotArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	a.open = flags.Open
	if dir := strings.TrimSpace(flags.Out); dir != "" {
		a.charts.Dir = dir
	}
	path, err := renderPlot(a, result.Args.Kind, flags)
	if err != nil {
		return err
	}
	a.maybeOpen(path)
	return emitReport(a.r.ChartSaved(path), false)
}

func renderPlot(a *app, kind string, flags plotFlags) (string, error) {
	column := strings.TrimSpace(flags.Column)
	x := strings.TrimSpace(flags.X)
	y := strings.TrimSpace(flags.Y)
	z := strings.TrimSpace(flags.Z)
	group := strings.TrimSpace(flags.Group)

	needColumn := func() error {
		if column == "" {
			return newUsageError(fmt.Sprintf("usage: vitals plot %s <file> --column <col>", kind))
		}
		return nil
	}

	switch kind {
	case "hist":
		if err := needColumn(); err != nil {
			return "", err
		}
		bins, err := parseCount(flags.Bins, "--bins")
		if err != nil {
			return "", err
		}
		values, err := a.frame.Values(column)
		if err != nil {
			return "", err
		}
		return a.charts.Histogram(column, values, bins)
	case "line":
		if err := needColumn(); err != nil {
			return "", err
		}
		if x != "" {
			xs, ys, err := a.frame.PairValues(x, column)
			if err != nil {
				return "", err
			}
			return a.charts.Line(column, ys, x, xs)
		}
		values, err := a.frame.Values(column)
		if err != nil {
			return "", err
		}
		return a.charts.Line(column, values, "", nil)
	case "bar":
		if err := needColumn(); err != nil {
			return "", err
		}
		return barChart(a, column)
	case "pie":
		if err := needColumn(); err != nil {
			return "", err
		}
		levels, counts, err := levelCounts(a.frame, column)
		if err != nil {
			return "", err
		}
		return a.charts.Pie(column, levels, counts)
	case "box":
		if err := needColumn(); err != nil {
			return "", err
		}
		groups, err := chartGroups(a.frame, column, group)
		if err != nil {
			return "", err
		}
		return a.charts.Box(column, group, groups)
	case "violin":
		if err := needColumn(); err != nil {
			return "", err
		}
		groups, err := chartGroups(a.frame, column, group)
		if err != nil {
			return "", err
		}
		return a.charts.Violin(column, group, groups)
	case "qq":
		if err := needColumn(); err != nil {
			return "", err
		}
		values, err := a.frame.Values(column)
		if err != nil {
			return "", err
		}
		return a.charts.QQ(column, values)
	case "scatter":
		if x == "" || y == "" {
			return "", newUsageError("usage: vitals plot scatter <file> --x <col> --y <col>")
		}
		xs, ys, err := a.frame.PairValues(x, y)
		if err != nil {
			return "", err
		}
		return a.charts.Scatter(x, y, xs, ys, nil)
	case "heatmap":
		_, m, err := a.corr(splitColumns(flags.Columns))
		if err != nil {
			return "", err
		}
		return a.charts.Heatmap(m)
	case "pairs":
		return pairGrid(a, splitColumns(flags.Columns))
	case "radar":
		groups, columns, err := radarGroups(a.frame, splitColumns(flags.Columns), group)
		if err != nil {
			return "", err
		}
		return a.charts.Radar(columns, groups)
	case "compare":
		if err := needColumn(); err != nil {
			return "", err
		}
		if group == "" {
			return "", newUsageError("usage: vitals plot compare <file> --column <col> --group <col>")
		}
		groups, err := chartGroups(a.frame, column, group)
		if err != nil {
			return "", err
		}
		return a.charts.Compare(column, group, groups)
	case "scatter3d":
		if x == "" || y == "" || z == "" {
			return "", newUsageError("usage: vitals plot scatter3d <file> --x <col> --y <col> --z <col>")
		}
		series, err := series3D(a.frame, x, y, z, group)
		if err != nil {
			return "", err
		}
		return a.charts.Scatter3D(x, y, z, series)
	case "surface3d":
		if x == "" || y == "" || z == "" {
			return "", newUsageError("usage: vitals plot surface3d <file> --x <col> --y <col> --z <col>")
		}
		rows, err := a.frame.CompleteRows(x, y, z)
		if err != nil {
			return "", err
		}
		xs, ys, zs := splitTriples(rows)
		return a.charts.Surface3D(x, y, z, xs, ys, zs)
	default:
		return "", newUsageError(fmt.Sprintf("unknown plot kind %q", kind))
	}
}

// barChart picks the bar rendering: numeric columns with many distinct
// values get a frequency histogram, everything else a category count bar.
func barChart(a *app, column string) (string, error) {
	col, err := a.frame.Column(column)
	if err != nil {
		return "", err
	}
	if col.IsNumeric() && col.Distinct() > barDistinctMax {
		return a.charts.CountHistogram(column, col.Values())
	}
	levels, counts, err := levelCounts(a.frame, column)
	if err != nil {
		return "", err
	}
	return a.charts.Bar(column, levels, counts)
}

func levelCounts(f *dataset.Frame, column string) ([]string, []float64, error) {
	lc, err := f.Counts(column)
	if err != nil {
		return nil, nil, err
	}
	levels := make([]string, len(lc))
	counts := make([]float64, len(lc))
	for i, c := range lc {
		levels[i] = c.Level
		counts[i] = float64(c.Count)
	}
	return levels, counts, nil
}

// chartGroups adapts grouped values to the chart writer's group type. An
// empty group column yields a single unnamed group of the whole column.
func chartGroups(f *dataset.Frame, valueCol, groupCol string) ([]charts.Group, error) {
	if groupCol == "" {
		values, err := f.Values(valueCol)
		if err != nil {
			return nil, err
		}
		return []charts.Group{{Values: values}}, nil
	}
	groups, err := f.GroupValues(valueCol, groupCol)
	if err != nil {
		return nil, err
	}
	out := make([]charts.Group, len(groups))
	for i, g := range groups {
		out[i] = charts.Group{Name: g.Level, Values: g.Values}
	}
	return out, nil
}

func pairGrid(a *app, columns []string) (string, error) {
	if len(columns) == 0 {
		columns = a.frame.Continuous()
		if len(columns) > 4 {
			columns = columns[:4]
		}
	} else {
		var err error
		columns, err = a.resolveContinuous(columns, 2)
		if err != nil {
			return "", err
		}
	}
	if len(columns) > pairGridMax {
		columns = columns[:pairGridMax]
	}
	if len(columns) < 2 {
		return "", fmt.Errorf("need at least 2 continuous columns, have %d", len(columns))
	}
	rows, err := a.frame.CompleteRows(columns...)
	if err != nil {
		return "", err
	}
	cols := make([][]float64, len(columns))
	for i := range cols {
		cols[i] = make([]float64, len(rows))
		for j, row := range rows {
			cols[i][j] = row[i]
		}
	}
	return a.charts.PairGrid(columns, cols)
}

// radarGroups computes per-group column means normalized by each column's
// full range. No group column produces one unnamed polygon of overall means.
func radarGroups(f *dataset.Frame, columns []string, groupCol string) ([]charts.RadarGroup, []string, error) {
	if len(columns) == 0 {
		columns = f.Continuous()
		if len(columns) > radarDefaultColumns {
			columns = columns[:radarDefaultColumns]
		}
	}
	if len(columns) == 0 {
		return nil, nil, errors.New("no continuous columns for the radar chart")
	}

	mins := make([]float64, len(columns))
	maxs := make([]float64, len(columns))
	for i, c := range columns {
		values, err := f.Values(c)
		if err != nil {
			return nil, nil, err
		}
		if len(values) == 0 {
			return nil, nil, fmt.Errorf("column %q has no values", c)
		}
		mins[i] = floats.Min(values)
		maxs[i] = floats.Max(values)
	}
	normalize := func(i int, mean float64) float64 {
		if maxs[i] == mins[i] {
			return 0
		}
		return (mean - mins[i]) / (maxs[i] - mins[i])
	}

	if groupCol == "" {
		g := charts.RadarGroup{Values: make([]float64, len(columns))}
		for i, c := range columns {
			values, err := f.Values(c)
			if err != nil {
				return nil, nil, err
			}
			g.Values[i] = normalize(i, stats.Mean(values))
		}
		return []charts.RadarGroup{g}, columns, nil
	}

	levels, err := f.Levels(groupCol)
	if err != nil {
		return nil, nil, err
	}
	byLevel := make(map[string][]float64, len(levels))
	for i, c := range columns {
		groups, err := f.GroupValues(c, groupCol)
		if err != nil {
			return nil, nil, err
		}
		for _, g := range groups {
			values, ok := byLevel[g.Level]
			if !ok {
				values = make([]float64, len(columns))
				byLevel[g.Level] = values
			}
			values[i] = normalize(i, stats.Mean(g.Values))
		}
	}
	groups := make([]charts.RadarGroup, 0, len(levels))
	for _, level := range levels {
		if values, ok := byLevel[level]; ok {
			groups = append(groups, charts.RadarGroup{Name: level, Values: values})
		}
	}
	if len(groups) == 0 {
		return nil, nil, fmt.Errorf("column %q has no levels with data", groupCol)
	}
	return groups, columns, nil
}

// series3D buckets complete x/y/z triples by group level, or returns one
// unnamed series when no group column is given.
func series3D(f *dataset.Frame, xCol, yCol, zCol, groupCol string) ([]charts.Series3D, error) {
	if groupCol == "" {
		rows, err := f.CompleteRows(xCol, yCol, zCol)
		if err != nil {
			return nil, err
		}
		xs, ys, zs := splitTriples(rows)
		return []charts.Series3D{{X: xs, Y: ys, Z: zs}}, nil
	}

	xc, err := f.Column(xCol)
	if err != nil {
		return nil, err
	}
	yc, err := f.Column(yCol)
	if err != nil {
		return nil, err
	}
	zc, err := f.Column(zCol)
	if err != nil {
		return nil, err
	}
	for _, c := range []*dataset.Column{xc, yc, zc} {
		if !c.IsNumeric() {
			return nil, errors.New("3d scatter needs numeric x, y, and z columns")
		}
	}
	gc, err := f.Column(groupCol)
	if err != nil {
		return nil, err
	}

	byLevel := map[string]*charts.Series3D{}
	var order []string
	for i := 0; i < f.Rows(); i++ {
		x, okX := xc.Float(i)
		y, okY := yc.Float(i)
		z, okZ := zc.Float(i)
		if !okX || !okY || !okZ || gc.Missing(i) {
			continue
		}
		level := gc.Cell(i)
		s, ok := byLevel[level]
		if !ok {
			s = &charts.Series3D{Name: level}
			byLevel[level] = s
			order = append(order, level)
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
		s.Z = append(s.Z, z)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("no complete rows across %s, %s, %s", xCol, yCol, zCol)
	}
	series := make([]charts.Series3D, len(order))
	for i, level := range order {
		series[i] = *byLevel[level]
	}
	return series, nil
}

func splitTriples(rows [][]float64) (xs, ys, zs []float64) {
	xs = make([]float64, len(rows))
	ys = make([]float64, len(rows))
	zs = make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = row[0]
		ys[i] = row[1]
		zs[i] = row[2]
	}
	return xs, ys, zs
}
