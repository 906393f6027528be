// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/shayne/vitals/internal/charts"
	"github.com/shayne/vitals/internal/config"
	"github.com/shayne/vitals/internal/dataset"
	"github.com/shayne/vitals/internal/export"
	"github.com/shayne/vitals/internal/mlearn"
	"github.com/shayne/vitals/internal/report"
	"github.com/shayne/vitals/internal/stats"
	"github.com/shayne/vitals/internal/tui"
)

// app ties one loaded data file to the report renderer and chart writer
// every command works through.
type app struct {
	frame  *dataset.Frame
	cfg    config.Config
	r      *report.Renderer
	charts *charts.Writer
	open   bool
}

func loadApp(file string) (*app, error) {
	cfg, _, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	frame, err := dataset.Load(file)
	if err != nil {
		return nil, err
	}
	return newApp(frame, cfg), nil
}

func newApp(frame *dataset.Frame, cfg config.Config) *app {
	dir := cfg.PlotDir
	if dir == "" {
		dir = "charts"
	}
	w := charts.NewWriter(dir, frame.Name)
	w.Format = cfg.PlotFormat
	return &app{
		frame:  frame,
		cfg:    cfg,
		r:      report.New(report.Language(cfg.Language)),
		charts: w,
	}
}

// maybeOpen launches the platform opener on a freshly written chart.
// HTML charts open whenever the config says so, anything else only under
// --open. Failures are warnings, not errors; the file is already on disk.
func (a *app) maybeOpen(path string) {
	html := strings.EqualFold(filepath.Ext(path), ".html")
	if !a.open && !(html && a.cfg.OpenCharts) {
		return
	}
	if err := charts.Open(path); err != nil {
		fmt.Fprintf(os.Stderr, "vitals: open %s: %v\n", path, err)
	}
}

// resolveContinuous maps a requested column list to verified continuous
// columns; an empty request means every continuous column in the frame.
func (a *app) resolveContinuous(requested []string, min int) ([]string, error) {
	names := requested
	if len(names) == 0 {
		names = a.frame.Continuous()
	} else {
		for _, name := range names {
			col, err := a.frame.Column(name)
			if err != nil {
				return nil, err
			}
			if !col.IsNumeric() {
				return nil, fmt.Errorf("column %q is not continuous", name)
			}
		}
	}
	if len(names) < min {
		return nil, fmt.Errorf("need at least %d continuous columns, have %d", min, len(names))
	}
	return names, nil
}

func (a *app) info() string {
	name := a.frame.Path
	if name == "" {
		name = a.frame.Name
	}
	return a.r.Info(name, a.frame.Rows(), len(a.frame.Columns()), a.frame.Categorical(), a.frame.Continuous())
}

func (a *app) describeColumn(column string) (string, error) {
	values, err := a.frame.Values(column)
	if err != nil {
		return "", err
	}
	d, err := stats.Describe(values)
	if err != nil {
		return "", fmt.Errorf("describe %q: %w", column, err)
	}
	return a.r.Describe(column, d), nil
}

// describeAll renders one summary row per continuous column. Columns too
// sparse to describe keep their missing counts and zeroed statistics.
func (a *app) describeAll() (string, error) {
	names := a.frame.Continuous()
	if len(names) == 0 {
		return "", fmt.Errorf("%s has no continuous columns", a.frame.Name)
	}
	total := a.frame.Rows()
	rows := make([]report.DescribeRow, 0, len(names))
	for _, name := range names {
		col, err := a.frame.Column(name)
		if err != nil {
			return "", err
		}
		missing := total - col.Count()
		row := report.DescribeRow{Name: name, Missing: missing}
		if total > 0 {
			row.MissingPct = float64(missing) / float64(total) * 100
		}
		if d, err := stats.Describe(col.Values()); err == nil {
			row.Stats = d
		}
		rows = append(rows, row)
	}
	return a.r.DescribeAll(total, rows), nil
}

func (a *app) missingReport() string {
	cols, _ := a.frame.MissingSummary()
	return a.r.Missing(a.frame.Rows(), len(a.frame.Columns()), cols)
}

func (a *app) corr(columns []string) (string, stats.Matrix, error) {
	names, err := a.resolveContinuous(columns, 2)
	if err != nil {
		return "", stats.Matrix{}, err
	}
	m, err := stats.PearsonMatrix(a.frame, names)
	if err != nil {
		return "", stats.Matrix{}, err
	}
	return a.r.Correlation(m), m, nil
}

func (a *app) normality(column string) (string, error) {
	values, err := a.frame.Values(column)
	if err != nil {
		return "", err
	}
	res, err := stats.Normality(values)
	if err != nil {
		return "", err
	}
	return a.r.Normality(column, stats.Mean(values), stats.Std(values), stats.Skew(values), stats.ExKurtosis(values), res), nil
}

// twoGroups splits a value column by a grouping column that must carry
// exactly two levels.
func (a *app) twoGroups(valueCol, groupCol string) ([]dataset.Group, error) {
	groups, err := a.frame.GroupValues(valueCol, groupCol)
	if err != nil {
		return nil, err
	}
	if len(groups) != 2 {
		return nil, fmt.Errorf("column %q has %d levels, need exactly 2", groupCol, len(groups))
	}
	return groups, nil
}

func groupStats(g dataset.Group) report.GroupStats {
	return report.GroupStats{
		Name: g.Level,
		N:    len(g.Values),
		Mean: stats.Mean(g.Values),
		Std:  stats.Std(g.Values),
	}
}

func groupMedian(g dataset.Group) report.GroupMedian {
	return report.GroupMedian{
		Name:   g.Level,
		N:      len(g.Values),
		Median: stats.Median(g.Values),
	}
}

func (a *app) tTest(valueCol, groupCol string) (string, error) {
	groups, err := a.twoGroups(valueCol, groupCol)
	if err != nil {
		return "", err
	}
	res, err := stats.TwoSampleTTest(groups[0].Values, groups[1].Values)
	if err != nil {
		return "", err
	}
	return a.r.TTest(groupCol, valueCol, groupStats(groups[0]), groupStats(groups[1]), res), nil
}

func (a *app) pairedT(firstCol, secondCol string) (string, error) {
	first, second, err := a.frame.PairValues(firstCol, secondCol)
	if err != nil {
		return "", err
	}
	res, err := stats.PairedTTest(first, second)
	if err != nil {
		return "", err
	}
	g1 := groupStats(dataset.Group{Level: firstCol, Values: first})
	g2 := groupStats(dataset.Group{Level: secondCol, Values: second})
	return a.r.PairedT(g1, g2, res), nil
}

func (a *app) anova(valueCol, groupCol string) (string, error) {
	groups, err := a.frame.GroupValues(valueCol, groupCol)
	if err != nil {
		return "", err
	}
	values := make([][]float64, len(groups))
	gs := make([]report.GroupStats, len(groups))
	for i, g := range groups {
		values[i] = g.Values
		gs[i] = groupStats(g)
	}
	res, err := stats.OneWayANOVA(values)
	if err != nil {
		return "", err
	}
	return a.r.ANOVA(groupCol, valueCol, gs, res), nil
}

func (a *app) chiSquare(rowCol, colCol string) (string, error) {
	ct, err := a.frame.Crosstab(rowCol, colCol)
	if err != nil {
		return "", err
	}
	res, err := stats.ChiSquare(ct.Counts)
	if err != nil {
		return "", err
	}
	return a.r.ChiSquare(ct, res), nil
}

func (a *app) mannWhitney(valueCol, groupCol string) (string, error) {
	groups, err := a.twoGroups(valueCol, groupCol)
	if err != nil {
		return "", err
	}
	res, err := stats.MannWhitney(groups[0].Values, groups[1].Values)
	if err != nil {
		return "", err
	}
	return a.r.MannWhitney(groupCol, valueCol, groupMedian(groups[0]), groupMedian(groups[1]), res), nil
}

func (a *app) kruskal(valueCol, groupCol string) (string, error) {
	groups, err := a.frame.GroupValues(valueCol, groupCol)
	if err != nil {
		return "", err
	}
	values := make([][]float64, len(groups))
	gm := make([]report.GroupMedian, len(groups))
	for i, g := range groups {
		values[i] = g.Values
		gm[i] = groupMedian(g)
	}
	res, err := stats.KruskalWallis(values)
	if err != nil {
		return "", err
	}
	return a.r.KruskalWallis(groupCol, valueCol, gm, res), nil
}

func (a *app) regress(xCol, yCol string, plot bool) (string, error) {
	x, y, err := a.frame.PairValues(xCol, yCol)
	if err != nil {
		return "", err
	}
	res, err := stats.LinearRegression(x, y)
	if err != nil {
		return "", err
	}
	out := a.r.Regression(xCol, yCol, res)
	if plot {
		path, err := a.charts.Scatter(xCol, yCol, x, y, &res)
		if err != nil {
			return "", err
		}
		out += "\n" + a.r.ChartSaved(path)
		a.maybeOpen(path)
	}
	return out, nil
}

// mlProgress narrates the stages of the slower learning commands on
// stderr; stdout carries only the report.
func (a *app) mlProgress(action string) *tui.Progress {
	return tui.NewProgress(os.Stderr, tui.EnabledForOutput(os.Stderr), action, a.frame.Name)
}

// completeMatrix collects the complete rows of the named columns as a dense
// matrix for the mlearn routines.
func (a *app) completeMatrix(names []string) (*mat.Dense, error) {
	rows, err := a.frame.CompleteRows(names...)
	if err != nil {
		return nil, err
	}
	return mlearn.MatrixFromRows(rows)
}

func (a *app) pca(columns []string, components int, plotMode string) (string, error) {
	names, err := a.resolveContinuous(columns, 2)
	if err != nil {
		return "", err
	}
	data, err := a.completeMatrix(names)
	if err != nil {
		return "", err
	}
	res, err := mlearn.PCA(data, names)
	if err != nil {
		return "", err
	}
	res = trimPCA(res, components)
	out := a.r.PCA(res)

	var path string
	switch plotMode {
	case "":
	case "2d":
		path, err = a.charts.PCAScatter(res, nil, nil)
	case "3d":
		path, err = a.charts.PCA3D(res, nil, nil)
	default:
		return "", newUsageError(fmt.Sprintf("unknown pca plot mode %q (expected 2d or 3d)", plotMode))
	}
	if err != nil {
		return "", err
	}
	if path != "" {
		out += "\n" + a.r.ChartSaved(path)
		a.maybeOpen(path)
	}
	return out, nil
}

// trimPCA keeps the first n components of a full decomposition. n outside
// the valid range keeps everything.
func trimPCA(res *mlearn.PCAResult, n int) *mlearn.PCAResult {
	if n <= 0 || n >= len(res.Vars) {
		return res
	}
	rows, _ := res.Loadings.Dims()
	obs, _ := res.Scores.Dims()
	trimmed := &mlearn.PCAResult{
		Names:      res.Names,
		Vars:       res.Vars[:n],
		Ratios:     res.Ratios[:n],
		Cumulative: res.Cumulative[:n],
		Loadings:   mat.DenseCopyOf(res.Loadings.Slice(0, rows, 0, n)),
		Scores:     mat.DenseCopyOf(res.Scores.Slice(0, obs, 0, n)),
		Suggested:  res.Suggested,
	}
	if trimmed.Suggested > n {
		trimmed.Suggested = 0
	}
	return trimmed
}

func (a *app) kmeans(columns []string, k int, elbow, plot bool) (string, error) {
	names, err := a.resolveContinuous(columns, 2)
	if err != nil {
		return "", err
	}
	data, err := a.completeMatrix(names)
	if err != nil {
		return "", err
	}
	res, err := mlearn.KMeans(data, names, k)
	if err != nil {
		return "", err
	}
	out := a.r.KMeans(res)

	if !elbow && !plot {
		return out, nil
	}
	ui := a.mlProgress("kmeans")
	ui.Start()
	defer ui.Stop()
	ui.Step("Sweep cluster counts")
	inertias, err := mlearn.Elbow(data)
	if err != nil {
		ui.Fail(err.Error())
		return "", err
	}
	ui.Done("")
	ks := make([]int, len(inertias))
	for i := range ks {
		ks[i] = i + 1
	}
	if elbow {
		ui.Step("Write elbow curve")
		path, err := a.charts.Elbow(ks, inertias, k)
		if err != nil {
			ui.Fail(err.Error())
			return "", err
		}
		ui.Done("")
		out += "\n" + a.r.ChartSaved(path)
		a.maybeOpen(path)
	}
	if plot {
		ui.Step("Write clustering panel")
		pca, err := mlearn.PCA(data, names)
		if err != nil {
			ui.Fail(err.Error())
			return "", err
		}
		path, err := a.charts.KMeansPanel(res, pca, ks, inertias)
		if err != nil {
			ui.Fail(err.Error())
			return "", err
		}
		ui.Done("")
		out += "\n" + a.r.ChartSaved(path)
		a.maybeOpen(path)
	}
	return out, nil
}

func (a *app) hclust(columns []string, plot bool) (string, error) {
	names, err := a.resolveContinuous(columns, 2)
	if err != nil {
		return "", err
	}
	data, err := a.completeMatrix(names)
	if err != nil {
		return "", err
	}
	total, _ := data.Dims()
	sampled := mlearn.SampleRows(data, mlearn.MaxDendrogramRows)
	n, _ := sampled.Dims()
	out := a.r.HClust(total, n)

	if plot {
		ui := a.mlProgress("hclust")
		ui.Start()
		defer ui.Stop()
		ui.Step("Compute Ward linkage")
		merges, err := mlearn.Ward(sampled)
		if err != nil {
			ui.Fail(err.Error())
			return "", err
		}
		ui.Done("")
		ui.Step("Write dendrogram")
		path, err := a.charts.Dendrogram(merges, nil)
		if err != nil {
			ui.Fail(err.Error())
			return "", err
		}
		ui.Done("")
		out += "\n" + a.r.ChartSaved(path)
		a.maybeOpen(path)
	}
	return out, nil
}

// exportPath applies the default workbook name and extension rules.
func (a *app) exportPath(out string) string {
	if strings.TrimSpace(out) == "" {
		out = a.frame.Name + "_统计分析.xlsx"
	}
	if filepath.Ext(out) == "" {
		out += ".xlsx"
	}
	return out
}

func (a *app) export(out string) (string, error) {
	res, err := export.Statistics(a.frame, a.frame.Continuous(), a.exportPath(out))
	if err != nil {
		return "", err
	}
	if res.CSVFallback {
		return a.r.ExportCSVFallback(res.Path), nil
	}
	return a.r.ExportOK(res.Path), nil
}
