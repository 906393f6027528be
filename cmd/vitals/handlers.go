// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shayne/yargs"
)

type fileArgs struct {
	File string `pos:"0" help:"CSV data file"`
}

type reportFlags struct {
	Copy bool `flag:"copy" help:"copy the report to the clipboard"`
}

func handleInfoCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, reportFlags, fileArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	return emitReport(a.info(), result.SubCommandFlags.Copy)
}

type describeFlags struct {
	Column string `flag:"column" short:"c" help:"continuous column to describe"`
	All    bool   `flag:"all" help:"describe every continuous column"`
	Copy   bool   `flag:"copy" help:"copy the report to the clipboard"`
}

func handleDescribeCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, describeFlags, fileArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	column := strings.TrimSpace(flags.Column)
	if column != "" && flags.All {
		return newUsageError("pass --column or --all, not both")
	}
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	var out string
	if column != "" {
		out, err = a.describeColumn(column)
	} else {
		out, err = a.describeAll()
	}
	if err != nil {
		return err
	}
	return emitReport(out, flags.Copy)
}

func handleMissingCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, reportFlags, fileArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	return emitReport(a.missingReport(), result.SubCommandFlags.Copy)
}

type corrFlags struct {
	Columns []string `flag:"columns" help:"continuous columns, repeatable or comma separated"`
	Heatmap bool     `flag:"heatmap" help:"also write the correlation heatmap"`
	Open    bool     `flag:"open" help:"open the chart after writing"`
	Copy    bool     `flag:"copy" help:"copy the report to the clipboard"`
}

func handleCorrCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, corrFlags, fileArgs](args, helpConfig)
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
	out, m, err := a.corr(splitColumns(flags.Columns))
	if err != nil {
		return err
	}
	if flags.Heatmap {
		path, err := a.charts.Heatmap(m)
		if err != nil {
			return err
		}
		out += "\n" + a.r.ChartSaved(path)
		a.maybeOpen(path)
	}
	return emitReport(out, flags.Copy)
}

type testArgs struct {
	Kind string `pos:"0" help:"normality|t|paired|anova|chi2|mannwhitney|kruskal"`
	File string `pos:"1" help:"CSV data file"`
}

type testFlags struct {
	Column string `flag:"column" short:"c" help:"column to test (normality)"`
	Value  string `flag:"value" help:"value column (t, anova, mannwhitney, kruskal)"`
	Group  string `flag:"group" help:"grouping column (t, anova, mannwhitney, kruskal)"`
	First  string `flag:"first" help:"first measurement column (paired)"`
	Second string `flag:"second" help:"second measurement column (paired)"`
	Rows   string `flag:"rows" help:"row variable (chi2)"`
	Cols   string `flag:"cols" help:"column variable (chi2)"`
	Copy   bool   `flag:"copy" help:"copy the report to the clipboard"`
}

func handleTestCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, testFlags, testArgs](args, helpConfig)
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
	out, err := runTest(a, result.Args.Kind, flags)
	if err != nil {
		return err
	}
	return emitReport(out, flags.Copy)
}

func runTest(a *app, kind string, flags testFlags) (string, error) {
	need := func(value, usage string) (string, error) {
		if strings.TrimSpace(value) == "" {
			return "", newUsageError("usage: vitals test " + usage)
		}
		return strings.TrimSpace(value), nil
	}
	needGroupValue := func(usage string) (value, group string, err error) {
		if value, err = need(flags.Value, usage); err != nil {
			return "", "", err
		}
		group, err = need(flags.Group, usage)
		return value, group, err
	}

	switch kind {
	case "normality":
		column, err := need(flags.Column, "normality <file> --column <col>")
		if err != nil {
			return "", err
		}
		return a.normality(column)
	case "t":
		value, group, err := needGroupValue("t <file> --value <col> --group <col>")
		if err != nil {
			return "", err
		}
		return a.tTest(value, group)
	case "paired":
		usage := "paired <file> --first <col> --second <col>"
		first, err := need(flags.First, usage)
		if err != nil {
			return "", err
		}
		second, err := need(flags.Second, usage)
		if err != nil {
			return "", err
		}
		return a.pairedT(first, second)
	case "anova":
		value, group, err := needGroupValue("anova <file> --value <col> --group <col>")
		if err != nil {
			return "", err
		}
		return a.anova(value, group)
	case "chi2":
		usage := "chi2 <file> --rows <col> --cols <col>"
		rows, err := need(flags.Rows, usage)
		if err != nil {
			return "", err
		}
		cols, err := need(flags.Cols, usage)
		if err != nil {
			return "", err
		}
		return a.chiSquare(rows, cols)
	case "mannwhitney":
		value, group, err := needGroupValue("mannwhitney <file> --value <col> --group <col>")
		if err != nil {
			return "", err
		}
		return a.mannWhitney(value, group)
	case "kruskal":
		value, group, err := needGroupValue("kruskal <file> --value <col> --group <col>")
		if err != nil {
			return "", err
		}
		return a.kruskal(value, group)
	default:
		return "", newUsageError(fmt.Sprintf("unknown test %q (expected normality, t, paired, anova, chi2, mannwhitney, or kruskal)", kind))
	}
}

type regressFlags struct {
	X    string `flag:"x" help:"predictor column"`
	Y    string `flag:"y" help:"response column"`
	Plot bool   `flag:"plot" help:"write the scatter with the fitted line"`
	Open bool   `flag:"open" help:"open the chart after writing"`
	Copy bool   `flag:"copy" help:"copy the report to the clipboard"`
}

func handleRegressCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, regressFlags, fileArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	x := strings.TrimSpace(flags.X)
	y := strings.TrimSpace(flags.Y)
	if x == "" || y == "" {
		return newUsageError("usage: vitals regress <file> --x <col> --y <col>")
	}
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	a.open = flags.Open
	out, err := a.regress(x, y, flags.Plot)
	if err != nil {
		return err
	}
	return emitReport(out, flags.Copy)
}

type pcaFlags struct {
	Columns    []string `flag:"columns" help:"continuous columns, repeatable or comma separated"`
	Components string   `flag:"components" help:"components to keep, default all"`
	Plot       string   `flag:"plot" help:"score plot: 2d or 3d"`
	Open       bool     `flag:"open" help:"open the chart after writing"`
	Copy       bool     `flag:"copy" help:"copy the report to the clipboard"`
}

func handlePCACommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, pcaFlags, fileArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	components, err := parseCount(flags.Components, "--components")
	if err != nil {
		return err
	}
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	a.open = flags.Open
	out, err := a.pca(splitColumns(flags.Columns), components, strings.ToLower(strings.TrimSpace(flags.Plot)))
	if err != nil {
		return err
	}
	return emitReport(out, flags.Copy)
}

type kmeansFlags struct {
	Columns []string `flag:"columns" help:"continuous columns, repeatable or comma separated"`
	K       string   `flag:"k" help:"cluster count, default 3"`
	Elbow   bool     `flag:"elbow" help:"also write the elbow curve"`
	Plot    bool     `flag:"plot" help:"write the clustering panel"`
	Open    bool     `flag:"open" help:"open charts after writing"`
	Copy    bool     `flag:"copy" help:"copy the report to the clipboard"`
}

func handleKMeansCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, kmeansFlags, fileArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	k, err := parseCount(flags.K, "--k")
	if err != nil {
		return err
	}
	if k == 0 {
		k = 3
	}
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	a.open = flags.Open
	out, err := a.kmeans(splitColumns(flags.Columns), k, flags.Elbow, flags.Plot)
	if err != nil {
		return err
	}
	return emitReport(out, flags.Copy)
}

type hclustFlags struct {
	Columns []string `flag:"columns" help:"continuous columns, repeatable or comma separated"`
	Plot    bool     `flag:"plot" help:"write the dendrogram"`
	Open    bool     `flag:"open" help:"open the chart after writing"`
	Copy    bool     `flag:"copy" help:"copy the report to the clipboard"`
}

func handleHClustCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, hclustFlags, fileArgs](args, helpConfig)
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
	out, err := a.hclust(splitColumns(flags.Columns), flags.Plot)
	if err != nil {
		return err
	}
	return emitReport(out, flags.Copy)
}

type exportFlags struct {
	Out string `flag:"out" short:"o" help:"workbook path, default <stem>_统计分析.xlsx"`
}

func handleExportCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, exportFlags, fileArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	a, err := loadApp(result.Args.File)
	if err != nil {
		return err
	}
	out, err := a.export(result.SubCommandFlags.Out)
	if err != nil {
		return err
	}
	return emitReport(out, false)
}

// splitColumns flattens repeated --columns values and comma-separated lists
// into one clean column list.
func splitColumns(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// parseCount parses an optional positive integer flag; empty means unset.
func parseCount(value, flag string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return 0, newUsageError(fmt.Sprintf("%s must be a positive integer, got %q", flag, value))
	}
	return n, nil
}
