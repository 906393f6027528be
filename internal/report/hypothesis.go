// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/shayne/vitals/internal/dataset"
	"github.com/shayne/vitals/internal/stats"
)

// GroupStats describes one group in a parametric test report.
type GroupStats struct {
	Name string
	N    int
	Mean float64
	Std  float64
}

// GroupMedian describes one group in a nonparametric test report.
type GroupMedian struct {
	Name   string
	N      int
	Median float64
}

// TTest renders the independent-samples t-test report.
func (r *Renderer) TTest(groupCol, valueCol string, g1, g2 GroupStats, res stats.TTestResult) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.tTestTitle + "\n")
	fmt.Fprintf(&b, r.t.tTestGroupCol+"\n", groupCol)
	fmt.Fprintf(&b, r.t.tTestValueCol+"\n", valueCol)
	for i, g := range []GroupStats{g1, g2} {
		b.WriteString("\n")
		fmt.Fprintf(&b, r.t.tTestGroup+"\n", i+1, g.Name)
		fmt.Fprintf(&b, r.t.tTestN+"\n", g.N)
		fmt.Fprintf(&b, r.t.tTestMean+"\n", g.Mean)
		fmt.Fprintf(&b, r.t.tTestStd+"\n", g.Std)
	}
	b.WriteString("\n" + r.t.tTestStats + "\n")
	fmt.Fprintf(&b, r.t.tTestT+"\n", res.T)
	fmt.Fprintf(&b, r.t.tTestP+"\n", res.P)
	if res.P < 0.05 {
		b.WriteString("\n" + r.t.tTestSig + "\n")
	} else {
		b.WriteString("\n" + r.t.tTestNotSig + "\n")
	}
	return b.String()
}

// PairedT renders the paired-samples t-test report. first and second carry
// the per-column means and SDs; the pair count comes from res.
func (r *Renderer) PairedT(first, second GroupStats, res stats.PairedResult) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.pairedTitle + "\n")
	fmt.Fprintf(&b, r.t.pairedBefore+"\n", first.Name)
	fmt.Fprintf(&b, r.t.pairedAfter+"\n", second.Name)
	fmt.Fprintf(&b, r.t.pairedN+"\n\n", res.N)
	b.WriteString(r.t.describeHdr + "\n")
	fmt.Fprintf(&b, r.t.pairedPair+"\n", first.Name, first.Mean, first.Std)
	fmt.Fprintf(&b, r.t.pairedPair+"\n", second.Name, second.Mean, second.Std)
	fmt.Fprintf(&b, r.t.pairedDiff+"\n\n", res.DiffMean, res.DiffStd)
	b.WriteString(r.t.testResults + "\n")
	fmt.Fprintf(&b, r.t.pairedT+"\n", res.T)
	fmt.Fprintf(&b, r.t.pairedP+"\n\n", res.P)
	if res.P < 0.05 {
		direction := r.t.pairedUp
		if res.DiffMean <= 0 {
			direction = r.t.pairedDown
		}
		b.WriteString(r.t.pairedSig + "\n")
		fmt.Fprintf(&b, r.t.pairedChange+"\n", direction, math.Abs(res.DiffMean))
	} else {
		b.WriteString(r.t.pairedNotSig + "\n")
	}
	return b.String()
}

// ANOVA renders the one-way ANOVA report with per-group descriptives.
func (r *Renderer) ANOVA(groupCol, valueCol string, groups []GroupStats, res stats.ANOVAResult) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.anovaTitle + "\n")
	fmt.Fprintf(&b, r.t.anovaGroupCol+"\n", groupCol)
	fmt.Fprintf(&b, r.t.anovaValueCol+"\n", valueCol)
	fmt.Fprintf(&b, r.t.anovaGroupCount+"\n\n", len(groups))
	b.WriteString(r.t.groupDescribe + "\n")
	for _, g := range groups {
		fmt.Fprintf(&b, r.t.anovaGroupLine+"\n", g.Name, g.N, g.Mean, g.Std)
	}
	b.WriteString("\n" + r.t.anovaResults + "\n")
	fmt.Fprintf(&b, r.t.anovaF+"\n", res.F)
	fmt.Fprintf(&b, r.t.anovaP+"\n\n", res.P)
	switch {
	case res.P < 0.001:
		b.WriteString(r.t.anovaSig001 + "\n")
	case res.P < 0.01:
		b.WriteString(r.t.anovaSig01 + "\n")
	case res.P < 0.05:
		b.WriteString(r.t.anovaSig05 + "\n")
	default:
		b.WriteString(r.t.anovaNotSig + "\n")
	}
	return b.String()
}

// ChiSquare renders the chi-square independence report with the observed
// contingency table.
func (r *Renderer) ChiSquare(ct *dataset.Crosstab, res stats.ChiSquareResult) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.chiTitle + "\n")
	fmt.Fprintf(&b, r.t.chiVar1+"\n", ct.RowName)
	fmt.Fprintf(&b, r.t.chiVar2+"\n\n", ct.ColName)
	b.WriteString(r.t.chiTable + "\n")
	cells := make([][]string, len(ct.Rows))
	for i, row := range ct.Counts {
		cells[i] = make([]string, len(row))
		for j, c := range row {
			cells[i][j] = fmt.Sprintf("%.0f", c)
		}
	}
	b.WriteString(tabulate(ct.Cols, ct.Rows, cells))
	b.WriteString("\n\n" + r.t.testResults + "\n")
	fmt.Fprintf(&b, r.t.chiStat+"\n", res.Chi2)
	fmt.Fprintf(&b, r.t.chiDF+"\n", res.DF)
	fmt.Fprintf(&b, r.t.chiP+"\n\n", res.P)
	switch {
	case res.P < 0.001:
		b.WriteString(r.t.chiSig001 + "\n")
	case res.P < 0.01:
		b.WriteString(r.t.chiSig01 + "\n")
	case res.P < 0.05:
		b.WriteString(r.t.chiSig05 + "\n")
	default:
		b.WriteString(r.t.chiNotSig + "\n")
	}
	return b.String()
}

// Normality renders the normality test report. mean and std describe the
// tested values (sample std), skew and kurt the biased moment estimators.
func (r *Renderer) Normality(column string, mean, std, skew, kurt float64, res stats.NormalityResult) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, r.t.normTitle+"\n", res.Method)
	fmt.Fprintf(&b, r.t.normVar+"\n", column)
	fmt.Fprintf(&b, r.t.normN+"\n\n", res.N)
	b.WriteString(r.t.describeHdr + "\n")
	fmt.Fprintf(&b, r.t.normMean+"\n", mean)
	fmt.Fprintf(&b, r.t.normStd+"\n", std)
	fmt.Fprintf(&b, r.t.normSkew+"\n", skew)
	fmt.Fprintf(&b, r.t.normKurtosis+"\n\n", kurt)
	b.WriteString(r.t.testResults + "\n")
	fmt.Fprintf(&b, r.t.normStat+"\n", res.Stat)
	fmt.Fprintf(&b, r.t.normP+"\n\n", res.P)
	if res.P < 0.05 {
		b.WriteString(r.t.normReject + "\n")
		b.WriteString(r.t.normRejectAd + "\n")
	} else {
		b.WriteString(r.t.normAccept + "\n")
		b.WriteString(r.t.normAcceptAd + "\n")
	}
	return b.String()
}

// MannWhitney renders the two-group rank test report.
func (r *Renderer) MannWhitney(groupCol, valueCol string, g1, g2 GroupMedian, res stats.MannWhitneyResult) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.mannTitle + "\n")
	fmt.Fprintf(&b, r.t.mannGroupCol+"\n", groupCol)
	fmt.Fprintf(&b, r.t.mannValueCol+"\n\n", valueCol)
	b.WriteString(r.t.groupDescribe + "\n")
	fmt.Fprintf(&b, r.t.mannLine+"\n", g1.Name, g1.N, g1.Median)
	fmt.Fprintf(&b, r.t.mannLine+"\n\n", g2.Name, g2.N, g2.Median)
	b.WriteString(r.t.testResults + "\n")
	fmt.Fprintf(&b, r.t.mannU+"\n", res.U)
	fmt.Fprintf(&b, r.t.mannP+"\n\n", res.P)
	if res.P < 0.05 {
		b.WriteString(r.t.mannSig + "\n")
	} else {
		b.WriteString(r.t.mannNotSig + "\n")
	}
	return b.String()
}

// KruskalWallis renders the k-group rank test report.
func (r *Renderer) KruskalWallis(groupCol, valueCol string, groups []GroupMedian, res stats.KruskalResult) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.kruskalTitle + "\n")
	fmt.Fprintf(&b, r.t.mannGroupCol+"\n", groupCol)
	fmt.Fprintf(&b, r.t.mannValueCol+"\n", valueCol)
	fmt.Fprintf(&b, r.t.anovaGroupCount+"\n\n", len(groups))
	b.WriteString(r.t.groupDescribe + "\n")
	for _, g := range groups {
		fmt.Fprintf(&b, r.t.mannLine+"\n", g.Name, g.N, g.Median)
	}
	b.WriteString("\n" + r.t.testResults + "\n")
	fmt.Fprintf(&b, r.t.kruskalH+"\n", res.H)
	fmt.Fprintf(&b, r.t.kruskalP+"\n\n", res.P)
	if res.P < 0.05 {
		b.WriteString(r.t.kruskalSig + "\n")
	} else {
		b.WriteString(r.t.kruskalNotSig + "\n")
	}
	return b.String()
}
