// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult is an independent two-sample t-test with pooled variance.
type TTestResult struct {
	T  float64
	P  float64
	DF int
}

// TwoSampleTTest runs Student's t-test with pooled variance (equal
// variances assumed).
func TwoSampleTTest(a, b []float64) (TTestResult, error) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return TTestResult{}, fmt.Errorf("t-test: %w: need at least 2 values per group", ErrTooFewValues)
	}
	v1 := stat.Variance(a, nil)
	v2 := stat.Variance(b, nil)
	df := n1 + n2 - 2
	pooled := (float64(n1-1)*v1 + float64(n2-1)*v2) / float64(df)
	if pooled == 0 {
		return TTestResult{}, fmt.Errorf("t-test: %w in both groups", ErrZeroVariance)
	}
	t := (Mean(a) - Mean(b)) / math.Sqrt(pooled*(1/float64(n1)+1/float64(n2)))
	return TTestResult{T: t, P: twoSidedT(t, df), DF: df}, nil
}

// PairedResult is a paired t-test on per-row differences. T follows the
// first-minus-second convention; DiffMean and DiffStd describe the
// second-minus-first change the report presents.
type PairedResult struct {
	T        float64
	P        float64
	DF       int
	N        int
	DiffMean float64
	DiffStd  float64
}

// PairedTTest tests whether paired observations changed. The slices must be
// aligned row for row.
func PairedTTest(first, second []float64) (PairedResult, error) {
	if len(first) != len(second) {
		return PairedResult{}, fmt.Errorf("paired t-test: unaligned lengths %d and %d", len(first), len(second))
	}
	n := len(first)
	if n < 2 {
		return PairedResult{}, fmt.Errorf("paired t-test: %w: need at least 2 pairs", ErrTooFewValues)
	}
	d := make([]float64, n)
	for i := range d {
		d[i] = first[i] - second[i]
	}
	sd := Std(d)
	if sd == 0 {
		return PairedResult{}, fmt.Errorf("paired t-test: %w in differences", ErrZeroVariance)
	}
	t := Mean(d) / (sd / math.Sqrt(float64(n)))
	return PairedResult{
		T:        t,
		P:        twoSidedT(t, n-1),
		DF:       n - 1,
		N:        n,
		DiffMean: -Mean(d),
		DiffStd:  sd,
	}, nil
}

// ANOVAResult is a one-way analysis of variance.
type ANOVAResult struct {
	F         float64
	P         float64
	DFBetween int
	DFWithin  int
}

// OneWayANOVA tests whether the group means differ.
func OneWayANOVA(groups [][]float64) (ANOVAResult, error) {
	k := len(groups)
	if k < 2 {
		return ANOVAResult{}, fmt.Errorf("anova: %w: need at least 2 groups", ErrTooFewValues)
	}
	var total int
	var grandSum float64
	for _, g := range groups {
		if len(g) == 0 {
			return ANOVAResult{}, fmt.Errorf("anova: %w: empty group", ErrTooFewValues)
		}
		total += len(g)
		for _, v := range g {
			grandSum += v
		}
	}
	dfw := total - k
	if dfw < 1 {
		return ANOVAResult{}, fmt.Errorf("anova: %w: %d observations in %d groups", ErrTooFewValues, total, k)
	}
	grand := grandSum / float64(total)
	var ssb, ssw float64
	for _, g := range groups {
		m := Mean(g)
		dm := m - grand
		ssb += float64(len(g)) * dm * dm
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}
	if ssw == 0 {
		return ANOVAResult{}, fmt.Errorf("anova: %w within groups", ErrZeroVariance)
	}
	dfb := k - 1
	f := (ssb / float64(dfb)) / (ssw / float64(dfw))
	dist := distuv.F{D1: float64(dfb), D2: float64(dfw)}
	return ANOVAResult{F: f, P: dist.Survival(f), DFBetween: dfb, DFWithin: dfw}, nil
}

func twoSidedT(t float64, df int) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	p := 2 * dist.Survival(math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}
