// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareResult is a chi-square test of independence on a contingency
// table.
type ChiSquareResult struct {
	Chi2     float64
	P        float64
	DF       int
	Expected [][]float64
}

// ChiSquare tests independence of the row and column classifications of an
// observed-count table. Yates' continuity correction is applied at one
// degree of freedom, with the adjustment capped so a cell is never moved
// past its expected count.
func ChiSquare(observed [][]float64) (ChiSquareResult, error) {
	r := len(observed)
	if r == 0 {
		return ChiSquareResult{}, fmt.Errorf("chi-square: %w: empty table", ErrTooFewValues)
	}
	c := len(observed[0])
	rowSum := make([]float64, r)
	colSum := make([]float64, c)
	var total float64
	for i, row := range observed {
		if len(row) != c {
			return ChiSquareResult{}, fmt.Errorf("chi-square: ragged table row %d", i)
		}
		for j, o := range row {
			rowSum[i] += o
			colSum[j] += o
			total += o
		}
	}
	df := (r - 1) * (c - 1)
	if df < 1 {
		return ChiSquareResult{}, fmt.Errorf("chi-square: %w: table must be at least 2x2", ErrTooFewValues)
	}
	expected := make([][]float64, r)
	for i := range expected {
		expected[i] = make([]float64, c)
		for j := range expected[i] {
			e := rowSum[i] * colSum[j] / total
			if e == 0 {
				return ChiSquareResult{}, fmt.Errorf("chi-square: expected frequency of zero at (%d,%d)", i, j)
			}
			expected[i][j] = e
		}
	}
	var chi2 float64
	for i := range observed {
		for j, o := range observed[i] {
			e := expected[i][j]
			if df == 1 {
				adj := math.Min(0.5, math.Abs(e-o))
				if e > o {
					o += adj
				} else {
					o -= adj
				}
			}
			chi2 += (o - e) * (o - e) / e
		}
	}
	dist := distuv.ChiSquared{K: float64(df)}
	return ChiSquareResult{Chi2: chi2, P: dist.Survival(chi2), DF: df, Expected: expected}, nil
}

// MannWhitneyResult is a two-sided Mann-Whitney U test.
type MannWhitneyResult struct {
	U float64 // U statistic of the first group
	P float64
}

// MannWhitney runs the two-sided rank-sum test using the normal
// approximation with tie and continuity corrections.
func MannWhitney(a, b []float64) (MannWhitneyResult, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if len(a) < 1 || len(b) < 1 {
		return MannWhitneyResult{}, fmt.Errorf("mann-whitney: %w: empty group", ErrTooFewValues)
	}
	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	r, tieSum := ranks(pooled)
	var r1 float64
	for i := range a {
		r1 += r[i]
	}
	u1 := r1 - n1*(n1+1)/2
	n := n1 + n2
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1))))
	if sigma == 0 {
		return MannWhitneyResult{}, fmt.Errorf("mann-whitney: %w: all values tied", ErrZeroVariance)
	}
	u := math.Max(u1, n1*n2-u1)
	z := (u - mu - 0.5) / sigma
	p := 2 * distuv.UnitNormal.Survival(z)
	if p > 1 {
		p = 1
	}
	return MannWhitneyResult{U: u1, P: p}, nil
}

// KruskalResult is a Kruskal-Wallis H test across several groups.
type KruskalResult struct {
	H  float64
	P  float64
	DF int
}

// KruskalWallis runs the rank-based one-way test with tie correction.
func KruskalWallis(groups [][]float64) (KruskalResult, error) {
	k := len(groups)
	if k < 2 {
		return KruskalResult{}, fmt.Errorf("kruskal-wallis: %w: need at least 2 groups", ErrTooFewValues)
	}
	var pooled []float64
	for _, g := range groups {
		if len(g) == 0 {
			return KruskalResult{}, fmt.Errorf("kruskal-wallis: %w: empty group", ErrTooFewValues)
		}
		pooled = append(pooled, g...)
	}
	n := float64(len(pooled))
	r, tieSum := ranks(pooled)
	var h float64
	off := 0
	for _, g := range groups {
		var rsum float64
		for i := range g {
			rsum += r[off+i]
		}
		off += len(g)
		h += rsum * rsum / float64(len(g))
	}
	h = 12/(n*(n+1))*h - 3*(n+1)
	correction := 1 - tieSum/(n*n*n-n)
	if correction == 0 {
		return KruskalResult{}, fmt.Errorf("kruskal-wallis: %w: all values identical", ErrZeroVariance)
	}
	h /= correction
	df := k - 1
	dist := distuv.ChiSquared{K: float64(df)}
	return KruskalResult{H: h, P: dist.Survival(h), DF: df}, nil
}
