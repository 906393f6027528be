// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"
)

// NotableThreshold is the |r| above which a correlation pair makes the
// report's notable list; StrongThreshold upgrades its wording to strong.
const (
	NotableThreshold = 0.5
	StrongThreshold  = 0.7
)

// Pearson returns the Pearson correlation coefficient, NaN when either side
// is constant or fewer than two pairs exist.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("pearson: unaligned lengths %d and %d", len(x), len(y))
	}
	if len(x) < 2 {
		return math.NaN(), nil
	}
	xm, ym := Mean(x), Mean(y)
	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - xm
		dy := y[i] - ym
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), nil
	}
	r := sxy / math.Sqrt(sxx*syy)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, nil
}

// PairSource supplies aligned complete-pair values for two named columns.
// dataset.Frame satisfies it.
type PairSource interface {
	PairValues(a, b string) ([]float64, []float64, error)
}

// Matrix is a symmetric Pearson correlation matrix.
type Matrix struct {
	Names []string
	R     [][]float64
}

// PearsonMatrix builds the correlation matrix over the named columns using
// pairwise complete observations.
func PearsonMatrix(src PairSource, names []string) (Matrix, error) {
	if len(names) < 2 {
		return Matrix{}, fmt.Errorf("correlation: %w: need at least 2 columns", ErrTooFewValues)
	}
	m := Matrix{Names: names, R: make([][]float64, len(names))}
	for i := range m.R {
		m.R[i] = make([]float64, len(names))
		m.R[i][i] = 1
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			xs, ys, err := src.PairValues(names[i], names[j])
			if err != nil {
				return Matrix{}, err
			}
			r, err := Pearson(xs, ys)
			if err != nil {
				return Matrix{}, err
			}
			m.R[i][j] = r
			m.R[j][i] = r
		}
	}
	return m, nil
}

// CorrPair is one notable correlation.
type CorrPair struct {
	A, B string
	R    float64
}

// NotablePairs lists the upper-triangle pairs with |r| above the threshold,
// strongest first.
func (m Matrix) NotablePairs(threshold float64) []CorrPair {
	var out []CorrPair
	for i := 0; i < len(m.Names); i++ {
		for j := i + 1; j < len(m.Names); j++ {
			if r := m.R[i][j]; !math.IsNaN(r) && math.Abs(r) > threshold {
				out = append(out, CorrPair{A: m.Names[i], B: m.Names[j], R: r})
			}
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return math.Abs(out[a].R) > math.Abs(out[b].R)
	})
	return out
}
