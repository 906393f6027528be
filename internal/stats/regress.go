// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
)

// RegressionResult is a simple ordinary least squares fit y = a + b*x.
type RegressionResult struct {
	Slope     float64
	Intercept float64
	R         float64
	R2        float64
	P         float64 // two-sided p for the slope
	StdErr    float64 // standard error of the slope
	N         int
}

// LinearRegression fits y on x. The slices must be aligned row for row.
func LinearRegression(x, y []float64) (RegressionResult, error) {
	if len(x) != len(y) {
		return RegressionResult{}, fmt.Errorf("regression: unaligned lengths %d and %d", len(x), len(y))
	}
	n := len(x)
	if n < 3 {
		return RegressionResult{}, fmt.Errorf("regression: %w: need at least 3 points", ErrTooFewValues)
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
	if sxx == 0 {
		return RegressionResult{}, fmt.Errorf("regression: %w: x values are all identical", ErrZeroVariance)
	}
	slope := sxy / sxx
	intercept := ym - slope*xm

	var r float64
	if syy != 0 {
		r = sxy / math.Sqrt(sxx*syy)
		if r > 1 {
			r = 1
		} else if r < -1 {
			r = -1
		}
	}
	df := n - 2
	// tiny keeps the t statistic finite at |r| == 1.
	const tiny = 1e-20
	t := r * math.Sqrt(float64(df)/((1-r+tiny)*(1+r+tiny)))
	return RegressionResult{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		R2:        r * r,
		P:         twoSidedT(t, df),
		StdErr:    math.Sqrt((1 - r*r) * syy / sxx / float64(df)),
		N:         n,
	}, nil
}
