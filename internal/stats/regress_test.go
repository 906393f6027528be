// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"testing"
)

func TestLinearRegressionExactFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11} // y = 2x + 1
	res, err := LinearRegression(x, y)
	if err != nil {
		t.Fatalf("LinearRegression: %v", err)
	}
	almost(t, "slope", res.Slope, 2, 1e-12)
	almost(t, "intercept", res.Intercept, 1, 1e-12)
	almost(t, "r", res.R, 1, 1e-12)
	almost(t, "r2", res.R2, 1, 1e-12)
	if res.P >= 1e-9 {
		t.Fatalf("p: got %v, want ~0 for an exact fit", res.P)
	}
	if res.StdErr >= 1e-6 {
		t.Fatalf("stderr: got %v, want ~0 for an exact fit", res.StdErr)
	}
}

func TestLinearRegressionNoisy(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 1, 4, 3, 6, 5}
	// sxx = syy = 17.5 and sxy = 14.5, so slope = r = 29/35,
	// intercept = 3.5*(1 - 29/35) = 0.6 and the slope standard error
	// is sqrt((1-r^2)/4) = sqrt(96)/35.
	res, err := LinearRegression(x, y)
	if err != nil {
		t.Fatalf("LinearRegression: %v", err)
	}
	almost(t, "slope", res.Slope, 29.0/35.0, 1e-12)
	almost(t, "intercept", res.Intercept, 0.6, 1e-12)
	almost(t, "r", res.R, 29.0/35.0, 1e-12)
	almost(t, "r2", res.R2, 841.0/1225.0, 1e-12)
	almost(t, "stderr", res.StdErr, math.Sqrt(96)/35, 1e-12)
	if res.N != 6 {
		t.Fatalf("n: got %d, want 6", res.N)
	}
	// t = 2.9598 at 4 df sits between the 0.05 and 0.02 two-sided
	// critical values 2.776 and 3.747.
	between(t, "p", res.P, 0.02, 0.05)
}

func TestLinearRegressionFlatResponse(t *testing.T) {
	res, err := LinearRegression([]float64{1, 2, 3, 4}, []float64{7, 7, 7, 7})
	if err != nil {
		t.Fatalf("LinearRegression: %v", err)
	}
	almost(t, "slope", res.Slope, 0, 1e-12)
	almost(t, "intercept", res.Intercept, 7, 1e-12)
	almost(t, "r", res.R, 0, 1e-12)
	almost(t, "p", res.P, 1, 1e-12)
	almost(t, "stderr", res.StdErr, 0, 1e-12)
}

func TestLinearRegressionErrors(t *testing.T) {
	if _, err := LinearRegression([]float64{1, 2}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for unaligned slices")
	}
	if _, err := LinearRegression([]float64{1, 2}, []float64{1, 2}); !errors.Is(err, ErrTooFewValues) {
		t.Fatalf("2 points: got %v, want ErrTooFewValues", err)
	}
	if _, err := LinearRegression([]float64{5, 5, 5}, []float64{1, 2, 3}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("constant x: got %v, want ErrZeroVariance", err)
	}
}
