// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"testing"
)

func TestChiSquareYates(t *testing.T) {
	// 2x2 table with all expected counts 15; Yates-adjusted chi2 is
	// 4 * 4.5^2 / 15 = 5.4 at 1 df.
	res, err := ChiSquare([][]float64{{10, 20}, {20, 10}})
	if err != nil {
		t.Fatalf("ChiSquare: %v", err)
	}
	almost(t, "chi2", res.Chi2, 5.4, 1e-12)
	if res.DF != 1 {
		t.Fatalf("df: got %d, want 1", res.DF)
	}
	almost(t, "expected", res.Expected[0][0], 15, 1e-12)
	// chi2(1) critical values: 5.024 at p=0.025, 6.635 at p=0.01.
	between(t, "p", res.P, 0.01, 0.025)
}

func TestChiSquareNoCorrectionAbove1DF(t *testing.T) {
	// 3x2 table, expected all 15, chi2 = 100/15 at 2 df; the 2-df
	// survival function is exp(-chi2/2).
	res, err := ChiSquare([][]float64{{10, 20}, {20, 10}, {15, 15}})
	if err != nil {
		t.Fatalf("ChiSquare: %v", err)
	}
	almost(t, "chi2", res.Chi2, 100.0/15.0, 1e-12)
	if res.DF != 2 {
		t.Fatalf("df: got %d, want 2", res.DF)
	}
	almost(t, "p", res.P, math.Exp(-100.0/30.0), 1e-9)
}

func TestChiSquareSmallYatesAdjustment(t *testing.T) {
	// When |observed-expected| < 0.5 the correction must not overshoot
	// past the expected count, leaving chi2 at zero for a uniform table.
	res, err := ChiSquare([][]float64{{15, 15}, {15, 15}})
	if err != nil {
		t.Fatalf("ChiSquare: %v", err)
	}
	almost(t, "chi2", res.Chi2, 0, 1e-12)
	almost(t, "p", res.P, 1, 1e-12)
}

func TestChiSquareErrors(t *testing.T) {
	if _, err := ChiSquare(nil); err == nil {
		t.Fatal("expected error for empty table")
	}
	if _, err := ChiSquare([][]float64{{1, 2}}); !errors.Is(err, ErrTooFewValues) {
		t.Fatalf("1x2 table: got %v, want ErrTooFewValues", err)
	}
	if _, err := ChiSquare([][]float64{{0, 0}, {1, 2}}); err == nil {
		t.Fatal("expected error for zero expected frequency")
	}
}

func TestMannWhitney(t *testing.T) {
	res, err := MannWhitney([]float64{1, 2, 3}, []float64{4, 5, 6})
	if err != nil {
		t.Fatalf("MannWhitney: %v", err)
	}
	// All of the first group ranks below the second: U1 = 0.
	almost(t, "U", res.U, 0, 1e-12)
	// z = (9 - 4.5 - 0.5)/sqrt(5.25) = 1.7457, two-sided p near 0.081.
	between(t, "p", res.P, 0.06, 0.10)
}

func TestMannWhitneyTies(t *testing.T) {
	res, err := MannWhitney([]float64{1, 1, 2}, []float64{2, 3, 3})
	if err != nil {
		t.Fatalf("MannWhitney: %v", err)
	}
	// Ranks 1.5,1.5,3.5 for the first group: U1 = 6.5 - 6 = 0.5.
	almost(t, "U", res.U, 0.5, 1e-12)
	between(t, "p", res.P, 0.09, 0.13)
}

func TestMannWhitneyAllTied(t *testing.T) {
	if _, err := MannWhitney([]float64{1, 1}, []float64{1, 1}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("all tied: got %v, want ErrZeroVariance", err)
	}
}

func TestKruskalWallis(t *testing.T) {
	groups := [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	// Rank sums 6, 15, 24 over 9 values give H = 7.2; the 2-df
	// chi-square survival is exp(-H/2).
	res, err := KruskalWallis(groups)
	if err != nil {
		t.Fatalf("KruskalWallis: %v", err)
	}
	almost(t, "H", res.H, 7.2, 1e-9)
	if res.DF != 2 {
		t.Fatalf("df: got %d, want 2", res.DF)
	}
	almost(t, "p", res.P, math.Exp(-3.6), 1e-9)
}

func TestKruskalWallisErrors(t *testing.T) {
	if _, err := KruskalWallis([][]float64{{1, 2}}); !errors.Is(err, ErrTooFewValues) {
		t.Fatalf("single group: got %v, want ErrTooFewValues", err)
	}
	if _, err := KruskalWallis([][]float64{{3, 3}, {3, 3}}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("identical values: got %v, want ErrZeroVariance", err)
	}
}
