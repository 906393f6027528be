// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"testing"
)

func TestTwoSampleTTest(t *testing.T) {
	// Means 3 and 5, both variances 2.5, pooled t = -2 with 8 df.
	res, err := TwoSampleTTest([]float64{1, 2, 3, 4, 5}, []float64{3, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("TwoSampleTTest: %v", err)
	}
	almost(t, "t", res.T, -2, 1e-12)
	if res.DF != 8 {
		t.Fatalf("df: got %d, want 8", res.DF)
	}
	// |t| = 2 sits between the 8-df two-sided critical values 1.860
	// (p=0.10) and 2.306 (p=0.05).
	between(t, "p", res.P, 0.05, 0.10)
}

func TestTwoSampleTTestErrors(t *testing.T) {
	if _, err := TwoSampleTTest([]float64{1}, []float64{2, 3}); !errors.Is(err, ErrTooFewValues) {
		t.Fatalf("short group: got %v, want ErrTooFewValues", err)
	}
	if _, err := TwoSampleTTest([]float64{2, 2}, []float64{2, 2}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("constant groups: got %v, want ErrZeroVariance", err)
	}
}

func TestPairedTTest(t *testing.T) {
	first := []float64{1, 2, 3, 4, 5}
	second := []float64{2, 4, 5, 4, 5}
	// d = first-second = {-1,-2,-2,0,0}: mean -1, sd 1, t = -sqrt(5).
	res, err := PairedTTest(first, second)
	if err != nil {
		t.Fatalf("PairedTTest: %v", err)
	}
	almost(t, "t", res.T, -math.Sqrt(5), 1e-12)
	if res.DF != 4 || res.N != 5 {
		t.Fatalf("df/n: got %d/%d, want 4/5", res.DF, res.N)
	}
	almost(t, "diff mean", res.DiffMean, 1, 1e-12)
	almost(t, "diff std", res.DiffStd, 1, 1e-12)
	// |t| = 2.236 sits between the 4-df critical values 2.132 (p=0.10)
	// and 2.776 (p=0.05).
	between(t, "p", res.P, 0.05, 0.10)
}

func TestPairedTTestErrors(t *testing.T) {
	if _, err := PairedTTest([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected error for unaligned input")
	}
	if _, err := PairedTTest([]float64{1, 2, 3}, []float64{2, 3, 4}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("constant differences: got %v, want ErrZeroVariance", err)
	}
}

func TestOneWayANOVA(t *testing.T) {
	groups := [][]float64{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}
	// SSB = 6 over 2 df, SSW = 6 over 6 df, F = 3.
	res, err := OneWayANOVA(groups)
	if err != nil {
		t.Fatalf("OneWayANOVA: %v", err)
	}
	almost(t, "F", res.F, 3, 1e-12)
	if res.DFBetween != 2 || res.DFWithin != 6 {
		t.Fatalf("df: got %d/%d, want 2/6", res.DFBetween, res.DFWithin)
	}
	// With 2 numerator df the survival function is closed form:
	// (1 + 2F/6)^-3 = 1/8.
	almost(t, "p", res.P, 0.125, 1e-9)
}

func TestOneWayANOVAErrors(t *testing.T) {
	if _, err := OneWayANOVA([][]float64{{1, 2}}); !errors.Is(err, ErrTooFewValues) {
		t.Fatalf("single group: got %v, want ErrTooFewValues", err)
	}
	if _, err := OneWayANOVA([][]float64{{1, 1}, {1, 1}}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("constant groups: got %v, want ErrZeroVariance", err)
	}
}
