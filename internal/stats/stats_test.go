// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"
)

func almost(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Fatalf("%s: got %v, want %v (tol %v)", name, got, want, tol)
	}
}

func between(t *testing.T, name string, got, lo, hi float64) {
	t.Helper()
	if math.IsNaN(got) || got <= lo || got >= hi {
		t.Fatalf("%s: got %v, want in (%v, %v)", name, got, lo, hi)
	}
}

func TestQuantileLinearInterpolation(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	almost(t, "q25", Quantile(x, 0.25), 1.75, 1e-12)
	almost(t, "median", Quantile(x, 0.5), 2.5, 1e-12)
	almost(t, "q75", Quantile(x, 0.75), 3.25, 1e-12)
	almost(t, "min", Quantile(x, 0), 1, 1e-12)
	almost(t, "max", Quantile(x, 1), 4, 1e-12)
	almost(t, "single", Quantile([]float64{7}, 0.5), 7, 1e-12)
}

func TestQuantileUnsortedInput(t *testing.T) {
	x := []float64{4, 1, 3, 2}
	almost(t, "median", Quantile(x, 0.5), 2.5, 1e-12)
	// The input slice must not be reordered.
	if x[0] != 4 {
		t.Fatalf("input mutated: %v", x)
	}
}

func TestMoments(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	almost(t, "mean", Mean(x), 3, 1e-12)
	almost(t, "std", Std(x), math.Sqrt(2.5), 1e-12)
	almost(t, "skew symmetric", Skew(x), 0, 1e-12)
	// m2 = 2, m4 = 6.8 for this sample.
	almost(t, "kurtosis", ExKurtosis(x), 6.8/4-3, 1e-12)
}

func TestDescribe(t *testing.T) {
	d, err := Describe([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if d.N != 4 {
		t.Fatalf("n: got %d, want 4", d.N)
	}
	almost(t, "mean", d.Mean, 2.5, 1e-12)
	almost(t, "std", d.Std, math.Sqrt(5.0/3.0), 1e-12)
	almost(t, "min", d.Min, 1, 1e-12)
	almost(t, "q1", d.Q1, 1.75, 1e-12)
	almost(t, "median", d.Median, 2.5, 1e-12)
	almost(t, "q3", d.Q3, 3.25, 1e-12)
	almost(t, "max", d.Max, 4, 1e-12)
}

func TestDescribeSingleValue(t *testing.T) {
	d, err := Describe([]float64{42})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !math.IsNaN(d.Std) {
		t.Fatalf("std of single value: got %v, want NaN", d.Std)
	}
	almost(t, "median", d.Median, 42, 1e-12)
}

func TestDescribeEmpty(t *testing.T) {
	if _, err := Describe(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestRanksWithTies(t *testing.T) {
	r, tieSum := ranks([]float64{1, 1, 2, 2, 3, 3})
	want := []float64{1.5, 1.5, 3.5, 3.5, 5.5, 5.5}
	for i := range want {
		almost(t, "rank", r[i], want[i], 1e-12)
	}
	// Three tie groups of size 2: 3 * (8 - 2) = 18.
	almost(t, "tie sum", tieSum, 18, 1e-12)
}

func TestRanksNoTies(t *testing.T) {
	r, tieSum := ranks([]float64{30, 10, 20})
	want := []float64{3, 1, 2}
	for i := range want {
		almost(t, "rank", r[i], want[i], 1e-12)
	}
	if tieSum != 0 {
		t.Fatalf("tie sum: got %v, want 0", tieSum)
	}
}
