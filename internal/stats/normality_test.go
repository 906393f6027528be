// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestNormalityThreeValues(t *testing.T) {
	// For n=3 the single weight is sqrt(0.5), so evenly spaced values
	// give W=1 and the arcsine transform gives p=1.
	res, err := Normality([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Normality: %v", err)
	}
	if res.Method != MethodShapiroWilk {
		t.Fatalf("method: got %q, want %q", res.Method, MethodShapiroWilk)
	}
	almost(t, "W", res.Stat, 1, 1e-12)
	almost(t, "p", res.P, 1, 1e-9)
	if res.N != 3 {
		t.Fatalf("n: got %d, want 3", res.N)
	}
}

func TestNormalityRejectsOutlier(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}
	res, err := Normality(values)
	if err != nil {
		t.Fatalf("Normality: %v", err)
	}
	if res.Method != MethodShapiroWilk {
		t.Fatalf("method: got %q, want %q", res.Method, MethodShapiroWilk)
	}
	if res.P >= 0.01 {
		t.Fatalf("p: got %v, want < 0.01 for a gross outlier", res.P)
	}
}

func TestNormalityAcceptsNormalScores(t *testing.T) {
	// Expected normal order statistics are as normal as a sample of 20
	// can get; the test must not reject them.
	values := make([]float64, 20)
	for i := range values {
		values[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / 20.25)
	}
	res, err := Normality(values)
	if err != nil {
		t.Fatalf("Normality: %v", err)
	}
	if res.Stat <= 0.99 {
		t.Fatalf("W: got %v, want > 0.99", res.Stat)
	}
	if res.P <= 0.9 {
		t.Fatalf("p: got %v, want > 0.9", res.P)
	}
}

func TestNormalityLargeSampleSwitchesToKS(t *testing.T) {
	n := 5001
	values := make([]float64, n)
	for i := range values {
		values[i] = distuv.UnitNormal.Quantile((float64(i) + 0.5) / float64(n))
	}
	res, err := Normality(values)
	if err != nil {
		t.Fatalf("Normality: %v", err)
	}
	if res.Method != MethodKolmogorovSmirnov {
		t.Fatalf("method: got %q, want %q", res.Method, MethodKolmogorovSmirnov)
	}
	if res.Stat >= 0.01 {
		t.Fatalf("D: got %v, want < 0.01 for ideal data", res.Stat)
	}
	if res.P <= 0.9 {
		t.Fatalf("p: got %v, want > 0.9", res.P)
	}
}

func TestNormalityErrors(t *testing.T) {
	if _, err := Normality([]float64{1, 2}); !errors.Is(err, ErrTooFewValues) {
		t.Fatalf("2 values: got %v, want ErrTooFewValues", err)
	}
	if _, err := Normality([]float64{4, 4, 4, 4}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("identical values: got %v, want ErrZeroVariance", err)
	}
}

func TestKSSurvival(t *testing.T) {
	// 1.358 is the classic 5% critical value of the Kolmogorov
	// distribution.
	between(t, "ksSurvival(1.358)", ksSurvival(1.358), 0.049, 0.051)
	almost(t, "ksSurvival(0.01)", ksSurvival(0.01), 1, 0)
	if p := ksSurvival(10); p > 1e-12 {
		t.Fatalf("ksSurvival(10): got %v, want ~0", p)
	}
}
