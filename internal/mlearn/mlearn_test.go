// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlearn

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func almost(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Fatalf("%s: got %v, want %v", name, got, want)
	}
}

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("MatrixFromRows: %v", err)
	}
	if r, c := m.Dims(); r != 3 || c != 2 {
		t.Fatalf("dims: got %dx%d, want 3x2", r, c)
	}
	almost(t, "m[2][1]", m.At(2, 1), 6, 0)

	if _, err := MatrixFromRows(nil); !errors.Is(err, ErrTooFewRows) {
		t.Fatalf("empty: got %v, want ErrTooFewRows", err)
	}
}

func TestScaler(t *testing.T) {
	data := mat.NewDense(4, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
		4, 5,
	})
	s := FitScaler(data)
	almost(t, "mean[0]", s.Mean[0], 2.5, 1e-12)
	almost(t, "scale[0]", s.Scale[0], math.Sqrt(1.25), 1e-12)
	// Constant columns keep scale 1 so they standardize to zero.
	almost(t, "scale[1]", s.Scale[1], 1, 0)

	scaled := s.Transform(data)
	almost(t, "scaled[0][0]", scaled.At(0, 0), -1.5/math.Sqrt(1.25), 1e-12)
	almost(t, "scaled[0][1]", scaled.At(0, 1), 0, 0)

	var mean, ss float64
	for i := 0; i < 4; i++ {
		mean += scaled.At(i, 0)
	}
	mean /= 4
	for i := 0; i < 4; i++ {
		d := scaled.At(i, 0) - mean
		ss += d * d
	}
	almost(t, "scaled mean", mean, 0, 1e-12)
	almost(t, "scaled variance", ss/4, 1, 1e-12)
}

func TestSampleRows(t *testing.T) {
	data := mat.NewDense(100, 2, nil)
	for i := 0; i < 100; i++ {
		data.Set(i, 0, float64(i))
		data.Set(i, 1, float64(i))
	}

	if got := SampleRows(data, 200); got != data {
		t.Fatal("small input must pass through unchanged")
	}

	a := SampleRows(data, 50)
	if r, c := a.Dims(); r != 50 || c != 2 {
		t.Fatalf("dims: got %dx%d, want 50x2", r, c)
	}
	seen := make(map[float64]bool)
	for i := 0; i < 50; i++ {
		v := a.At(i, 0)
		if v != a.At(i, 1) || v < 0 || v > 99 {
			t.Fatalf("row %d: unexpected values %v, %v", i, v, a.At(i, 1))
		}
		if seen[v] {
			t.Fatalf("row %v sampled twice", v)
		}
		seen[v] = true
	}

	b := SampleRows(data, 50)
	if !mat.Equal(a, b) {
		t.Fatal("sampling must be deterministic")
	}
}
