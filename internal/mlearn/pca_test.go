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

func TestPCAPerfectCorrelation(t *testing.T) {
	// Two perfectly correlated columns collapse onto one component.
	data := mat.NewDense(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		4, 8,
	})
	res, err := PCA(data, []string{"a", "b"})
	if err != nil {
		t.Fatalf("PCA: %v", err)
	}
	if len(res.Ratios) != 2 {
		t.Fatalf("components: got %d, want 2", len(res.Ratios))
	}
	almost(t, "ratio[0]", res.Ratios[0], 1, 1e-9)
	almost(t, "ratio[1]", res.Ratios[1], 0, 1e-9)
	almost(t, "cumulative[1]", res.Cumulative[1], 1, 1e-9)
	if res.Suggested != 1 {
		t.Fatalf("suggested: got %d, want 1", res.Suggested)
	}

	// Both features load equally on the first component.
	invSqrt2 := 1 / math.Sqrt2
	almost(t, "|loading a|", math.Abs(res.Loadings.At(0, 0)), invSqrt2, 1e-9)
	almost(t, "|loading b|", math.Abs(res.Loadings.At(1, 0)), invSqrt2, 1e-9)

	if r, c := res.Scores.Dims(); r != 4 || c != 2 {
		t.Fatalf("scores dims: got %dx%d, want 4x2", r, c)
	}
	wantScore := math.Sqrt2 * 1.5 / math.Sqrt(1.25)
	almost(t, "|score[3][0]|", math.Abs(res.Scores.At(3, 0)), wantScore, 1e-9)
	almost(t, "score[3][1]", res.Scores.At(3, 1), 0, 1e-6)
}

func TestPCAOrthogonalColumns(t *testing.T) {
	// Orthogonal standardized columns split the variance evenly, so the
	// 80% suggestion needs both components.
	data := mat.NewDense(4, 2, []float64{
		1, 1,
		2, -1,
		3, -1,
		4, 1,
	})
	res, err := PCA(data, []string{"a", "b"})
	if err != nil {
		t.Fatalf("PCA: %v", err)
	}
	almost(t, "ratio[0]", res.Ratios[0], 0.5, 1e-9)
	almost(t, "ratio[1]", res.Ratios[1], 0.5, 1e-9)
	if res.Suggested != 2 {
		t.Fatalf("suggested: got %d, want 2", res.Suggested)
	}
}

func TestPCAErrors(t *testing.T) {
	one := mat.NewDense(3, 1, []float64{1, 2, 3})
	if _, err := PCA(one, []string{"a"}); !errors.Is(err, ErrTooFewColumns) {
		t.Fatalf("one column: got %v, want ErrTooFewColumns", err)
	}
	row := mat.NewDense(1, 2, []float64{1, 2})
	if _, err := PCA(row, []string{"a", "b"}); !errors.Is(err, ErrTooFewRows) {
		t.Fatalf("one row: got %v, want ErrTooFewRows", err)
	}
	two := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := PCA(two, []string{"a"}); err == nil {
		t.Fatal("expected error for mismatched names")
	}
}
