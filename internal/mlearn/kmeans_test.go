// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlearn

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// blobs returns two well separated point clouds.
func blobs() *mat.Dense {
	return mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		10, 10,
		10, 11,
	})
}

func TestKMeansSeparatedBlobs(t *testing.T) {
	res, err := KMeans(blobs(), []string{"x", "y"}, 2)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	if res.K != 2 {
		t.Fatalf("k: got %d, want 2", res.K)
	}
	if res.Labels[0] != res.Labels[1] || res.Labels[2] != res.Labels[3] || res.Labels[0] == res.Labels[2] {
		t.Fatalf("labels do not split the blobs: %v", res.Labels)
	}
	if res.Sizes[0] != 2 || res.Sizes[1] != 2 {
		t.Fatalf("sizes: got %v, want [2 2]", res.Sizes)
	}

	// Cluster means are reported in original units.
	low := res.Labels[0]
	high := res.Labels[2]
	almost(t, "low mean x", res.ClusterMeans.At(low, 0), 0, 1e-12)
	almost(t, "low mean y", res.ClusterMeans.At(low, 1), 0.5, 1e-12)
	almost(t, "high mean x", res.ClusterMeans.At(high, 0), 10, 1e-12)
	almost(t, "high mean y", res.ClusterMeans.At(high, 1), 10.5, 1e-12)

	// In standardized units the x column is exactly [-1 -1 1 1] and the
	// y deviations within a blob are 1/sqrt(101), so the optimum has
	// inertia 4/101.
	almost(t, "inertia", res.Inertia, 4.0/101.0, 1e-9)
	almost(t, "center x", res.Centers.At(low, 0), -1, 1e-9)
	almost(t, "center x", res.Centers.At(high, 0), 1, 1e-9)
}

func TestKMeansDeterministic(t *testing.T) {
	a, err := KMeans(blobs(), []string{"x", "y"}, 2)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	b, err := KMeans(blobs(), []string{"x", "y"}, 2)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	for i := range a.Labels {
		if a.Labels[i] != b.Labels[i] {
			t.Fatalf("labels differ between runs: %v vs %v", a.Labels, b.Labels)
		}
	}
	almost(t, "inertia", a.Inertia, b.Inertia, 0)
}

func TestKMeansErrors(t *testing.T) {
	one := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	if _, err := KMeans(one, []string{"x"}, 2); !errors.Is(err, ErrTooFewColumns) {
		t.Fatalf("one column: got %v, want ErrTooFewColumns", err)
	}
	for _, k := range []int{1, 11} {
		if _, err := KMeans(blobs(), []string{"x", "y"}, k); !errors.Is(err, ErrBadK) {
			t.Fatalf("k=%d: got %v, want ErrBadK", k, err)
		}
	}
	small := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := KMeans(small, []string{"x", "y"}, 3); !errors.Is(err, ErrTooFewRows) {
		t.Fatalf("2 rows, k=3: got %v, want ErrTooFewRows", err)
	}
}

func TestElbow(t *testing.T) {
	data := mat.NewDense(6, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		10, 10,
		10, 11,
		11, 10,
	})
	inertias, err := Elbow(data)
	if err != nil {
		t.Fatalf("Elbow: %v", err)
	}
	if len(inertias) != 5 {
		t.Fatalf("length: got %d, want 5 (k=1..5)", len(inertias))
	}
	// With a single cluster the inertia of standardized data is rows x
	// columns exactly.
	almost(t, "inertia k=1", inertias[0], 12, 1e-9)
	if inertias[1] >= inertias[0]/2 {
		t.Fatalf("k=2 inertia %v did not collapse below half of %v", inertias[1], inertias[0])
	}
	for i := 1; i < len(inertias); i++ {
		if inertias[i] > inertias[i-1]+1e-9 {
			t.Fatalf("inertia rose from k=%d to k=%d: %v", i, i+1, inertias)
		}
	}
}
