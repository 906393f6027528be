// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mlearn implements the multivariate analyses: principal
// components, k-means clustering and Ward hierarchical clustering. All of
// them standardize their input columns first, so results are scale free.
package mlearn

import (
	"errors"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrTooFewColumns = errors.New("too few columns")
	ErrTooFewRows    = errors.New("too few rows")
	ErrBadK          = errors.New("cluster count out of range")
)

// randomSeed fixes every stochastic step so repeated runs over the same
// file give the same answer.
const randomSeed = 42

// MatrixFromRows copies row-major data into a dense matrix.
func MatrixFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, ErrTooFewRows
	}
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m, nil
}

// SampleRows returns data unchanged when it has at most max rows, otherwise
// a seeded uniform sample of max rows.
func SampleRows(data *mat.Dense, max int) *mat.Dense {
	n, d := data.Dims()
	if n <= max {
		return data
	}
	rng := rand.New(rand.NewSource(randomSeed))
	out := mat.NewDense(max, d, nil)
	for i, idx := range rng.Perm(n)[:max] {
		out.SetRow(i, data.RawRowView(idx))
	}
	return out
}
