// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlearn

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes columns to zero mean and unit variance. The scale is
// the population standard deviation; constant columns keep scale 1 so they
// pass through as zeros.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// FitScaler computes per-column standardization parameters.
func FitScaler(data mat.Matrix) Scaler {
	n, d := data.Dims()
	s := Scaler{Mean: make([]float64, d), Scale: make([]float64, d)}
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, data)
		mean := stat.Mean(col, nil)
		var ss float64
		for _, v := range col {
			dv := v - mean
			ss += dv * dv
		}
		scale := math.Sqrt(ss / float64(n))
		if scale == 0 {
			scale = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = scale
	}
	return s
}

// Transform returns the standardized copy of data.
func (s Scaler) Transform(data mat.Matrix) *mat.Dense {
	n, d := data.Dims()
	out := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, (data.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out
}
