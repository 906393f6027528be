// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlearn

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// suggestCumulative is the cumulative explained variance a component subset
// must reach before the report recommends it.
const suggestCumulative = 0.8

// PCAResult holds a principal component analysis of standardized columns.
type PCAResult struct {
	Names      []string
	Vars       []float64  // explained variance per component
	Ratios     []float64  // explained variance ratios
	Cumulative []float64  // running sum of Ratios
	Loadings   *mat.Dense // feature rows by component columns
	Scores     *mat.Dense // observation rows by component columns
	Suggested  int        // components needed to reach 80%, 0 when unreached
}

// PCA standardizes the named columns and extracts all principal components.
func PCA(data mat.Matrix, names []string) (*PCAResult, error) {
	n, d := data.Dims()
	if d < 2 {
		return nil, fmt.Errorf("pca: %w: need at least 2 columns, have %d", ErrTooFewColumns, d)
	}
	if n < 2 {
		return nil, fmt.Errorf("pca: %w: need at least 2 complete rows, have %d", ErrTooFewRows, n)
	}
	if len(names) != d {
		return nil, fmt.Errorf("pca: %d names for %d columns", len(names), d)
	}
	scaled := FitScaler(data).Transform(data)

	var pc stat.PC
	if !pc.PrincipalComponents(scaled, nil) {
		return nil, errors.New("pca: decomposition failed")
	}
	vecs := new(mat.Dense)
	pc.VectorsTo(vecs)
	vars := pc.VarsTo(nil)

	var total float64
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, scaled)
		total += stat.Variance(col, nil)
	}

	res := &PCAResult{
		Names:      names,
		Vars:       vars,
		Ratios:     make([]float64, len(vars)),
		Cumulative: make([]float64, len(vars)),
		Loadings:   vecs,
	}
	var cum float64
	for i, v := range vars {
		ratio := v / total
		cum += ratio
		res.Ratios[i] = ratio
		res.Cumulative[i] = cum
		if res.Suggested == 0 && cum >= suggestCumulative {
			res.Suggested = i + 1
		}
	}

	scores := new(mat.Dense)
	scores.Mul(scaled, vecs)
	res.Scores = scores
	return res, nil
}
