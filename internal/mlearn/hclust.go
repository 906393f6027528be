// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlearn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MaxDendrogramRows caps how many rows feed the dendrogram; larger inputs
// are sampled down first.
const MaxDendrogramRows = 50

// Merge is one agglomeration step. Leaves are numbered 0..n-1 and the i-th
// merge creates cluster n+i, so A and B can name either leaves or earlier
// merges.
type Merge struct {
	A, B     int
	Distance float64
	Size     int
}

// Ward standardizes data and agglomerates its rows with Ward linkage,
// returning the n-1 merges in order of increasing distance.
func Ward(data mat.Matrix) ([]Merge, error) {
	n, d := data.Dims()
	if d < 1 {
		return nil, fmt.Errorf("hclust: %w", ErrTooFewColumns)
	}
	if n < 2 {
		return nil, fmt.Errorf("hclust: %w: need at least 2 rows, have %d", ErrTooFewRows, n)
	}
	x := FitScaler(data).Transform(data)

	// Squared distances between active clusters, Lance-Williams updates on
	// each merge.
	d2 := make([][]float64, n)
	for i := range d2 {
		d2[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist := floats.Distance(x.RawRowView(i), x.RawRowView(j), 2)
			d2[i][j] = dist * dist
			d2[j][i] = d2[i][j]
		}
	}

	type cluster struct {
		id   int
		size int
	}
	active := make([]cluster, n)
	for i := range active {
		active[i] = cluster{id: i, size: 1}
	}

	merges := make([]Merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		bi, bj := 0, 1
		best := math.Inf(1)
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				if d2[i][j] < best {
					best, bi, bj = d2[i][j], i, j
				}
			}
		}
		s, t := active[bi], active[bj]
		a, b := s.id, t.id
		if a > b {
			a, b = b, a
		}
		merged := cluster{id: n + step, size: s.size + t.size}
		merges = append(merges, Merge{A: a, B: b, Distance: math.Sqrt(best), Size: merged.size})

		for v := 0; v < len(active); v++ {
			if v == bi || v == bj {
				continue
			}
			sv := float64(active[v].size)
			ss := float64(s.size)
			st := float64(t.size)
			d2[bi][v] = ((ss+sv)*d2[bi][v] + (st+sv)*d2[bj][v] - sv*best) / (ss + st + sv)
			d2[v][bi] = d2[bi][v]
		}
		active[bi] = merged

		// Swap-delete slot bj.
		last := len(active) - 1
		active[bj] = active[last]
		active = active[:last]
		for v := 0; v <= last; v++ {
			d2[bj][v] = d2[last][v]
			d2[v][bj] = d2[v][last]
		}
		d2[bj][bj] = 0
	}
	return merges, nil
}
