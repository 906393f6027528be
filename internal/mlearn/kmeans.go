// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlearn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Cluster count limits offered by the tool.
const (
	DefaultK = 3
	MinK     = 2
	MaxK     = 10
)

const (
	kmeansRestarts = 10
	kmeansMaxIter  = 300
)

// KMeansResult describes the best of the restarted clustering runs.
type KMeansResult struct {
	K            int
	Names        []string
	Labels       []int      // cluster index per input row
	Sizes        []int
	Centers      *mat.Dense // cluster centers in standardized units
	ClusterMeans *mat.Dense // per-cluster column means in original units
	Inertia      float64    // within-cluster sum of squares
}

// KMeans clusters the rows of data into k groups. Seeding is k-means++ with
// a fixed seed; the lowest-inertia run of ten restarts wins.
func KMeans(data mat.Matrix, names []string, k int) (*KMeansResult, error) {
	n, d := data.Dims()
	if d < 2 {
		return nil, fmt.Errorf("kmeans: %w: need at least 2 columns, have %d", ErrTooFewColumns, d)
	}
	if k < MinK || k > MaxK {
		return nil, fmt.Errorf("kmeans: %w: k=%d not in [%d, %d]", ErrBadK, k, MinK, MaxK)
	}
	if n < k {
		return nil, fmt.Errorf("kmeans: %w: %d rows for k=%d", ErrTooFewRows, n, k)
	}
	scaled := FitScaler(data).Transform(data)
	rng := rand.New(rand.NewSource(randomSeed))
	labels, centers, inertia := bestRun(scaled, k, rng)

	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	means := mat.NewDense(k, d, nil)
	for i := 0; i < n; i++ {
		c := labels[i]
		for j := 0; j < d; j++ {
			means.Set(c, j, means.At(c, j)+data.At(i, j))
		}
	}
	for c := 0; c < k; c++ {
		for j := 0; j < d; j++ {
			means.Set(c, j, means.At(c, j)/float64(sizes[c]))
		}
	}
	return &KMeansResult{
		K:            k,
		Names:        names,
		Labels:       labels,
		Sizes:        sizes,
		Centers:      centers,
		ClusterMeans: means,
		Inertia:      inertia,
	}, nil
}

// Elbow returns the within-cluster sum of squares for k = 1..min(9, rows-1).
func Elbow(data mat.Matrix) ([]float64, error) {
	n, d := data.Dims()
	if d < 2 {
		return nil, fmt.Errorf("elbow: %w: need at least 2 columns, have %d", ErrTooFewColumns, d)
	}
	if n < 2 {
		return nil, fmt.Errorf("elbow: %w: %d rows", ErrTooFewRows, n)
	}
	scaled := FitScaler(data).Transform(data)
	rng := rand.New(rand.NewSource(randomSeed))
	maxK := 9
	if n-1 < maxK {
		maxK = n - 1
	}
	out := make([]float64, 0, maxK)
	for k := 1; k <= maxK; k++ {
		_, _, inertia := bestRun(scaled, k, rng)
		out = append(out, inertia)
	}
	return out, nil
}

func bestRun(x *mat.Dense, k int, rng *rand.Rand) ([]int, *mat.Dense, float64) {
	var (
		bestLabels  []int
		bestCenters *mat.Dense
	)
	best := math.Inf(1)
	for r := 0; r < kmeansRestarts; r++ {
		labels, centers, inertia := lloyd(x, k, rng)
		if inertia < best {
			best, bestLabels, bestCenters = inertia, labels, centers
		}
	}
	return bestLabels, bestCenters, best
}

// lloyd runs one seeded k-means++ initialization followed by Lloyd
// iterations until assignments settle.
func lloyd(x *mat.Dense, k int, rng *rand.Rand) ([]int, *mat.Dense, float64) {
	n, d := x.Dims()
	centers := seedCenters(x, k, rng)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i := 0; i < n; i++ {
			if c := nearest(centers, x.RawRowView(i)); c != labels[i] {
				labels[i] = c
				changed = true
			}
		}
		next := mat.NewDense(k, d, nil)
		counts := make([]int, k)
		for i := 0; i < n; i++ {
			c := labels[i]
			counts[c]++
			row := x.RawRowView(i)
			for j, v := range row {
				next.Set(c, j, next.At(c, j)+v)
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Restart an emptied cluster on the worst-fitted point.
				next.SetRow(c, x.RawRowView(farthest(x, centers, labels)))
				changed = true
				continue
			}
			for j := 0; j < d; j++ {
				next.Set(c, j, next.At(c, j)/float64(counts[c]))
			}
		}
		centers = next
		if !changed {
			break
		}
	}
	var inertia float64
	for i := 0; i < n; i++ {
		dist := floats.Distance(x.RawRowView(i), centers.RawRowView(labels[i]), 2)
		inertia += dist * dist
	}
	return labels, centers, inertia
}

// seedCenters picks k starting centers with the k-means++ rule: each new
// center is a data row drawn with probability proportional to its squared
// distance from the nearest chosen center.
func seedCenters(x *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := x.Dims()
	centers := mat.NewDense(k, d, nil)
	centers.SetRow(0, x.RawRowView(rng.Intn(n)))
	weights := make([]float64, n)
	for c := 1; c < k; c++ {
		var total float64
		for i := range weights {
			best := math.Inf(1)
			for cc := 0; cc < c; cc++ {
				dist := floats.Distance(x.RawRowView(i), centers.RawRowView(cc), 2)
				if sq := dist * dist; sq < best {
					best = sq
				}
			}
			weights[i] = best
			total += best
		}
		if total == 0 {
			centers.SetRow(c, x.RawRowView(rng.Intn(n)))
			continue
		}
		target := rng.Float64() * total
		pick := n - 1
		var acc float64
		for i, w := range weights {
			acc += w
			if acc >= target {
				pick = i
				break
			}
		}
		centers.SetRow(c, x.RawRowView(pick))
	}
	return centers
}

func nearest(centers *mat.Dense, row []float64) int {
	k, _ := centers.Dims()
	best, bestDist := 0, math.Inf(1)
	for c := 0; c < k; c++ {
		if dist := floats.Distance(centers.RawRowView(c), row, 2); dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func farthest(x *mat.Dense, centers *mat.Dense, labels []int) int {
	n, _ := x.Dims()
	worst, worstDist := 0, -1.0
	for i := 0; i < n; i++ {
		if dist := floats.Distance(x.RawRowView(i), centers.RawRowView(labels[i]), 2); dist > worstDist {
			worst, worstDist = i, dist
		}
	}
	return worst
}
