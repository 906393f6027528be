// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// kdeable reports whether a density estimate is drawable: at least two
// values with spread.
func kdeable(sample []float64) bool {
	return len(sample) > 1 && floats.Min(sample) < floats.Max(sample)
}

// kdeBandwidth is Scott's rule for one dimension.
func kdeBandwidth(sample []float64) float64 {
	h := stat.StdDev(sample, nil) * math.Pow(float64(len(sample)), -0.2)
	if h <= 0 || math.IsNaN(h) {
		return 1
	}
	return h
}

// kdeGrid returns n evaluation points spanning the sample range padded by
// three bandwidths on each side.
func kdeGrid(sample []float64, n int) []float64 {
	lo, hi := floats.Min(sample), floats.Max(sample)
	pad := 3 * kdeBandwidth(sample)
	lo, hi = lo-pad, hi+pad
	pts := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range pts {
		pts[i] = lo + float64(i)*step
	}
	return pts
}

// gaussianKDE evaluates a Gaussian kernel density estimate at pts.
func gaussianKDE(sample, pts []float64) []float64 {
	h := kdeBandwidth(sample)
	norm := 1 / (float64(len(sample)) * h * math.Sqrt(2*math.Pi))
	out := make([]float64, len(pts))
	for i, p := range pts {
		var sum float64
		for _, x := range sample {
			u := (p - x) / h
			sum += math.Exp(-0.5 * u * u)
		}
		out[i] = sum * norm
	}
	return out
}
