// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats computes the descriptive statistics and hypothesis tests the
// analysis commands report. Conventions throughout: sample standard
// deviations, linearly interpolated quantiles, biased moment skewness and
// kurtosis, and two-sided p-values.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrTooFewValues is wrapped when an operation has fewer usable values than
// it needs.
var ErrTooFewValues = errors.New("too few values")

// ErrZeroVariance is wrapped when an operation is undefined on constant
// data.
var ErrZeroVariance = errors.New("zero variance")

// Mean returns the arithmetic mean.
func Mean(x []float64) float64 { return stat.Mean(x, nil) }

// Std returns the sample standard deviation (n-1 divisor).
func Std(x []float64) float64 { return stat.StdDev(x, nil) }

// Median returns the linearly interpolated median.
func Median(x []float64) float64 { return Quantile(x, 0.5) }

// Quantile returns the p-quantile using linear interpolation between order
// statistics at h = (n-1)p.
func Quantile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)
	h := float64(len(s)-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return s[lo]
	}
	return s[lo] + (h-float64(lo))*(s[hi]-s[lo])
}

// Skew returns the biased moment skewness g1 = m3 / m2^(3/2).
func Skew(x []float64) float64 {
	m2, m3, _ := centralMoments(x)
	return m3 / math.Pow(m2, 1.5)
}

// ExKurtosis returns the biased excess kurtosis g2 = m4 / m2^2 - 3.
func ExKurtosis(x []float64) float64 {
	m2, _, m4 := centralMoments(x)
	return m4/(m2*m2) - 3
}

func centralMoments(x []float64) (m2, m3, m4 float64) {
	n := float64(len(x))
	if n == 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	mean := stat.Mean(x, nil)
	for _, v := range x {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	return m2 / n, m3 / n, m4 / n
}

// Descriptive summarizes a single numeric column.
type Descriptive struct {
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe computes the eight-number summary. Std is NaN for a single
// value.
func Describe(values []float64) (Descriptive, error) {
	if len(values) == 0 {
		return Descriptive{}, errors.New("describe: no values")
	}
	d := Descriptive{
		N:      len(values),
		Mean:   Mean(values),
		Min:    values[0],
		Max:    values[0],
		Q1:     Quantile(values, 0.25),
		Median: Quantile(values, 0.5),
		Q3:     Quantile(values, 0.75),
	}
	for _, v := range values {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}
	if len(values) > 1 {
		d.Std = Std(values)
	} else {
		d.Std = math.NaN()
	}
	return d, nil
}

// ranks assigns 1-based ranks with ties averaged and returns the tie term
// sum(t^3 - t) the rank tests correct with.
func ranks(vals []float64) (r []float64, tieSum float64) {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })
	r = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && vals[idx[j+1]] == vals[idx[i]] {
			j++
		}
		avg := float64(i+j+2) / 2 // average of ranks i+1..j+1
		for k := i; k <= j; k++ {
			r[idx[k]] = avg
		}
		if t := float64(j - i + 1); t > 1 {
			tieSum += t*t*t - t
		}
		i = j + 1
	}
	return r, tieSum
}
