// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Method names as printed in the normality report title.
const (
	MethodShapiroWilk       = "Shapiro-Wilk"
	MethodKolmogorovSmirnov = "Kolmogorov-Smirnov"
)

// shapiroMaxN is the sample size above which the normality test switches to
// Kolmogorov-Smirnov against the fitted normal.
const shapiroMaxN = 5000

// NormalityResult is a normality test outcome.
type NormalityResult struct {
	Method string
	Stat   float64
	P      float64
	N      int
}

// Normality tests whether values are compatible with a normal distribution:
// Shapiro-Wilk up to 5000 values, Kolmogorov-Smirnov beyond.
func Normality(values []float64) (NormalityResult, error) {
	n := len(values)
	if n < 3 {
		return NormalityResult{}, fmt.Errorf("normality: %w: need at least 3 values", ErrTooFewValues)
	}
	if n > shapiroMaxN {
		d, p, err := ksNormal(values)
		if err != nil {
			return NormalityResult{}, err
		}
		return NormalityResult{Method: MethodKolmogorovSmirnov, Stat: d, P: p, N: n}, nil
	}
	w, p, err := shapiroWilk(values)
	if err != nil {
		return NormalityResult{}, err
	}
	return NormalityResult{Method: MethodShapiroWilk, Stat: w, P: p, N: n}, nil
}

// Royston's AS R94 coefficient polynomials.
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

func poly(c []float64, x float64) float64 {
	v := c[len(c)-1]
	for i := len(c) - 2; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}

// shapiroWilk implements Royston's AS R94 approximation of the W test.
func shapiroWilk(values []float64) (w, p float64, err error) {
	n := len(values)
	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)
	if x[n-1] == x[0] {
		return 0, 0, fmt.Errorf("shapiro-wilk: %w: all values identical", ErrZeroVariance)
	}

	nn2 := n / 2
	a := make([]float64, nn2+1)
	if n == 3 {
		a[1] = math.Sqrt(0.5)
	} else {
		an := float64(n)
		m := make([]float64, nn2+1)
		var summ2 float64
		for i := 1; i <= nn2; i++ {
			m[i] = distuv.UnitNormal.Quantile((float64(i) - 0.375) / (an + 0.25))
			summ2 += m[i] * m[i]
		}
		summ2 *= 2
		ssumm2 := math.Sqrt(summ2)
		rsn := 1 / math.Sqrt(an)
		a1 := poly(swC1, rsn) - m[1]/ssumm2
		i1 := 2
		var fac float64
		if n > 5 {
			i1 = 3
			a2 := poly(swC2, rsn) - m[2]/ssumm2
			fac = math.Sqrt((summ2 - 2*m[1]*m[1] - 2*m[2]*m[2]) /
				(1 - 2*a1*a1 - 2*a2*a2))
			a[2] = a2
		} else {
			fac = math.Sqrt((summ2 - 2*m[1]*m[1]) / (1 - 2*a1*a1))
		}
		a[1] = a1
		for i := i1; i <= nn2; i++ {
			a[i] = -m[i] / fac
		}
	}

	mean := Mean(x)
	var sse, b float64
	for _, v := range x {
		d := v - mean
		sse += d * d
	}
	for i := 1; i <= nn2; i++ {
		b += a[i] * (x[n-i] - x[i-1])
	}
	w = b * b / sse
	if w > 1 {
		w = 1
	}

	if n == 3 {
		const (
			sixOverPi = 1.90985931710274
			asinSqrt3 = 1.04719755119660 // asin(sqrt(3/4))
		)
		p = sixOverPi * (math.Asin(math.Sqrt(w)) - asinSqrt3)
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		return w, p, nil
	}

	y := math.Log1p(-w)
	an := float64(n)
	var mu, sigma float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return w, 1e-99, nil
		}
		y = -math.Log(gamma - y)
		mu = poly(swC3, an)
		sigma = math.Exp(poly(swC4, an))
	} else {
		logn := math.Log(an)
		mu = poly(swC5, logn)
		sigma = math.Exp(poly(swC6, logn))
	}
	return w, distuv.UnitNormal.Survival((y - mu) / sigma), nil
}

// ksNormal runs the one-sample Kolmogorov-Smirnov test against a normal
// distribution fitted to the data, with the asymptotic p-value.
func ksNormal(values []float64) (d, p float64, err error) {
	mean := Mean(values)
	sd := Std(values)
	if sd == 0 {
		return 0, 0, fmt.Errorf("kolmogorov-smirnov: %w: all values identical", ErrZeroVariance)
	}
	n := len(values)
	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)
	dist := distuv.Normal{Mu: mean, Sigma: sd}
	for i, v := range x {
		cdf := dist.CDF(v)
		if up := float64(i+1)/float64(n) - cdf; up > d {
			d = up
		}
		if down := cdf - float64(i)/float64(n); down > d {
			d = down
		}
	}
	return d, ksSurvival(math.Sqrt(float64(n)) * d), nil
}

// ksSurvival is the asymptotic Kolmogorov distribution survival function
// 2*sum((-1)^(k-1) * exp(-2 k^2 lambda^2)).
func ksSurvival(lambda float64) float64 {
	// Below 0.04 the survival is 1 to double precision, and the series
	// needs thousands of terms to settle.
	if lambda < 0.04 {
		return 1
	}
	var sum float64
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := math.Exp(-2 * float64(k*k) * lambda * lambda)
		sum += sign * term
		if term < 1e-12 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
