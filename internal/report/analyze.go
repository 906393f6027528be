// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shayne/vitals/internal/mlearn"
	"github.com/shayne/vitals/internal/stats"
)

const barWidth = 50

func bars() string { return strings.Repeat("=", barWidth) }

// Correlation renders the Pearson analysis: notable pairs strongest first,
// then the full matrix.
func (r *Renderer) Correlation(m stats.Matrix) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.corrTitle + "\n")
	fmt.Fprintf(&b, r.t.corrVars+"\n\n", strings.Join(m.Names, ", "))
	b.WriteString(r.t.corrNotableHeader + "\n")
	pairs := m.NotablePairs(stats.NotableThreshold)
	if len(pairs) == 0 {
		b.WriteString(r.t.corrNone + "\n")
	}
	for _, p := range pairs {
		fmt.Fprintf(&b, r.t.corrPair+"\n", p.A, p.B, p.R, r.strength(p.R))
	}
	b.WriteString("\n" + r.t.corrMatrixHeader + "\n")
	cells := make([][]string, len(m.Names))
	for i := range m.Names {
		cells[i] = make([]string, len(m.Names))
		for j := range m.Names {
			cells[i][j] = f4(m.R[i][j])
		}
	}
	b.WriteString(tabulate(m.Names, m.Names, cells))
	b.WriteString("\n")
	return b.String()
}

func (r *Renderer) strength(v float64) string {
	switch {
	case v > stats.StrongThreshold:
		return r.t.strongPositive
	case v > 0:
		return r.t.moderatePositive
	case v < -stats.StrongThreshold:
		return r.t.strongNegative
	default:
		return r.t.moderateNegative
	}
}

// Regression renders the simple linear regression report.
func (r *Renderer) Regression(xCol, yCol string, res stats.RegressionResult) string {
	var b strings.Builder
	b.WriteString("\n" + r.t.regTitle + "\n")
	fmt.Fprintf(&b, r.t.regX+"\n", xCol)
	fmt.Fprintf(&b, r.t.regY+"\n", yCol)
	fmt.Fprintf(&b, r.t.regN+"\n\n", res.N)
	b.WriteString(r.t.regEquation + "\n")
	sign := ""
	if res.Intercept >= 0 {
		sign = "+"
	}
	fmt.Fprintf(&b, r.t.regLine+"\n\n", res.Slope, sign, res.Intercept)
	b.WriteString(r.t.regCoef + "\n")
	fmt.Fprintf(&b, r.t.regSlope+"\n", res.Slope, res.StdErr)
	fmt.Fprintf(&b, r.t.regIntercept+"\n\n", res.Intercept)
	b.WriteString(r.t.regFit + "\n")
	fmt.Fprintf(&b, r.t.regR+"\n", res.R)
	fmt.Fprintf(&b, r.t.regR2+"\n", res.R2)
	fmt.Fprintf(&b, r.t.regP+"\n\n", res.P)
	var sig string
	switch {
	case res.P < 0.001:
		sig = r.t.regSig001
	case res.P < 0.01:
		sig = r.t.regSig01
	case res.P < 0.05:
		sig = r.t.regSig05
	default:
		sig = r.t.regNotSig
	}
	fmt.Fprintf(&b, r.t.regVerdict+"\n", sig)
	fmt.Fprintf(&b, r.t.regPerUnit+"\n", res.Slope)
	return b.String()
}

// PCA renders explained variance per component, the loadings matrix, and
// how many components reach 80% cumulative variance.
func (r *Renderer) PCA(res *mlearn.PCAResult) string {
	var b strings.Builder
	b.WriteString(bars() + "\n")
	b.WriteString(r.t.pcaTitle + "\n")
	b.WriteString(bars() + "\n\n")
	b.WriteString(r.t.pcaVarianceHdr + "\n")
	for i, ratio := range res.Ratios {
		fmt.Fprintf(&b, r.t.pcaComponent+"\n", i+1, ratio*100, res.Cumulative[i]*100)
	}
	b.WriteString("\n" + r.t.pcaLoadingsHdr + "\n")
	k := len(res.Ratios)
	headers := make([]string, k)
	for j := range headers {
		headers[j] = "PC" + strconv.Itoa(j+1)
	}
	cells := make([][]string, len(res.Names))
	for i := range res.Names {
		cells[i] = make([]string, k)
		for j := 0; j < k; j++ {
			cells[i][j] = fmt.Sprintf("%.3f", res.Loadings.At(i, j))
		}
	}
	b.WriteString(tabulate(headers, res.Names, cells))
	b.WriteString("\n\n" + r.t.pcaSuggestHdr + "\n")
	if res.Suggested > 0 {
		fmt.Fprintf(&b, r.t.pcaSuggestLine+"\n", res.Suggested)
	}
	return b.String()
}

// KMeans renders cluster sizes, centers in standardized space, per-cluster
// means in original units, and the inertia.
func (r *Renderer) KMeans(res *mlearn.KMeansResult) string {
	var b strings.Builder
	b.WriteString(bars() + "\n")
	fmt.Fprintf(&b, r.t.kmTitle+"\n", res.K)
	b.WriteString(bars() + "\n\n")
	b.WriteString(r.t.kmSizesHdr + "\n")
	total := len(res.Labels)
	for c, n := range res.Sizes {
		fmt.Fprintf(&b, r.t.kmSizeLine+"\n", c, n, float64(n)/float64(total)*100)
	}
	labels := make([]string, res.K)
	for c := range labels {
		labels[c] = strconv.Itoa(c)
	}
	b.WriteString("\n" + r.t.kmCentersHdr + "\n")
	b.WriteString(tabulate(res.Names, labels, matrixCells(res.Centers, res.K, len(res.Names), "%.3f")))
	b.WriteString("\n\n" + r.t.kmMeansHdr + "\n")
	b.WriteString(tabulate(res.Names, labels, matrixCells(res.ClusterMeans, res.K, len(res.Names), "%.2f")))
	b.WriteString("\n\n" + r.t.kmEvalHdr + "\n")
	fmt.Fprintf(&b, r.t.kmInertia+"\n", res.Inertia)
	return b.String()
}

// HClust renders the hierarchical clustering summary. sampled < total means
// the dendrogram was drawn from a random subset.
func (r *Renderer) HClust(total, sampled int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(r.t.hclustTitle + "\n")
	fmt.Fprintf(&b, r.t.hclustRows+"\n", total)
	if sampled < total {
		fmt.Fprintf(&b, r.t.hclustSampled+"\n", sampled)
	}
	return b.String()
}

type matrixAt interface {
	At(i, j int) float64
}

func matrixCells(m matrixAt, rows, cols int, format string) [][]string {
	cells := make([][]string, rows)
	for i := 0; i < rows; i++ {
		cells[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			cells[i][j] = fmt.Sprintf(format, m.At(i, j))
		}
	}
	return cells
}
