// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/shayne/vitals/internal/mlearn"
)

// Elbow draws the within-cluster sum of squares over k with the chosen k
// marked.
func (w *Writer) Elbow(ks []int, inertias []float64, current int) (string, error) {
	p, err := elbowPlot(ks, inertias, current)
	if err != nil {
		return "", err
	}
	return w.save(p, "elbow")
}

func elbowPlot(ks []int, inertias []float64, current int) (*plot.Plot, error) {
	if len(ks) == 0 || len(ks) != len(inertias) {
		return nil, fmt.Errorf("elbow: %w", ErrNoValues)
	}
	p := newPlot("肘部法则 - 选择最佳K值", "聚类数K", "簇内平方和 (Inertia)")
	xs := make([]float64, len(ks))
	for i, k := range ks {
		xs[i] = float64(k)
	}
	line, pts, err := plotter.NewLinePoints(xyPairs(xs, inertias))
	if err != nil {
		return nil, fmt.Errorf("elbow: %w", err)
	}
	line.Width = vg.Points(2)
	line.Color = steelBlue
	pts.GlyphStyle.Color = steelBlue
	pts.GlyphStyle.Radius = vg.Points(3)
	p.Add(plotter.NewGrid(), line, pts)

	if current >= ks[0] && current <= ks[len(ks)-1] {
		lo, hi := floats.Min(inertias), floats.Max(inertias)
		mark, err := plotter.NewLine(plotter.XYs{
			{X: float64(current), Y: lo},
			{X: float64(current), Y: hi},
		})
		if err != nil {
			return nil, fmt.Errorf("elbow: %w", err)
		}
		dashed(mark, fitRed)
		p.Add(mark)
		p.Legend.Add(fmt.Sprintf("当前K=%d", current), mark)
		p.Legend.Top = true
	}
	return p, nil
}

// PCAScatter draws observations over the first two components. assign is an
// optional per-row group index into groupNames, coloring the points.
func (w *Writer) PCAScatter(res *mlearn.PCAResult, assign []int, groupNames []string) (string, error) {
	title := fmt.Sprintf("PCA降维可视化\n总解释方差: %.1f%%", res.Cumulative[len(res.Cumulative)-1]*100)
	p, err := pcaScatterPlot(res, assign, groupNames, title)
	if err != nil {
		return "", err
	}
	return w.save(p, "pca")
}

func pcaScatterPlot(res *mlearn.PCAResult, assign []int, groupNames []string, title string) (*plot.Plot, error) {
	rows, cols := res.Scores.Dims()
	if rows == 0 || cols < 2 {
		return nil, fmt.Errorf("pca scatter: %w", ErrNoValues)
	}
	p := newPlot(title,
		fmt.Sprintf("PC1 (%.1f%%)", res.Ratios[0]*100),
		fmt.Sprintf("PC2 (%.1f%%)", res.Ratios[1]*100))

	if assign == nil {
		sc, err := plotter.NewScatter(scoreXYs(res.Scores, nil, -1))
		if err != nil {
			return nil, fmt.Errorf("pca scatter: %w", err)
		}
		sc.GlyphStyle.Color = translucent(steelBlue, 0xb2)
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
	} else {
		for g, name := range groupNames {
			xys := scoreXYs(res.Scores, assign, g)
			if len(xys) == 0 {
				continue
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("pca scatter group %q: %w", name, err)
			}
			sc.GlyphStyle.Color = translucent(seriesColor(g), 0xb2)
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
			p.Legend.Add(name, sc)
		}
		p.Legend.Top = true
	}

	addZeroAxes(p, res.Scores)
	return p, nil
}

// scoreXYs collects the first two score columns, keeping only rows whose
// assignment matches group when assign is present.
func scoreXYs(scores *mat.Dense, assign []int, group int) plotter.XYs {
	rows, _ := scores.Dims()
	xys := make(plotter.XYs, 0, rows)
	for i := 0; i < rows; i++ {
		if assign != nil && assign[i] != group {
			continue
		}
		xys = append(xys, plotter.XY{X: scores.At(i, 0), Y: scores.At(i, 1)})
	}
	return xys
}

// addZeroAxes draws dashed gray guides through the origin.
func addZeroAxes(p *plot.Plot, scores *mat.Dense) {
	rows, _ := scores.Dims()
	if rows == 0 {
		return
	}
	xmin, xmax := scores.At(0, 0), scores.At(0, 0)
	ymin, ymax := scores.At(0, 1), scores.At(0, 1)
	for i := 0; i < rows; i++ {
		xmin = math.Min(xmin, scores.At(i, 0))
		xmax = math.Max(xmax, scores.At(i, 0))
		ymin = math.Min(ymin, scores.At(i, 1))
		ymax = math.Max(ymax, scores.At(i, 1))
	}
	if h, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: 0}, {X: xmax, Y: 0}}); err == nil {
		dashed(h, axisGray)
		p.Add(h)
	}
	if v, err := plotter.NewLine(plotter.XYs{{X: 0, Y: ymin}, {X: 0, Y: ymax}}); err == nil {
		dashed(v, axisGray)
		p.Add(v)
	}
}

// KMeansPanel writes the clustering summary figure: cluster assignments in
// PCA space beside the elbow curve.
func (w *Writer) KMeansPanel(res *mlearn.KMeansResult, pca *mlearn.PCAResult, ks []int, inertias []float64) (string, error) {
	groupNames := make([]string, res.K)
	for c := range groupNames {
		groupNames[c] = fmt.Sprintf("簇 %d", c)
	}
	left, err := pcaScatterPlot(pca, res.Labels, groupNames, fmt.Sprintf("K-Means聚类结果 (K=%d)", res.K))
	if err != nil {
		return "", err
	}

	// Cluster centers live in standardized space; the loadings project them
	// onto the component axes.
	var centersPCA mat.Dense
	centersPCA.Mul(res.Centers, pca.Loadings)
	centers := make(plotter.XYs, res.K)
	for c := 0; c < res.K; c++ {
		centers[c] = plotter.XY{X: centersPCA.At(c, 0), Y: centersPCA.At(c, 1)}
	}
	marks, err := plotter.NewScatter(centers)
	if err != nil {
		return "", fmt.Errorf("kmeans centers: %w", err)
	}
	marks.GlyphStyle.Shape = draw.CrossGlyph{}
	marks.GlyphStyle.Radius = vg.Points(6)
	left.Add(marks)

	right, err := elbowPlot(ks, inertias, res.K)
	if err != nil {
		return "", err
	}
	return w.saveRow("kmeans", "", 12*vg.Inch, 5*vg.Inch, left, right)
}

// Dendrogram draws the agglomeration tree. labels maps leaf index to its
// tick text; nil numbers the samples.
func (w *Writer) Dendrogram(merges []mlearn.Merge, labels []string) (string, error) {
	if len(merges) == 0 {
		return "", fmt.Errorf("dendrogram: %w", ErrNoValues)
	}
	n := len(merges) + 1
	if labels == nil {
		labels = make([]string, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("样本%d", i)
		}
	}

	// Leaf order by walking the tree left to right.
	order := make([]int, 0, n)
	var walk func(id int)
	walk = func(id int) {
		if id < n {
			order = append(order, id)
			return
		}
		m := merges[id-n]
		walk(m.A)
		walk(m.B)
	}
	walk(2*n - 2)

	xpos := make([]float64, 2*n-1)
	ypos := make([]float64, 2*n-1)
	for i, leaf := range order {
		xpos[leaf] = float64(i)
	}
	for i, m := range merges {
		id := n + i
		xpos[id] = (xpos[m.A] + xpos[m.B]) / 2
		ypos[id] = m.Distance
	}

	maxDist := merges[len(merges)-1].Distance
	threshold := 0.7 * maxDist

	// Subtrees merged below the threshold share a color.
	parent := make([]int, 2*n-1)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	colorIndex := make(map[int]int)
	for i, m := range merges {
		if m.Distance < threshold {
			id := n + i
			parent[find(m.A)] = id
			parent[find(m.B)] = id
		}
	}

	p := newPlot(fmt.Sprintf("层次聚类树状图 (方法: ward, 样本数: %d)", n), "样本", "聚类距离")
	for i, m := range merges {
		id := n + i
		link, err := plotter.NewLine(plotter.XYs{
			{X: xpos[m.A], Y: ypos[m.A]},
			{X: xpos[m.A], Y: m.Distance},
			{X: xpos[m.B], Y: m.Distance},
			{X: xpos[m.B], Y: ypos[m.B]},
		})
		if err != nil {
			return "", fmt.Errorf("dendrogram: %w", err)
		}
		link.Width = vg.Points(1.5)
		if m.Distance < threshold {
			root := find(id)
			if _, ok := colorIndex[root]; !ok {
				colorIndex[root] = len(colorIndex)
			}
			link.Color = seriesColor(colorIndex[root])
		} else {
			link.Color = steelBlue
		}
		p.Add(link)
	}

	guide, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: threshold},
		{X: float64(n) - 0.5, Y: threshold},
	})
	if err != nil {
		return "", fmt.Errorf("dendrogram: %w", err)
	}
	dashed(guide, axisGray)
	p.Add(guide)
	p.Legend.Add("聚类阈值", guide)
	p.Legend.Top = true

	ordered := make([]string, n)
	for i, leaf := range order {
		ordered[i] = labels[leaf]
	}
	p.NominalX(ordered...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return w.save(p, "dendrogram")
}
