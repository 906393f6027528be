// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset holds a column-oriented table loaded from a health-data
// CSV file and answers the column-selection questions the analysis commands
// ask: which columns are continuous, which are categorical, and which rows
// are complete for a given set of columns.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var nan = math.NaN()

// Kind classifies a column for analysis purposes.
type Kind int

const (
	// Continuous columns are fully numeric with more than ten distinct
	// values. Everything else is Categorical, including low-cardinality
	// numeric columns such as rating scales.
	Continuous Kind = iota
	Categorical
)

func (k Kind) String() string {
	if k == Continuous {
		return "continuous"
	}
	return "categorical"
}

// ErrColumnNotFound is wrapped by lookups for columns absent from the frame.
var ErrColumnNotFound = errors.New("column not found")

// Column is a single named column. Cells are kept both as raw text and, when
// the text parses, as float64 values.
type Column struct {
	Name string
	Kind Kind

	raw     []string  // cell text, missing cells are ""
	num     []float64 // parsed values, NaN where missing or non-numeric
	valid   []bool    // cell present
	numeric bool      // every present cell parses as a number
	count   int       // present cells
}

// Len returns the number of rows, including missing cells.
func (c *Column) Len() int { return len(c.raw) }

// Count returns the number of present (non-missing) cells.
func (c *Column) Count() int { return c.count }

// Missing reports whether the cell at row i is absent.
func (c *Column) Missing(i int) bool { return !c.valid[i] }

// Cell returns the raw text of the cell at row i, "" when missing.
func (c *Column) Cell(i int) string { return c.raw[i] }

// Float returns the parsed value at row i and whether it is usable.
func (c *Column) Float(i int) (float64, bool) {
	if !c.valid[i] || !c.numeric {
		return 0, false
	}
	return c.num[i], true
}

// IsNumeric reports whether every present cell parses as a number.
func (c *Column) IsNumeric() bool { return c.numeric }

// Values returns the present parsed values in row order.
func (c *Column) Values() []float64 {
	out := make([]float64, 0, c.count)
	for i, ok := range c.valid {
		if ok && c.numeric {
			out = append(out, c.num[i])
		}
	}
	return out
}

// Distinct returns the number of distinct present values. Numeric columns
// compare parsed values, so "1" and "1.0" collapse.
func (c *Column) Distinct() int {
	if c.numeric {
		seen := make(map[float64]struct{}, c.count)
		for i, ok := range c.valid {
			if ok {
				seen[c.num[i]] = struct{}{}
			}
		}
		return len(seen)
	}
	seen := make(map[string]struct{}, c.count)
	for i, ok := range c.valid {
		if ok {
			seen[c.raw[i]] = struct{}{}
		}
	}
	return len(seen)
}

// Frame is an ordered collection of columns sharing a row count.
type Frame struct {
	// Path is the file the frame was loaded from, "" for readers.
	Path string
	// Name is the file stem, used for chart and export naming.
	Name string

	cols  []*Column
	index map[string]*Column
	rows  int
}

// Rows returns the number of data rows after empty-row removal.
func (f *Frame) Rows() int { return f.rows }

// Columns returns the columns in file order.
func (f *Frame) Columns() []*Column { return f.cols }

// Column looks a column up by name.
func (f *Frame) Column(name string) (*Column, error) {
	c, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return c, nil
}

// Continuous returns the names of continuous columns in file order.
func (f *Frame) Continuous() []string { return f.names(Continuous) }

// Categorical returns the names of categorical columns in file order.
func (f *Frame) Categorical() []string { return f.names(Categorical) }

func (f *Frame) names(k Kind) []string {
	var out []string
	for _, c := range f.cols {
		if c.Kind == k {
			out = append(out, c.Name)
		}
	}
	return out
}

// Values returns the present parsed values of a numeric column.
func (f *Frame) Values(name string) ([]float64, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if !c.numeric {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	return c.Values(), nil
}

// Levels returns the distinct present values of a column in ascending order.
// Numeric columns sort by value, text columns lexicographically.
func (f *Frame) Levels(name string) ([]string, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if c.numeric {
		vals := make([]float64, 0, c.count)
		seen := make(map[float64]string)
		for i, ok := range c.valid {
			if !ok {
				continue
			}
			if _, dup := seen[c.num[i]]; !dup {
				seen[c.num[i]] = c.raw[i]
				vals = append(vals, c.num[i])
			}
		}
		sort.Float64s(vals)
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = seen[v]
		}
		return out, nil
	}
	seen := make(map[string]struct{})
	var out []string
	for i, ok := range c.valid {
		if !ok {
			continue
		}
		if _, dup := seen[c.raw[i]]; !dup {
			seen[c.raw[i]] = struct{}{}
			out = append(out, c.raw[i])
		}
	}
	sort.Strings(out)
	return out, nil
}

// LevelsFirstSeen returns the distinct present values of a column in order
// of first appearance. The binary tests label their two groups this way.
func (f *Frame) LevelsFirstSeen(name string) ([]string, error) {
	c, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for i, ok := range c.valid {
		if !ok {
			continue
		}
		if _, dup := seen[c.raw[i]]; !dup {
			seen[c.raw[i]] = struct{}{}
			out = append(out, c.raw[i])
		}
	}
	return out, nil
}

// LevelCount pairs a categorical level with its frequency.
type LevelCount struct {
	Level string
	Count int
}

// Counts returns level frequencies sorted by count descending, ties broken
// by level order.
func (f *Frame) Counts(name string) ([]LevelCount, error) {
	levels, err := f.Levels(name)
	if err != nil {
		return nil, err
	}
	c, _ := f.Column(name)
	byLevel := make(map[string]int, len(levels))
	for i, ok := range c.valid {
		if ok {
			byLevel[c.raw[i]]++
		}
	}
	out := make([]LevelCount, 0, len(levels))
	for _, l := range levels {
		out = append(out, LevelCount{Level: l, Count: byLevel[l]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// Group holds the values of a numeric column for one level of a grouping
// column.
type Group struct {
	Level  string
	Values []float64
}

// GroupValues splits a numeric column by the levels of a grouping column,
// keeping rows where both cells are present. Groups come back in level
// order.
func (f *Frame) GroupValues(value, group string) ([]Group, error) {
	vc, err := f.Column(value)
	if err != nil {
		return nil, err
	}
	if !vc.numeric {
		return nil, fmt.Errorf("column %q is not numeric", value)
	}
	gc, err := f.Column(group)
	if err != nil {
		return nil, err
	}
	levels, err := f.Levels(group)
	if err != nil {
		return nil, err
	}
	byLevel := make(map[string][]float64, len(levels))
	for i := 0; i < f.rows; i++ {
		if !vc.valid[i] || !gc.valid[i] {
			continue
		}
		byLevel[gc.raw[i]] = append(byLevel[gc.raw[i]], vc.num[i])
	}
	out := make([]Group, 0, len(levels))
	for _, l := range levels {
		if vals := byLevel[l]; len(vals) > 0 {
			out = append(out, Group{Level: l, Values: vals})
		}
	}
	return out, nil
}

// PairValues returns the values of two numeric columns restricted to rows
// where both are present.
func (f *Frame) PairValues(a, b string) ([]float64, []float64, error) {
	ca, err := f.Column(a)
	if err != nil {
		return nil, nil, err
	}
	cb, err := f.Column(b)
	if err != nil {
		return nil, nil, err
	}
	if !ca.numeric {
		return nil, nil, fmt.Errorf("column %q is not numeric", a)
	}
	if !cb.numeric {
		return nil, nil, fmt.Errorf("column %q is not numeric", b)
	}
	var xs, ys []float64
	for i := 0; i < f.rows; i++ {
		if ca.valid[i] && cb.valid[i] {
			xs = append(xs, ca.num[i])
			ys = append(ys, cb.num[i])
		}
	}
	return xs, ys, nil
}

// CompleteRows returns, row-major, the rows where every named numeric column
// is present. The multivariate commands (PCA, clustering) run on this.
func (f *Frame) CompleteRows(names ...string) ([][]float64, error) {
	cols := make([]*Column, len(names))
	for i, name := range names {
		c, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		if !c.numeric {
			return nil, fmt.Errorf("column %q is not numeric", name)
		}
		cols[i] = c
	}
	var out [][]float64
rows:
	for i := 0; i < f.rows; i++ {
		for _, c := range cols {
			if !c.valid[i] {
				continue rows
			}
		}
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c.num[i]
		}
		out = append(out, row)
	}
	return out, nil
}

// Crosstab is a two-way frequency table. Rows follow the levels of the
// first column, Cols those of the second, and Counts[i][j] pairs them.
type Crosstab struct {
	RowName, ColName string
	Rows, Cols       []string
	Counts           [][]float64
}

// Crosstab counts co-occurring levels of two columns over the rows where
// both are present.
func (f *Frame) Crosstab(a, b string) (*Crosstab, error) {
	ca, err := f.Column(a)
	if err != nil {
		return nil, err
	}
	cb, err := f.Column(b)
	if err != nil {
		return nil, err
	}
	rows, err := f.Levels(a)
	if err != nil {
		return nil, err
	}
	cols, err := f.Levels(b)
	if err != nil {
		return nil, err
	}
	rowIdx := make(map[string]int, len(rows))
	for i, l := range rows {
		rowIdx[l] = i
	}
	colIdx := make(map[string]int, len(cols))
	for i, l := range cols {
		colIdx[l] = i
	}
	counts := make([][]float64, len(rows))
	for i := range counts {
		counts[i] = make([]float64, len(cols))
	}
	for i := 0; i < f.rows; i++ {
		if ca.valid[i] && cb.valid[i] {
			counts[rowIdx[ca.raw[i]]][colIdx[cb.raw[i]]]++
		}
	}
	return &Crosstab{RowName: a, ColName: b, Rows: rows, Cols: cols, Counts: counts}, nil
}

// ColumnMissing is one row of the missing-value summary.
type ColumnMissing struct {
	Name    string
	Missing int
	Percent float64
}

// MissingSummary reports per-column missing counts for columns that have
// any, sorted by count descending, plus the number of complete rows.
func (f *Frame) MissingSummary() (cols []ColumnMissing, completeRows int) {
	for _, c := range f.cols {
		if m := f.rows - c.count; m > 0 {
			cols = append(cols, ColumnMissing{
				Name:    c.Name,
				Missing: m,
				Percent: float64(m) / float64(f.rows) * 100,
			})
		}
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Missing > cols[j].Missing })
rows:
	for i := 0; i < f.rows; i++ {
		for _, c := range f.cols {
			if !c.valid[i] {
				continue rows
			}
		}
		completeRows++
	}
	return cols, completeRows
}

func parseCell(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}
