// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// The source files carry a header row, then one human-readable explanation
// row, then data. The explanation row is always skipped.
const skippedHeaderRows = 1

// continuousMinDistinct is the exclusive distinct-value threshold above
// which a fully numeric column counts as continuous.
const continuousMinDistinct = 10

// ErrNoData is wrapped when a file has a header but no data rows.
var ErrNoData = errors.New("no data rows")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a CSV file into a Frame. Files are expected in GBK; UTF-8
// input is detected and accepted as-is.
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	fr, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	fr.Path = path
	fr.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fr, nil
}

// LoadReader reads CSV content from r into a Frame.
func LoadReader(r io.Reader) (*Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	cr := csv.NewReader(strings.NewReader(decode(data)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	header := mangleHeader(records[0])
	if len(records) <= 1+skippedHeaderRows {
		return nil, ErrNoData
	}
	return build(header, records[1+skippedHeaderRows:])
}

// decode picks the character encoding. Valid UTF-8 (or a BOM) wins,
// otherwise the bytes are decoded as GBK; undecodable input is passed
// through so the CSV layer can report position errors.
func decode(data []byte) string {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):])
	}
	if utf8.Valid(data) {
		return string(data)
	}
	out, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// mangleHeader deduplicates repeated column names the way the source files
// show up in practice: X, X.1, X.2.
func mangleHeader(row []string) []string {
	out := make([]string, len(row))
	seen := make(map[string]int, len(row))
	for i, name := range row {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			out[i] = fmt.Sprintf("%s.%d", name, n)
			continue
		}
		seen[name] = 1
		out[i] = name
	}
	return out
}

func missingCell(s string) bool {
	switch s {
	case "", "nan", "NaN":
		return true
	}
	return false
}

func build(header []string, rows [][]string) (*Frame, error) {
	ncol := len(header)

	// Rows where every cell is missing carry no information and are
	// dropped before anything else, as are columns that end up fully
	// missing.
	var kept [][]string
	for _, row := range rows {
		empty := true
		for c := 0; c < ncol && c < len(row); c++ {
			if !missingCell(row[c]) {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoData
	}

	f := &Frame{rows: len(kept), index: make(map[string]*Column, ncol)}
	for c := 0; c < ncol; c++ {
		col := &Column{
			Name:    header[c],
			raw:     make([]string, len(kept)),
			num:     make([]float64, len(kept)),
			valid:   make([]bool, len(kept)),
			numeric: true,
		}
		for r, row := range kept {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if missingCell(cell) {
				col.num[r] = nan
				continue
			}
			col.raw[r] = cell
			col.valid[r] = true
			col.count++
			if v, ok := parseCell(cell); ok {
				col.num[r] = v
			} else {
				col.numeric = false
				col.num[r] = nan
			}
		}
		if col.count == 0 {
			continue // fully missing column
		}
		if col.numeric && col.Distinct() > continuousMinDistinct {
			col.Kind = Continuous
		} else {
			col.Kind = Categorical
		}
		f.cols = append(f.cols, col)
		f.index[col.Name] = col
	}
	if len(f.cols) == 0 {
		return nil, ErrNoData
	}
	return f, nil
}
