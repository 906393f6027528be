// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export writes analysis results to spreadsheet files. The Excel
// workbook carries three sheets: the descriptive summary, the correlation
// matrix, and the raw values of the exported columns. When the workbook
// cannot be written the summary falls back to a UTF-8 BOM CSV so the numbers
// still land somewhere Excel can open.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shayne/vitals/internal/dataset"
	"github.com/shayne/vitals/internal/stats"
)

const (
	sheetDescribe = "描述统计"
	sheetCorr     = "相关矩阵"
	sheetRaw      = "原始数据"
)

// Result reports where an export landed.
type Result struct {
	Path        string
	CSVFallback bool
}

// Statistics exports the named numeric columns of frame to an Excel workbook
// at path. On a workbook write failure it retries the summary sheet as a CSV
// next to path and flags the result.
func Statistics(frame *dataset.Frame, names []string, path string) (Result, error) {
	if len(names) == 0 {
		return Result{}, errors.New("export: no columns selected")
	}

	summary, err := summaryRows(frame, names)
	if err != nil {
		return Result{}, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheetDescribe); err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}
	for i, row := range summary {
		if err := setRow(wb, sheetDescribe, i+1, row); err != nil {
			return Result{}, fmt.Errorf("export: %w", err)
		}
	}

	if err := writeCorrSheet(wb, frame, names); err != nil {
		return Result{}, err
	}
	if err := writeRawSheet(wb, frame, names); err != nil {
		return Result{}, err
	}

	if err := wb.SaveAs(path); err != nil {
		csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		if csvErr := writeSummaryCSV(csvPath, summary); csvErr != nil {
			return Result{}, fmt.Errorf("export: %w", err)
		}
		return Result{Path: csvPath, CSVFallback: true}, nil
	}
	return Result{Path: path}, nil
}

// summaryRows builds the describe sheet: header, then one row per column
// with the eight-number summary and the missing counts.
func summaryRows(frame *dataset.Frame, names []string) ([][]interface{}, error) {
	rows := make([][]interface{}, 0, len(names)+1)
	rows = append(rows, []interface{}{
		"", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "missing", "missing%",
	})
	for _, name := range names {
		vals, err := frame.Values(name)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		col, err := frame.Column(name)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		missing := frame.Rows() - col.Count()
		pct := math.Round(float64(missing)/float64(frame.Rows())*100*100) / 100

		if len(vals) == 0 {
			rows = append(rows, []interface{}{name, 0, nil, nil, nil, nil, nil, nil, nil, missing, pct})
			continue
		}
		d, err := stats.Describe(vals)
		if err != nil {
			return nil, fmt.Errorf("export %q: %w", name, err)
		}
		rows = append(rows, []interface{}{
			name, d.N, num(d.Mean), num(d.Std), num(d.Min),
			num(d.Q1), num(d.Median), num(d.Q3), num(d.Max),
			missing, pct,
		})
	}
	return rows, nil
}

func writeCorrSheet(wb *excelize.File, frame *dataset.Frame, names []string) error {
	if _, err := wb.NewSheet(sheetCorr); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	m := stats.Matrix{Names: names, R: [][]float64{{1}}}
	if len(names) > 1 {
		var err error
		m, err = stats.PearsonMatrix(frame, names)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	header := make([]interface{}, 0, len(names)+1)
	header = append(header, "")
	for _, name := range m.Names {
		header = append(header, name)
	}
	if err := setRow(wb, sheetCorr, 1, header); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for i, name := range m.Names {
		row := make([]interface{}, 0, len(names)+1)
		row = append(row, name)
		for _, r := range m.R[i] {
			row = append(row, num(r))
		}
		if err := setRow(wb, sheetCorr, i+2, row); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

func writeRawSheet(wb *excelize.File, frame *dataset.Frame, names []string) error {
	if _, err := wb.NewSheet(sheetRaw); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	cols := make([]*dataset.Column, len(names))
	header := make([]interface{}, len(names))
	for i, name := range names {
		col, err := frame.Column(name)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		cols[i] = col
		header[i] = name
	}
	if err := setRow(wb, sheetRaw, 1, header); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for r := 0; r < frame.Rows(); r++ {
		row := make([]interface{}, len(cols))
		for c, col := range cols {
			if v, ok := col.Float(r); ok {
				row[c] = v
			}
		}
		if err := setRow(wb, sheetRaw, r+2, row); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

func setRow(wb *excelize.File, sheet string, row int, cells []interface{}) error {
	anchor, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, anchor, &cells)
}

// num blanks non-finite values so the workbook stays valid.
func num(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// writeSummaryCSV writes the describe rows with a BOM so Excel detects the
// encoding.
func writeSummaryCSV(path string, rows [][]interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	if _, err := f.WriteString("\uFEFF"); err != nil {
		f.Close()
		return fmt.Errorf("csv export: %w", err)
	}
	w := csv.NewWriter(f)
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, cell := range row {
			rec[i] = csvCell(cell)
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("csv export: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csv export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csv export: %w", err)
	}
	return nil
}

func csvCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
