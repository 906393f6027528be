// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/shayne/vitals/internal/dataset"
)

const sampleCSV = "身高,体重,性别\n1,2,男\n2,4,女\n3,,男\n4,8,女\n"

func loadFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	frame, err := dataset.LoadReader(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("load frame: %v", err)
	}
	return frame
}

func TestStatisticsWritesWorkbook(t *testing.T) {
	frame := loadFrame(t)
	path := filepath.Join(t.TempDir(), "stats.xlsx")

	res, err := Statistics(frame, []string{"身高", "体重"}, path)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if res.CSVFallback {
		t.Fatalf("unexpected CSV fallback")
	}
	if res.Path != path {
		t.Fatalf("path: got %q, want %q", res.Path, path)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	wantSheets := []string{"描述统计", "相关矩阵", "原始数据"}
	if got := wb.GetSheetList(); !reflect.DeepEqual(got, wantSheets) {
		t.Fatalf("sheets: got %v, want %v", got, wantSheets)
	}

	rows, err := wb.GetRows("描述统计")
	if err != nil {
		t.Fatalf("read describe sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("describe rows: got %d, want 3", len(rows))
	}
	wantHeader := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max", "missing", "missing%"}
	if got := rows[0][1:]; !reflect.DeepEqual(got, wantHeader) {
		t.Fatalf("describe header: got %v, want %v", got, wantHeader)
	}

	height := rows[1]
	checks := map[int]string{0: "身高", 1: "4", 2: "2.5", 4: "1", 5: "1.75", 6: "2.5", 7: "3.25", 8: "4", 9: "0", 10: "0"}
	for i, want := range checks {
		if height[i] != want {
			t.Fatalf("身高 cell %d: got %q, want %q", i, height[i], want)
		}
	}
	weight := rows[2]
	if weight[0] != "体重" || weight[1] != "3" || weight[9] != "1" || weight[10] != "25" {
		t.Fatalf("体重 row: got %v", weight)
	}
}

func TestStatisticsCorrelationSheet(t *testing.T) {
	frame := loadFrame(t)
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	if _, err := Statistics(frame, []string{"身高", "体重"}, path); err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("相关矩阵")
	if err != nil {
		t.Fatalf("read corr sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("corr rows: got %d, want 3", len(rows))
	}
	if rows[0][1] != "身高" || rows[0][2] != "体重" {
		t.Fatalf("corr header: got %v", rows[0])
	}
	// 体重 is exactly 2x身高 on the complete pairs.
	r, err := strconv.ParseFloat(rows[1][2], 64)
	if err != nil {
		t.Fatalf("parse r %q: %v", rows[1][2], err)
	}
	if r < 0.999999999 || r > 1.000000001 {
		t.Fatalf("r(身高,体重): got %v, want 1", r)
	}
}

func TestStatisticsRawSheet(t *testing.T) {
	frame := loadFrame(t)
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	if _, err := Statistics(frame, []string{"身高", "体重"}, path); err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("原始数据")
	if err != nil {
		t.Fatalf("read raw sheet: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("raw rows: got %d, want 5", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"身高", "体重"}) {
		t.Fatalf("raw header: got %v", rows[0])
	}
	if !reflect.DeepEqual(rows[1], []string{"1", "2"}) {
		t.Fatalf("raw row 1: got %v", rows[1])
	}
	// The missing 体重 cell stays blank.
	if rows[3][0] != "3" {
		t.Fatalf("raw row 3: got %v", rows[3])
	}
	if len(rows[3]) > 1 && rows[3][1] != "" {
		t.Fatalf("raw row 3 missing cell: got %q, want empty", rows[3][1])
	}
}

func TestStatisticsCSVFallback(t *testing.T) {
	frame := loadFrame(t)
	// A base name over the workbook writer's limit forces the fallback while
	// the CSV still fits the filesystem's limit.
	long := strings.Repeat("x", 210) + ".xlsx"
	path := filepath.Join(t.TempDir(), long)

	res, err := Statistics(frame, []string{"身高"}, path)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if !res.CSVFallback {
		t.Fatalf("expected CSV fallback")
	}
	if !strings.HasSuffix(res.Path, ".csv") {
		t.Fatalf("fallback path: got %q, want .csv suffix", res.Path)
	}

	b, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatalf("read fallback csv: %v", err)
	}
	body := string(b)
	if !strings.HasPrefix(body, "\uFEFF") {
		t.Fatalf("fallback csv missing BOM")
	}
	lines := strings.Split(strings.TrimPrefix(body, "\uFEFF"), "\n")
	if lines[0] != ",count,mean,std,min,25%,50%,75%,max,missing,missing%" {
		t.Fatalf("fallback header: got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "身高,4,2.5,") {
		t.Fatalf("fallback row: got %q", lines[1])
	}
}

func TestStatisticsSingleColumnCorr(t *testing.T) {
	frame := loadFrame(t)
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	if _, err := Statistics(frame, []string{"身高"}, path); err != nil {
		t.Fatalf("Statistics: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("相关矩阵")
	if err != nil {
		t.Fatalf("read corr sheet: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "身高" || rows[1][1] != "1" {
		t.Fatalf("single-column corr: got %v", rows)
	}
}

func TestStatisticsRejectsCategorical(t *testing.T) {
	frame := loadFrame(t)
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	_, err := Statistics(frame, []string{"性别"}, path)
	if err == nil || !strings.Contains(err.Error(), "not numeric") {
		t.Fatalf("Statistics(性别): got %v, want not-numeric error", err)
	}
}

func TestStatisticsNoColumns(t *testing.T) {
	frame := loadFrame(t)
	if _, err := Statistics(frame, nil, "out.xlsx"); err == nil {
		t.Fatalf("Statistics(no columns): expected error")
	}
}
