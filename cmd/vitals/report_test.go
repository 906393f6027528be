// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"
)

func TestReportStylerPlainWriter(t *testing.T) {
	s := newReportStyler(&bytes.Buffer{})
	lines := []string{
		"=== 描述统计: age ===",
		"*** 差异显著 (p < 0.05)",
		"✓ 数据服从正态分布",
		"均值: 40.08",
		"",
	}
	for _, line := range lines {
		if got := s.line(line); got != line {
			t.Fatalf("line(%q)=%q want passthrough", line, got)
		}
	}
}

func TestPrintReportLines(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, "a\nb\n")
	if got := buf.String(); got != "a\nb\n" {
		t.Fatalf("printReport=%q want %q", got, "a\nb\n")
	}
}

func TestPrintReportTrimsTrailingNewlines(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, "x\n\n\n")
	if got := buf.String(); got != "x\n" {
		t.Fatalf("printReport=%q want %q", got, "x\n")
	}
}

func TestPrintReportKeepsInteriorBlanks(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, "a\n\nb")
	if got := buf.String(); got != "a\n\nb\n" {
		t.Fatalf("printReport=%q want %q", got, "a\n\nb\n")
	}
}
