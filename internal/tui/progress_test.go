// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressNeedsQuote(t *testing.T) {
	cases := map[string]bool{
		"plain":       false,
		"with space":  true,
		"tab\tvalue":  true,
		"line\nbreak": true,
		"quote\"here": true,
		"a=b":         true,
	}
	for input, expected := range cases {
		if got := progressNeedsQuote(input); got != expected {
			t.Fatalf("progressNeedsQuote(%q)=%v want %v", input, got, expected)
		}
	}
}

func TestQuoteProgressKV(t *testing.T) {
	if got := quoteProgressKV("plain"); got != "plain" {
		t.Fatalf("unexpected quote: %q", got)
	}
	if got := quoteProgressKV("has space"); got == "has space" {
		t.Fatalf("expected quoted value, got %q", got)
	}
}

func TestFormatProgressKV(t *testing.T) {
	got := formatProgressKV("action", "bootstrap", "detail", "hello world", "", "skip")
	want := "action=bootstrap detail=\"hello world\""
	if got != want {
		t.Fatalf("formatProgressKV=%q want %q", got, want)
	}
}

func TestProgressPlainSteps(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, false, "analyze", "data.csv")
	p.Start()
	p.Step("load data")
	p.Done("120 rows")
	p.Step("render chart")
	p.Fail("no numeric columns")
	p.Stop()

	want := []string{
		`action=analyze file=data.csv status=running step="load data"`,
		`action=analyze file=data.csv status=ok step="load data" detail="120 rows"`,
		`action=analyze file=data.csv status=running step="render chart"`,
		`action=analyze file=data.csv status=err step="render chart" detail="no numeric columns"`,
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("unexpected line count %d: %q", len(lines), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestProgressHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, true, "export", "data.xlsx")
	p.Start()
	if got := buf.String(); got != "[+] vitals export (file=data.xlsx)\n" {
		t.Fatalf("unexpected header: %q", got)
	}
}

func TestProgressStepDeduplicates(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, false, "plot", "")
	p.Step("render")
	p.Step("render")
	p.Done("")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
}
