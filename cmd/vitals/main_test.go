// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestSessionRequestNoArgs(t *testing.T) {
	file, ok := sessionRequest(nil)
	if !ok || file != "" {
		t.Fatalf("sessionRequest(nil)=(%q,%v) want (\"\",true)", file, ok)
	}
}

func TestSessionRequestSingleArg(t *testing.T) {
	cases := map[string]bool{
		"data.csv":   true,
		"DATA.CSV":   true,
		"体检数据.csv":   true,
		"./体检数据.csv": true,
		"data.txt":   false,
		"info":       false,
		"version":    false,
		"--help":     false,
		"-h":         false,
	}
	for arg, want := range cases {
		file, ok := sessionRequest([]string{arg})
		if ok != want {
			t.Fatalf("sessionRequest(%q) ok=%v want %v", arg, ok, want)
		}
		if ok && file != arg {
			t.Fatalf("sessionRequest(%q) file=%q want %q", arg, file, arg)
		}
	}
}

func TestSessionRequestMultipleArgs(t *testing.T) {
	if _, ok := sessionRequest([]string{"info", "data.csv"}); ok {
		t.Fatalf("expected subcommand args to bypass the session")
	}
}

func TestNormalizeArgsVersionFlag(t *testing.T) {
	got := normalizeArgs([]string{"--version"})
	want := []string{"version"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeArgsPassthrough(t *testing.T) {
	args := []string{"info", "data.csv"}
	got := normalizeArgs(args)
	if !reflect.DeepEqual(got, args) {
		t.Fatalf("expected %v, got %v", args, got)
	}
}

func TestNormalizeArgsHelpCommand(t *testing.T) {
	got := normalizeArgs([]string{"help", "plot"})
	want := []string{"plot", "--help"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRewriteHelpArgs(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, []string{"--help"}},
		{[]string{"--help"}, []string{"--help"}},
		{[]string{"--help-llm"}, []string{"--help-llm"}},
		{[]string{"describe"}, []string{"describe", "--help"}},
		{[]string{"describe", "--help-llm"}, []string{"describe", "--help-llm"}},
		{[]string{"bogus"}, []string{"--help"}},
	}
	for _, c := range cases {
		if got := rewriteHelpArgs(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("rewriteHelpArgs(%v)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestIsKnownCommand(t *testing.T) {
	cases := map[string]bool{
		"info":    true,
		"plot":    true,
		"export":  true,
		"version": true,
		"run":     false,
		"":        false,
	}
	for input, expected := range cases {
		if got := isKnownCommand(input); got != expected {
			t.Fatalf("isKnownCommand(%q)=%v want %v", input, got, expected)
		}
	}
}

func TestVersionString(t *testing.T) {
	oldVersion, oldCommit := version, commit
	defer func() { version, commit = oldVersion, oldCommit }()

	version, commit = "dev", ""
	if got := versionString(); got != "dev" {
		t.Fatalf("versionString()=%q want dev", got)
	}
	version, commit = "1.2.0", "abc1234"
	if got := versionString(); got != "1.2.0 (abc1234)" {
		t.Fatalf("versionString()=%q want 1.2.0 (abc1234)", got)
	}
	version, commit = "  ", ""
	if got := versionString(); got != "dev" {
		t.Fatalf("versionString()=%q want dev for blank version", got)
	}
}

func TestParseCount(t *testing.T) {
	if n, err := parseCount("", "--k"); err != nil || n != 0 {
		t.Fatalf("parseCount(\"\")=(%d,%v) want (0,nil)", n, err)
	}
	if n, err := parseCount(" 7 ", "--k"); err != nil || n != 7 {
		t.Fatalf("parseCount(\" 7 \")=(%d,%v) want (7,nil)", n, err)
	}
	for _, bad := range []string{"0", "-3", "abc", "2.5"} {
		_, err := parseCount(bad, "--k")
		var usage usageError
		if !errors.As(err, &usage) {
			t.Fatalf("parseCount(%q) err=%v want usage error", bad, err)
		}
	}
}

func TestSplitColumns(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"age"}, []string{"age"}},
		{[]string{"age,score"}, []string{"age", "score"}},
		{[]string{"age", "score,bmi"}, []string{"age", "score", "bmi"}},
		{[]string{" age , ,score "}, []string{"age", "score"}},
		{[]string{""}, nil},
	}
	for _, c := range cases {
		if got := splitColumns(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("splitColumns(%v)=%v want %v", c.in, got, c.want)
		}
	}
}
