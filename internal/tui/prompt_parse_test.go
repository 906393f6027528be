// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import "testing"

func TestParseYesNo(t *testing.T) {
	cases := []struct {
		input string
		want  bool
		ok    bool
	}{
		{input: "y", want: true, ok: true},
		{input: "YES", want: true, ok: true},
		{input: "是", want: true, ok: true},
		{input: "n", want: false, ok: true},
		{input: "no", want: false, ok: true},
		{input: "否", want: false, ok: true},
		{input: "", want: false, ok: true},
		{input: "  y  ", want: true, ok: true},
		{input: "maybe", want: false, ok: false},
		{input: "不", want: false, ok: false},
	}
	for _, tc := range cases {
		got, ok := parseYesNo(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseYesNo(%q) = (%v, %v), want (%v, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseSelectionIndices(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		max     int
		want    []int
		wantErr bool
	}{
		{name: "pair", input: "1,3", max: 4, want: []int{0, 2}},
		{name: "single", input: "2", max: 2, want: []int{1}},
		{name: "empty", input: "", max: 3, want: nil},
		{name: "duplicates", input: "2,2,1", max: 3, want: []int{1, 0}},
		{name: "fullwidth digits", input: "１,３", max: 4, want: []int{0, 2}},
		{name: "fullwidth comma", input: "1，2", max: 3, want: []int{0, 1}},
		{name: "enumeration comma", input: "1、3", max: 4, want: []int{0, 2}},
		{name: "out of range", input: "5", max: 3, wantErr: true},
		{name: "zero", input: "0", max: 3, wantErr: true},
		{name: "not a number", input: "a", max: 3, wantErr: true},
		{name: "no options", input: "1", max: 0, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSelectionIndices(tc.input, tc.max)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseSelectionIndices(%q, %d) = %v, want error", tc.input, tc.max, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSelectionIndices(%q, %d): %v", tc.input, tc.max, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("parseSelectionIndices(%q, %d) = %v, want %v", tc.input, tc.max, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("parseSelectionIndices(%q, %d) = %v, want %v", tc.input, tc.max, got, tc.want)
				}
			}
		})
	}
}
