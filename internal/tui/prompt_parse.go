// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"errors"
	"strconv"
	"strings"
)

// parseYesNo reads a plain-path confirm answer. Empty input counts as no.
// The prompts ask in Chinese, so 是/否 are accepted alongside y/n.
func parseYesNo(input string) (bool, bool) {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	switch trimmed {
	case "", "n", "no", "否":
		return false, true
	case "y", "yes", "是":
		return true, true
	default:
		return false, false
	}
}

// parseSelectionIndices turns a comma-separated list of 1-based option
// numbers into zero-based indices, dropping duplicates. Full-width digits
// and separators typed under a CJK input method are normalized first.
func parseSelectionIndices(input string, max int) ([]int, error) {
	if max <= 0 {
		return nil, errors.New("no options available")
	}
	trimmed := strings.TrimSpace(normalizeFullWidth(input))
	if trimmed == "" {
		return nil, nil
	}
	seen := map[int]bool{}
	var indices []int
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.New("invalid selection")
		}
		if value < 1 || value > max {
			return nil, errors.New("selection out of range")
		}
		idx := value - 1
		if seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	return indices, nil
}

// normalizeFullWidth maps full-width digits and list separators to their
// ASCII forms.
func normalizeFullWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '０' && r <= '９':
			r = '0' + (r - '０')
		case r == '，' || r == '、':
			r = ','
		}
		b.WriteRune(r)
	}
	return b.String()
}
