// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabulate renders a fixed-width table: a left-aligned label column under an
// empty corner, then right-aligned value columns under their headers, two
// spaces apart. Widths are printed widths, so CJK labels line up.
func tabulate(headers []string, labels []string, cells [][]string) string {
	labelWidth := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > labelWidth {
			labelWidth = w
		}
	}
	widths := make([]int, len(headers))
	for j, h := range headers {
		widths[j] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for j, cell := range row {
			if w := lipgloss.Width(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for j, h := range headers {
		b.WriteString("  ")
		b.WriteString(padLeft(h, widths[j]))
	}
	for i, row := range cells {
		b.WriteString("\n")
		b.WriteString(padRight(labels[i], labelWidth))
		for j, cell := range row {
			b.WriteString("  ")
			b.WriteString(padLeft(cell, widths[j]))
		}
	}
	return b.String()
}

func padLeft(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

func padRight(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
