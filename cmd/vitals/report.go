// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shayne/vitals/internal/clipboard"
	"github.com/shayne/vitals/internal/tui"
)

// reportStyler colors the analysis reports: section titles, significant
// conclusions, and saved-file lines. A disabled styler passes text through.
type reportStyler struct {
	enabled    bool
	titleStyle lipgloss.Style
	sigStyle   lipgloss.Style
	okStyle    lipgloss.Style
}

func newReportStyler(out io.Writer) reportStyler {
	if !tui.EnabledForOutput(out) {
		return reportStyler{}
	}
	return reportStyler{
		enabled:    true,
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		sigStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#9A6B00", Dark: "#F2C14E"}),
		okStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("77")),
	}
}

func (s reportStyler) line(text string) string {
	if !s.enabled {
		return text
	}
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "==="):
		return s.titleStyle.Render(text)
	case strings.HasPrefix(trimmed, "***"):
		return s.sigStyle.Render(text)
	case strings.HasPrefix(trimmed, "✓"):
		return s.okStyle.Render(text)
	}
	return text
}

// printReport writes one report, styled when out is a capable terminal.
func printReport(out io.Writer, text string) {
	styler := newReportStyler(out)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(out, styler.line(line))
	}
}

// emitReport prints a report to stdout and optionally puts the plain text
// on the system clipboard.
func emitReport(text string, copyText bool) error {
	printReport(os.Stdout, text)
	if !copyText {
		return nil
	}
	if err := clipboard.WriteText(text); err != nil {
		return fmt.Errorf("copy report: %w", err)
	}
	return nil
}
