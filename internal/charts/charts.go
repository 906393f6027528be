// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charts renders the tool's figures: static PNGs through
// gonum.org/v1/plot and interactive HTML through go-echarts. Every renderer
// writes one file under the writer's directory and returns its path.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// ErrNoValues is wrapped when a chart has nothing to draw.
var ErrNoValues = errors.New("no values")

// Writer names and writes chart files. Stem prefixes every file name,
// normally the data file's base name without extension. Format picks the
// image encoding for single-panel figures; composite panels and HTML charts
// ignore it.
type Writer struct {
	Dir    string
	Stem   string
	Format string // png, svg, or pdf

	now func() time.Time
}

func NewWriter(dir, stem string) *Writer {
	return &Writer{Dir: dir, Stem: stem, Format: "png", now: time.Now}
}

func (w *Writer) imageExt() string {
	switch w.Format {
	case "svg", "pdf":
		return w.Format
	}
	return "png"
}

// path reserves a chart file name, creating the directory on demand.
func (w *Writer) path(kind, ext string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s.%s", w.Stem, kind, w.now().Format("20060102_150405"), ext)
	return filepath.Join(w.Dir, name), nil
}

// Group is one category level's numeric values.
type Group struct {
	Name   string
	Values []float64
}

// Open launches the platform opener on a chart file or URL.
func Open(target string) error {
	switch runtime.GOOS {
	case "darwin":
		if path, err := exec.LookPath("open"); err == nil {
			return exec.Command(path, target).Start()
		}
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		if path, err := exec.LookPath("xdg-open"); err == nil {
			return exec.Command(path, target).Start()
		}
		if path, err := exec.LookPath("open"); err == nil {
			return exec.Command(path, target).Start()
		}
	}
	return fmt.Errorf("no opener available")
}

// seriesColor cycles a small qualitative palette for grouped plots.
func seriesColor(i int) color.Color {
	palette := []color.RGBA{
		{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
		{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
		{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
		{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
		{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
		{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	}
	return palette[i%len(palette)]
}

// translucent lightens a series color for area fills.
func translucent(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
