// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charts

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/sfnt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
)

const cjkTypeface font.Typeface = "VitalsCJK"

// cjkFontPaths lists common system fonts that cover the Chinese chart
// chrome, most specific first.
var cjkFontPaths = []string{
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-sans-cjk-vf-fonts/NotoSansCJK-VF.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	// macOS
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	// Windows
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\simhei.ttf`,
}

var fontOnce sync.Once

// useCJKFont swaps the default plot typeface for a system font able to
// render CJK text. Without one, titles degrade to missing-glyph boxes but
// charts still render. Must run before the first plot.New call.
func useCJKFont() {
	fontOnce.Do(func() {
		for _, path := range cjkFontPaths {
			f, ok := loadFont(path)
			if !ok {
				continue
			}
			font.DefaultCache.Add([]font.Face{{
				Font: font.Font{Typeface: cjkTypeface},
				Face: f,
			}})
			plot.DefaultFont = font.Font{Typeface: cjkTypeface}
			plotter.DefaultFont = plot.DefaultFont
			return
		}
	})
}

func loadFont(path string) (*sfnt.Font, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := sfnt.ParseCollection(data)
		if err != nil || coll.NumFonts() == 0 {
			return nil, false
		}
		f, err := coll.Font(0)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, false
	}
	return f, true
}
