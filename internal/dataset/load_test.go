// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

const chineseCSV = "姓名,年龄\n名字,岁数\n张三,30\n李四,41\n"

func TestLoadGBK(t *testing.T) {
	raw, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(chineseCSV))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	f, err := LoadReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if _, err := f.Column("姓名"); err != nil {
		t.Fatalf("gbk header not decoded: %v", err)
	}
	c, err := f.Column("姓名")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if c.Cell(0) != "张三" {
		t.Fatalf("first cell: got %q, want 张三", c.Cell(0))
	}
}

func TestLoadUTF8Passthrough(t *testing.T) {
	f, err := LoadReader(strings.NewReader(chineseCSV))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if _, err := f.Column("年龄"); err != nil {
		t.Fatalf("utf-8 header mangled: %v", err)
	}
}

func TestLoadUTF8BOM(t *testing.T) {
	f, err := LoadReader(strings.NewReader("\xEF\xBB\xBFa,b\nx,y\n1,2\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if _, err := f.Column("a"); err != nil {
		t.Fatalf("BOM not stripped from first header: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"empty file":       "",
		"header only":      "a,b\n",
		"header plus note": "a,b\nx,y\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadReader(strings.NewReader(content)); err == nil {
				t.Fatal("expected load error")
			}
		})
	}
}

func TestLoadNoDataSentinel(t *testing.T) {
	_, err := LoadReader(strings.NewReader("a,b\nx,y\n"))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("got %v, want ErrNoData", err)
	}
}

func TestLoadShortRowsPadded(t *testing.T) {
	f, err := LoadReader(strings.NewReader("a,b,c\nx,y,z\n1,2\n4,5,6\n"))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	c, err := f.Column("c")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !c.Missing(0) {
		t.Fatal("short row cell should be missing")
	}
	if v, ok := c.Float(1); !ok || v != 6 {
		t.Fatalf("full row cell: got %v (ok=%v), want 6", v, ok)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vitals sample.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Name != "vitals sample" {
		t.Fatalf("frame name: got %q, want %q", f.Name, "vitals sample")
	}
	if f.Path != path {
		t.Fatalf("frame path: got %q, want %q", f.Path, path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
