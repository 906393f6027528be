// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
)

func writeStub(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// devNull gives pause an input that hits EOF immediately.
func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRunMissingTarget(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	var out bytes.Buffer
	l := &launcher{in: devNull(t), out: &out, err: io.Discard}
	if code := l.run(); code != 1 {
		t.Fatalf("exit code %d want 1", code)
	}
	if !strings.Contains(out.String(), missingLine) {
		t.Fatalf("missing error line in %q", out.String())
	}
	if strings.Contains(out.String(), startingLine) {
		t.Fatalf("launcher tried to start the target: %q", out.String())
	}
}

func TestRunFailingVersionCheck(t *testing.T) {
	tmp := t.TempDir()
	log := filepath.Join(tmp, "launch.log")
	writeStub(t, tmp, "vitals", "#!/bin/sh\nif [ \"$1\" = version ]; then exit 1; fi\necho run >> \""+log+"\"\nexit 0\n")
	t.Setenv("PATH", tmp+string(os.PathListSeparator)+os.Getenv("PATH"))

	var out bytes.Buffer
	l := &launcher{in: devNull(t), out: &out, err: io.Discard}
	if code := l.run(); code != 1 {
		t.Fatalf("exit code %d want 1", code)
	}
	if !strings.Contains(out.String(), missingLine) {
		t.Fatalf("missing error line in %q", out.String())
	}
	if _, err := os.Stat(log); !os.IsNotExist(err) {
		t.Fatalf("target was started despite failing version check")
	}
}

func TestRunStartsTargetOnce(t *testing.T) {
	tmp := t.TempDir()
	log := filepath.Join(tmp, "launch.log")
	writeStub(t, tmp, "vitals", "#!/bin/sh\nif [ \"$1\" = version ]; then exit 0; fi\necho run >> \""+log+"\"\nexit 0\n")
	t.Setenv("PATH", tmp+string(os.PathListSeparator)+os.Getenv("PATH"))

	var out bytes.Buffer
	l := &launcher{in: devNull(t), out: &out, err: io.Discard}
	if code := l.run(); code != 0 {
		t.Fatalf("exit code %d want 0", code)
	}

	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "run"); got != 1 {
		t.Fatalf("target ran %d times, want once", got)
	}

	text := out.String()
	banner := strings.Index(text, bannerTitle)
	starting := strings.Index(text, startingLine)
	closed := strings.Index(text, closedLine)
	if banner < 0 || starting < 0 || closed < 0 {
		t.Fatalf("missing lines in %q", text)
	}
	if !(banner < starting && starting < closed) {
		t.Fatalf("lines out of order in %q", text)
	}
}

func TestRunIgnoresTargetExitCode(t *testing.T) {
	tmp := t.TempDir()
	writeStub(t, tmp, "vitals", "#!/bin/sh\nif [ \"$1\" = version ]; then exit 0; fi\nexit 3\n")
	t.Setenv("PATH", tmp+string(os.PathListSeparator)+os.Getenv("PATH"))

	var out, errs bytes.Buffer
	l := &launcher{in: devNull(t), out: &out, err: &errs}
	if code := l.run(); code != 0 {
		t.Fatalf("exit code %d want 0", code)
	}
	if !strings.Contains(out.String(), closedLine) {
		t.Fatalf("missing closed line in %q", out.String())
	}
	if strings.Contains(errs.String(), "vitals-launch:") {
		t.Fatalf("exit status reported as spawn error: %q", errs.String())
	}
}

func TestPauseTerminalKeypress(t *testing.T) {
	master, slave, err := pty.Open()
	if err != nil {
		t.Fatalf("open pty: %v", err)
	}
	defer master.Close()
	defer slave.Close()

	var out bytes.Buffer
	l := &launcher{in: slave, out: &out, err: io.Discard}
	done := make(chan struct{})
	go func() {
		l.pause()
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if _, err := master.Write([]byte{'x'}); err != nil {
		t.Fatalf("write keypress: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("pause did not return after keypress")
	}
	if !strings.Contains(out.String(), pausePrompt) {
		t.Fatalf("missing pause prompt in %q", out.String())
	}
}

func TestPausePipeFallback(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	if _, err := w.WriteString("\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = w.Close()

	var out bytes.Buffer
	l := &launcher{in: r, out: &out, err: io.Discard}
	done := make(chan struct{})
	go func() {
		l.pause()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("pause did not return on piped input")
	}
}

func TestResolveTargetSibling(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("executable: %v", err)
	}
	sibling := filepath.Join(filepath.Dir(exe), "vitals")
	writeStub(t, filepath.Dir(exe), "vitals", "#!/bin/sh\nexit 0\n")
	t.Cleanup(func() { _ = os.Remove(sibling) })
	t.Setenv("PATH", t.TempDir())

	got, err := resolveTarget()
	if err != nil {
		t.Fatalf("resolveTarget: %v", err)
	}
	if got != sibling {
		t.Fatalf("resolveTarget=%q want %q", got, sibling)
	}
}
