// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Progress narrates a multi-stage command. On an interactive terminal each
// stage runs a spinner that resolves to a check or a cross; otherwise every
// stage transition is one key=value line, so piped runs stay grep-able.
type Progress struct {
	out     io.Writer
	enabled bool
	action  string
	file    string
	color   Colorizer

	mu      sync.Mutex
	current string
	spinner *Spinner
}

func NewProgress(out io.Writer, enabled bool, action, file string) *Progress {
	return &Progress{
		out:     out,
		enabled: enabled,
		action:  strings.TrimSpace(action),
		file:    strings.TrimSpace(file),
		color:   NewColorizer(enabled),
	}
}

func (p *Progress) Start() {
	if !p.enabled {
		return
	}
	label := p.action
	if label == "" {
		label = "vitals"
	} else {
		label = fmt.Sprintf("vitals %s", label)
	}
	if p.file != "" {
		label = fmt.Sprintf("%s (file=%s)", label, p.file)
	}
	fmt.Fprintf(p.out, "[+] %s\n", label)
}

func (p *Progress) Stop() {
	p.stopSpinner(false)
}

// Step opens a new stage, replacing any spinner left from the previous one.
// Re-announcing the current stage is a no-op.
func (p *Progress) Step(name string) {
	p.mu.Lock()
	if p.current == name {
		p.mu.Unlock()
		return
	}
	p.current = name
	p.mu.Unlock()

	if !p.enabled {
		p.plainLine("running", name, "")
		return
	}
	p.stopSpinner(true)
	sp := p.newSpinner(name)
	p.mu.Lock()
	p.spinner = sp
	p.mu.Unlock()
}

func (p *Progress) Done(detail string) {
	p.finish("ok", detail)
}

func (p *Progress) Fail(detail string) {
	p.finish("err", detail)
}

func (p *Progress) finish(status, detail string) {
	p.mu.Lock()
	name := p.current
	p.current = ""
	p.mu.Unlock()

	if name == "" {
		return
	}
	if !p.enabled {
		p.plainLine(status, name, detail)
		return
	}
	p.stopSpinner(true)
	label := p.color.Wrap(ColorGreen, "✔")
	if status == "err" {
		label = p.color.Wrap(ColorRed, "✖")
	}
	line := fmt.Sprintf("%s %s", label, name)
	if detail != "" {
		line = fmt.Sprintf("%s (%s)", line, detail)
	}
	fmt.Fprintln(p.out, line)
}

func (p *Progress) newSpinner(text string) *Spinner {
	sp := NewSpinner(p.out,
		WithFrames(DefaultFrames),
		WithInterval(120*time.Millisecond),
		WithColor(p.color, ColorYellow),
		WithHideCursor(true),
	)
	sp.Start(text)
	return sp
}

func (p *Progress) stopSpinner(clear bool) {
	p.mu.Lock()
	sp := p.spinner
	p.spinner = nil
	p.mu.Unlock()

	if sp == nil {
		return
	}
	sp.Stop(clear)
}

func (p *Progress) plainLine(status, step, detail string) {
	fmt.Fprintln(p.out, formatProgressKV(
		"action", p.action,
		"file", p.file,
		"status", status,
		"step", step,
		"detail", detail,
	))
}

func formatProgressKV(parts ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(parts); i += 2 {
		key := strings.TrimSpace(parts[i])
		val := strings.TrimSpace(parts[i+1])
		if key == "" || val == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(quoteProgressKV(val))
	}
	return b.String()
}

func quoteProgressKV(val string) string {
	if progressNeedsQuote(val) {
		return strconv.Quote(val)
	}
	return val
}

func progressNeedsQuote(val string) bool {
	for _, r := range val {
		switch r {
		case ' ', '\t', '\n', '"', '=':
			return true
		}
	}
	return false
}
