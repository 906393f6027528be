// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var DefaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates one line of text until stopped. The text is fixed for
// the life of a run; callers wanting a new message stop and start again.
type Spinner struct {
	out        io.Writer
	frames     []string
	interval   time.Duration
	hideCursor bool
	color      Colorizer
	frameColor string

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

type SpinnerOption func(*Spinner)

func WithFrames(frames []string) SpinnerOption {
	return func(s *Spinner) {
		if len(frames) > 0 {
			s.frames = frames
		}
	}
}

func WithInterval(interval time.Duration) SpinnerOption {
	return func(s *Spinner) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithColor(color Colorizer, code string) SpinnerOption {
	return func(s *Spinner) {
		s.color = color
		s.frameColor = code
	}
}

func WithHideCursor(hide bool) SpinnerOption {
	return func(s *Spinner) {
		s.hideCursor = hide
	}
}

func NewSpinner(out io.Writer, opts ...SpinnerOption) *Spinner {
	s := &Spinner{
		out:      out,
		frames:   DefaultFrames,
		interval: 120 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins animating text. Starting a running spinner is a no-op.
func (s *Spinner) Start(text string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	if s.hideCursor {
		fmt.Fprint(s.out, "\x1b[?25l")
	}
	go s.run(text, stop, done)
}

func (s *Spinner) Stop(clear bool) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
	if clear {
		s.clearLine()
	}
	if s.hideCursor {
		fmt.Fprint(s.out, "\x1b[?25h")
	}
}

func (s *Spinner) run(text string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	frame := 0
	s.renderFrame(frame, text)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			frame++
			s.renderFrame(frame, text)
		}
	}
}

func (s *Spinner) renderFrame(index int, text string) {
	frame := s.frames[index%len(s.frames)]
	fmt.Fprintf(s.out, "\r\033[K%s %s", s.color.Wrap(s.frameColor, frame), text)
}

func (s *Spinner) clearLine() {
	fmt.Fprint(s.out, "\r\033[K")
}
