// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vitals-launch is the console launcher for the analysis tool. It
// verifies that vitals is installed, starts it with the console attached,
// and keeps the window open for a keypress so double-click users can read
// the output before it disappears.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"golang.org/x/term"
)

const (
	targetName = "vitals"

	bannerRule   = "========================================"
	bannerTitle  = "          健康数据分析工具"
	checkingLine = "正在检查运行环境..."
	missingLine  = "错误: 未检测到数据分析程序 (vitals)，请先安装 vitals 1.0 或更高版本"
	startingLine = "正在启动数据分析工具..."
	closedLine   = "程序已关闭"
	pausePrompt  = "按任意键退出..."
)

type launcher struct {
	in  *os.File
	out io.Writer
	err io.Writer
}

func main() {
	l := &launcher{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	os.Exit(l.run())
}

func (l *launcher) run() int {
	fmt.Fprintln(l.out, bannerRule)
	fmt.Fprintln(l.out, bannerTitle)
	fmt.Fprintln(l.out, bannerRule)
	fmt.Fprintln(l.out, checkingLine)

	target, err := resolveTarget()
	if err == nil {
		err = checkTarget(target)
	}
	if err != nil {
		fmt.Fprintln(l.out, missingLine)
		l.pause()
		return 1
	}

	fmt.Fprintln(l.out, startingLine)
	l.launch(target)
	fmt.Fprintln(l.out, closedLine)
	l.pause()
	return 0
}

// resolveTarget finds the analysis binary on PATH, falling back to the
// launcher's own directory so an unpacked install works without PATH setup.
func resolveTarget() (string, error) {
	if path, err := exec.LookPath(targetName); err == nil {
		return path, nil
	}
	self, err := os.Executable()
	if err != nil {
		return "", err
	}
	sibling := filepath.Join(filepath.Dir(self), targetName+exeSuffix())
	if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
		return sibling, nil
	}
	return "", fmt.Errorf("%s not found", targetName)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// checkTarget runs a version query, discarding its output. Any failure
// counts as "not installed".
func checkTarget(target string) error {
	cmd := exec.Command(target, "version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// launch runs the tool with the console attached until it exits. Only a
// spawn failure is reported; the tool's exit code is not propagated, the
// launcher always proceeds to its closing message.
func (l *launcher) launch(target string) {
	cmd := exec.Command(target)
	cmd.Stdin = l.in
	cmd.Stdout = l.out
	cmd.Stderr = l.err
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			fmt.Fprintf(l.err, "vitals-launch: %v\n", err)
		}
	}
}

// pause blocks until the user presses a key. A terminal is switched to raw
// mode for a single byte; anything else reads up to one line so pipes and
// tests do not hang.
func (l *launcher) pause() {
	fmt.Fprintln(l.out, pausePrompt)
	fd := int(l.in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err == nil {
			buf := make([]byte, 1)
			_, _ = l.in.Read(buf)
			_ = term.Restore(fd, state)
			return
		}
	}
	reader := bufio.NewReader(l.in)
	_, _ = reader.ReadString('\n')
}
