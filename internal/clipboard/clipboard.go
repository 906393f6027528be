// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clipboard places analysis output on the system clipboard.
package clipboard

import (
	"errors"
	"os/exec"
	"strings"
)

var ErrUnavailable = errors.New("clipboard unavailable")

type tool struct {
	name string
	args []string
}

func writeTool(t tool, text string) error {
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func writeFirstTool(tools []tool, text string) error {
	for _, t := range tools {
		if _, err := exec.LookPath(t.name); err != nil {
			continue
		}
		if err := writeTool(t, text); err == nil {
			return nil
		}
	}
	return ErrUnavailable
}
