// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && !clipboard_x11

package clipboard

// WriteText places text on the system clipboard. It returns
// ErrUnavailable when no clipboard can be reached.
func WriteText(text string) error {
	return writeFirstTool(linuxTools(), text)
}
