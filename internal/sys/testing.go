// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// MustAbsPath returns the absolute path of the given path or fails the test.
func MustAbsPath(tb testing.TB, path string) string {
	tb.Helper()

	abs, err := AbsolutePath(path)
	if err != nil {
		tb.Fatalf("failed to get absolute path %s: %v", path, err)
	}

	return abs
}

// WriteTestFile creates the file at path with the given content. Missing
// parent directories are created. If modTime is not zero, access and
// modification times are set to it.
func WriteTestFile(tb testing.TB, path string, data []byte, modTime time.Time) {
	tb.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		tb.Fatalf("failed to create parent dir for %s: %v", path, err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		tb.Fatalf("failed to write %s: %v", path, err)
	}

	if modTime.IsZero() {
		return
	}

	err = os.Chtimes(path, modTime, modTime)
	if err != nil {
		tb.Fatalf("failed to set times of %s: %v", path, err)
	}
}
