// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/mitchellh/go-homedir"
)

// AbsolutePath returns the absolute path as resolved by [filepath.Abs].
//
// A leading "~" is expanded to the home directory of the current user. It
// returns [ErrEmptyPath] if the given path is empty.
func AbsolutePath(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand home: %w", err)
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return path, nil
}

// MustAbsolutePath calls [AbsolutePath] and panics in case of errors.
func MustAbsolutePath(path string) string {
	abs, err := AbsolutePath(path)
	if err != nil {
		panic(err)
	}

	return abs
}

// ProjectPath resolves the given path relative to the project root.
//
// Absolute paths are returned cleaned but otherwise unchanged. Relative paths
// are joined with the root in a way that they can not escape it, not even by
// "../" components or symlinks pointing outside.
func ProjectPath(root, path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	root, err := AbsolutePath(root)
	if err != nil {
		return "", fmt.Errorf("project root: %w", err)
	}

	joined, err := securejoin.SecureJoin(root, path)
	if err != nil {
		return "", fmt.Errorf("join %s: %w", path, err)
	}

	return joined, nil
}
