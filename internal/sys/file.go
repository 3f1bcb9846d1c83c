// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// ValidateRegularFile checks that the given path exists and is a regular file.
func ValidateRegularFile(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.Mode().IsRegular() {
		return ErrNotRegularFile
	}

	return nil
}

// ValidateReadableFile checks that the given path is a regular file the
// current user is allowed to read.
func ValidateReadableFile(path string) error {
	err := ValidateRegularFile(path)
	if err != nil {
		return err
	}

	if !Accessible(path, unix.R_OK) {
		return ErrNotReadable
	}

	return nil
}

// LookExecutable resolves the given name or path to an executable file.
//
// Names without a path separator are looked up in the directories of the PATH
// environment variable.
func LookExecutable(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyPath
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotExecutable, err)
	}

	return path, nil
}

// Accessible checks if the current user has the requested access to the given
// path. The mode is a combination of [unix.R_OK], [unix.W_OK] and
// [unix.X_OK].
func Accessible(path string, mode uint32) bool {
	return unix.Access(path, mode) == nil
}
