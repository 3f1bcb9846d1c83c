// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import (
	"errors"
)

var (
	ErrNotRegular   = errors.New("not a regular file")
	ErrSizeMismatch = errors.New("size mismatch")
	ErrSizeTooLarge = errors.New("size too large")
)

// Error is returned if the persistent image can not be provisioned.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return "image " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Is returns true if the target error is an [Error].
func (e *Error) Is(target error) bool {
	_, ok := target.(*Error)
	return ok
}

func (e *Error) Unwrap() error {
	return e.Err
}
