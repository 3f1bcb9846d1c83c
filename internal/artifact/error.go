// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import "errors"

// ErrNotFound is returned if no matching artifact exists.
var ErrNotFound = errors.New("artifact not found")

// NotFoundError is returned if no file matches in the searched tree.
type NotFoundError struct {
	Root    string
	Pattern string
}

// Error implements the [error] interface.
func (e *NotFoundError) Error() string {
	return "no " + e.Pattern + " found in " + e.Root
}

// Is implements the [errors.Is] interface.
func (*NotFoundError) Is(other error) bool {
	_, ok := other.(*NotFoundError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (*NotFoundError) Unwrap() error {
	return ErrNotFound
}
