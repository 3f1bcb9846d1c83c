// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCommand is returned if a [Step] has no command.
	ErrNoCommand = errors.New("no command")

	// ErrFailed is returned if a [Step] exited with non-zero exit code.
	ErrFailed = errors.New("exited non-zero")
)

// StepError wraps any error occurred while running a [Step].
type StepError struct {
	Step     string
	ExitCode int
	Err      error
}

// Error implements the [error] interface.
func (e *StepError) Error() string {
	msg := fmt.Sprintf("build step %s: %v", e.Step, e.Err)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (%d)", e.ExitCode)
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*StepError) Is(other error) bool {
	_, ok := other.(*StepError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *StepError) Unwrap() error {
	return e.Err
}
