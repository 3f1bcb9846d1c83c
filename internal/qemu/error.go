// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"strconv"
)

var (
	// ErrStart is returned if the QEMU process could not be spawned.
	ErrStart = errors.New("start failed")

	// ErrNonZeroExitCode is returned if QEMU exited with an exit code other
	// than 0.
	ErrNonZeroExitCode = errors.New("exit code not 0")

	// ErrTerminated is returned if QEMU was terminated by a signal.
	ErrTerminated = errors.New("terminated")

	// ErrAccelInvalid is returned if an acceleration backend is invalid.
	ErrAccelInvalid = errors.New("unknown acceleration backend")

	// ErrArgumentCollision is returned if two [Argument]s are considered equal.
	ErrArgumentCollision = errors.New("colliding args")
)

// ArgumentError indicates an issue with an input argument.
type ArgumentError struct {
	msg string
}

// Error implements the [error] interface.
func (e *ArgumentError) Error() string {
	return "argument error: " + e.msg
}

// Is implements the [errors.Is] interface.
func (*ArgumentError) Is(other error) bool {
	_, ok := other.(*ArgumentError)
	return ok
}

// CommandError wraps any error occurred during Command execution.
//
// ExitCode is set if QEMU ran and exited with non-zero exit code.
type CommandError struct {
	Err      error
	ExitCode int
}

// Error implements the [error] interface.
func (e *CommandError) Error() string {
	msg := "qemu: " + e.Err.Error()
	if e.ExitCode > 0 {
		msg += " (" + strconv.Itoa(e.ExitCode) + ")"
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*CommandError) Is(other error) bool {
	_, ok := other.(*CommandError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *CommandError) Unwrap() error {
	return e.Err
}
