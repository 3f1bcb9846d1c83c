// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package exitcode maps errors of a run to the exit code of the process.
package exitcode

import (
	"errors"

	"github.com/aibor/uefirun/internal/artifact"
	"github.com/aibor/uefirun/internal/build"
	"github.com/aibor/uefirun/internal/image"
	"github.com/aibor/uefirun/internal/qemu"
	"github.com/aibor/uefirun/internal/uefirun"
)

const (
	Success  = 0
	NotFound = 1
	Config   = 2
	Build    = 3
	Image    = 4
	Internal = 5
)

// From returns the exit code for the given error.
//
// If QEMU exited with a non-zero exit code, that code is returned as is. If
// the error is nil, the exit code is [Success].
func From(err error) int {
	if err == nil {
		return Success
	}

	var cmdErr *qemu.CommandError

	switch {
	case errors.Is(err, &uefirun.ConfigError{}):
		return Config
	case errors.Is(err, &build.StepError{}):
		return Build
	case errors.Is(err, &artifact.NotFoundError{}):
		return NotFound
	case errors.Is(err, &image.Error{}):
		return Image
	case errors.As(err, &cmdErr) && cmdErr.ExitCode > 0:
		return cmdErr.ExitCode
	default:
		return Internal
	}
}
