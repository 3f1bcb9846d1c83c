// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package uefirun

import (
	"errors"
)

var (
	ErrNotSet         = errors.New("not set")
	ErrMemoryTooSmall = errors.New("memory must be at least 1MB")
)

// ConfigError is returned if a configured resource is missing or unusable.
type ConfigError struct {
	Resource string
	Err      error
}

func (e *ConfigError) Error() string {
	return e.Resource + ": " + e.Err.Error()
}

// Is returns true if the target error is a [ConfigError].
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
