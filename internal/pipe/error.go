// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"fmt"
)

// Error is returned if copying a [Pipe] fails.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipe %s: %v", e.Name, e.Err)
}

func (*Error) Is(other error) bool {
	_, ok := other.(*Error)
	return ok
}

func (e *Error) Unwrap() error {
	return e.Err
}
