// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeEmulatorScript prints its arguments one per line and exits with the
// exit code given in FAKE_QEMU_EXIT_CODE. With FAKE_QEMU_FLOOD set, it writes
// that many additional zero bytes to stdout.
const fakeEmulatorScript = `#!/bin/sh
for arg in "$@"; do
	echo "$arg"
done
if [ -n "$FAKE_QEMU_FLOOD" ]; then
	head -c "$FAKE_QEMU_FLOOD" /dev/zero
fi
echo "stderr line" >&2
exit ${FAKE_QEMU_EXIT_CODE:-0}
`

// ArgumentValueAssertionFunc returns an [assert.ComparisonAssertionFunc] that
// can be used to assert the value of the Argument with the given name.
func ArgumentValueAssertionFunc(
	name string,
	assertion assert.ComparisonAssertionFunc,
) assert.ComparisonAssertionFunc {
	return func(t assert.TestingT, arg1, arg2 any, arg3 ...any) bool {
		args, ok := arg1.([]Argument)
		if !assert.True(t, ok, "first argument should be []Argument") {
			return false
		}

		for _, arg := range args {
			if name != arg.name {
				continue
			}

			return assertion(t, arg.value, arg2, arg3...)
		}

		return assert.Fail(t, "Argument not found")
	}
}

// WriteFakeEmulator writes an executable shell script into dir that can be
// used in place of a QEMU binary. It returns the path of the script.
func WriteFakeEmulator(tb testing.TB, dir string) string {
	tb.Helper()

	path := filepath.Join(dir, "qemu-system-x86_64")

	//nolint:gosec
	err := os.WriteFile(path, []byte(fakeEmulatorScript), 0o755)
	if err != nil {
		tb.Fatalf("failed to write fake emulator: %v", err)
	}

	return path
}
