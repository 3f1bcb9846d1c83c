// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/uefirun/internal/build"
	"github.com/aibor/uefirun/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSteps(t *testing.T) {
	steps, err := build.DefaultSteps("/src/os")
	require.NoError(t, err)

	require.Len(t, steps, 2)
	assert.Equal(t, "kernel", steps[0].Name)
	assert.Equal(t, "/src/os/kernel", steps[0].Dir)
	assert.Equal(t, "image", steps[1].Name)
	assert.Equal(t, "/src/os", steps[1].Dir)
	assert.Equal(t, "kernel: cargo build", steps[0].String())

	t.Run("kernel symlink can not escape root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Symlink("/", filepath.Join(root, "kernel")))

		steps, err := build.DefaultSteps(root)
		require.NoError(t, err)

		assert.Equal(t, root, steps[0].Dir)
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := build.DefaultSteps("")
		require.ErrorIs(t, err, sys.ErrEmptyPath)
	})
}

func TestRun(t *testing.T) {
	tests := []struct {
		name             string
		steps            []build.Step
		expectedErr      error
		expectedStep     string
		expectedExitCode int
		expectedStdout   string
		expectedStderr   string
	}{
		{
			name: "no steps",
		},
		{
			name: "all succeed in order",
			steps: []build.Step{
				{Name: "kernel", Command: []string{"sh", "-c", "echo kernel"}},
				{Name: "image", Command: []string{"sh", "-c", "echo image >&2"}},
			},
			expectedStdout: "kernel\n",
			expectedStderr: "image\n",
		},
		{
			name: "first fails",
			steps: []build.Step{
				{Name: "kernel", Command: []string{"sh", "-c", "echo broken; exit 101"}},
				{Name: "image", Command: []string{"sh", "-c", "echo image"}},
			},
			expectedErr:      build.ErrFailed,
			expectedStep:     "kernel",
			expectedExitCode: 101,
			expectedStdout:   "broken\n",
		},
		{
			name: "second fails",
			steps: []build.Step{
				{Name: "kernel", Command: []string{"sh", "-c", "echo kernel"}},
				{Name: "image", Command: []string{"sh", "-c", "exit 2"}},
			},
			expectedErr:      build.ErrFailed,
			expectedStep:     "image",
			expectedExitCode: 2,
			expectedStdout:   "kernel\n",
		},
		{
			name: "empty command",
			steps: []build.Step{
				{Name: "kernel"},
			},
			expectedErr:  build.ErrNoCommand,
			expectedStep: "kernel",
		},
		{
			name: "missing executable",
			steps: []build.Step{
				{Name: "kernel", Command: []string{"/nonexistent/cargo", "build"}},
			},
			expectedErr:  &build.StepError{},
			expectedStep: "kernel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := build.Run(t.Context(), tt.steps, &stdout, &stderr)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				var stepErr *build.StepError
				require.ErrorAs(t, err, &stepErr)
				assert.Equal(t, tt.expectedStep, stepErr.Step)
				assert.Equal(t, tt.expectedExitCode, stepErr.ExitCode)
			}

			assert.Equal(t, tt.expectedStdout, stdout.String())
			assert.Equal(t, tt.expectedStderr, stderr.String())
		})
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()

	steps := []build.Step{
		{Name: "pwd", Dir: dir, Command: []string{"pwd", "-P"}},
	}

	var stdout bytes.Buffer

	err := build.Run(t.Context(), steps, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	assert.Equal(t, expected+"\n", stdout.String())
}

func TestStepError_Error(t *testing.T) {
	err := &build.StepError{Step: "kernel", ExitCode: 101, Err: build.ErrFailed}
	assert.Equal(t, "build step kernel: exited non-zero (101)", err.Error())
}
