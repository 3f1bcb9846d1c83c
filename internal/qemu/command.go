// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/aibor/uefirun/internal/pipe"
)

// Command is a single QEMU command that can be run.
type Command struct {
	name       string
	args       []string
	transcript string
}

// NewCommand builds a new [Command] from the given [CommandSpec].
//
// It returns an [ArgumentError] if the [CommandSpec] is not valid and an
// error wrapping [ErrArgumentCollision] if [CommandSpec.ExtraArgs] collide
// with the essential arguments.
func NewCommand(spec CommandSpec) (*Command, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	args, err := BuildArgumentStrings(spec.Arguments())
	if err != nil {
		return nil, fmt.Errorf("build argument strings: %w", err)
	}

	cmd := &Command{
		name:       spec.Executable,
		args:       args,
		transcript: spec.Transcript,
	}

	return cmd, nil
}

// Name returns the path or name of the QEMU executable.
func (c *Command) Name() string {
	return c.name
}

// Args returns the flat argument list passed to QEMU.
func (c *Command) Args() []string {
	return c.args
}

// String implements [fmt.Stringer].
func (c *Command) String() string {
	return c.name + " " + strings.Join(c.args, " ")
}

// Run the QEMU command with the given context.
//
// QEMU is run in the foreground with the given streams attached, so the user
// can interact with the guest. Run blocks until QEMU exits. If QEMU can not be
// started or exits with non-zero exit code, a [CommandError] is returned. Its
// ExitCode is set to QEMU's exit code.
func (c *Command) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = stdin

	if c.transcript == "" {
		cmd.Stdout = stdout
		cmd.Stderr = stderr

		err := cmd.Start()
		if err != nil {
			return &CommandError{Err: fmt.Errorf("%w: %w", ErrStart, err)}
		}

		return waitError(cmd.Wait())
	}

	return c.runWithTranscript(cmd, stdout, stderr)
}

// runWithTranscript runs the command while copying its stdout and stderr to
// both, the given writers and the transcript file.
func (c *Command) runWithTranscript(
	cmd *exec.Cmd,
	stdout io.Writer,
	stderr io.Writer,
) error {
	file, err := os.OpenFile(
		c.transcript,
		os.O_WRONLY|os.O_CREATE|os.O_APPEND,
		0o644,
	)
	if err != nil {
		return &CommandError{Err: fmt.Errorf("open transcript: %w", err)}
	}
	defer file.Close()

	slog.Debug("Writing transcript", slog.String("path", c.transcript))

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return &CommandError{Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return &CommandError{Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	err = cmd.Start()
	if err != nil {
		return &CommandError{Err: fmt.Errorf("%w: %w", ErrStart, err)}
	}

	// Pipes must be drained before [exec.Cmd.Wait] is called.
	var pipes pipe.Pipes

	pipes.Run(
		pipe.Tee("stdout", outPipe, stdout, file),
		pipe.Tee("stderr", errPipe, stderr, file),
	)

	copyErr := pipes.Wait()

	err = waitError(cmd.Wait())
	if err != nil {
		return err
	}

	if copyErr != nil {
		return &CommandError{Err: fmt.Errorf("transcript: %w", copyErr)}
	}

	return nil
}

func waitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &CommandError{Err: fmt.Errorf("wait: %w", err)}
	}

	// Exit code is -1 if the process was terminated by a signal.
	if exitErr.ExitCode() < 0 {
		return &CommandError{
			Err: fmt.Errorf("%w: %s", ErrTerminated, exitErr.String()),
		}
	}

	return &CommandError{
		Err:      ErrNonZeroExitCode,
		ExitCode: exitErr.ExitCode(),
	}
}
