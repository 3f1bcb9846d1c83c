// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/aibor/uefirun/internal/sys"
)

// Step is a single external build command.
type Step struct {
	// Name identifies the step in logs and errors.
	Name string

	// Dir is the working directory the command is run in.
	Dir string

	// Command is the executable followed by its arguments.
	Command []string
}

// String implements [fmt.Stringer].
func (s Step) String() string {
	return s.Name + ": " + strings.Join(s.Command, " ")
}

// DefaultSteps returns the steps building the kernel in "<root>/kernel"
// first and then the UEFI disk image in root.
func DefaultSteps(root string) ([]Step, error) {
	kernelDir, err := sys.ProjectPath(root, "kernel")
	if err != nil {
		return nil, fmt.Errorf("kernel dir: %w", err)
	}

	steps := []Step{
		{
			Name:    "kernel",
			Dir:     kernelDir,
			Command: []string{"cargo", "build"},
		},
		{
			Name:    "image",
			Dir:     root,
			Command: []string{"cargo", "build"},
		},
	}

	return steps, nil
}

// Run runs the given steps one after another.
//
// Output of the steps is written to the given writers. Run stops at the first
// failing step and returns a [StepError] for it.
func Run(ctx context.Context, steps []Step, stdout, stderr io.Writer) error {
	for _, step := range steps {
		slog.Info("Running build step", slog.String("step", step.String()))

		err := runStep(ctx, step, stdout, stderr)
		if err != nil {
			return err
		}
	}

	return nil
}

func runStep(ctx context.Context, step Step, stdout, stderr io.Writer) error {
	if len(step.Command) == 0 {
		return &StepError{Step: step.Name, Err: ErrNoCommand}
	}

	//nolint:gosec
	cmd := exec.CommandContext(ctx, step.Command[0], step.Command[1:]...)
	cmd.Dir = step.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &StepError{
			Step:     step.Name,
			ExitCode: exitErr.ExitCode(),
			Err:      ErrFailed,
		}
	}

	return &StepError{Step: step.Name, Err: fmt.Errorf("run: %w", err)}
}
