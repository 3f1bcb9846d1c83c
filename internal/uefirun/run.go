// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package uefirun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/uefirun/internal/artifact"
	"github.com/aibor/uefirun/internal/build"
	"github.com/aibor/uefirun/internal/image"
	"github.com/aibor/uefirun/internal/qemu"
)

// Run runs all stages for the given [Spec].
//
// QEMU is attached to the given streams. Build output is written to them as
// well. Errors of the stages are returned wrapped, so callers can tell them
// apart by their type: [ConfigError], [build.StepError],
// [artifact.NotFoundError], [image.Error] and [qemu.CommandError].
func Run(
	ctx context.Context,
	spec Spec,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) error {
	// External paths are checked before the build, which may take a while.
	err := spec.Validate()
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	if spec.Build.Skip {
		slog.Debug("Skipping build")
	} else {
		err := build.Run(ctx, spec.Build.Steps, stdout, stderr)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
	}

	bootImage, err := artifact.Locate(spec.Artifact.Root, spec.Artifact.Pattern)
	if err != nil {
		return fmt.Errorf("locate boot image: %w", err)
	}

	persistentImage, err := image.Ensure(spec.Image.Path, spec.Image.Size)
	if err != nil {
		return fmt.Errorf("persistent image: %w", err)
	}

	cmd, err := NewQemuCommand(spec, bootImage, persistentImage)
	if err != nil {
		return &ConfigError{"qemu", err}
	}

	slog.Debug("QEMU command", slog.String("command", cmd.String()))

	err = cmd.Run(ctx, stdin, stdout, stderr)
	if errors.Is(err, qemu.ErrStart) {
		return &ConfigError{"emulator", err}
	}

	return err
}

// NewQemuCommand composes the [qemu.Command] for the given boot image and
// persistent image.
func NewQemuCommand(
	spec Spec,
	bootImage artifact.Artifact,
	persistentImage image.Image,
) (*qemu.Command, error) {
	accel := spec.Qemu.Accel.Resolve(qemu.KVMAvailable())
	if accel != spec.Qemu.Accel {
		slog.Debug("Resolved acceleration backend",
			slog.String("accel", string(accel)))
	}

	cmdSpec := qemu.CommandSpec{
		Executable:      spec.Paths.Emulator,
		Firmware:        spec.Paths.Firmware,
		BootImage:       bootImage.Path,
		PersistentImage: persistentImage.Path,
		Memory:          spec.Qemu.Memory,
		CPU:             spec.Qemu.CPU,
		Accel:           accel,
		NoReboot:        spec.Qemu.NoReboot,
		NoShutdown:      spec.Qemu.NoShutdown,
		ExtraArgs:       spec.Qemu.ExtraArgs,
		Transcript:      spec.Qemu.Transcript,
	}

	cmd, err := qemu.NewCommand(cmdSpec)
	if err != nil {
		return nil, fmt.Errorf("new qemu command: %w", err)
	}

	return cmd, nil
}
