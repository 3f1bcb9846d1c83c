// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package uefirun

import (
	"fmt"

	"github.com/aibor/uefirun/internal/artifact"
	"github.com/aibor/uefirun/internal/build"
	"github.com/aibor/uefirun/internal/image"
	"github.com/aibor/uefirun/internal/qemu"
	"github.com/aibor/uefirun/internal/sys"
	"github.com/c2h5oh/datasize"
)

const (
	// DefaultImagePath is the project relative path of the persistent image.
	DefaultImagePath = "build/fs.img"

	// DefaultTargetDir is the project relative build output tree.
	DefaultTargetDir = "target"
)

// Spec describes a complete run.
type Spec struct {
	Paths    Paths
	Build    Build
	Artifact Artifact
	Image    Image
	Qemu     Qemu
}

// Paths are the external files that must be present before anything else is
// done.
type Paths struct {
	Emulator string
	Firmware string
}

type Build struct {
	Steps []build.Step
	Skip  bool
}

type Artifact struct {
	Root    string
	Pattern string
}

type Image struct {
	Path string
	Size datasize.ByteSize
}

type Qemu struct {
	Memory     datasize.ByteSize
	CPU        string
	Accel      qemu.Accel
	NoReboot   bool
	NoShutdown bool
	ExtraArgs  []qemu.Argument
	Transcript string
}

// Default returns a [Spec] with defaults for all settings that do not depend
// on the project root. Use [Spec.SetProject] to complete it.
func Default() Spec {
	return Spec{
		Artifact: Artifact{
			Pattern: artifact.DefaultPattern,
		},
		Image: Image{
			Size: image.DefaultSize,
		},
		Qemu: Qemu{
			Memory: qemu.DefaultMemory,
			CPU:    qemu.DefaultCPU,
			Accel:  qemu.AccelAuto,
		},
	}
}

// SetProject sets the build steps, the persistent image path and the build
// output tree for the project at root.
//
// Relative imagePath and targetDir are resolved against root and can not
// point outside of it.
func (s *Spec) SetProject(root, imagePath, targetDir string) error {
	root, err := sys.AbsolutePath(root)
	if err != nil {
		return &ConfigError{"project", err}
	}

	steps, err := build.DefaultSteps(root)
	if err != nil {
		return &ConfigError{"build", err}
	}

	imagePath, err = sys.ProjectPath(root, imagePath)
	if err != nil {
		return &ConfigError{"image", err}
	}

	targetDir, err = sys.ProjectPath(root, targetDir)
	if err != nil {
		return &ConfigError{"target", err}
	}

	s.Build.Steps = steps
	s.Image.Path = imagePath
	s.Artifact.Root = targetDir

	return nil
}

// Validate checks that the external paths are usable and the QEMU settings
// are sane.
//
// It resolves the emulator path and makes the firmware path absolute, so the
// spec is not affected by later changes of the working directory.
func (s *Spec) Validate() error {
	emulator, err := sys.LookExecutable(s.Paths.Emulator)
	if err != nil {
		return &ConfigError{"emulator", err}
	}

	firmware, err := sys.AbsolutePath(s.Paths.Firmware)
	if err != nil {
		return &ConfigError{"firmware", err}
	}

	err = sys.ValidateReadableFile(firmware)
	if err != nil {
		return &ConfigError{"firmware", err}
	}

	if s.Qemu.Memory < datasize.MB {
		return &ConfigError{
			"memory",
			fmt.Errorf("%w: %s", ErrMemoryTooSmall, s.Qemu.Memory.HR()),
		}
	}

	if s.Qemu.CPU == "" {
		return &ConfigError{"cpu", ErrNotSet}
	}

	_, err = s.Qemu.Accel.MarshalText()
	if err != nil {
		return &ConfigError{"accel", err}
	}

	err = s.validateExtraArgs(firmware)
	if err != nil {
		return &ConfigError{"qemu args", err}
	}

	if s.Artifact.Root == "" {
		return &ConfigError{"target", ErrNotSet}
	}

	if s.Image.Path == "" {
		return &ConfigError{"image", ErrNotSet}
	}

	s.Paths.Emulator = emulator
	s.Paths.Firmware = firmware

	return nil
}

// validateExtraArgs checks the extra arguments against the core arguments.
// Boot image and persistent image are only known after the build, so
// placeholders are used for them.
func (s *Spec) validateExtraArgs(firmware string) error {
	cmdSpec := qemu.CommandSpec{
		Firmware:        firmware,
		BootImage:       "boot.img",
		PersistentImage: "fs.img",
		Memory:          s.Qemu.Memory,
		CPU:             s.Qemu.CPU,
		Accel:           s.Qemu.Accel,
		NoReboot:        s.Qemu.NoReboot,
		NoShutdown:      s.Qemu.NoShutdown,
		ExtraArgs:       s.Qemu.ExtraArgs,
	}

	_, err := qemu.BuildArgumentStrings(cmdSpec.Arguments())
	if err != nil {
		return fmt.Errorf("extra args: %w", err)
	}

	return nil
}
