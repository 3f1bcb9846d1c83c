// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/aibor/uefirun/internal/qemu"
	"github.com/aibor/uefirun/internal/uefirun"
)

const (
	name = "uefirun"

	usageMessage = `Usage of 'uefirun':
    uefirun [flags...] [-- qemu-args...]

Builds the operating system, provisions the persistent image and boots the
newest uefi.img in QEMU:
	uefirun -qemu-bin=qemu-system-x86_64 -firmware=/usr/share/OVMF/OVMF.fd

Additional QEMU arguments may be given after "--":
	uefirun -no-reboot -- -serial stdio -d int

The QEMU binary and the firmware can also be provided via the environment
variables UEFIRUN_QEMU and UEFIRUN_FIRMWARE, also from a ./.env file.

All uefirun flags can also be provided via environment variable UEFIRUN_ARGS:
	UEFIRUN_ARGS="-no-build -debug" uefirun

All uefirun flags can also be provided via file ./.uefirun-args, with one
argument per line.
`
)

type flags struct {
	spec    uefirun.Spec
	flagSet *flag.FlagSet

	project   string
	fsImage   string
	targetDir string

	version bool
	debug   bool
}

// newFlags creates the flags with defaults from the environment.
func newFlags(output io.Writer) (*flags, error) {
	accel := qemu.AccelAuto

	if envValue := os.Getenv(envAccel); envValue != "" {
		err := accel.UnmarshalText([]byte(envValue))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envAccel, err)
		}
	}

	spec := uefirun.Default()
	spec.Paths.Emulator = os.Getenv(envQemu)
	spec.Paths.Firmware = os.Getenv(envFirmware)
	spec.Qemu.Accel = accel

	flags := &flags{
		spec:      spec,
		project:   ".",
		fsImage:   uefirun.DefaultImagePath,
		targetDir: uefirun.DefaultTargetDir,
	}

	flags.initFlagset(output)

	return flags, nil
}

func (f *flags) ParseArgs(args []string) error {
	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	f.spec.Qemu.ExtraArgs, err = qemu.ParseArguments(f.flagSet.Args())
	if err != nil {
		return f.fail("qemu args", err)
	}

	err = f.spec.SetProject(f.project, f.fsImage, f.targetDir)
	if err != nil {
		return f.fail("paths", err)
	}

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.StringVar(
		&f.spec.Paths.Emulator,
		"qemu-bin",
		f.spec.Paths.Emulator,
		"QEMU binary to use (default $"+envQemu+")",
	)

	flagSet.StringVar(
		&f.spec.Paths.Firmware,
		"firmware",
		f.spec.Paths.Firmware,
		"UEFI firmware to use (default $"+envFirmware+")",
	)

	flagSet.StringVar(
		&f.project,
		"project",
		f.project,
		"project root directory",
	)

	flagSet.StringVar(
		&f.fsImage,
		"fs-image",
		f.fsImage,
		"persistent image, relative to the project root",
	)

	flagSet.TextVar(
		&f.spec.Image.Size,
		"fs-size",
		f.spec.Image.Size,
		"minimum size of the persistent image. It is never shrunk",
	)

	flagSet.StringVar(
		&f.targetDir,
		"target-dir",
		f.targetDir,
		"build output directory searched for the boot image, relative to "+
			"the project root",
	)

	flagSet.StringVar(
		&f.spec.Artifact.Pattern,
		"boot-image",
		f.spec.Artifact.Pattern,
		"file name pattern of the boot image",
	)

	flagSet.TextVar(
		&f.spec.Qemu.Memory,
		"memory",
		f.spec.Qemu.Memory,
		"memory for the QEMU VM",
	)

	flagSet.StringVar(
		&f.spec.Qemu.CPU,
		"cpu",
		f.spec.Qemu.CPU,
		"QEMU CPU type to use",
	)

	flagSet.TextVar(
		&f.spec.Qemu.Accel,
		"accel",
		f.spec.Qemu.Accel,
		"acceleration backend: auto, kvm, tcg, hvf, whpx (default $"+
			envAccel+" or auto)",
	)

	flagSet.BoolVar(
		&f.spec.Qemu.NoReboot,
		"no-reboot",
		f.spec.Qemu.NoReboot,
		"exit instead of rebooting",
	)

	flagSet.BoolVar(
		&f.spec.Qemu.NoShutdown,
		"no-shutdown",
		f.spec.Qemu.NoShutdown,
		"stop emulation instead of exiting on guest shutdown",
	)

	flagSet.BoolVar(
		&f.spec.Build.Skip,
		"no-build",
		f.spec.Build.Skip,
		"skip the build and boot the newest existing boot image",
	)

	flagSet.StringVar(
		&f.spec.Qemu.Transcript,
		"transcript",
		f.spec.Qemu.Transcript,
		"file QEMU output is appended to",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
