// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"strconv"

	"github.com/c2h5oh/datasize"
)

const (
	// MachineType is the emulated chipset with the legacy i8042 keyboard
	// controller the guest's PS/2 driver talks to.
	MachineType = "q35,i8042=on"

	// DefaultMemory is the guest memory used if none is specified.
	DefaultMemory = 512 * datasize.MB

	// DefaultCPU is the CPU model used if none is specified.
	DefaultCPU = "max"

	// PersistentDriveID is the drive ID the persistent image is attached
	// with.
	PersistentDriveID = "fsdisk"

	// ControllerID is the device ID of the IDE controller the persistent
	// image is attached to.
	ControllerID = "ide"
)

// CommandSpec defines the parameters for a [Command].
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the UEFI firmware. It is attached read-only as pflash.
	Firmware string

	// Path to the UEFI bootable disk image.
	BootImage string

	// Path to the persistent image attached as IDE disk on the first bus of
	// the controller.
	PersistentImage string

	// Memory for the guest. Rendered in MiB.
	Memory datasize.ByteSize

	// CPU model to use. Depends on the acceleration backend.
	CPU string

	// Acceleration backend. Must not be [AccelAuto].
	Accel Accel

	// Exit instead of rebooting on guest triple faults.
	NoReboot bool

	// Stop the emulation instead of exiting when the guest shuts down.
	NoShutdown bool

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the command
	// itself or an error will be returned by [NewCommand].
	ExtraArgs []Argument

	// Transcript is the path of a file the QEMU output is appended to in
	// addition to the output streams. Empty disables the transcript.
	Transcript string
}

// Validate checks that all required fields are set and have sane values.
func (s *CommandSpec) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"executable", s.Executable},
		{"firmware", s.Firmware},
		{"boot image", s.BootImage},
		{"persistent image", s.PersistentImage},
		{"cpu", s.CPU},
	}

	for _, field := range required {
		if field.value == "" {
			return &ArgumentError{field.name + " not set"}
		}
	}

	if s.Memory < datasize.MB {
		return &ArgumentError{"memory must be at least 1MB"}
	}

	switch {
	case !s.Accel.isKnown():
		return &ArgumentError{
			"unknown acceleration backend: " + string(s.Accel),
		}
	case s.Accel == AccelAuto:
		return &ArgumentError{"acceleration backend not resolved"}
	}

	return nil
}

// Arguments compiles the ordered argument list for the QEMU command.
//
// The order is fixed, as QEMU evaluates some arguments by first occurrence.
// Toggles are added after the core arguments and [CommandSpec.ExtraArgs] last.
func (s *CommandSpec) Arguments() []Argument {
	args := []Argument{
		UniqueArg("machine", MachineType),
		UniqueArg("m", memoryMiB(s.Memory)),
		RepeatableArg("drive",
			"if=pflash",
			"format=raw",
			"readonly=on",
			"file="+s.Firmware,
		),
		RepeatableArg("drive",
			"format=raw",
			"file="+s.BootImage,
		),
		RepeatableArg("device",
			"piix3-ide",
			"id="+ControllerID,
		),
		RepeatableArg("drive",
			"id="+PersistentDriveID,
			"if=none",
			"format=raw",
			"file="+s.PersistentImage,
		),
		RepeatableArg("device",
			"ide-hd",
			"drive="+PersistentDriveID,
			"bus="+ControllerID+".0",
			"unit=0",
		),
		UniqueArg("rtc", "base=localtime"),
		UniqueArg("accel", string(s.Accel)),
		UniqueArg("cpu", s.CPU),
	}

	// Guest triple faults exit QEMU instead of resetting the machine.
	if s.NoReboot {
		args = append(args, UniqueArg("no-reboot"))
	}

	// Guest shutdown pauses the emulation, so the final state can be
	// inspected with the monitor.
	if s.NoShutdown {
		args = append(args, UniqueArg("no-shutdown"))
	}

	return append(args, s.ExtraArgs...)
}

// memoryMiB renders the size in MiB with QEMU's "M" suffix. Fractions are
// dropped.
func memoryMiB(size datasize.ByteSize) string {
	return strconv.FormatUint(uint64(size/datasize.MB), 10) + "M"
}
