// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"slices"

	"github.com/aibor/uefirun/internal/sys"
	"golang.org/x/sys/unix"
)

const (
	// AccelAuto selects [AccelKVM] if available and [AccelTCG] otherwise. It
	// must be resolved with [Accel.Resolve] before use.
	AccelAuto Accel = "auto"
	// AccelKVM is the Linux kernel hardware virtualization.
	AccelKVM Accel = "kvm"
	// AccelTCG is QEMU's software emulation. Works everywhere, but slow.
	AccelTCG Accel = "tcg"
	// AccelHVF is the macOS Hypervisor.framework.
	AccelHVF Accel = "hvf"
	// AccelWHPX is the Windows Hypervisor Platform.
	AccelWHPX Accel = "whpx"
)

// KVMDevice is the device file that must be accessible for [AccelKVM].
var KVMDevice = "/dev/kvm"

// Accel represents a QEMU acceleration backend.
type Accel string

func (a *Accel) isKnown() bool {
	knownAccels := []Accel{
		AccelAuto,
		AccelKVM,
		AccelTCG,
		AccelHVF,
		AccelWHPX,
	}

	return slices.Contains(knownAccels, *a)
}

// String implements [fmt.Stringer].
func (a *Accel) String() string {
	if !a.isKnown() {
		return ""
	}

	return string(*a)
}

// MarshalText implements [encoding.TextMarshaler].
func (a Accel) MarshalText() ([]byte, error) {
	s := a.String()
	if s == "" {
		return nil, ErrAccelInvalid
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Accel) UnmarshalText(text []byte) error {
	accel := Accel(text)

	if !accel.isKnown() {
		return ErrAccelInvalid
	}

	*a = accel

	return nil
}

// Resolve returns the concrete backend for [AccelAuto] depending on
// kvmAvailable. Any other value is returned as is.
func (a Accel) Resolve(kvmAvailable bool) Accel {
	if a != AccelAuto {
		return a
	}

	if kvmAvailable {
		return AccelKVM
	}

	return AccelTCG
}

// KVMAvailable checks if the current user may use KVM.
func KVMAvailable() bool {
	return sys.Accessible(KVMDevice, unix.R_OK|unix.W_OK)
}
