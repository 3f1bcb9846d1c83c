// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides utilities for composing and running the QEMU system
// emulation command that boots a UEFI disk image. It expects the QEMU binary
// and an OVMF firmware image to be present on the system.
//
// The argument list is composed by [CommandSpec.Arguments] in a fixed order:
// machine, memory, firmware, boot disk, IDE controller, persistent disk, clock,
// acceleration and CPU, followed by the optional reboot and shutdown
// suppression toggles and user provided extra arguments.
//
// The guest's console is not processed in any way. QEMU inherits the
// caller's streams, so the user interacts with the guest directly.
package qemu
