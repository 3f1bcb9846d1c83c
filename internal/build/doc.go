// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package build runs the external build steps that produce the kernel and the
// bootable disk image. The toolchain is treated as opaque: a step either
// succeeds or fails, its output is passed through to the user.
package build
