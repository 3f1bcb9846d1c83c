// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uefirun ties the stages together: it validates the external paths,
// builds the operating system, locates the boot image, provisions the
// persistent image and launches QEMU with it.
//
// The stages run strictly in order. The first failing stage aborts the run.
package uefirun
