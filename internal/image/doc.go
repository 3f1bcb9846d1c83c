// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package image provisions the persistent raw disk image attached to the
// guest.
//
// The image outlives the emulator. Data written by the guest is never
// discarded: an existing image is only ever extended, never truncated or
// rewritten.
package image
