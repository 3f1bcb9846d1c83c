// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package artifact locates build output files. Build tools tend to leave
// stale copies of their output in hash named directories, so the most
// recently modified match is the one of the latest build.
package artifact
