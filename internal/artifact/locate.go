// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aibor/uefirun/internal/sys"
	"github.com/samber/lo"
)

// DefaultPattern is the file name of the UEFI bootable disk image.
const DefaultPattern = "uefi.img"

// Artifact is a file found in the build output tree.
type Artifact struct {
	Path    string
	ModTime time.Time
}

// newer reports whether a is preferred over other. The later modification
// time wins. On equal times the lexically smaller path wins, so the choice
// does not depend on traversal order.
func (a Artifact) newer(other Artifact) bool {
	if !a.ModTime.Equal(other.ModTime) {
		return a.ModTime.After(other.ModTime)
	}

	return a.Path < other.Path
}

// Find returns all regular files below root whose base name matches the
// given [filepath.Match] pattern.
//
// It returns a [NotFoundError] if root does not exist.
func Find(root, pattern string) ([]Artifact, error) {
	// Check pattern syntax once, so it is not silently ignored per file.
	_, err := filepath.Match(pattern, "")
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	_, err = os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Root: root, Pattern: pattern}
	}

	var candidates []Artifact

	walkFunc := func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		// Error is already checked above.
		matched, _ := filepath.Match(pattern, entry.Name())
		if !matched {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("file info: %w", err)
		}

		candidates = append(candidates, Artifact{
			Path:    path,
			ModTime: info.ModTime(),
		})

		return nil
	}

	err = filepath.WalkDir(root, walkFunc)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return candidates, nil
}

// Locate returns the most recently modified file below root whose base name
// matches the given pattern.
//
// If multiple files have the same modification time, the one with the
// lexically smallest path is returned. It returns a [NotFoundError] if root
// does not exist or no file matches. The returned file is readable at the
// time of selection.
func Locate(root, pattern string) (Artifact, error) {
	root, err := sys.AbsolutePath(root)
	if err != nil {
		return Artifact{}, fmt.Errorf("search root: %w", err)
	}

	candidates, err := Find(root, pattern)
	if err != nil {
		return Artifact{}, err
	}

	if len(candidates) == 0 {
		return Artifact{}, &NotFoundError{Root: root, Pattern: pattern}
	}

	selected := lo.MaxBy(candidates, Artifact.newer)

	slog.Debug("Located artifact",
		slog.String("path", selected.Path),
		slog.Time("mod_time", selected.ModTime),
		slog.Int("candidates", len(candidates)))

	err = sys.ValidateReadableFile(selected.Path)
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact %s: %w", selected.Path, err)
	}

	return selected, nil
}
