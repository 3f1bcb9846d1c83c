// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
)

// DefaultSize is the size a new persistent image is created with.
const DefaultSize = 512 * datasize.MB

// Action describes what [Ensure] did to the image.
type Action string

const (
	ActionCreated   Action = "created"
	ActionGrown     Action = "grown"
	ActionUnchanged Action = "unchanged"
)

// Image is a provisioned persistent image.
type Image struct {
	Path   string
	Size   datasize.ByteSize
	Action Action
}

// Ensure makes sure a raw image file of at least the given size exists at
// path.
//
// A missing file is created with all missing parent directories. A smaller
// file is extended with zeros, keeping its content at the same offsets. A
// file of the same or larger size is left untouched.
func Ensure(path string, size datasize.ByteSize) (Image, error) {
	if size > math.MaxInt64 {
		return Image{}, &Error{"size", path, ErrSizeTooLarge}
	}

	target := int64(size) //nolint:gosec

	info, err := os.Stat(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = create(path, target)
		if err != nil {
			return Image{}, err
		}

		return finish(path, target, ActionCreated)
	case err != nil:
		return Image{}, &Error{"stat", path, err}
	case !info.Mode().IsRegular():
		return Image{}, &Error{"stat", path, ErrNotRegular}
	case info.Size() >= target:
		slog.Debug("Persistent image large enough",
			slog.String("path", path),
			slog.Int64("size", info.Size()),
		)

		//nolint:gosec
		return Image{path, datasize.ByteSize(info.Size()), ActionUnchanged}, nil
	default:
		err = grow(path, target)
		if err != nil {
			return Image{}, err
		}

		return finish(path, target, ActionGrown)
	}
}

func create(path string, size int64) error {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return &Error{"mkdir", path, err}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &Error{"create", path, err}
	}

	return truncate(file, size)
}

func grow(path string, size int64) error {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return &Error{"open", path, err}
	}

	return truncate(file, size)
}

// truncate sets the file size and closes the file. The close error is
// returned as well, as it may report a failed write back.
func truncate(file *os.File, size int64) error {
	truncErr := file.Truncate(size)
	closeErr := file.Close()

	switch {
	case truncErr != nil:
		return &Error{"truncate", file.Name(), truncErr}
	case closeErr != nil:
		return &Error{"close", file.Name(), closeErr}
	}

	return nil
}

func finish(path string, size int64, action Action) (Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Image{}, &Error{"verify", path, err}
	}

	if info.Size() != size {
		return Image{}, &Error{
			"verify",
			path,
			fmt.Errorf("%w: %d != %d", ErrSizeMismatch, info.Size(), size),
		}
	}

	slog.Info("Persistent image ready",
		slog.String("path", path),
		slog.String("action", string(action)),
		slog.Int64("size", size),
	)

	return Image{path, datasize.ByteSize(size), action}, nil
}
