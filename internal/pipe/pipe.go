// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pipe

import (
	"io"

	"golang.org/x/sync/errgroup"
)

// Pipe is a single stream to copy.
type Pipe struct {
	// Name identifies the pipe in errors, like "stdout".
	Name string

	Src io.Reader
	Dst io.Writer
}

// Tee returns a [Pipe] that copies src to both dst and transcript.
func Tee(name string, src io.Reader, dst, transcript io.Writer) Pipe {
	return Pipe{
		Name: name,
		Src:  src,
		Dst:  io.MultiWriter(dst, transcript),
	}
}

// copy copies until EOF. If writing fails, the rest of the source is
// discarded, so the writing process does not block on a full pipe.
func (p Pipe) copy() error {
	_, err := io.Copy(p.Dst, p.Src)
	if err != nil {
		_, _ = io.Copy(io.Discard, p.Src)
		return &Error{Name: p.Name, Err: err}
	}

	return nil
}

// Pipes copies a set of pipes concurrently.
type Pipes struct {
	group errgroup.Group
}

// Run starts copying the given pipes in the background.
func (p *Pipes) Run(pipes ...Pipe) {
	for _, pipe := range pipes {
		p.group.Go(pipe.copy)
	}
}

// Wait blocks until all pipes hit EOF. It returns the first error.
func (p *Pipes) Wait() error {
	return p.group.Wait() //nolint:wrapcheck
}
