// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/uefirun/internal/exitcode"
	"github.com/aibor/uefirun/internal/qemu"
	"github.com/aibor/uefirun/internal/uefirun"
)

const (
	localConfigFile = ".uefirun-args"
	dotEnvFile      = ".env"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func parseArgs(args []string, cfg IO) (*flags, error) {
	err := LoadDotEnv(dotEnvFile)
	if err != nil {
		return nil, fmt.Errorf("dotenv: %w", err)
	}

	args, err = MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, fmt.Errorf("merge args: %w", err)
	}

	flags, err := newFlags(cfg.Stderr)
	if err != nil {
		return nil, err
	}

	err = flags.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	return flags, nil
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return exitcode.Success
	}

	// Flag parse errors are already printed by the flag set.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return exitcode.Config
}

func handleRunError(err error) int {
	exitCode := exitcode.From(err)

	// QEMU's own output tells what went wrong with the guest.
	if errors.Is(err, qemu.ErrNonZeroExitCode) {
		slog.Warn("QEMU exited with non-zero exit code",
			slog.Int("exit_code", exitCode))

		return exitCode
	}

	slog.Error(err.Error(), slog.Int("exit_code", exitCode))

	return exitCode
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags, err := parseArgs(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = uefirun.Run(ctx, flags.spec, cfg.Stdin, cfg.Stdout, cfg.Stderr)
	if err != nil {
		return handleRunError(err)
	}

	return exitcode.Success
}
