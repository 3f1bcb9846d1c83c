// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/magefile/mage/target"
)

var env = map[string]string{}

func init() {
	gobin, exists := os.LookupEnv("GOBIN")
	if !exists {
		gobin = "./gobin"
	}

	if gobin != "" {
		p, err := filepath.Abs(gobin)
		if err == nil {
			gobin = p
		}
	}

	env["GOBIN"] = gobin
}

// Install uefirun to gobin directory. Skipped if it is up to date.
func Install() error {
	path := filepath.Join(env["GOBIN"], "uefirun")

	mod, err := target.Dir(path, "cmd", "internal")
	if err != nil {
		return err
	}

	if !mod {
		return nil
	}

	return sh.RunWith(env, "go", "install", "./cmd/uefirun")
}

// Run unit tests with race detector and coverage.
func Test() error {
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Boot the operating system in the given project directory with the
// installed uefirun. Additional flags are taken from UEFIRUN_ARGS.
func Boot(project string) error {
	mg.Deps(Install)

	return sh.RunWithV(
		env,
		filepath.Join(env["GOBIN"], "uefirun"),
		"-project", project,
	)
}

// Remove volatile files.
func Clean() error {
	return sh.Rm(env["GOBIN"])
}
