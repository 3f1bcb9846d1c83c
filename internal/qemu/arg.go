// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// Argument is a QEMU argument with or without value.
//
// Its name might be marked to be unique in a list of [Argument]s.
type Argument struct {
	name          string
	value         string
	nonUniqueName bool
}

// String implements [fmt.Stringer].
func (a Argument) String() string {
	s := "-" + a.name
	if a.value != "" {
		s += " " + a.value
	}

	return s
}

// Name returns the name of the [Argument].
func (a Argument) Name() string {
	return a.name
}

// Value returns the value of the [Argument].
func (a Argument) Value() string {
	return a.value
}

// UniqueName returns if the name of the [Argument] must be unique in a list
// of [Argument]s.
func (a Argument) UniqueName() bool {
	return !a.nonUniqueName
}

// Equal compares the [Argument]s.
//
// If the name is marked unique, only names are
// compared. Otherwise name and value are compared.
func (a Argument) Equal(other Argument) bool {
	if a.name != other.name {
		return false
	}

	if a.nonUniqueName {
		return a.value == other.value
	}

	return true
}

// UniqueArg returns a new [Argument] with the given name that is marked as
// unique and so can be used in a list of [Argument]s only once.
//
// Multiple values are joined by ",", which is how QEMU separates the options
// of a single argument.
func UniqueArg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// RepeatableArg returns a new [Argument] with the given name that is not
// unique and so can be used in a list of [Argument]s multiple times.
func RepeatableArg(name string, value ...string) Argument {
	return Argument{
		name:          name,
		value:         strings.Join(value, ","),
		nonUniqueName: true,
	}
}

// repeatableNames are the QEMU arguments that may be given more than once.
var repeatableNames = []string{
	"add-fd",
	"blockdev",
	"chardev",
	"device",
	"drive",
	"fw_cfg",
	"global",
	"mon",
	"netdev",
	"object",
	"parallel",
	"serial",
	"smbios",
	"trace",
}

// ParseArguments parses raw command line strings as given to QEMU into
// [Argument]s.
//
// Each argument must start with "-". It takes the following string as value
// unless that one starts with "-" as well. So values starting with "-" can
// not be given: "-append -x" is parsed as the two switches "-append" and
// "-x". Well known repeatable arguments like "-device" or
// "-serial" are created with [RepeatableArg], all others with [UniqueArg].
func ParseArguments(raw []string) ([]Argument, error) {
	args := make([]Argument, 0, len(raw))

	for idx := 0; idx < len(raw); idx++ {
		name, found := strings.CutPrefix(raw[idx], "-")
		if !found || name == "" {
			return nil, &ArgumentError{"not an argument name: " + raw[idx]}
		}

		// QEMU accepts both "-name" and "--name".
		name = strings.TrimPrefix(name, "-")

		var value string
		if idx+1 < len(raw) && !strings.HasPrefix(raw[idx+1], "-") {
			idx++
			value = raw[idx]
		}

		if slices.Contains(repeatableNames, name) {
			args = append(args, RepeatableArg(name, value))
		} else {
			args = append(args, UniqueArg(name, value))
		}
	}

	return args, nil
}

// BuildArgumentStrings compiles the [Argument]s to into a slice of strings
// which can be used with [exec.Command].
//
// It returns an error if any name uniqueness constraints of any [Argument] is
// violated.
func BuildArgumentStrings(args []Argument) ([]string, error) {
	argString := make([]string, 0, len(args))

	for idx, arg := range args {
		if i := slices.IndexFunc(args[:idx], arg.Equal); i != -1 {
			return nil, fmt.Errorf(
				"%w: %s, %s",
				ErrArgumentCollision,
				arg.String(),
				args[i].String(),
			)
		}

		argString = append(argString, "-"+arg.name)

		if arg.value != "" {
			argString = append(argString, arg.value)
		}
	}

	return argString, nil
}
