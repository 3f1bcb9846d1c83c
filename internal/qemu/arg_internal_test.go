// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgument_Name(t *testing.T) {
	a := Argument{name: "some"}
	assert.Equal(t, "some", a.Name())
}

func TestArgument_Value(t *testing.T) {
	a := Argument{value: "some"}
	assert.Equal(t, "some", a.Value())
}

func TestArgument_UniqueName(t *testing.T) {
	a := Argument{nonUniqueName: false}
	b := Argument{nonUniqueName: true}

	assert.True(t, a.UniqueName())
	assert.False(t, b.UniqueName())
}

func TestArgument_String(t *testing.T) {
	assert.Equal(t, "-no-reboot", UniqueArg("no-reboot").String())
	assert.Equal(t, "-rtc base=localtime", UniqueArg("rtc", "base=localtime").String())
}

func TestArgument_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a     Argument
		b     Argument
		equal bool
	}{
		{
			name:  "both empty",
			a:     Argument{},
			b:     Argument{},
			equal: true,
		},
		{
			name:  "one empty",
			a:     Argument{name: "t"},
			b:     Argument{},
			equal: false,
		},
		{
			name:  "same name",
			a:     Argument{name: "t", value: "5"},
			b:     Argument{name: "t", value: "6"},
			equal: true,
		},
		{
			name:  "same non-unique name",
			a:     Argument{name: "t", value: "5", nonUniqueName: true},
			b:     Argument{name: "t", value: "6", nonUniqueName: true},
			equal: false,
		},
		{
			name:  "same non-unique name and value",
			a:     Argument{name: "t", value: "5", nonUniqueName: true},
			b:     Argument{name: "t", value: "5", nonUniqueName: true},
			equal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.equal {
				assert.True(t, tt.a.Equal(tt.b), "a")
				assert.True(t, tt.b.Equal(tt.a), "b")
			} else {
				assert.False(t, tt.a.Equal(tt.b), "a")
				assert.False(t, tt.b.Equal(tt.a), "b")
			}
		})
	}
}

func TestMemoryMiB(t *testing.T) {
	assert.Equal(t, "512M", memoryMiB(DefaultMemory))
	assert.Equal(t, "1024M", memoryMiB(1<<30))
	assert.Equal(t, "1M", memoryMiB(1<<20+1))
}
