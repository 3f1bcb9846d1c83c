// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package uefirun_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aibor/uefirun/internal/artifact"
	"github.com/aibor/uefirun/internal/build"
	"github.com/aibor/uefirun/internal/image"
	"github.com/aibor/uefirun/internal/qemu"
	"github.com/aibor/uefirun/internal/sys"
	"github.com/aibor/uefirun/internal/uefirun"
	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProject struct {
	root string
	spec uefirun.Spec
}

// newTestProject sets up a project with a fake emulator, a firmware file and
// a build step that produces the boot image below the target dir.
func newTestProject(t *testing.T) testProject {
	t.Helper()

	root := t.TempDir()
	tools := t.TempDir()

	firmware := filepath.Join(tools, "OVMF.fd")
	sys.WriteTestFile(t, firmware, []byte("firmware"), time.Time{})

	spec := projectSpec(t, root)
	spec.Paths = uefirun.Paths{
		Emulator: qemu.WriteFakeEmulator(t, tools),
		Firmware: firmware,
	}
	spec.Build.Steps = []build.Step{
		{
			Name:    "image",
			Dir:     root,
			Command: []string{"sh", "-c", "mkdir -p target/debug/out && : > target/debug/out/uefi.img"},
		},
	}
	spec.Image.Size = 64 * datasize.KB
	spec.Qemu.Accel = qemu.AccelTCG

	return testProject{root, spec}
}

func (p testProject) run(t *testing.T) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := uefirun.Run(t.Context(), p.spec, nil, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestRun(t *testing.T) {
	project := newTestProject(t)
	project.spec.Qemu.NoReboot = true
	project.spec.Qemu.ExtraArgs = []qemu.Argument{
		qemu.UniqueArg("serial", "stdio"),
	}

	stdout, stderr, err := project.run(t)
	require.NoError(t, err)

	bootImage := filepath.Join(project.root, "target", "debug", "out", "uefi.img")
	fsImage := filepath.Join(project.root, "build", "fs.img")

	expected := []string{
		"-machine", "q35,i8042=on",
		"-m", "512M",
		"-drive", "if=pflash,format=raw,readonly=on,file=" + project.spec.Paths.Firmware,
		"-drive", "format=raw,file=" + bootImage,
		"-device", "piix3-ide,id=ide",
		"-drive", "id=fsdisk,if=none,format=raw,file=" + fsImage,
		"-device", "ide-hd,drive=fsdisk,bus=ide.0,unit=0",
		"-rtc", "base=localtime",
		"-accel", "tcg",
		"-cpu", "max",
		"-no-reboot",
		"-serial", "stdio",
	}

	assert.Equal(t, strings.Join(expected, "\n")+"\n", stdout)
	assert.Equal(t, "stderr line\n", stderr)

	info, err := os.Stat(fsImage)
	require.NoError(t, err)
	assert.EqualValues(t, 65536, info.Size())
}

func TestRun_KeepsPersistentImage(t *testing.T) {
	project := newTestProject(t)
	fsImage := project.spec.Image.Path
	content := bytes.Repeat([]byte{0x55}, 128*1024)
	sys.WriteTestFile(t, fsImage, content, time.Time{})

	_, _, err := project.run(t)
	require.NoError(t, err)

	actual, err := os.ReadFile(fsImage)
	require.NoError(t, err)
	assert.Equal(t, content, actual)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name        string
		prepare     func(*testing.T, *testProject)
		expectedErr error
		imageExists bool
	}{
		{
			name: "missing emulator",
			prepare: func(_ *testing.T, p *testProject) {
				p.spec.Paths.Emulator = filepath.Join(p.root, "qemu-system-nothing")
			},
			expectedErr: &uefirun.ConfigError{},
		},
		{
			name: "missing firmware",
			prepare: func(_ *testing.T, p *testProject) {
				p.spec.Paths.Firmware = filepath.Join(p.root, "nothing.fd")
			},
			expectedErr: &uefirun.ConfigError{},
		},
		{
			name: "build fails",
			prepare: func(_ *testing.T, p *testProject) {
				p.spec.Build.Steps = append(p.spec.Build.Steps, build.Step{
					Name:    "fail",
					Dir:     p.root,
					Command: []string{"false"},
				})
			},
			expectedErr: &build.StepError{},
		},
		{
			name: "no boot image",
			prepare: func(_ *testing.T, p *testProject) {
				p.spec.Build.Skip = true
			},
			expectedErr: artifact.ErrNotFound,
		},
		{
			name: "persistent image not provisionable",
			prepare: func(t *testing.T, p *testProject) {
				t.Helper()
				require.NoError(t, os.MkdirAll(p.spec.Image.Path, 0o755))
			},
			expectedErr: &image.Error{},
		},
		{
			name: "extra args collide",
			prepare: func(_ *testing.T, p *testProject) {
				p.spec.Qemu.ExtraArgs = []qemu.Argument{
					qemu.UniqueArg("machine", "pc"),
				}
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "emulator fails",
			prepare: func(t *testing.T, _ *testProject) {
				t.Helper()
				t.Setenv("FAKE_QEMU_EXIT_CODE", "7")
			},
			expectedErr: qemu.ErrNonZeroExitCode,
			imageExists: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := newTestProject(t)
			tt.prepare(t, &project)

			_, _, err := project.run(t)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.imageExists {
				assert.FileExists(t, project.spec.Image.Path)
			} else {
				assert.NoFileExists(t, project.spec.Image.Path)
			}
		})
	}
}

func TestRun_ConfigCheckedBeforeBuild(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*uefirun.Spec)
	}{
		{
			name: "no firmware",
			modify: func(s *uefirun.Spec) {
				s.Paths.Firmware = ""
			},
		},
		{
			name: "extra args collide",
			modify: func(s *uefirun.Spec) {
				s.Qemu.ExtraArgs = []qemu.Argument{
					qemu.UniqueArg("machine", "pc"),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := newTestProject(t)
			tt.modify(&project.spec)

			marker := filepath.Join(project.root, "built")
			project.spec.Build.Steps = []build.Step{
				{
					Name:    "marker",
					Dir:     project.root,
					Command: []string{"touch", marker},
				},
			}

			_, _, err := project.run(t)
			require.ErrorIs(t, err, &uefirun.ConfigError{})
			assert.NoFileExists(t, marker, "build should not have run")
			assert.NoFileExists(t, project.spec.Image.Path)
		})
	}
}

func TestRun_EmulatorExitCode(t *testing.T) {
	project := newTestProject(t)
	t.Setenv("FAKE_QEMU_EXIT_CODE", "42")

	_, _, err := project.run(t)

	var cmdErr *qemu.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 42, cmdErr.ExitCode)
	assert.NotErrorIs(t, err, &uefirun.ConfigError{})
}
