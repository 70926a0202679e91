package launch

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "LAUNCH_HELPER_ARGV0"

// TestMain lets the test binary act as a process that replaces itself.
func TestMain(m *testing.M) {
	if argv0 := os.Getenv(helperEnv); argv0 != "" {
		err := Exec([]string{argv0, "hi", "there"}, os.Environ())
		os.Stderr.WriteString(err.Error())
		os.Exit(3)
	}
	os.Exit(m.Run())
}

func TestExecReplacesProcess(t *testing.T) {
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skipf("echo not available: %v", err)
	}

	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), helperEnv+"="+echo)
	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "hi there\n", string(out))
}

func TestExecRelativePathEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prog"), []byte("#!/bin/sh\necho \"$@\"\n"), 0755))

	cmd := exec.Command(os.Args[0])
	cmd.Dir = dir
	cmd.Env = []string{"PATH=.", helperEnv + "=prog"}
	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "hi there\n", string(out))
}

func TestExecNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does_not_exist")
	err := Exec([]string{missing, "arg"}, os.Environ())
	require.Error(t, err)

	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, []string{missing, "arg"}, lerr.Argv)
	assert.Contains(t, err.Error(), `failed to exec "`+missing+` arg"`)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExecNotExecutable(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "script")
	require.NoError(t, os.WriteFile(fpath, []byte("#!/bin/sh\n"), 0600))

	err := Exec([]string{fpath}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to exec")
}

func TestExecEmpty(t *testing.T) {
	err := Exec(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty command")
}
