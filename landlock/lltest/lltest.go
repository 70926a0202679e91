// Package lltest has helpers for Landlock-enabled tests.
//
// Enforcing a ruleset can not be undone, so tests which enforce one
// run in a subprocess of the test binary.
package lltest

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"

	ll "github.com/sandbox-tools/process-wrapper/landlock/syscall"
)

const subprocessEnv = "IS_SUBPROCESS"

// RunInSubprocess runs the given test function in a subprocess
// and forwards its output.
//
// A subprocess which exits abnormally without reporting a result, for
// example because it was killed, fails the test.
func RunInSubprocess(t *testing.T, f func()) {
	t.Helper()

	if IsRunningInSubprocess() {
		f()
		return
	}

	args := append(os.Args[1:], "-test.run="+regexp.QuoteMeta(t.Name())+"$")

	// Make sure that the parent process cleans up the actual TempDir.
	// If the child process uses t.TempDir(), it'll create it in $TMPDIR.
	t.Setenv("TMPDIR", t.TempDir())

	t.Setenv(subprocessEnv, "yes")
	buf, err := exec.Command(os.Args[0], args...).Output()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		t.Fatalf("Could not execute test in subprocess: %v", err)
	}
	if exitErr != nil && len(exitErr.Stderr) > 0 {
		fmt.Fprint(os.Stderr, string(exitErr.Stderr))
	}

	res, lines := readResult(buf, err)
	for _, l := range lines {
		fmt.Println(l)
	}
	switch res {
	case resultFail:
		t.Error("Test failed in subprocess")
	case resultCrash:
		t.Errorf("Test subprocess exited without a result: %v", err)
	case resultSkip:
		t.Skip("Test skipped in subprocess")
	}
}

type result int

const (
	resultPass result = iota
	resultFail
	resultSkip
	resultCrash
)

// readResult interprets the output of a test subprocess which ended
// with runErr. It also returns the output lines which are not part
// of the test framework's bookkeeping.
func readResult(out []byte, runErr error) (result, []string) {
	var (
		failed, skipped, passed bool
		lines                   []string
	)
	for _, l := range strings.Split(string(out), "\n") {
		switch {
		case l == "FAIL":
			failed = true
		case strings.HasPrefix(l, "--- SKIP"):
			skipped = true
		case l == "PASS":
			passed = true
		case strings.HasPrefix(l, "===") || strings.HasPrefix(l, "---") || l == "":
		default:
			lines = append(lines, l)
		}
	}
	switch {
	case failed:
		return resultFail, lines
	case skipped:
		return resultSkip, lines
	case runErr != nil && !passed:
		return resultCrash, lines
	}
	return resultPass, lines
}

// TempDir is a replacement for t.TempDir() to be used in Landlock tests.
// If we were using t.TempDir(), the test framework would try to remove it
// after the test, even in Landlocked subprocess tests where this fails.
func TempDir(t testing.TB) string {
	t.Helper()

	if IsRunningInSubprocess() {
		dir, err := os.MkdirTemp("", "LandlockTestTempDir")
		if err != nil {
			t.Fatalf("os.MkdirTemp: %v", err)
		}
		return dir
	}
	return t.TempDir()
}

// RequireABI skips the test if the kernel does not provide the given ABI version.
func RequireABI(t testing.TB, want int) {
	t.Helper()

	if v, err := ll.LandlockGetABIVersion(); err != nil || v < want {
		t.Skipf("Requires Landlock >= V%v, got V%v (err=%v)", want, v, err)
	}
}

// IsRunningInSubprocess reports whether the test binary was started
// by RunInSubprocess.
func IsRunningInSubprocess() bool {
	return os.Getenv(subprocessEnv) != ""
}

// MustWriteFile creates a file with some content at path.
func MustWriteFile(t testing.TB, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte("somecontent"), 0600); err != nil {
		t.Fatalf("os.WriteFile(%q, ...): %v", path, err)
	}
}
