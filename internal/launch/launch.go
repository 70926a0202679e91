// Package launch replaces the current process image with a command.
package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Error reports a command that could not be executed.
type Error struct {
	Argv []string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to exec %q: %v", strings.Join(e.Argv, " "), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var errEmptyCommand = errors.New("empty command")

// Exec replaces the current process with argv[0], looked up in PATH
// like execvp(3) does, relative PATH entries included. argv and env
// are passed unchanged and the process keeps its PID.
//
// Exec only returns on failure.
func Exec(argv, env []string) error {
	if len(argv) == 0 {
		return &Error{Err: errEmptyCommand}
	}
	path, err := exec.LookPath(argv[0])
	if errors.Is(err, exec.ErrDot) {
		// execvp(3) runs programs found through relative PATH entries.
		err = nil
	}
	if err != nil {
		return &Error{Argv: argv, Err: err}
	}
	if err := unix.Exec(path, argv, env); err != nil {
		return &Error{Argv: argv, Err: err}
	}
	return nil
}
