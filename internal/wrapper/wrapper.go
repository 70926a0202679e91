// Package wrapper runs the sandbox pipeline: parse the command line,
// probe Landlock, restrict the process and execute the command.
package wrapper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sandbox-tools/process-wrapper/internal/cli"
	"github.com/sandbox-tools/process-wrapper/internal/launch"
	"github.com/sandbox-tools/process-wrapper/internal/logger"
	"github.com/sandbox-tools/process-wrapper/landlock"
	"go.uber.org/zap"
)

// Wrapper holds the collaborators of Run. New fills them with the
// real implementations.
type Wrapper struct {
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// Enabled reports whether the kernel supports Landlock.
	Enabled func() bool
	// Restrict enforces the policies on the current process.
	Restrict func(policies []landlock.Policy, opts ...landlock.Option) error
	// Exec replaces the current process and only returns on failure.
	Exec func(argv, env []string) error
}

// New returns a Wrapper acting on the current process.
func New() *Wrapper {
	return &Wrapper{
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		Enabled:  landlock.Enabled,
		Restrict: landlock.Restrict,
		Exec:     launch.Exec,
	}
}

// Run executes the pipeline for args (without the program name) and
// returns the exit code to use when the command could not be started.
func (w *Wrapper) Run(args []string) int {
	cfg, err := cli.Parse(args)
	if errors.Is(err, cli.ErrHelp) {
		cli.Usage(w.Stderr)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w.Stderr, "process-wrapper: %v\nRun with --help for usage.\n", err)
		return 1
	}
	cli.ApplyEnv(cfg, w.Getenv)

	log := logger.New(w.Stderr, cfg.Debug)
	defer log.Sync()

	log.Debug("parsed command line",
		zap.Strings("ro_paths", cfg.ROPaths),
		zap.Strings("rw_paths", cfg.RWPaths),
		zap.Strings("ro_dirs", cfg.RODirs),
		zap.Strings("rw_dirs", cfg.RWDirs),
		zap.Strings("command", cfg.Command))

	// Without Landlock the command runs unrestricted. This keeps the
	// wrapper usable on old kernels, at the price of no protection.
	if !w.Enabled() {
		log.Debug("landlock is not supported by the kernel; executing without sandbox")
		return w.exec(log, cfg.Command)
	}

	user := landlock.Policy{
		ReadOnlyPaths:  cfg.ROPaths,
		ReadWritePaths: cfg.RWPaths,
		ReadOnlyDirs:   cfg.RODirs,
		ReadWriteDirs:  cfg.RWDirs,
	}
	policies := []landlock.Policy{landlock.DefaultPolicy}
	if !user.IsEmpty() {
		policies = append(policies, user)
	}
	err = w.Restrict(policies, landlock.WithLogger(log))
	if err != nil {
		fmt.Fprintf(w.Stderr, "Failed to apply landlock ruleset: %v\n", err)
		return 1
	}
	return w.exec(log, cfg.Command)
}

func (w *Wrapper) exec(log *zap.Logger, argv []string) int {
	log.Debug("executing", zap.String("command", strings.Join(argv, " ")))
	log.Sync()
	err := w.Exec(argv, w.Environ())
	if err == nil {
		// Only reachable with a replaced Exec.
		return 0
	}
	fmt.Fprintln(w.Stderr, err)
	return 1
}
