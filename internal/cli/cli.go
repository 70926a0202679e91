// Package cli translates the wrapper's command line into a Config.
//
// The grammar is strict: every token before "--" must be one of the
// known flags, "--" must be present and must be followed by the
// command to execute. The filesystem is never consulted.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

const usage = `A sandbox process wrapper. It restricts the filesystem access of a
command with Landlock and then executes it, e.g.:

  process-wrapper --ro_dirs a:b:c --rw_paths=/tmp:/usr/tmp -- ./my_program <args>

Usage:
  process-wrapper [--debug] [--help]
          [--ro_paths=P1:P2:...] [--rw_paths=P1:...]
          [--ro_dirs=D1:...]     [--rw_dirs=D1:...]
          -- COMMAND [ARGS...]

Flags:
`

const usageNote = `
All path flags refer to a path and *all* paths below it; rules are
applied recursively. Repeated flags accumulate. /usr, /bin, /var, /lib,
/lib32 and /lib64 are always readable and /tmp is always writable.
Without kernel support for Landlock the command runs unrestricted.
`

// ErrHelp is returned by Parse when --help was requested.
var ErrHelp = errors.New("help requested")

// Config is the parsed command line.
type Config struct {
	ROPaths []string // read-only files or directories
	RWPaths []string // read-write files or directories
	RODirs  []string // read-only directory trees
	RWDirs  []string // read-write directory trees
	Debug   bool

	// Command is the program to execute followed by its arguments,
	// exactly as given after "--".
	Command []string
}

// UsageError reports a malformed or incomplete command line.
type UsageError struct {
	Token string // offending token, if any
	Err   error
}

func (e *UsageError) Error() string {
	if e.Token == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Token)
}

func (e *UsageError) Unwrap() error { return e.Err }

var (
	errInvalidArgument = errors.New("invalid argument")
	errMissingDash     = errors.New(`invalid arguments, there must be a -- between sandbox args and the actual program`)
	errMissingCommand  = errors.New("missing command after --")
)

// pathList is a pflag.Value holding a colon-delimited list of paths.
// Repeated flags append to the list.
type pathList struct {
	paths *[]string
}

func (l pathList) String() string {
	if l.paths == nil {
		return ""
	}
	return strings.Join(*l.paths, ":")
}

func (l pathList) Set(value string) error {
	if value == "" {
		return errors.New("empty path list")
	}
	parts := strings.Split(value, ":")
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("empty path in list %q", value)
		}
	}
	*l.paths = append(*l.paths, parts...)
	return nil
}

func (l pathList) Type() string { return "paths" }

func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("process-wrapper", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.Var(pathList{&cfg.ROPaths}, "ro_paths", "a colon delimited list of readonly directories and files")
	fs.Var(pathList{&cfg.RWPaths}, "rw_paths", "a colon delimited list of readwrite directories and files")
	fs.Var(pathList{&cfg.RODirs}, "ro_dirs", "a colon delimited list of readonly directory trees")
	fs.Var(pathList{&cfg.RWDirs}, "rw_dirs", "a colon delimited list of readwrite directory trees")
	fs.BoolVar(&cfg.Debug, "debug", false, "print diagnostics about the applied rules")
	fs.Bool("help", false, "print this help and exit")
	return fs
}

// Parse parses args, which excludes the program name.
//
// It returns ErrHelp as soon as --help is seen and a *UsageError for
// any malformed command line.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	fs := newFlagSet(cfg)

	help := false
	err := fs.ParseAll(args, func(flag *pflag.Flag, value string) error {
		if flag.Name == "help" {
			help = true
			return ErrHelp
		}
		return fs.Set(flag.Name, value)
	})
	if help || errors.Is(err, pflag.ErrHelp) {
		return nil, ErrHelp
	}
	if err != nil {
		return nil, &UsageError{Err: err}
	}

	rest := fs.Args()
	switch dash := fs.ArgsLenAtDash(); {
	case dash < 0 && len(rest) > 0:
		// Flag parsing stopped at a token that is not a flag.
		return nil, &UsageError{Token: rest[0], Err: errInvalidArgument}
	case dash < 0:
		return nil, &UsageError{Err: errMissingDash}
	case len(rest) == 0:
		return nil, &UsageError{Token: "--", Err: errMissingCommand}
	}
	cfg.Command = rest
	return cfg, nil
}

// Usage writes the help text to w.
func Usage(w io.Writer) {
	fs := newFlagSet(&Config{})
	fmt.Fprint(w, usage)
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprint(w, usageNote)
}
