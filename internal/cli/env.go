package cli

import (
	"strings"

	"github.com/spf13/cast"
)

// Environment variables read by ApplyEnv. Path lists are colon
// delimited like the corresponding flags.
const (
	EnvROPaths = "LANDLOCK_SANDBOX_RO_PATHS"
	EnvRWPaths = "LANDLOCK_SANDBOX_RW_PATHS"
	EnvRODirs  = "LANDLOCK_SANDBOX_RO_DIRS"
	EnvRWDirs  = "LANDLOCK_SANDBOX_RW_DIRS"
	EnvDebug   = "LANDLOCK_SANDBOX_DEBUG"
)

// ApplyEnv appends the paths named in the LANDLOCK_SANDBOX_*
// environment variables to cfg and enables debugging when
// LANDLOCK_SANDBOX_DEBUG is truthy. Empty list elements are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	for _, e := range []struct {
		name  string
		paths *[]string
	}{
		{EnvROPaths, &cfg.ROPaths},
		{EnvRWPaths, &cfg.RWPaths},
		{EnvRODirs, &cfg.RODirs},
		{EnvRWDirs, &cfg.RWDirs},
	} {
		*e.paths = append(*e.paths, splitPaths(getenv(e.name))...)
	}
	if truthy(getenv(EnvDebug)) {
		cfg.Debug = true
	}
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ":") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func truthy(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "y", "yes":
		return true
	}
	b, err := cast.ToBoolE(s)
	return err == nil && b
}
