// process-wrapper restricts the filesystem access of a command with
// Landlock and then executes it in place of itself.
//
// Usage:
//
//	process-wrapper [--debug] [--help]
//	        [--ro_paths=P1:P2:...] [--rw_paths=P1:...]
//	        [--ro_dirs=D1:...]     [--rw_dirs=D1:...]
//	        -- COMMAND [ARGS...]
//
// On kernels without Landlock support the command is executed
// without any restriction.
package main

import (
	"os"

	"github.com/sandbox-tools/process-wrapper/internal/wrapper"
)

func main() {
	os.Exit(wrapper.New().Run(os.Args[1:]))
}
