// landlock-abi-version prints the Landlock ABI version of the running
// kernel, or 0 when Landlock is unavailable. With -v it also prints
// the access rights a process-wrapper ruleset would handle.
package main

import (
	"fmt"
	"os"

	"github.com/sandbox-tools/process-wrapper/landlock"
	"github.com/spf13/pflag"
)

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "also print the handled access rights")
	pflag.Parse()

	v := landlock.ABIVersion()
	fmt.Println(v)
	if *verbose {
		if !landlock.Enabled() {
			fmt.Fprintln(os.Stderr, "landlock unavailable: commands run unrestricted")
			return
		}
		fmt.Printf("handled: %v\n", landlock.AccessAll(v))
	}
}
