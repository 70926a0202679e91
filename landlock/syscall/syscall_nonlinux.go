//go:build !linux

package syscall

import "syscall"

// LandlockGetABIVersion fails with ENOSYS; Landlock only exists on Linux.
func LandlockGetABIVersion() (version int, err error) {
	return -1, syscall.ENOSYS
}
