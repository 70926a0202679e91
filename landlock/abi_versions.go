package landlock

import ll "github.com/sandbox-tools/process-wrapper/landlock/syscall"

type abiInfo struct {
	version           int
	supportedAccessFS AccessFSSet
}

var abiInfos = []abiInfo{
	{
		version:           0,
		supportedAccessFS: 0,
	},
	{
		version:           1,
		supportedAccessFS: (1 << 13) - 1,
	},
	{
		version:           2,
		supportedAccessFS: (1 << 14) - 1,
	},
}

// abiInfoFor returns the ABI table entry for a kernel-reported
// version. Newer kernels are treated as the newest version known here.
func abiInfoFor(v int) abiInfo {
	if v < 0 {
		v = 0
	}
	if v >= len(abiInfos) {
		v = len(abiInfos) - 1
	}
	return abiInfos[v]
}

// ABIVersion returns the Landlock ABI version reported by the running
// kernel. 0 means that Landlock is not supported: the syscall is
// unknown or Landlock was disabled at boot time.
func ABIVersion() int {
	v, err := ll.LandlockGetABIVersion()
	if err != nil || v < 0 {
		return 0 // ABI version 0 is "no Landlock support".
	}
	return v
}

// Enabled reports whether the running kernel supports Landlock.
func Enabled() bool {
	return ABIVersion() > 0
}
