// Package syscall provides a low-level interface to the Linux Landlock sandboxing feature.
//
// The access right constants and attribute structs mirror the kernel
// definitions in usr/include/linux/landlock.h.
package syscall

// Landlock access permissions, for use in "access" bit fields:
const (
	AccessFSExecute    = (1 << 0)
	AccessFSWriteFile  = (1 << 1)
	AccessFSReadFile   = (1 << 2)
	AccessFSReadDir    = (1 << 3)
	AccessFSRemoveDir  = (1 << 4)
	AccessFSRemoveFile = (1 << 5)
	AccessFSMakeChar   = (1 << 6)
	AccessFSMakeDir    = (1 << 7)
	AccessFSMakeReg    = (1 << 8)
	AccessFSMakeSock   = (1 << 9)
	AccessFSMakeFifo   = (1 << 10)
	AccessFSMakeBlock  = (1 << 11)
	AccessFSMakeSym    = (1 << 12)
	AccessFSRefer      = (1 << 13)
)

// Flags for LandlockCreateRuleset.
const (
	// CreateRulesetVersion asks the kernel for the highest
	// supported Landlock ABI version instead of creating a ruleset.
	CreateRulesetVersion = 1 << 0
)

// RulesetAttr is the Landlock ruleset definition.
//
// Argument of LandlockCreateRuleset(). This structure can grow in future versions of Landlock.
type RulesetAttr struct {
	// HandledAccessFS is the bitmask of actions that is handled
	// by this ruleset and should then be forbidden if no rule
	// explicitly allows them.
	HandledAccessFS uint64
}

// The Landlock rule types:
const (
	RuleTypePathBeneath = 1
)

// PathBeneathAttr references a file hierarchy and defines the desired
// extent to which it should be usable when the rule is enforced.
//
// The kernel struct is packed to 12 bytes; the kernel reads exactly
// that many bytes, so the trailing Go padding is never looked at.
type PathBeneathAttr struct {
	// AllowedAccess is a bitmask of allowed actions for this file
	// hierarchy (cf. "Filesystem flags"). The enabled bits must
	// be a subset of the bits defined in the ruleset.
	AllowedAccess uint64

	// ParentFd is a file descriptor, open with `O_PATH`, which identifies
	// the parent directory of a file hierarchy, or just a file.
	ParentFd int32
}
