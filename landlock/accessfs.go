package landlock

import (
	"fmt"
	"strings"

	ll "github.com/sandbox-tools/process-wrapper/landlock/syscall"
)

// AccessFSSet is a set of Landlockable file system access operations.
type AccessFSSet uint64

var accessFSNames = []string{
	"Execute",
	"WriteFile",
	"ReadFile",
	"ReadDir",
	"RemoveDir",
	"RemoveFile",
	"MakeChar",
	"MakeDir",
	"MakeReg",
	"MakeSock",
	"MakeFifo",
	"MakeBlock",
	"MakeSym",
	"Refer",
}

// Canned access sets.
const (
	// AccessReadOnly permits executing and reading files and
	// listing directories.
	AccessReadOnly AccessFSSet = ll.AccessFSExecute | ll.AccessFSReadFile | ll.AccessFSReadDir

	// AccessAllFile is the set of access rights that apply to
	// regular files. Only these may be granted on a path that is
	// not a directory.
	AccessAllFile AccessFSSet = ll.AccessFSExecute | ll.AccessFSWriteFile | ll.AccessFSReadFile

	// accessDirV1 is AccessAllDir without the refer right.
	accessDirV1 AccessFSSet = ll.AccessFSReadDir | ll.AccessFSRemoveDir | ll.AccessFSRemoveFile | ll.AccessFSMakeChar | ll.AccessFSMakeDir | ll.AccessFSMakeReg | ll.AccessFSMakeSock | ll.AccessFSMakeFifo | ll.AccessFSMakeBlock | ll.AccessFSMakeSym
)

// AccessAllDir returns the directory manipulation rights available
// under the given Landlock ABI version. The refer right (moving and
// linking files between directories) is only part of it from V2 on.
func AccessAllDir(abiVersion int) AccessFSSet {
	a := accessDirV1
	if abiVersion >= 2 {
		a = a.Union(ll.AccessFSRefer)
	}
	return a
}

// AccessAll returns the union of AccessAllFile and AccessAllDir for
// the given Landlock ABI version.
func AccessAll(abiVersion int) AccessFSSet {
	return AccessAllFile.Union(AccessAllDir(abiVersion))
}

// Union returns the set of operations in a or b.
func (a AccessFSSet) Union(b AccessFSSet) AccessFSSet {
	return a | b
}

// Intersect returns the set of operations in both a and b.
func (a AccessFSSet) Intersect(b AccessFSSet) AccessFSSet {
	return a & b
}

// IsSubset reports whether every operation in a is also in b.
func (a AccessFSSet) IsSubset(b AccessFSSet) bool {
	return a&b == a
}

// IsEmpty reports whether a contains no operation.
func (a AccessFSSet) IsEmpty() bool {
	return a == 0
}

func (a AccessFSSet) hasRefer() bool {
	return a&ll.AccessFSRefer != 0
}

func (a AccessFSSet) String() string {
	if a.IsEmpty() {
		return "∅"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < 64; i++ {
		if a&(1<<i) == 0 {
			continue
		}
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		if i < len(accessFSNames) {
			b.WriteString(accessFSNames[i])
		} else {
			fmt.Fprintf(&b, "1<<%v", i)
		}
	}
	b.WriteByte('}')
	return b.String()
}
