package landlock

// Policy lists the paths a sandboxed process may access.
//
// Paths name a file or a directory; for files only the file rights of
// the access preset are granted. Dirs name directory trees.
// Read-only entries get AccessReadOnly, read-write entries get
// AccessAll. Every entry also covers everything beneath it.
type Policy struct {
	ReadOnlyPaths  []string
	ReadWritePaths []string
	ReadOnlyDirs   []string
	ReadWriteDirs  []string
}

// DefaultPolicy is always applied before any caller-provided policy.
// Dynamically linked programs need the system library and binary
// locations, and every program gets scratch space in /tmp.
var DefaultPolicy = Policy{
	ReadOnlyPaths: []string{
		"/usr",
		"/bin",
		"/var",
		"/lib",
		"/lib32",
		"/lib64",
	},
	ReadWritePaths: []string{
		"/tmp",
	},
}

// IsEmpty reports whether p names no path at all.
func (p Policy) IsEmpty() bool {
	return len(p.ReadOnlyPaths)+len(p.ReadWritePaths)+len(p.ReadOnlyDirs)+len(p.ReadWriteDirs) == 0
}
