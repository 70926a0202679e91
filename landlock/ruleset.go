package landlock

import (
	"fmt"

	"go.uber.org/zap"
)

// Option configures a Ruleset.
type Option func(*Ruleset)

// WithLogger makes the Ruleset log every rule it adds or skips at
// debug level.
func WithLogger(l *zap.Logger) Option {
	return func(r *Ruleset) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithABIVersion uses the given Landlock ABI version instead of
// probing the kernel. Versions above the newest known one are treated
// as the newest known one.
func WithABIVersion(v int) Option {
	return func(r *Ruleset) {
		r.abi = abiInfoFor(v)
		r.abiSet = true
	}
}

type rulesetState int

const (
	stateOpen rulesetState = iota
	stateApplied
	stateClosed
)

// A Ruleset owns one kernel Landlock ruleset. Rules are added with
// Allow, AllowPath and AddPolicy; Apply enforces them on the current
// process exactly once.
//
// A Ruleset is not safe for concurrent use. After Apply returns, the
// Ruleset can not be modified or applied again.
type Ruleset struct {
	fd      int
	abi     abiInfo
	abiSet  bool
	handled AccessFSSet
	state   rulesetState
	logger  *zap.Logger
}

// ABIVersion returns the Landlock ABI version the ruleset was created for.
func (r *Ruleset) ABIVersion() int {
	return r.abi.version
}

// HandledAccessFS returns the set of operations that the ruleset
// forbids unless a rule permits them.
func (r *Ruleset) HandledAccessFS() AccessFSSet {
	return r.handled
}

// String builds a human-readable representation of the Ruleset.
func (r *Ruleset) String() string {
	desc := r.handled.String()
	if r.handled == r.abi.supportedAccessFS && !r.handled.IsEmpty() {
		desc = "all"
	}

	var state string
	switch r.state {
	case stateApplied:
		state = " (applied)"
	case stateClosed:
		state = " (closed)"
	}
	return fmt.Sprintf("{Landlock V%v; HandledAccessFS: %v%v}", r.abi.version, desc, state)
}

func (r *Ruleset) checkOpen() error {
	switch r.state {
	case stateApplied:
		return ErrRulesetApplied
	case stateClosed:
		return ErrRulesetClosed
	}
	return nil
}

// AddPolicy adds the rules for all paths in p, in the order read-only
// paths, read-write paths, read-only dirs, read-write dirs.
// The order does not matter for enforcement, the access granted to a
// file is the union of all rules covering it.
func (r *Ruleset) AddPolicy(p Policy) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	rw := AccessAll(r.abi.version)
	for _, g := range []struct {
		paths  []string
		access AccessFSSet
		allow  func(string, AccessFSSet) error
	}{
		{p.ReadOnlyPaths, AccessReadOnly, r.AllowPath},
		{p.ReadWritePaths, rw, r.AllowPath},
		{p.ReadOnlyDirs, AccessReadOnly, r.Allow},
		{p.ReadWriteDirs, rw, r.Allow},
	} {
		for _, path := range g.paths {
			if err := g.allow(path, g.access); err != nil {
				return err
			}
		}
	}
	return nil
}

// Restrict creates a ruleset, adds the given policies to it and
// applies it to the current process.
func Restrict(policies []Policy, opts ...Option) error {
	r, err := NewRuleset(opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, p := range policies {
		if err := r.AddPolicy(p); err != nil {
			return err
		}
	}
	return r.Apply()
}
