package landlock

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRulesetApplied is returned when a Ruleset is modified or
	// applied again after Apply was called.
	ErrRulesetApplied = errors.New("landlock: ruleset already applied")

	// ErrRulesetClosed is returned when a Ruleset is used after Close.
	ErrRulesetClosed = errors.New("landlock: ruleset closed")
)

// Error records a failed kernel operation while building or enforcing
// a ruleset, together with the path and access rights it concerned.
type Error struct {
	Op     string // landlock_create_ruleset, open, landlock_add_rule, prctl, landlock_restrict_self
	Path   string
	Access AccessFSSet
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		fmt.Fprintf(&b, ": path=%q, access=%v", e.Path, e.Access)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Denotes an error that should not have happened.
func bug(err error) error {
	return fmt.Errorf("BUG: this should not have happened: %w", err)
}
