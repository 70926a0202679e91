//go:build !linux

package landlock

import (
	"fmt"
	"syscall"
)

// NewRuleset fails on systems other than Linux.
func NewRuleset(opts ...Option) (*Ruleset, error) {
	return nil, &Error{Op: "landlock_create_ruleset", Err: fmt.Errorf("landlock is only supported on Linux: %w", syscall.ENOSYS)}
}

func (r *Ruleset) Allow(path string, access AccessFSSet) error {
	return r.checkOpen()
}

func (r *Ruleset) AllowPath(path string, access AccessFSSet) error {
	return r.checkOpen()
}

func (r *Ruleset) Apply() error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	r.state = stateApplied
	return fmt.Errorf("landlock_restrict_self: %w", syscall.ENOSYS)
}

func (r *Ruleset) Close() error {
	if r.state == stateOpen {
		r.state = stateClosed
	}
	return nil
}
