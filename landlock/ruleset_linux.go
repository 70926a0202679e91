//go:build linux

package landlock

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	ll "github.com/sandbox-tools/process-wrapper/landlock/syscall"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// NewRuleset asks the kernel for a new ruleset which handles all file
// system access rights of the running kernel's ABI version (the refer
// right from V2 on).
//
// Callers should check Enabled first; NewRuleset fails if Landlock is
// not available.
func NewRuleset(opts ...Option) (*Ruleset, error) {
	r := &Ruleset{fd: -1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if !r.abiSet {
		r.abi = abiInfoFor(ABIVersion())
	}
	r.handled = AccessAll(r.abi.version).Intersect(r.abi.supportedAccessFS)
	if r.handled.IsEmpty() {
		return nil, &Error{Op: "landlock_create_ruleset", Err: fmt.Errorf("landlock is not supported by kernel or not enabled at boot time: %w", syscall.ENOSYS)}
	}

	rulesetAttr := ll.RulesetAttr{
		HandledAccessFS: uint64(r.handled),
	}
	fd, err := ll.LandlockCreateRuleset(&rulesetAttr, 0)
	if err != nil {
		if errors.Is(err, syscall.ENOSYS) || errors.Is(err, syscall.EOPNOTSUPP) {
			err = fmt.Errorf("landlock is not supported by kernel or not enabled at boot time: %w", err)
		} else if errors.Is(err, syscall.EINVAL) {
			err = fmt.Errorf("unknown flags, unknown access, or too small size: %w", err)
		}
		return nil, &Error{Op: "landlock_create_ruleset", Err: err}
	}
	r.fd = fd
	r.logger.Debug("created ruleset", zap.Stringer("ruleset", r))
	return r, nil
}

// Allow permits access to the file hierarchy under path.
//
// A path that does not exist is skipped without error. Rights that
// only apply to directories are rejected by the kernel when path is
// not a directory; use AllowPath for paths that may be files.
func (r *Ruleset) Allow(path string, access AccessFSSet) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("skipping missing path", zap.String("path", path), zap.Stringer("access", access))
			return nil
		}
		return &Error{Op: "stat", Path: path, Access: access, Err: err}
	}
	return r.addPath(path, access)
}

// AllowPath is like Allow, but when path is not a directory, access is
// narrowed to the rights that apply to files.
func (r *Ruleset) AllowPath(path string, access AccessFSSet) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("skipping missing path", zap.String("path", path), zap.Stringer("access", access))
			return nil
		}
		return &Error{Op: "stat", Path: path, Access: access, Err: err}
	}
	if !fi.IsDir() {
		access = access.Intersect(AccessAllFile)
	}
	return r.addPath(path, access)
}

func (r *Ruleset) addPath(path string, access AccessFSSet) error {
	if !access.IsSubset(r.handled) {
		return &Error{Op: "landlock_add_rule", Path: path, Access: access,
			Err: fmt.Errorf("access rights %v not handled by ruleset %v: %w", access.Intersect(^r.handled), r.handled, unix.EINVAL)}
	}

	fd, err := syscall.Open(path, unix.O_PATH|unix.O_CLOEXEC, 0)
	if err != nil {
		return &Error{Op: "open", Path: path, Access: access, Err: err}
	}
	defer syscall.Close(fd)

	pathBeneath := ll.PathBeneathAttr{
		ParentFd:      int32(fd),
		AllowedAccess: uint64(access),
	}
	err = ll.LandlockAddPathBeneathRule(r.fd, &pathBeneath, 0)
	if err != nil {
		if errors.Is(err, syscall.EINVAL) {
			err = fmt.Errorf("invalid flags, or directory access rights on a non-directory: %w", err)
		} else if errors.Is(err, syscall.ENOMSG) && access.IsEmpty() {
			err = fmt.Errorf("empty access rights: %w", err)
		}
		return &Error{Op: "landlock_add_rule", Path: path, Access: access, Err: err}
	}
	r.logger.Debug("allowing access", zap.String("path", path), zap.Stringer("access", access))
	return nil
}

// Apply enforces the ruleset on all threads of the current process
// and all processes it starts later. It sets the "no new privileges"
// flag first, which can not be unset either.
//
// Apply may only be called once. The ruleset's file descriptor is
// released afterwards, whether or not enforcement succeeded.
func (r *Ruleset) Apply() error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	defer func() {
		syscall.Close(r.fd)
		r.fd = -1
		r.state = stateApplied
	}()

	if err := ll.AllThreadsPrctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		// This prctl invocation should always work.
		return &Error{Op: "prctl(PR_SET_NO_NEW_PRIVS)", Err: bug(err)}
	}

	if err := ll.AllThreadsLandlockRestrictSelf(r.fd, 0); err != nil {
		if errors.Is(err, syscall.E2BIG) {
			err = fmt.Errorf("the maximum number of stacked rulesets is reached for the current thread: %w", err)
		}
		return &Error{Op: "landlock_restrict_self", Err: err}
	}
	r.logger.Debug("applied ruleset", zap.Stringer("handled", r.handled))
	return nil
}

// Close releases the ruleset without enforcing it. It is a no-op
// after Apply.
func (r *Ruleset) Close() error {
	if r.state != stateOpen {
		return nil
	}
	r.state = stateClosed
	err := syscall.Close(r.fd)
	r.fd = -1
	return err
}
