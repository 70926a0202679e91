package landlock

import (
	"errors"
	"fmt"
	"testing"

	ll "github.com/sandbox-tools/process-wrapper/landlock/syscall"
)

func TestRulesetString(t *testing.T) {
	for _, tc := range []struct {
		r    Ruleset
		want string
	}{
		{
			r:    Ruleset{abi: abiInfos[2], handled: AccessAll(2)},
			want: "{Landlock V2; HandledAccessFS: all}",
		},
		{
			r:    Ruleset{abi: abiInfos[1], handled: AccessAll(1), state: stateApplied},
			want: "{Landlock V1; HandledAccessFS: all (applied)}",
		},
		{
			r:    Ruleset{abi: abiInfos[2], handled: ll.AccessFSReadFile, state: stateClosed},
			want: "{Landlock V2; HandledAccessFS: {ReadFile} (closed)}",
		},
		{
			r:    Ruleset{abi: abiInfos[0]},
			want: fmt.Sprintf("{Landlock V0; HandledAccessFS: %v}", AccessFSSet(0)),
		},
	} {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("Ruleset.String() = %q, want %q", got, tc.want)
		}
	}
}

func TestCheckOpen(t *testing.T) {
	for _, tc := range []struct {
		state rulesetState
		want  error
	}{
		{stateOpen, nil},
		{stateApplied, ErrRulesetApplied},
		{stateClosed, ErrRulesetClosed},
	} {
		r := &Ruleset{state: tc.state}
		if err := r.checkOpen(); !errors.Is(err, tc.want) {
			t.Errorf("checkOpen() in state %v = %v, want %v", tc.state, err, tc.want)
		}
		if tc.want == nil {
			continue
		}
		if err := r.AddPolicy(DefaultPolicy); !errors.Is(err, tc.want) {
			t.Errorf("AddPolicy() in state %v = %v, want %v", tc.state, err, tc.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Op: "landlock_add_rule", Path: "/opt/data", Access: AccessReadOnly, Err: errors.New("invalid argument")}
	want := `landlock_add_rule: path="/opt/data", access={Execute,ReadFile,ReadDir}: invalid argument`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &Error{Op: "landlock_restrict_self", Err: errors.New("argument list too long")}
	want = "landlock_restrict_self: argument list too long"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
