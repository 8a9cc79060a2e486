package builtin

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"golang.org/x/xerrors"

	"github.com/cpvesting/vesting-actors/actors/runtime"
)

///// Code shared by multiple built-in actors. /////

// codedError is an error that carries the exit code with which an actor should abort.
type codedError struct {
	code exitcode.ExitCode
	err  error
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func (e *codedError) ExitCode() exitcode.ExitCode {
	return e.code
}

// Wrapf returns an error carrying an exit code. The message supports %w.
func Wrapf(code exitcode.ExitCode, msg string, args ...interface{}) error {
	return &codedError{code: code, err: xerrors.Errorf(msg, args...)}
}

// ExitCodeOf returns the exit code carried by the outermost coded error in err's chain,
// or defaultCode if there is none.
func ExitCodeOf(err error, defaultCode exitcode.ExitCode) exitcode.ExitCode {
	var coded *codedError
	if xerrors.As(err, &coded) {
		return coded.code
	}
	return defaultCode
}

// Aborts with an ErrIllegalArgument if predicate is not true.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// In the event that an error is non-nil, aborts with the code carried by the error,
// or defaultExitCode if it carries none. The error is appended to the message.
func RequireNoErr(rt runtime.Runtime, err error, defaultExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		code := ExitCodeOf(err, defaultExitCode)
		newMsg := msg + ": %s"
		newArgs := append(args, err)
		rt.Abortf(code, newMsg, newArgs...)
	}
}

// ValidateAddressString is the default address validation capability. It accepts any
// textual address understood by go-address, on any network prefix.
func ValidateAddressString(s string) (addr.Address, error) {
	if s == "" {
		return addr.Undef, xerrors.New("empty address")
	}
	a, err := addr.NewFromString(s)
	if err != nil {
		return addr.Undef, xerrors.Errorf("invalid address %q: %w", s, err)
	}
	return a, nil
}

// AddressSyscalls adapts ValidateAddressString to the runtime syscall interface.
type AddressSyscalls struct{}

var _ runtime.Syscalls = AddressSyscalls{}

func (AddressSyscalls) ValidateAddress(s string) (addr.Address, error) {
	return ValidateAddressString(s)
}
