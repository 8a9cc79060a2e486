package vesting

import (
	"fmt"

	"github.com/filecoin-project/go-state-types/exitcode"
)

// The denomination tracked by the cliff and linear schedule when setup names none.
const DefaultDenom = "uluna"

// Maximum number of principals in the withdrawal whitelist.
const MaxWhitelistSize = 128

// Actor-specific exit codes.
const (
	// The cliff pool must be drained before any linear withdrawal, whatever the denomination.
	ErrWithdrawCliffFirst = exitcode.FirstActorSpecificExitCode + iota
	// The computed withdrawal is zero.
	ErrNothingToWithdraw
	// A paid amount does not convert to a representable number of seconds.
	ErrConversionOverflow
	// The schedule releases less than one base unit per second, so a constrained payout
	// cannot be converted back into elapsed time.
	ErrZeroVestingRate
)

// Controller selects the principal that may run delegation and administrative operations.
type Controller uint64

const (
	ControllerOwner Controller = iota
	// Older schedule variants let the recipient manage the arrangement.
	ControllerRecipient
)

func (c Controller) String() string {
	switch c {
	case ControllerOwner:
		return "owner"
	case ControllerRecipient:
		return "recipient"
	default:
		return fmt.Sprintf("controller(%d)", uint64(c))
	}
}

// ParseController parses the textual form produced by String.
func ParseController(s string) (Controller, error) {
	switch s {
	case "", "owner":
		return ControllerOwner, nil
	case "recipient":
		return ControllerRecipient, nil
	default:
		return 0, fmt.Errorf("unknown controller %q", s)
	}
}

func (c Controller) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
