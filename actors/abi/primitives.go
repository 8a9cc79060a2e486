package abi

import (
	"strconv"

	stabi "github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
)

// The abi package contains definitions of all types that cross the boundary between the vesting
// actor and the environment executing it.

// Timestamp is a block time in whole seconds since the unix epoch.
// Schedule boundaries and the virtual withdrawal clock are both expressed as timestamps.
type Timestamp uint64

func (t Timestamp) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Seconds elapsed from `from` to t, or zero if t precedes `from`.
func (t Timestamp) Since(from Timestamp) uint64 {
	if t < from {
		return 0
	}
	return uint64(t - from)
}

func MinTimestamp(a, b Timestamp) Timestamp {
	if a < b {
		return a
	}
	return b
}

// TokenAmount is an amount of some denomination, in base units.
//
// BigInt types are aliases rather than new types because the latter introduce incredible amounts of noise converting to
// and from types in order to manipulate values. We give up some type safety for ergonomics.
type TokenAmount = big.Int

func NewTokenAmount(t int64) TokenAmount {
	return big.NewInt(t)
}

// MethodNum indexes an actor's exported method table.
type MethodNum = stabi.MethodNum

