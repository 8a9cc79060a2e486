package runtime

import (
	"context"
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
)

// Runtime is the execution environment's view offered to the vesting actor.
// This is everything that is accessible to actors, beyond parameters.
type Runtime interface {
	// Information related to the current message being executed.
	Message() Message

	// The time of the block including the current message, in seconds.
	CurrTime() abi.Timestamp

	// Validates the caller against some predicate.
	// Exported actor methods must invoke at least one caller validation before returning.
	ValidateImmediateCallerAcceptAny()
	ValidateImmediateCallerIs(addrs ...addr.Address)

	// The balance of the receiver in a single denomination.
	CurrentBalance(denom string) abi.TokenAmount

	// Looks up the receiver's delegation to a validator. The second return is false when
	// no delegation is known, or the staking module could not be queried.
	QueryDelegation(validator string) (Delegation, bool)

	// Provides a handle for the actor's state object.
	State() StateHandle

	Store() Store

	// Abortf halts the method with a non-zero exit code. State changes made by the message are rolled
	// back and its response discarded, so no instruction from an aborted call ever executes.
	// The formatted message is diagnostic only.
	Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{})

	// Provides the system call interface.
	Syscalls() Syscalls

	// Context scopes store operations made through the ADT layer.
	Context() context.Context

	// Log writes a diagnostic message at the given level. Logs are not part of the response.
	Log(level rt.LogLevel, msg string, args ...interface{})
}

// Store defines the storage module exposed to actors.
type Store interface {
	// Retrieves and deserializes an object from the store into `o`. Returns whether successful.
	StoreGet(c cid.Cid, o CBORUnmarshaler) bool
	// Serializes and stores an object, returning its CID.
	StorePut(x CBORMarshaler) cid.Cid
}

// Message contains information available to the actor about the executing message.
type Message interface {
	// The address of the immediate calling principal.
	Caller() addr.Address

	// The address of the ledger account receiving the message, which holds the vesting funds.
	Receiver() addr.Address
}

// Pure functions implemented as primitives by the runtime.
type Syscalls interface {
	// Parses and validates a textual principal identifier.
	ValidateAddress(s string) (addr.Address, error)
}

// StateHandle gives the actor exclusive access to its state root.
type StateHandle interface {
	// Create stores the initial state. Only the constructor may call it, and only once.
	Create(obj CBORMarshaler)

	// Readonly loads the current state into obj. Changes to obj are not persisted.
	Readonly(obj CBORUnmarshaler)

	// Transaction loads the current state into obj, runs f, and stores obj as the new state.
	// An abort inside f discards the change.
	Transaction(obj CBORer, f func())
}

// Shapes of the encoders generated by whyrusleeping/cbor-gen.
type CBORMarshaler interface {
	MarshalCBOR(w io.Writer) error
}

type CBORUnmarshaler interface {
	UnmarshalCBOR(r io.Reader) error
}

type CBORer interface {
	CBORMarshaler
	CBORUnmarshaler
}

// VMActor is what a host needs to dispatch messages to an actor.
type VMActor interface {
	// Exports lists the actor's methods indexed by method number. Unused numbers are nil.
	Exports() []interface{}

	Code() cid.Cid

	// State returns an empty state object, for decoding the actor's state root.
	State() CBORer
}
