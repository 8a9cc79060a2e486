package vm

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/builtin/vesting"
	"github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/support/ipld"
)

//
// Genesis like setup
//

// NewVestingVM creates a VM hosting a vesting actor constructed with params at the clock's time,
// and funds it with the given coins.
func NewVestingVM(ctx context.Context, t testing.TB, receiver addr.Address, clock clockwork.Clock, params *vesting.ConstructorParams, funds ...abi.Coin) *VM {
	v := NewVM(ctx, ipld.NewADTStore(ctx), vesting.Actor{}, receiver, WithClock(clock))
	ApplyOk(t, v, receiver, builtin.MethodConstructor, params)
	v.Fund(funds...)
	return v
}

// ApplyOk applies a message and fails the test unless it succeeds.
func ApplyOk(t testing.TB, v *VM, from addr.Address, method abi.MethodNum, params runtime.CBORMarshaler) runtime.CBORMarshaler {
	result := v.ApplyMessage(from, method, params)
	require.Equal(t, exitcode.Ok, result.Code, "method %d failed: %v", method, result.Err)
	return result.Ret
}

// ApplyCode applies a message and fails the test unless it aborts with code.
func ApplyCode(t testing.TB, v *VM, from addr.Address, method abi.MethodNum, params runtime.CBORMarshaler, code exitcode.ExitCode) {
	result := v.ApplyMessage(from, method, params)
	require.Equal(t, code, result.Code, "method %d: %v", method, result.Err)
}

//
// Invocation expectations
//

func ExpectObject(v runtime.CBORMarshaler) *objectExpectation {
	return &objectExpectation{v}
}

// distinguishes a non-expectation from an expectation of nil
type objectExpectation struct {
	val runtime.CBORMarshaler
}

func ExpectAddress(a addr.Address) *addr.Address { return &a }

// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
func (oe objectExpectation) matches(obj runtime.CBORMarshaler) bool {
	if oe.val == nil || obj == nil {
		return oe.val == nil && obj == nil
	}

	buf1 := new(bytes.Buffer)
	oe.val.MarshalCBOR(buf1) // nolint: errcheck
	buf2 := new(bytes.Buffer)
	obj.MarshalCBOR(buf2) // nolint: errcheck
	return bytes.Equal(buf1.Bytes(), buf2.Bytes())
}

type ExpectInvocation struct {
	Method   abi.MethodNum
	Exitcode exitcode.ExitCode

	From   *addr.Address
	Params *objectExpectation
	Ret    *objectExpectation
}

func (ei ExpectInvocation) Matches(t *testing.T, invocation *Invocation) {
	identifier := fmt.Sprintf("[%s:%d]", invocation.Msg.From, invocation.Msg.Method)

	// a method mismatch probably indicates messages out of order. halt.
	require.Equal(t, ei.Method, invocation.Msg.Method, "%s unexpected method", identifier)

	// other expectations are optional
	if ei.From != nil {
		assert.Equal(t, *ei.From, invocation.Msg.From, "%s unexpected from address", identifier)
	}
	if ei.Params != nil {
		assert.True(t, ei.Params.matches(invocation.Msg.Params), "%s params aren't equal (%v != %v)", identifier, ei.Params.val, invocation.Msg.Params)
	}
	assert.Equal(t, ei.Exitcode, invocation.Exitcode, "%s unexpected exitcode", identifier)
	if ei.Ret != nil {
		assert.True(t, ei.Ret.matches(invocation.Ret), "%s unexpected return value (%v != %v)", identifier, ei.Ret.val, invocation.Ret)
	}
}

// CheckInvocations matches the VM's applied messages against expectations, in order.
func CheckInvocations(t *testing.T, v *VM, expected ...ExpectInvocation) {
	invocations := v.Invocations()
	require.Len(t, invocations, len(expected))
	for i, ei := range expected {
		ei.Matches(t, invocations[i])
	}
}
