package mock

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	runtime "github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/support/ipld"
)

// Runtime is a mock runtime for unit testing the vesting actor in isolation.
// Tests set the block time, caller, balances and delegations directly and declare the caller
// validations and delegation queries they expect a method to make. Bank and staking effects are
// not applied: they are only visible as instructions in the returned response.
type Runtime struct {
	ctx         context.Context
	t           testing.TB
	time        abi.Timestamp
	receiver    addr.Address
	caller      addr.Address
	balances    map[string]abi.TokenAmount
	delegations map[string]runtime.Delegation
	syscalls    syscaller

	blocks        *ipld.BlockStoreInMemory
	state         cid.Cid
	inCall        bool
	inTransaction bool
	logs          []string

	expect expectations
}

// Calls a method is expected to make before it returns.
type expectations struct {
	callerAny   bool
	callerAddrs []addr.Address
	delegations []string
}

func (e expectations) pending() []string {
	var out []string
	if e.callerAny {
		out = append(out, "ValidateImmediateCallerAcceptAny")
	}
	if len(e.callerAddrs) > 0 {
		out = append(out, fmt.Sprintf("ValidateImmediateCallerIs%v", e.callerAddrs))
	}
	for _, v := range e.delegations {
		out = append(out, fmt.Sprintf("QueryDelegation(%s)", v))
	}
	return out
}

var _ runtime.Runtime = &Runtime{}
var _ runtime.StateHandle = &Runtime{}

var (
	typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
	typeOfCborUnmarshaler  = reflect.TypeOf((*runtime.CBORUnmarshaler)(nil)).Elem()
	typeOfCborMarshaler    = reflect.TypeOf((*runtime.CBORMarshaler)(nil)).Elem()
)

var cidBuilder = cid.V1Builder{Codec: cid.DagCBOR, MhType: mh.SHA2_256}

//
// runtime.Runtime
//

func (rt *Runtime) Message() runtime.Message {
	rt.requireInCall()
	return rt
}

func (rt *Runtime) CurrTime() abi.Timestamp {
	rt.requireInCall()
	return rt.time
}

func (rt *Runtime) ValidateImmediateCallerAcceptAny() {
	rt.requireInCall()
	if !rt.expect.callerAny {
		rt.failTest("unexpected validate-caller-any")
	}
	rt.expect.callerAny = false
}

func (rt *Runtime) ValidateImmediateCallerIs(addrs ...addr.Address) {
	rt.requireInCall()
	if len(addrs) == 0 {
		rt.Abortf(exitcode.SysErrorIllegalArgument, "addrs must be non-empty")
	}
	expected := rt.expect.callerAddrs
	rt.expect.callerAddrs = nil
	if !reflect.DeepEqual(expected, addrs) {
		rt.failTest("validate caller addrs %v, expected %v", addrs, expected)
		return
	}
	for _, a := range addrs {
		if rt.caller == a {
			return
		}
	}
	rt.Abortf(exitcode.ErrForbidden, "caller address %v forbidden, allowed: %v", rt.caller, addrs)
}

func (rt *Runtime) CurrentBalance(denom string) abi.TokenAmount {
	rt.requireInCall()
	return rt.balanceOf(denom)
}

func (rt *Runtime) QueryDelegation(validator string) (runtime.Delegation, bool) {
	rt.requireInCall()
	if len(rt.expect.delegations) == 0 {
		rt.failTestNow("unexpected delegation query for validator %s", validator)
	}
	if next := rt.expect.delegations[0]; next != validator {
		rt.failTest("delegation query for %s, expected %s", validator, next)
	}
	rt.expect.delegations = rt.expect.delegations[1:]

	d, ok := rt.delegations[validator]
	return d, ok
}

func (rt *Runtime) State() runtime.StateHandle {
	rt.requireInCall()
	return rt
}

// Store and Context may be used outside a call so that the runtime doubles as a plain store.
func (rt *Runtime) Store() runtime.Store {
	return rt
}

func (rt *Runtime) Context() context.Context {
	return rt.ctx
}

func (rt *Runtime) Abortf(code exitcode.ExitCode, msg string, args ...interface{}) {
	rt.requireInCall()
	a := abort{code, fmt.Sprintf(msg, args...)}
	rt.t.Logf("mock runtime %s", a)
	panic(a)
}

func (rt *Runtime) Syscalls() runtime.Syscalls {
	rt.requireInCall()
	return &rt.syscalls
}

func (rt *Runtime) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	rt.logs = append(rt.logs, line)
	rt.t.Logf("%s %s", logLevelName(level), line)
}

func logLevelName(level rtt.LogLevel) string {
	switch level {
	case rtt.DEBUG:
		return "DEBUG"
	case rtt.INFO:
		return "INFO"
	case rtt.WARN:
		return "WARN"
	case rtt.ERROR:
		return "ERROR"
	default:
		return "LOG"
	}
}

//
// runtime.Store
//

func (rt *Runtime) StoreGet(c cid.Cid, o runtime.CBORUnmarshaler) bool {
	if !rt.blocks.Has(c) {
		return false
	}
	blk, err := rt.blocks.Get(c)
	if err == nil {
		err = o.UnmarshalCBOR(bytes.NewReader(blk.RawData()))
	}
	if err != nil {
		rt.Abortf(exitcode.ErrSerialization, "loading %s: %s", c, err)
	}
	return true
}

func (rt *Runtime) StorePut(o runtime.CBORMarshaler) cid.Cid {
	var buf bytes.Buffer
	if err := o.MarshalCBOR(&buf); err != nil {
		rt.Abortf(exitcode.ErrSerialization, "encoding %T: %s", o, err)
	}
	key, err := cidBuilder.Sum(buf.Bytes())
	if err != nil {
		rt.Abortf(exitcode.ErrSerialization, "hashing %T: %s", o, err)
	}
	blk, err := block.NewBlockWithCid(buf.Bytes(), key)
	if err == nil {
		err = rt.blocks.Put(blk)
	}
	if err != nil {
		rt.Abortf(exitcode.ErrIllegalState, "storing %T: %s", o, err)
	}
	return key
}

//
// runtime.Message
//

func (rt *Runtime) Caller() addr.Address {
	return rt.caller
}

func (rt *Runtime) Receiver() addr.Address {
	return rt.receiver
}

//
// runtime.StateHandle
//

func (rt *Runtime) Create(obj runtime.CBORMarshaler) {
	if rt.state.Defined() {
		rt.Abortf(exitcode.SysErrorIllegalActor, "state already constructed")
	}
	rt.state = rt.StorePut(obj)
}

func (rt *Runtime) Readonly(st runtime.CBORUnmarshaler) {
	if !rt.StoreGet(rt.state, st) {
		rt.Abortf(exitcode.SysErrorIllegalActor, "actor state not found: %v", rt.state)
	}
}

func (rt *Runtime) Transaction(st runtime.CBORer, f func()) {
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "nested transaction")
	}
	rt.Readonly(st)
	rt.inTransaction = true
	defer func() { rt.inTransaction = false }()
	f()
	rt.state = rt.StorePut(st)
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

//
// Inspection
//

func (rt *Runtime) StateRoot() cid.Cid {
	return rt.state
}

func (rt *Runtime) GetState(o runtime.CBORUnmarshaler) {
	blk, err := rt.blocks.Get(rt.state)
	if err != nil {
		rt.failTestNow("can't find state at root %v: %v", rt.state, err)
	}
	if err := o.UnmarshalCBOR(bytes.NewReader(blk.RawData())); err != nil {
		rt.failTestNow("error loading state: %v", err)
	}
}

// Logs returns the formatted messages the actor has logged so far.
func (rt *Runtime) Logs() []string {
	return rt.logs
}

func (rt *Runtime) balanceOf(denom string) abi.TokenAmount {
	if b, ok := rt.balances[denom]; ok {
		return b
	}
	return big.Zero()
}

//
// Mocking
//

func (rt *Runtime) SetCaller(address addr.Address) {
	rt.caller = address
}

func (rt *Runtime) SetBalance(coins ...abi.Coin) {
	for _, c := range coins {
		rt.balances[c.Denom] = c.Amount
	}
}

func (rt *Runtime) SetTime(time abi.Timestamp) {
	rt.time = time
}

// SetDelegation makes the receiver's delegation to d.Validator visible to QueryDelegation.
func (rt *Runtime) SetDelegation(d runtime.Delegation) {
	rt.delegations[d.Validator] = d
}

func (rt *Runtime) SetAddressValidator(f AddressValidatorFunc) {
	rt.syscalls.AddressValidator = f
}

func (rt *Runtime) ExpectValidateCallerAny() {
	rt.expect.callerAny = true
}

func (rt *Runtime) ExpectValidateCallerAddr(addrs ...addr.Address) {
	rt.require(len(addrs) > 0, "addrs must be non-empty")
	rt.expect.callerAddrs = append([]addr.Address(nil), addrs...)
}

// Expects the delegation to each validator to be queried, in order.
func (rt *Runtime) ExpectQueryDelegation(validators ...string) {
	rt.expect.delegations = append(rt.expect.delegations, validators...)
}

// Verify fails the test if any expected call was not made, then clears all expectations.
func (rt *Runtime) Verify() {
	if pending := rt.expect.pending(); len(pending) > 0 {
		rt.failTest("expected calls not received: %s", strings.Join(pending, ", "))
	}
	rt.expect = expectations{}
}

// Calls f expecting it to abort with the given exit code.
func (rt *Runtime) ExpectAbort(expected exitcode.ExitCode, f func()) {
	rt.ExpectAbortContainsMessage(expected, "", f)
}

// Calls f expecting it to abort with the given exit code and a message containing substr.
// State changes made before the abort are discarded.
func (rt *Runtime) ExpectAbortContainsMessage(expected exitcode.ExitCode, substr string, f func()) {
	prevState := rt.state
	a, aborted := rt.catchAbort(f)
	rt.state = prevState

	switch {
	case !aborted:
		rt.failTest("expected abort with code %v but call succeeded", expected)
	case a.code != expected:
		rt.failTest("abort expected code %v, got %v %s", expected, a.code, a.msg)
	case substr != "" && !strings.Contains(a.msg, substr):
		rt.failTest("abort expected message containing %q, got %q", substr, a.msg)
	}
}

// Runs f, recovering an abort. Any other panic propagates.
func (rt *Runtime) catchAbort(f func()) (a abort, aborted bool) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if a, ok = r.(abort); !ok {
				panic(r)
			}
			aborted = true
		}
	}()
	f()
	return abort{}, false
}

// Call invokes an exported actor method. An unexpected abort escapes as a panic and fails the test.
func (rt *Runtime) Call(method interface{}, params interface{}) interface{} {
	meth := reflect.ValueOf(method)
	rt.verifyExportedMethodType(meth)

	rt.inCall = true
	defer func() { rt.inCall = false }()

	arg := reflect.ValueOf(abi.Empty)
	if params != nil {
		arg = reflect.ValueOf(params)
	}
	ret := meth.Call([]reflect.Value{reflect.ValueOf(rt), arg})
	return ret[0].Interface()
}

func (rt *Runtime) verifyExportedMethodType(meth reflect.Value) {
	t := meth.Type()
	rt.require(t.Kind() == reflect.Func, "%v is not a function", meth)
	rt.require(t.NumIn() == 2, "exported method %v must have two parameters, got %v", meth, t.NumIn())
	rt.require(t.In(0) == typeOfRuntimeInterface, "exported method first parameter must be runtime, got %v", t.In(0))
	rt.require(t.In(1).Kind() == reflect.Ptr, "exported method second parameter must be pointer to params, got %v", t.In(1))
	rt.require(t.In(1).Implements(typeOfCborUnmarshaler), "exported method second parameter must be CBOR-unmarshalable params, got %v", t.In(1))
	rt.require(t.NumOut() == 1, "exported method must return a single value")
	rt.require(t.Out(0).Implements(typeOfCborMarshaler), "exported method must return CBOR-marshalable value")
}

func (rt *Runtime) requireInCall() {
	rt.require(rt.inCall, "invalid runtime invocation outside of method call")
}

func (rt *Runtime) require(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.failTestNow(msg, args...)
	}
}

func (rt *Runtime) failTest(msg string, args ...interface{}) {
	rt.t.Helper()
	rt.t.Errorf(msg+"\n%s", append(args, debug.Stack())...)
}

func (rt *Runtime) failTestNow(msg string, args ...interface{}) {
	rt.t.Helper()
	rt.t.Fatalf(msg+"\n%s", append(args, debug.Stack())...)
}
