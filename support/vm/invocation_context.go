package vm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/runtime"
)

var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*runtime.CBORUnmarshaler)(nil)).Elem()
var typeOfCborMarshaler = reflect.TypeOf((*runtime.CBORMarshaler)(nil)).Elem()

// Context for a top-level invocation sequence.
type invocationContext struct {
	vm    *VM
	msg   Message
	world *World // The uncommitted world, discarded on abort.
	now   abi.Timestamp

	callerValidated bool
	inTransaction   bool
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) Error() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

var _ runtime.Runtime = (*invocationContext)(nil)
var _ runtime.StateHandle = (*invocationContext)(nil)
var _ runtime.Store = (*invocationContext)(nil)
var _ runtime.Message = (*invocationContext)(nil)

func newInvocationContext(vm *VM, msg Message, world *World, now abi.Timestamp) *invocationContext {
	return &invocationContext{vm: vm, msg: msg, world: world, now: now}
}

// Dispatches the message to the actor method and returns its result or the abort it raised.
func (ic *invocationContext) invoke() (ret runtime.CBORMarshaler, code exitcode.ExitCode, err error) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				a = abort{exitcode.SysErrorIllegalActor, fmt.Sprintf("actor panicked: %v", r)}
			}
			ret, code, err = nil, a.code, a
		}
	}()

	meth := ic.resolveMethod()
	param := ic.decodeParams(meth.Type().In(1))

	out := meth.Call([]reflect.Value{reflect.ValueOf(ic), param})
	if !ic.callerValidated {
		ic.Abortf(exitcode.SysErrorIllegalActor, "caller MUST be validated during method execution")
	}

	ret = ic.roundTrip(out[0])
	return ret, exitcode.Ok, nil
}

func (ic *invocationContext) resolveMethod() reflect.Value {
	exports := ic.vm.actor.Exports()
	if uint64(ic.msg.Method) >= uint64(len(exports)) || exports[ic.msg.Method] == nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "no method %d on actor %s", ic.msg.Method, builtin.ActorNameByCode(ic.vm.actor.Code()))
	}
	meth := reflect.ValueOf(exports[ic.msg.Method])
	t := meth.Type()
	if t.NumIn() != 2 || t.In(0) != typeOfRuntimeInterface || !t.In(1).Implements(typeOfCborUnmarshaler) ||
		t.NumOut() != 1 || !t.Out(0).Implements(typeOfCborMarshaler) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "method %d has an invalid signature %v", ic.msg.Method, t)
	}
	return meth
}

// Params cross the boundary as bytes, so the method sees exactly what would be decoded from the wire.
func (ic *invocationContext) decodeParams(paramType reflect.Type) reflect.Value {
	param := reflect.New(paramType.Elem())
	if ic.msg.Params == nil {
		return param
	}
	var buf bytes.Buffer
	if err := ic.msg.Params.MarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to encode params: %s", err)
	}
	if err := param.Interface().(runtime.CBORUnmarshaler).UnmarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to decode params as %v: %s", paramType, err)
	}
	return param
}

func (ic *invocationContext) roundTrip(v reflect.Value) runtime.CBORMarshaler {
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	ret := v.Interface().(runtime.CBORMarshaler)
	var buf bytes.Buffer
	if err := ret.MarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to encode return value: %s", err)
	}
	return ret
}

//
// Runtime
//

func (ic *invocationContext) Message() runtime.Message {
	return ic
}

func (ic *invocationContext) Caller() addr.Address {
	return ic.msg.From
}

func (ic *invocationContext) Receiver() addr.Address {
	return ic.vm.receiver
}

func (ic *invocationContext) CurrTime() abi.Timestamp {
	return ic.now
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...addr.Address) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, a := range addrs {
		if ic.msg.From == a {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller %s is not one of %s", ic.msg.From, addrs)
}

func (ic *invocationContext) CurrentBalance(denom string) abi.TokenAmount {
	return ic.world.Balance(denom)
}

func (ic *invocationContext) QueryDelegation(validator string) (runtime.Delegation, bool) {
	return ic.world.Delegation(validator)
}

func (ic *invocationContext) State() runtime.StateHandle {
	return ic
}

func (ic *invocationContext) Store() runtime.Store {
	return ic
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (ic *invocationContext) Syscalls() runtime.Syscalls {
	return ic.vm.syscalls
}

func (ic *invocationContext) Context() context.Context {
	return ic.vm.ctx
}

func (ic *invocationContext) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	if !builtin.ActorLogEnabled(ic.vm.actor, level, rtt.DEBUG) {
		return
	}
	ic.vm.logger.Log(ic.vm.ctx, slogLevel(level), fmt.Sprintf(msg, args...),
		"actor", builtin.ActorNameByCode(ic.vm.actor.Code()),
		"method", ic.msg.Method,
	)
}

func slogLevel(level rtt.LogLevel) slog.Level {
	switch level {
	case rtt.DEBUG:
		return slog.LevelDebug
	case rtt.INFO:
		return slog.LevelInfo
	case rtt.WARN:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

//
// Store
//

func (ic *invocationContext) StoreGet(c cid.Cid, o runtime.CBORUnmarshaler) bool {
	if err := ic.vm.store.Get(ic.vm.ctx, c, o); err != nil {
		// The in-memory and SQL blockstores both report a missing block as an error.
		return false
	}
	return true
}

func (ic *invocationContext) StorePut(x runtime.CBORMarshaler) cid.Cid {
	c, err := ic.vm.store.Put(ic.vm.ctx, x)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to put object in store: %s", err)
	}
	return c
}

//
// StateHandle
//

func (ic *invocationContext) Create(obj runtime.CBORMarshaler) {
	if ic.world.Head.Defined() {
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to create state: already initialized")
	}
	ic.world.Head = ic.StorePut(obj)
}

func (ic *invocationContext) Readonly(obj runtime.CBORUnmarshaler) {
	if !ic.world.Head.Defined() {
		ic.Abortf(exitcode.SysErrorIllegalActor, "actor state not initialized")
	}
	if !ic.StoreGet(ic.world.Head, obj) {
		ic.Abortf(exitcode.ErrIllegalState, "actor state %s not found", ic.world.Head)
	}
}

func (ic *invocationContext) Transaction(obj runtime.CBORer, f func()) {
	if ic.inTransaction {
		ic.Abortf(exitcode.SysErrorIllegalActor, "nested transaction")
	}
	ic.Readonly(obj)
	ic.inTransaction = true
	defer func() { ic.inTransaction = false }()
	f()
	ic.world.Head = ic.StorePut(obj)
}

func (ic *invocationContext) assertf(condition bool, msg string, args ...interface{}) {
	if !condition {
		panic(abort{exitcode.SysErrorIllegalActor, xerrors.Errorf(msg, args...).Error()})
	}
}
