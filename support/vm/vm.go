package vm

import (
	"context"
	"log/slog"
	"time"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/actors/util/adt"
)

// VM hosts a single actor and executes messages against it one at a time.
// A message either commits a new World, including the effects of the instructions it emitted,
// or leaves the committed World untouched.
type VM struct {
	ctx      context.Context
	store    adt.Store
	actor    runtime.VMActor
	receiver addr.Address
	syscalls runtime.Syscalls
	clock    clockwork.Clock
	logger   *slog.Logger

	world       World // The last committed world.
	invocations []*Invocation
}

type Option func(*VM)

// WithClock sets the source of block time. Defaults to the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(vm *VM) { vm.clock = c }
}

// WithLogger sets the logger receiving actor logs and message outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(vm *VM) { vm.logger = l }
}

func WithSyscalls(s runtime.Syscalls) Option {
	return func(vm *VM) { vm.syscalls = s }
}

// NewVM creates a VM whose actor has no state yet. The first message must be the constructor.
func NewVM(ctx context.Context, store adt.Store, actor runtime.VMActor, receiver addr.Address, opts ...Option) *VM {
	vm := &VM{
		ctx:      ctx,
		store:    store,
		actor:    actor,
		receiver: receiver,
		syscalls: builtin.AddressSyscalls{},
		clock:    clockwork.NewRealClock(),
		logger:   slog.Default(),
		world:    World{Head: cid.Undef},
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// LoadVM creates a VM over the world committed at root.
func LoadVM(ctx context.Context, store adt.Store, actor runtime.VMActor, receiver addr.Address, root cid.Cid, opts ...Option) (*VM, error) {
	vm := NewVM(ctx, store, actor, receiver, opts...)
	if err := store.Get(ctx, root, &vm.world); err != nil {
		return nil, errors.Wrapf(err, "failed to load world %s", root)
	}
	return vm, nil
}

// Root writes the committed world to the store and returns its CID.
func (vm *VM) Root() (cid.Cid, error) {
	root, err := vm.store.Put(vm.ctx, &vm.world)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "failed to write world")
	}
	return root, nil
}

// World returns a copy of the committed world.
func (vm *VM) World() World {
	return vm.world.clone()
}

func (vm *VM) Store() adt.Store {
	return vm.store
}

func (vm *VM) Receiver() addr.Address {
	return vm.receiver
}

// Now is the current block time. A clock set before the unix epoch reads as zero.
func (vm *VM) Now() abi.Timestamp {
	now, _ := vm.blockTime()
	return now
}

func (vm *VM) blockTime() (abi.Timestamp, error) {
	t := vm.clock.Now()
	if t.Unix() < 0 {
		return 0, errors.Errorf("block time %s is before the unix epoch", t.UTC().Format(time.RFC3339))
	}
	return abi.Timestamp(t.Unix()), nil
}

// Invocations returns the messages applied so far, successful or not.
func (vm *VM) Invocations() []*Invocation {
	return vm.invocations
}

// GetState loads the actor's committed state.
func (vm *VM) GetState(out runtime.CBORUnmarshaler) error {
	if !vm.world.Head.Defined() {
		return errors.New("actor not constructed")
	}
	return vm.store.Get(vm.ctx, vm.world.Head, out)
}

// Fund credits the actor's balances outside of any message, as an external transfer would.
func (vm *VM) Fund(coins ...abi.Coin) {
	vm.world.Credit(coins...)
}

// SetDelegation replaces the actor's delegation to d.Validator outside of any message.
func (vm *VM) SetDelegation(d runtime.Delegation) {
	vm.world.SetDelegation(d)
}

// AccrueReward adds staking rewards to an existing delegation outside of any message.
func (vm *VM) AccrueReward(validator string, coins ...abi.Coin) error {
	return vm.world.AccrueReward(validator, coins...)
}

type MessageResult struct {
	Ret  runtime.CBORMarshaler
	Code exitcode.ExitCode
	Err  error
}

// Invocation records a message applied to the VM.
type Invocation struct {
	Msg      Message
	Time     abi.Timestamp
	Exitcode exitcode.ExitCode
	Ret      runtime.CBORMarshaler
}

// Message is a call from a principal to the hosted actor.
type Message struct {
	From   addr.Address
	Method abi.MethodNum
	Params runtime.CBORMarshaler
}

// ApplyMessage executes a method of the hosted actor at the current block time.
// On success the actor's new state and the effects of the response's instructions commit together.
func (vm *VM) ApplyMessage(from addr.Address, method abi.MethodNum, params runtime.CBORMarshaler) MessageResult {
	msg := Message{From: from, Method: method, Params: params}
	now, err := vm.blockTime()
	if err != nil {
		vm.invocations = append(vm.invocations, &Invocation{Msg: msg, Time: now, Exitcode: exitcode.SysErrorIllegalArgument})
		vm.logger.Warn("message rejected", "method", method, "from", from, "error", err)
		return MessageResult{Code: exitcode.SysErrorIllegalArgument, Err: err}
	}

	next := vm.world.clone()
	ic := newInvocationContext(vm, msg, &next, now)
	ret, code, err := ic.invoke()

	if code == exitcode.Ok {
		if resp, ok := ret.(*runtime.Response); ok {
			if execErr := next.Execute(resp.Messages); execErr != nil {
				ret, code, err = nil, exitcode.SysErrInsufficientFunds, execErr
			}
		}
	}

	vm.invocations = append(vm.invocations, &Invocation{Msg: msg, Time: now, Exitcode: code, Ret: ret})
	if code != exitcode.Ok {
		vm.logger.Warn("message aborted",
			"method", method,
			"from", from,
			"code", code,
			"error", err,
		)
		return MessageResult{Code: code, Err: err}
	}

	vm.world = next
	vm.logger.Debug("message applied", "method", method, "from", from, "head", next.Head)
	return MessageResult{Ret: ret, Code: code}
}
