package mock

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	runtime "github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/support/ipld"
)

// RuntimeBuilder configures mock runtimes. Each Build returns an independent runtime.
type RuntimeBuilder struct {
	rt *Runtime
}

func NewBuilder(ctx context.Context, receiver addr.Address) *RuntimeBuilder {
	return &RuntimeBuilder{&Runtime{
		ctx:         ctx,
		receiver:    receiver,
		balances:    make(map[string]abi.TokenAmount),
		delegations: make(map[string]runtime.Delegation),
		blocks:      ipld.NewBlockStoreInMemory(),
		state:       cid.Undef,
	}}
}

func (b *RuntimeBuilder) Build(t testing.TB) *Runtime {
	cpy := *b.rt
	cpy.t = t
	cpy.blocks = b.rt.blocks.Copy()
	cpy.balances = make(map[string]abi.TokenAmount, len(b.rt.balances))
	for k, v := range b.rt.balances {
		cpy.balances[k] = v
	}
	cpy.delegations = make(map[string]runtime.Delegation, len(b.rt.delegations))
	for k, v := range b.rt.delegations {
		cpy.delegations[k] = v
	}
	return &cpy
}

func (b *RuntimeBuilder) WithTime(time abi.Timestamp) *RuntimeBuilder {
	b.rt.time = time
	return b
}

func (b *RuntimeBuilder) WithCaller(address addr.Address) *RuntimeBuilder {
	b.rt.caller = address
	return b
}

func (b *RuntimeBuilder) WithBalance(coins ...abi.Coin) *RuntimeBuilder {
	for _, c := range coins {
		b.rt.balances[c.Denom] = c.Amount
	}
	return b
}

func (b *RuntimeBuilder) WithDelegation(d runtime.Delegation) *RuntimeBuilder {
	b.rt.delegations[d.Validator] = d
	return b
}

func (b *RuntimeBuilder) WithAddressValidator(f AddressValidatorFunc) *RuntimeBuilder {
	b.rt.syscalls.AddressValidator = f
	return b
}
