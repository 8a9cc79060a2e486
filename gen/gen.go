package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	vesting "github.com/cpvesting/vesting-actors/actors/builtin/vesting"
	runtime "github.com/cpvesting/vesting-actors/actors/runtime"
	vm "github.com/cpvesting/vesting-actors/support/vm"
)

func main() {
	// Common types
	if err := gen.WriteTupleEncodersToFile("./actors/abi/cbor_gen.go", "abi",
		abi.Coin{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/runtime/cbor_gen.go", "runtime",
		runtime.Delegation{},
		runtime.Instruction{},
		runtime.Attribute{},
		runtime.Response{},
	); err != nil {
		panic(err)
	}

	// Actors
	// WhitelistParams carries a []string, which this cbor-gen release cannot
	// emit; its encoding lives in actors/builtin/vesting/cbor_whitelist.go.
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vesting/cbor_gen.go", "vesting",
		// actor state
		vesting.State{},
		vesting.Config{},
		vesting.AccountingState{},
		// method params
		vesting.ConstructorParams{},
		vesting.WithdrawParams{},
		vesting.WithdrawDelegatorRewardParams{},
		vesting.DelegateParams{},
		vesting.RedelegateParams{},
		vesting.UpdateOwnerParams{},
		vesting.UpdateRecipientParams{},
	); err != nil {
		panic(err)
	}

	// Support
	if err := gen.WriteTupleEncodersToFile("./support/vm/cbor_gen.go", "vm",
		vm.World{},
	); err != nil {
		panic(err)
	}
}
