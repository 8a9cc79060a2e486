package builtin

import (
	abi "github.com/cpvesting/vesting-actors/actors/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

type vestingMethods struct {
	Constructor              abi.MethodNum
	WithdrawCliffVestedFunds abi.MethodNum
	WithdrawVestedFunds      abi.MethodNum
	WithdrawDelegatorReward  abi.MethodNum
	DelegateFunds            abi.MethodNum
	UndelegateFunds          abi.MethodNum
	RedelegateFunds          abi.MethodNum
	AddToWhitelist           abi.MethodNum
	RemoveFromWhitelist      abi.MethodNum
	UpdateOwner              abi.MethodNum
	UpdateRecipient          abi.MethodNum
	QueryConfig              abi.MethodNum
	QueryState               abi.MethodNum
}

var MethodsVesting = vestingMethods{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
