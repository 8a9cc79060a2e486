package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/util/adt"
)

type StateSummary struct {
	Denom          string
	CliffRemaining abi.TokenAmount
	// Linear entitlement not yet paid out, as of the virtual clock.
	VestingRemaining abi.TokenAmount
	WhitelistSize    int
}

// Checks internal invariants of vesting state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}

	l, err := st.LoadLedger(store)
	if err != nil {
		acc.RequireNoError(err, "error loading ledger")
		return &StateSummary{}, acc
	}
	cfg, acct := l.Config, l.Accounting

	acc.Require(cfg.EndTime > cfg.StartTime, "end time %s not after start time %s", cfg.EndTime, cfg.StartTime)
	acc.Require(!cfg.CliffAmount.LessThan(big.Zero()), "negative cliff amount %v", cfg.CliffAmount)
	acc.Require(!cfg.VestingAmount.LessThan(big.Zero()), "negative vesting amount %v", cfg.VestingAmount)
	acc.Require(abi.ValidateDenom(cfg.Denom) == nil, "invalid tracked denomination %q", cfg.Denom)

	// accounting bounds
	acctAcc := acc.WithPrefix("accounting: ")
	acctAcc.Require(!acct.CliffAmountWithdrawn.LessThan(big.Zero()), "negative cliff withdrawn %v", acct.CliffAmountWithdrawn)
	acctAcc.Require(!acct.CliffAmountWithdrawn.GreaterThan(cfg.CliffAmount), "cliff withdrawn %v exceeds cliff amount %v",
		acct.CliffAmountWithdrawn, cfg.CliffAmount)
	acctAcc.Require(acct.LastWithdrawnTime >= cfg.StartTime && acct.LastWithdrawnTime <= cfg.EndTime,
		"last withdrawn time %s outside schedule [%s, %s]", acct.LastWithdrawnTime, cfg.StartTime, cfg.EndTime)

	wlAcc := acc.WithPrefix("whitelist: ")
	seen := make(map[addr.Address]struct{}, len(cfg.WhitelistedAddresses))
	for _, a := range cfg.WhitelistedAddresses {
		_, dup := seen[a]
		wlAcc.Require(!dup, "duplicate whitelist entry %v", a)
		seen[a] = struct{}{}
	}
	wlAcc.Require(cfg.IsWhitelisted(cfg.Owner), "owner %v not whitelisted", cfg.Owner)
	wlAcc.Require(cfg.IsWhitelisted(cfg.Recipient), "recipient %v not whitelisted", cfg.Recipient)

	vestingRemaining := big.Zero()
	if cfg.EndTime > cfg.StartTime {
		vestingRemaining = big.Sub(cfg.VestingAmount, cfg.ratio(acct.LastWithdrawnTime.Since(cfg.StartTime)))
	}

	return &StateSummary{
		Denom:            cfg.Denom,
		CliffRemaining:   acct.CliffRemaining(cfg),
		VestingRemaining: vestingRemaining,
		WhitelistSize:    len(cfg.WhitelistedAddresses),
	}, acc
}
