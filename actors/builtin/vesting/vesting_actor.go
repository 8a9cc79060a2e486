package vesting

import (
	"strings"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/actors/util/adt"
)

type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.WithdrawCliffVestedFunds,
		3:                         a.WithdrawVestedFunds,
		4:                         a.WithdrawDelegatorReward,
		5:                         a.DelegateFunds,
		6:                         a.UndelegateFunds,
		7:                         a.RedelegateFunds,
		8:                         a.AddToWhitelist,
		9:                         a.RemoveFromWhitelist,
		10:                        a.UpdateOwner,
		11:                        a.UpdateRecipient,
		12:                        a.QueryConfig,
		13:                        a.QueryState,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.VestingActorCodeID
}

func (a Actor) State() runtime.CBORer {
	return new(State)
}

var _ runtime.VMActor = Actor{}

//
// Setup
//

type ConstructorParams struct {
	Owner         string
	Recipient     string
	CliffAmount   abi.TokenAmount
	VestingAmount abi.TokenAmount
	// Defaults to the current block time.
	StartTime *abi.Timestamp
	EndTime   abi.Timestamp
	// Defaults to DefaultDenom.
	Denom      string
	Controller Controller
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *runtime.Response {
	rt.ValidateImmediateCallerAcceptAny()

	owner, err := rt.Syscalls().ValidateAddress(params.Owner)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid owner")
	recipient, err := rt.Syscalls().ValidateAddress(params.Recipient)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid recipient")

	startTime := rt.CurrTime()
	if params.StartTime != nil {
		startTime = *params.StartTime
	}
	denom := params.Denom
	if denom == "" {
		denom = DefaultDenom
	}

	cfg := &Config{
		Owner:         owner,
		Recipient:     recipient,
		CliffAmount:   params.CliffAmount,
		VestingAmount: params.VestingAmount,
		StartTime:     startTime,
		EndTime:       params.EndTime,
		Denom:         denom,
		Controller:    params.Controller,
	}
	cfg.AddToWhitelist(owner, recipient)
	err = cfg.Validate()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid schedule")

	st, err := ConstructState(adt.AsStore(rt), cfg)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.State().Create(st)

	rt.Log(rtt.DEBUG, "vesting %v %s from %s to %s for %s", cfg.VestingAmount, denom, startTime, cfg.EndTime, recipient)

	return runtime.NewResponse("instantiate").
		AddAttribute("owner", owner).
		AddAttribute("recipient", recipient).
		AddAttribute("cliff_amount", cfg.CliffAmount).
		AddAttribute("vesting_amount", cfg.VestingAmount).
		AddAttribute("start_time", startTime).
		AddAttribute("end_time", cfg.EndTime).
		AddAttributeString("denom", denom)
}

//
// Withdrawals
//

type WithdrawParams struct {
	// Defaults to the tracked denomination.
	Denom string
}

// Releases the cliff pool to the recipient, or sweeps an untracked denomination.
func (a Actor) WithdrawCliffVestedFunds(rt runtime.Runtime, params *WithdrawParams) *runtime.Response {
	l, w := a.withdraw(rt, params.Denom, (*AccountingState).WithdrawCliff)

	return runtime.NewResponse("withdraw_cliff_vested_funds").
		AddAttributeString("denom", w.Amount.Denom).
		AddAttribute("amount_to_withdraw", w.Amount.Amount).
		AddAttribute("cliff_amount_withdrawn", l.Accounting.CliffAmountWithdrawn).
		AddMessage(runtime.NewBankSend(l.Config.Recipient, w.Amount))
}

// Releases the linear pool accrued so far to the recipient, or sweeps an untracked denomination.
func (a Actor) WithdrawVestedFunds(rt runtime.Runtime, params *WithdrawParams) *runtime.Response {
	l, w := a.withdraw(rt, params.Denom, (*AccountingState).WithdrawVested)

	return runtime.NewResponse("withdraw_vested_funds").
		AddAttributeString("denom", w.Amount.Denom).
		AddAttribute("amount_to_withdraw", w.Amount.Amount).
		AddAttribute("last_withdrawn_time", l.Accounting.LastWithdrawnTime).
		AddMessage(runtime.NewBankSend(l.Config.Recipient, w.Amount))
}

type withdrawFunc func(st *AccountingState, cfg *Config, now abi.Timestamp, denom string, balance abi.TokenAmount) (*Withdrawal, error)

func (a Actor) withdraw(rt runtime.Runtime, denom string, compute withdrawFunc) (*Ledger, *Withdrawal) {
	var st State
	rt.State().Readonly(&st)
	l := loadLedger(rt, &st)
	rt.ValidateImmediateCallerIs(l.Config.WhitelistedAddresses...)

	if denom == "" {
		denom = l.Config.Denom
	}

	var w *Withdrawal
	rt.State().Transaction(&st, func() {
		l = loadLedger(rt, &st)
		balance := rt.CurrentBalance(denom)
		var err error
		w, err = compute(l.Accounting, l.Config, rt.CurrTime(), denom, balance)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to withdraw %s", denom)

		if w.Tracked {
			l.Apply(w)
			err = l.Flush(&st)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to save ledger")
		}
	})

	rt.Log(rtt.INFO, "withdrew %s to %s", w.Amount, l.Config.Recipient)
	return l, w
}

//
// Delegation
//

type WithdrawDelegatorRewardParams struct {
	Validator string
}

type DelegateParams struct {
	Validator string
	Amount    abi.Coin
}

type RedelegateParams struct {
	SrcValidator string
	DstValidator string
	Amount       abi.Coin
}

func (a Actor) WithdrawDelegatorReward(rt runtime.Runtime, params *WithdrawDelegatorRewardParams) *runtime.Response {
	l := a.validateAdmin(rt)
	validateValidator(rt, params.Validator)

	resp := runtime.NewResponse("withdraw_delegator_rewards").
		AddAttributeString("validator", params.Validator).
		AddMessage(runtime.NewWithdrawReward(params.Validator))
	sweepRewards(rt, resp, l.Config.Recipient, params.Validator)
	return resp
}

func (a Actor) DelegateFunds(rt runtime.Runtime, params *DelegateParams) *runtime.Response {
	l := a.validateAdmin(rt)
	validateValidator(rt, params.Validator)
	validateAmount(rt, params.Amount)

	resp := runtime.NewResponse("delegate_funds").
		AddAttributeString("validator", params.Validator).
		AddAttributeString("denom", params.Amount.Denom).
		AddAttribute("amount", params.Amount.Amount).
		AddMessage(runtime.NewDelegate(params.Validator, params.Amount))
	sweepRewards(rt, resp, l.Config.Recipient, params.Validator)
	return resp
}

func (a Actor) UndelegateFunds(rt runtime.Runtime, params *DelegateParams) *runtime.Response {
	l := a.validateAdmin(rt)
	validateValidator(rt, params.Validator)
	validateAmount(rt, params.Amount)

	resp := runtime.NewResponse("undelegate_funds").
		AddAttributeString("validator", params.Validator).
		AddAttributeString("denom", params.Amount.Denom).
		AddAttribute("amount", params.Amount.Amount).
		AddMessage(runtime.NewUndelegate(params.Validator, params.Amount))
	sweepRewards(rt, resp, l.Config.Recipient, params.Validator)
	return resp
}

func (a Actor) RedelegateFunds(rt runtime.Runtime, params *RedelegateParams) *runtime.Response {
	l := a.validateAdmin(rt)
	validateValidator(rt, params.SrcValidator)
	validateValidator(rt, params.DstValidator)
	validateAmount(rt, params.Amount)

	resp := runtime.NewResponse("redelegate_funds").
		AddAttributeString("src_validator", params.SrcValidator).
		AddAttributeString("dst_validator", params.DstValidator).
		AddAttributeString("denom", params.Amount.Denom).
		AddAttribute("amount", params.Amount.Amount).
		AddMessage(runtime.NewRedelegate(params.SrcValidator, params.DstValidator, params.Amount))
	sweepRewards(rt, resp, l.Config.Recipient, params.SrcValidator)
	sweepRewards(rt, resp, l.Config.Recipient, params.DstValidator)
	return resp
}

// Appends a transfer of the rewards accumulated with `validator` to the recipient, if any.
// An unknown delegation yields nothing.
func sweepRewards(rt runtime.Runtime, resp *runtime.Response, recipient addr.Address, validator string) {
	delegation, ok := rt.QueryDelegation(validator)
	if !ok {
		rt.Log(rtt.DEBUG, "no delegation to %s", validator)
		return
	}
	rewards := delegation.AccumulatedRewards.NonZero()
	if len(rewards) == 0 {
		return
	}
	resp.AddAttribute("reward", rewards).
		AddMessage(runtime.NewBankSend(recipient, rewards...))
}

func validateValidator(rt runtime.Runtime, validator string) {
	builtin.RequireParam(rt, validator != "", "validator must be named")
}

func validateAmount(rt runtime.Runtime, amount abi.Coin) {
	err := abi.ValidateDenom(amount.Denom)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid amount")
	builtin.RequireParam(rt, amount.Amount.Int != nil && amount.Amount.GreaterThan(big.Zero()), "amount %s must be positive", amount)
}

//
// Administration
//

type WhitelistParams struct {
	Addresses []string
}

type UpdateOwnerParams struct {
	Owner string
}

type UpdateRecipientParams struct {
	Recipient string
}

func (a Actor) AddToWhitelist(rt runtime.Runtime, params *WhitelistParams) *runtime.Response {
	addrs := validateAddresses(rt, params.Addresses)
	l := a.updateConfig(rt, func(cfg *Config) {
		cfg.AddToWhitelist(addrs...)
	})
	return runtime.NewResponse("add_to_whitelist").
		AddAttribute("whitelisted_addresses", addressList(l.Config.WhitelistedAddresses))
}

func (a Actor) RemoveFromWhitelist(rt runtime.Runtime, params *WhitelistParams) *runtime.Response {
	addrs := validateAddresses(rt, params.Addresses)
	l := a.updateConfig(rt, func(cfg *Config) {
		cfg.RemoveFromWhitelist(addrs...)
	})
	return runtime.NewResponse("remove_from_whitelist").
		AddAttribute("whitelisted_addresses", addressList(l.Config.WhitelistedAddresses))
}

func (a Actor) UpdateOwner(rt runtime.Runtime, params *UpdateOwnerParams) *runtime.Response {
	owner, err := rt.Syscalls().ValidateAddress(params.Owner)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid owner")
	l := a.updateConfig(rt, func(cfg *Config) {
		cfg.Owner = owner
		cfg.AddToWhitelist(owner)
	})
	return runtime.NewResponse("update_owner").
		AddAttribute("owner", l.Config.Owner)
}

func (a Actor) UpdateRecipient(rt runtime.Runtime, params *UpdateRecipientParams) *runtime.Response {
	recipient, err := rt.Syscalls().ValidateAddress(params.Recipient)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid recipient")
	l := a.updateConfig(rt, func(cfg *Config) {
		cfg.Recipient = recipient
		cfg.AddToWhitelist(recipient)
	})
	return runtime.NewResponse("update_recipient").
		AddAttribute("recipient", l.Config.Recipient)
}

// Validates the caller as the controlling principal and applies `f` to the config.
func (a Actor) updateConfig(rt runtime.Runtime, f func(cfg *Config)) *Ledger {
	a.validateAdmin(rt)

	var st State
	var l *Ledger
	rt.State().Transaction(&st, func() {
		l = loadLedger(rt, &st)
		f(l.Config)
		err := l.Config.Validate()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid config")
		err = l.Flush(&st)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to save ledger")
	})
	return l
}

func validateAddresses(rt runtime.Runtime, in []string) []addr.Address {
	builtin.RequireParam(rt, len(in) <= MaxWhitelistSize, "too many addresses %d, max %d", len(in), MaxWhitelistSize)
	out := make([]addr.Address, 0, len(in))
	for _, s := range in {
		a, err := rt.Syscalls().ValidateAddress(s)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid address %q", s)
		out = append(out, a)
	}
	return out
}

type addressList []addr.Address

func (l addressList) String() string {
	parts := make([]string, len(l))
	for i, a := range l {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

//
// Queries
//

func (a Actor) QueryConfig(rt runtime.Runtime, _ *abi.EmptyValue) *Config {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)
	return loadLedger(rt, &st).Config
}

func (a Actor) QueryState(rt runtime.Runtime, _ *abi.EmptyValue) *AccountingState {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)
	return loadLedger(rt, &st).Accounting
}

//
// Helpers
//

func loadLedger(rt runtime.Runtime, st *State) *Ledger {
	l, err := st.LoadLedger(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load ledger")
	return l
}

func (a Actor) validateAdmin(rt runtime.Runtime) *Ledger {
	var st State
	rt.State().Readonly(&st)
	l := loadLedger(rt, &st)
	rt.ValidateImmediateCallerIs(l.Config.Admin())
	return l
}
