package vm

import (
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/runtime"
)

// World is the committed state seen by the single actor hosted in a VM: its own state root and
// the bank and staking modules reduced to the actor's balances and delegations.
type World struct {
	Head        cid.Cid
	Balances    abi.Coins
	Delegations []runtime.Delegation
}

func (w World) Balance(denom string) abi.TokenAmount {
	return w.Balances.AmountOf(denom)
}

func (w World) Delegation(validator string) (runtime.Delegation, bool) {
	for _, d := range w.Delegations {
		if d.Validator == validator {
			return d, true
		}
	}
	return runtime.Delegation{}, false
}

// Credit adds coins to the actor's balances.
func (w *World) Credit(coins ...abi.Coin) {
	for _, c := range coins {
		w.Balances = w.Balances.Add(c)
	}
	w.Balances = w.Balances.NonZero()
}

// Debit removes coins from the actor's balances, failing if any denomination is short.
func (w *World) Debit(coins ...abi.Coin) error {
	for _, c := range coins {
		if have := w.Balance(c.Denom); have.LessThan(c.Amount) {
			return xerrors.Errorf("insufficient funds: have %s%s, need %s", have, c.Denom, c)
		}
	}
	for _, c := range coins {
		w.Balances = w.Balances.Add(abi.NewCoin(big.Sub(big.Zero(), c.Amount), c.Denom))
	}
	w.Balances = w.Balances.NonZero()
	return nil
}

// SetDelegation replaces or adds the delegation to d.Validator.
func (w *World) SetDelegation(d runtime.Delegation) {
	for i := range w.Delegations {
		if w.Delegations[i].Validator == d.Validator {
			w.Delegations[i] = d
			return
		}
	}
	w.Delegations = append(w.Delegations, d)
}

// AccrueReward adds to the rewards pending on an existing delegation.
func (w *World) AccrueReward(validator string, coins ...abi.Coin) error {
	d, ok := w.Delegation(validator)
	if !ok {
		return xerrors.Errorf("no delegation to %s", validator)
	}
	for _, c := range coins {
		d.AccumulatedRewards = d.AccumulatedRewards.Add(c)
	}
	w.SetDelegation(d)
	return nil
}

func (w *World) clone() World {
	out := World{Head: w.Head}
	out.Balances = append(abi.Coins(nil), w.Balances...)
	for _, d := range w.Delegations {
		d.AccumulatedRewards = append(abi.Coins(nil), d.AccumulatedRewards...)
		out.Delegations = append(out.Delegations, d)
	}
	return out
}

// Execute applies the instructions of a committed response in order. Staking operations withdraw
// pending rewards into the balance first, as the distribution module does.
// Unbonding completes immediately.
func (w *World) Execute(msgs []runtime.Instruction) error {
	for i, m := range msgs {
		if err := w.execute(m); err != nil {
			return xerrors.Errorf("instruction %d (%s): %w", i, m.Kind, err)
		}
	}
	return nil
}

func (w *World) execute(m runtime.Instruction) error {
	switch m.Kind {
	case runtime.BankSend:
		return w.Debit(m.Amount...)
	case runtime.StakingDelegate:
		if err := w.Debit(m.Amount...); err != nil {
			return err
		}
		_ = w.claim(m.Validator) // a first delegation has nothing pending
		return w.bond(m.Validator, m.Amount[0])
	case runtime.StakingUndelegate:
		if err := w.claim(m.Validator); err != nil {
			return err
		}
		if err := w.unbond(m.Validator, m.Amount[0]); err != nil {
			return err
		}
		w.Credit(m.Amount...)
		return nil
	case runtime.StakingRedelegate:
		if err := w.claim(m.Validator); err != nil {
			return err
		}
		_ = w.claim(m.DstValidator)
		if err := w.unbond(m.Validator, m.Amount[0]); err != nil {
			return err
		}
		return w.bond(m.DstValidator, m.Amount[0])
	case runtime.DistributionWithdrawReward:
		return w.claim(m.Validator)
	default:
		return xerrors.Errorf("unknown instruction kind %d", m.Kind)
	}
}

// Moves pending rewards of a delegation into the balance.
func (w *World) claim(validator string) error {
	d, ok := w.Delegation(validator)
	if !ok {
		return xerrors.Errorf("no delegation to %s", validator)
	}
	w.Credit(d.AccumulatedRewards...)
	d.AccumulatedRewards = nil
	w.SetDelegation(d)
	return nil
}

func (w *World) bond(validator string, amount abi.Coin) error {
	d, ok := w.Delegation(validator)
	if !ok {
		d = runtime.Delegation{Validator: validator, Amount: abi.NewCoin(big.Zero(), amount.Denom)}
	}
	if d.Amount.Denom != amount.Denom {
		return xerrors.Errorf("delegation to %s is in %s, not %s", validator, d.Amount.Denom, amount.Denom)
	}
	d.Amount.Amount = big.Add(d.Amount.Amount, amount.Amount)
	w.SetDelegation(d)
	return nil
}

func (w *World) unbond(validator string, amount abi.Coin) error {
	d, ok := w.Delegation(validator)
	if !ok || d.Amount.Denom != amount.Denom || d.Amount.Amount.LessThan(amount.Amount) {
		return xerrors.Errorf("delegation to %s cannot cover %s", validator, amount)
	}
	d.Amount.Amount = big.Sub(d.Amount.Amount, amount.Amount)
	if d.Amount.Amount.IsZero() && len(d.AccumulatedRewards) == 0 {
		w.removeDelegation(validator)
		return nil
	}
	w.SetDelegation(d)
	return nil
}

func (w *World) removeDelegation(validator string) {
	kept := w.Delegations[:0]
	for _, d := range w.Delegations {
		if d.Validator != validator {
			kept = append(kept, d)
		}
	}
	w.Delegations = kept
}
