package vesting_test

import (
	"context"
	"fmt"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/builtin/vesting"
	"github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/actors/util/adt"
	"github.com/cpvesting/vesting-actors/support/mock"
	tutil "github.com/cpvesting/vesting-actors/support/testing"
)

func TestExports(t *testing.T) {
	exports := vesting.Actor{}.Exports()
	require.Len(t, exports, 14)
	assert.Nil(t, exports[builtin.MethodSend])
	for i := 1; i < len(exports); i++ {
		assert.NotNil(t, exports[i], "method %d", i)
	}
	assert.Equal(t, abi.MethodNum(len(exports)-1), builtin.MethodsVesting.QueryState)
}

func TestConstruction(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	owner := tutil.NewIDAddr(t, 101)
	recipient := tutil.NewIDAddr(t, 102)
	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(owner).
		WithTime(startTime - 100)

	t.Run("simple construction", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		ret := actor.constructAndVerify(rt)

		assert.Equal(t, "instantiate", ret.Action)
		assertAttribute(t, ret, "owner", owner.String())
		assertAttribute(t, ret, "recipient", recipient.String())
		assertAttribute(t, ret, "cliff_amount", cliffAmount.String())
		assertAttribute(t, ret, "vesting_amount", vestingAmount.String())
		assertAttribute(t, ret, "start_time", startTime.String())
		assertAttribute(t, ret, "end_time", endTime.String())
		assertAttribute(t, ret, "denom", denom)
		assert.Empty(t, ret.Messages)

		cfg, acct := actor.getLedger(rt)
		assert.Equal(t, owner, cfg.Owner)
		assert.Equal(t, recipient, cfg.Recipient)
		assert.Equal(t, []addr.Address{owner, recipient}, cfg.WhitelistedAddresses)
		assert.Equal(t, vesting.ControllerOwner, cfg.Controller)
		assert.True(t, acct.CliffAmountWithdrawn.IsZero())
		assert.Equal(t, startTime, acct.LastWithdrawnTime)
		actor.checkState(rt)
	})

	t.Run("start time defaults to now and denomination to the default", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		params := actor.constructorParams()
		params.StartTime = nil
		params.Denom = ""

		rt.ExpectValidateCallerAny()
		rt.Call(actor.Constructor, params)
		rt.Verify()

		cfg, acct := actor.getLedger(rt)
		assert.Equal(t, startTime-100, cfg.StartTime)
		assert.Equal(t, startTime-100, acct.LastWithdrawnTime)
		assert.Equal(t, vesting.DefaultDenom, cfg.Denom)
	})

	t.Run("owner and recipient may coincide", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, owner)
		actor.constructAndVerify(rt)
		cfg, _ := actor.getLedger(rt)
		assert.Equal(t, []addr.Address{owner}, cfg.WhitelistedAddresses)
	})

	t.Run("fails when end does not follow start", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		params := actor.constructorParams()
		params.EndTime = startTime

		rt.ExpectValidateCallerAny()
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "end time", func() {
			rt.Call(actor.Constructor, params)
		})
		rt.Verify()
	})

	t.Run("fails on negative amounts", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		params := actor.constructorParams()
		params.CliffAmount = big.NewInt(-5)

		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.Constructor, params)
		})
		rt.Verify()
	})

	t.Run("fails on malformed principals", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		params := actor.constructorParams()
		params.Recipient = "not-an-address"

		rt.ExpectValidateCallerAny()
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "invalid recipient", func() {
			rt.Call(actor.Constructor, params)
		})
		rt.Verify()
	})

	t.Run("uses the address validation capability", func(t *testing.T) {
		rt := builder.Build(t)
		rt.SetAddressValidator(func(s string) (addr.Address, error) {
			if s == owner.String() {
				return addr.Undef, fmt.Errorf("%s is blocked", s)
			}
			return builtin.ValidateAddressString(s)
		})
		actor := newHarness(t, receiver, owner, recipient)

		rt.ExpectValidateCallerAny()
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "blocked", func() {
			rt.Call(actor.Constructor, actor.constructorParams())
		})
		rt.Verify()
	})
}

func TestWithdrawCliffVestedFunds(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	owner := tutil.NewIDAddr(t, 101)
	recipient := tutil.NewIDAddr(t, 102)
	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(owner).
		WithTime(startTime).
		WithBalance(abi.NewCoin(big.Add(cliffAmount, vestingAmount), denom))

	t.Run("pays the cliff to the recipient", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		ret := actor.withdrawCliff(rt, owner, "")
		assert.Equal(t, "withdraw_cliff_vested_funds", ret.Action)
		assertAttribute(t, ret, "denom", denom)
		assertAttribute(t, ret, "amount_to_withdraw", cliffAmount.String())
		assertAttribute(t, ret, "cliff_amount_withdrawn", cliffAmount.String())
		require.Len(t, ret.Messages, 1)
		assert.Equal(t, runtime.NewBankSend(recipient, abi.NewCoin(cliffAmount, denom)), ret.Messages[0])

		_, acct := actor.getLedger(rt)
		assert.Equal(t, cliffAmount, acct.CliffAmountWithdrawn)
		assert.Equal(t, startTime, acct.LastWithdrawnTime)
		actor.checkState(rt)
	})

	t.Run("recipient may withdraw", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		actor.withdrawCliff(rt, recipient, denom)
	})

	t.Run("fails for callers outside the whitelist", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.SetCaller(tutil.NewIDAddr(t, 999))
		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.WithdrawCliffVestedFunds, &vesting.WithdrawParams{})
		})
		rt.Verify()
	})

	t.Run("fails before the schedule starts", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.SetTime(startTime - 1)
		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.WithdrawCliffVestedFunds, &vesting.WithdrawParams{})
		})
		rt.Verify()
	})

	t.Run("partial cliff then remainder", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		short := big.NewInt(1_000_000)
		rt.SetBalance(abi.NewCoin(short, denom))
		ret := actor.withdrawCliff(rt, owner, "")
		assertAttribute(t, ret, "amount_to_withdraw", short.String())

		rt.SetBalance(abi.NewCoin(vestingAmount, denom))
		ret = actor.withdrawCliff(rt, owner, "")
		assertAttribute(t, ret, "amount_to_withdraw", big.Sub(cliffAmount, short).String())
		assertAttribute(t, ret, "cliff_amount_withdrawn", cliffAmount.String())

		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(vesting.ErrNothingToWithdraw, func() {
			rt.Call(actor.WithdrawCliffVestedFunds, &vesting.WithdrawParams{})
		})
		rt.Verify()
		actor.checkState(rt)
	})

	t.Run("sweeps an untracked denomination without touching state", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		rt.SetBalance(abi.NewCoin(big.NewInt(42), "uusd"))
		before := rt.StateRoot()

		ret := actor.withdrawCliff(rt, owner, "uusd")
		assertAttribute(t, ret, "denom", "uusd")
		assertAttribute(t, ret, "amount_to_withdraw", "42")
		assertAttribute(t, ret, "cliff_amount_withdrawn", "0")
		assert.Equal(t, runtime.NewBankSend(recipient, abi.NewCoin(big.NewInt(42), "uusd")), ret.Messages[0])

		_, acct := actor.getLedger(rt)
		assert.True(t, acct.CliffAmountWithdrawn.IsZero())
		// The state is rewritten with identical content.
		assert.Equal(t, before, rt.StateRoot())
	})

	t.Run("fails on a malformed denomination", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.WithdrawCliffVestedFunds, &vesting.WithdrawParams{Denom: "$"})
		})
		rt.Verify()
	})
}

func TestWithdrawVestedFunds(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	owner := tutil.NewIDAddr(t, 101)
	recipient := tutil.NewIDAddr(t, 102)
	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(recipient).
		WithTime(startTime).
		WithBalance(abi.NewCoin(big.Add(cliffAmount, vestingAmount), denom))

	t.Run("cliff must be withdrawn first", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		rt.SetTime(startTime + builtin.SecondsInDay)

		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(vesting.ErrWithdrawCliffFirst, func() {
			rt.Call(actor.WithdrawVestedFunds, &vesting.WithdrawParams{})
		})
		rt.Verify()

		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(vesting.ErrWithdrawCliffFirst, func() {
			rt.Call(actor.WithdrawVestedFunds, &vesting.WithdrawParams{Denom: "uusd"})
		})
		rt.Verify()
	})

	t.Run("pays one day of accrual", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		actor.withdrawCliff(rt, recipient, "")
		rt.SetBalance(abi.NewCoin(vestingAmount, denom))

		now := startTime + builtin.SecondsInDay
		rt.SetTime(now)
		ret := actor.withdrawVested(rt, recipient, "")
		assert.Equal(t, "withdraw_vested_funds", ret.Action)
		assertAttribute(t, ret, "amount_to_withdraw", "68446270221")
		assertAttribute(t, ret, "last_withdrawn_time", now.String())
		assert.Equal(t, runtime.NewBankSend(recipient, abi.NewCoin(big.NewInt(68446270221), denom)), ret.Messages[0])

		_, acct := actor.getLedger(rt)
		assert.Equal(t, now, acct.LastWithdrawnTime)
		actor.checkState(rt)
	})

	t.Run("constrained by balance", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		actor.withdrawCliff(rt, recipient, "")

		rt.SetBalance(abi.NewCoin(big.NewInt(1_000_000_000), denom))
		rt.SetTime(startTime + builtin.SecondsInDay)
		ret := actor.withdrawVested(rt, owner, "")
		assertAttribute(t, ret, "amount_to_withdraw", "1000000000")
		assertAttribute(t, ret, "last_withdrawn_time", (startTime + 1262).String())

		// Topping up releases the rest of the accrual.
		rt.SetBalance(abi.NewCoin(vestingAmount, denom))
		rt.SetTime(startTime + 2*builtin.SecondsInDay)
		ret = actor.withdrawVested(rt, owner, "")
		assertAttribute(t, ret, "amount_to_withdraw", "135892781264")
		actor.checkState(rt)
	})

	t.Run("nothing accrued at the start", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		actor.withdrawCliff(rt, recipient, "")

		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(vesting.ErrNothingToWithdraw, func() {
			rt.Call(actor.WithdrawVestedFunds, &vesting.WithdrawParams{})
		})
		rt.Verify()
	})

	t.Run("drains the balance after the schedule ends", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		actor.withdrawCliff(rt, recipient, "")

		leftover := big.Add(vestingAmount, big.NewInt(12345))
		rt.SetBalance(abi.NewCoin(leftover, denom))
		rt.SetTime(endTime + builtin.SecondsInYear)
		ret := actor.withdrawVested(rt, recipient, "")
		assertAttribute(t, ret, "amount_to_withdraw", leftover.String())
		assertAttribute(t, ret, "last_withdrawn_time", endTime.String())

		summary := actor.checkState(rt)
		assert.True(t, summary.VestingRemaining.IsZero())
		assert.True(t, summary.CliffRemaining.IsZero())
	})

	t.Run("zero balance", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		actor.withdrawCliff(rt, recipient, "")
		rt.SetBalance(abi.NewCoin(big.Zero(), denom))
		rt.SetTime(startTime + builtin.SecondsInDay)

		rt.ExpectValidateCallerAddr(owner, recipient)
		rt.ExpectAbort(vesting.ErrNothingToWithdraw, func() {
			rt.Call(actor.WithdrawVestedFunds, &vesting.WithdrawParams{})
		})
		rt.Verify()
	})
}

func TestDelegation(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	owner := tutil.NewIDAddr(t, 101)
	recipient := tutil.NewIDAddr(t, 102)
	validator := "terravaloper1abc"
	other := "terravaloper1xyz"
	stake := abi.NewCoin(big.NewInt(5_000_000), denom)
	rewards := abi.Coins{
		abi.NewCoin(big.NewInt(700), "ukrw"),
		abi.NewCoin(big.Zero(), "usdr"),
		abi.NewCoin(big.NewInt(1500), denom),
	}

	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(owner).
		WithTime(startTime).
		WithDelegation(runtime.Delegation{Validator: validator, Amount: stake, AccumulatedRewards: rewards})

	t.Run("delegate sweeps accumulated rewards", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectQueryDelegation(validator)
		ret := rt.Call(actor.DelegateFunds, &vesting.DelegateParams{Validator: validator, Amount: stake}).(*runtime.Response)
		rt.Verify()

		assert.Equal(t, "delegate_funds", ret.Action)
		assertAttribute(t, ret, "validator", validator)
		assertAttribute(t, ret, "amount", "5000000")
		assertAttribute(t, ret, "reward", "700ukrw,1500uluna")
		require.Len(t, ret.Messages, 2)
		assert.Equal(t, runtime.NewDelegate(validator, stake), ret.Messages[0])
		assert.Equal(t, runtime.NewBankSend(recipient, rewards[0], rewards[2]), ret.Messages[1])
	})

	t.Run("no delegation yields no reward transfer", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectQueryDelegation(other)
		ret := rt.Call(actor.DelegateFunds, &vesting.DelegateParams{Validator: other, Amount: stake}).(*runtime.Response)
		rt.Verify()

		require.Len(t, ret.Messages, 1)
		_, found := ret.Attribute("reward")
		assert.False(t, found)
	})

	t.Run("undelegate", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectQueryDelegation(validator)
		ret := rt.Call(actor.UndelegateFunds, &vesting.DelegateParams{Validator: validator, Amount: stake}).(*runtime.Response)
		rt.Verify()

		assert.Equal(t, "undelegate_funds", ret.Action)
		require.Len(t, ret.Messages, 2)
		assert.Equal(t, runtime.NewUndelegate(validator, stake), ret.Messages[0])
	})

	t.Run("redelegate sweeps both validators", func(t *testing.T) {
		rt := builder.Build(t)
		rt.SetDelegation(runtime.Delegation{
			Validator:          other,
			Amount:             stake,
			AccumulatedRewards: abi.Coins{abi.NewCoin(big.NewInt(3), denom)},
		})
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectQueryDelegation(validator, other)
		ret := rt.Call(actor.RedelegateFunds, &vesting.RedelegateParams{
			SrcValidator: validator,
			DstValidator: other,
			Amount:       stake,
		}).(*runtime.Response)
		rt.Verify()

		assert.Equal(t, "redelegate_funds", ret.Action)
		assertAttribute(t, ret, "src_validator", validator)
		assertAttribute(t, ret, "dst_validator", other)
		require.Len(t, ret.Messages, 3)
		assert.Equal(t, runtime.NewRedelegate(validator, other, stake), ret.Messages[0])
		assert.Equal(t, runtime.StakingRedelegate, ret.Messages[0].Kind)
		assert.Equal(t, runtime.NewBankSend(recipient, abi.NewCoin(big.NewInt(3), denom)), ret.Messages[2])
	})

	t.Run("claim rewards", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectQueryDelegation(validator)
		ret := rt.Call(actor.WithdrawDelegatorReward, &vesting.WithdrawDelegatorRewardParams{Validator: validator}).(*runtime.Response)
		rt.Verify()

		assert.Equal(t, "withdraw_delegator_rewards", ret.Action)
		require.Len(t, ret.Messages, 2)
		assert.Equal(t, runtime.NewWithdrawReward(validator), ret.Messages[0])
		assert.Equal(t, runtime.BankSend, ret.Messages[1].Kind)
		assert.Equal(t, recipient.String(), ret.Messages[1].To)
	})

	t.Run("recipient cannot delegate by default", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.SetCaller(recipient)
		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.DelegateFunds, &vesting.DelegateParams{Validator: validator, Amount: stake})
		})
		rt.Verify()
	})

	t.Run("recipient-controlled schedule", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.controller = vesting.ControllerRecipient
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(recipient)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.DelegateFunds, &vesting.DelegateParams{Validator: validator, Amount: stake})
		})
		rt.Verify()

		rt.SetCaller(recipient)
		rt.ExpectValidateCallerAddr(recipient)
		rt.ExpectQueryDelegation(validator)
		rt.Call(actor.DelegateFunds, &vesting.DelegateParams{Validator: validator, Amount: stake})
		rt.Verify()
	})

	t.Run("rejects empty validator and non-positive amounts", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		for _, params := range []*vesting.DelegateParams{
			{Validator: "", Amount: stake},
			{Validator: validator, Amount: abi.NewCoin(big.Zero(), denom)},
			{Validator: validator, Amount: abi.NewCoin(big.NewInt(-1), denom)},
			{Validator: validator, Amount: abi.NewCoin(big.NewInt(1), "")},
		} {
			rt.ExpectValidateCallerAddr(owner)
			rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
				rt.Call(actor.DelegateFunds, params)
			})
			rt.Verify()
		}
	})
}

func TestWhitelist(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	owner := tutil.NewIDAddr(t, 101)
	recipient := tutil.NewIDAddr(t, 102)
	friends := tutil.NewIDAddrs(t, 200, 3)
	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(owner).
		WithTime(startTime).
		WithBalance(abi.NewCoin(cliffAmount, denom))

	t.Run("added principals may withdraw", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		ret := actor.addToWhitelist(rt, friends...)
		assert.Equal(t, "add_to_whitelist", ret.Action)
		expected := append([]addr.Address{owner, recipient}, friends...)
		cfg, _ := actor.getLedger(rt)
		assert.Equal(t, expected, cfg.WhitelistedAddresses)
		assertAttribute(t, ret, "whitelisted_addresses",
			fmt.Sprintf("[%s, %s, %s, %s, %s]", owner, recipient, friends[0], friends[1], friends[2]))

		rt.SetCaller(friends[1])
		rt.ExpectValidateCallerAddr(expected...)
		rt.Call(actor.WithdrawCliffVestedFunds, &vesting.WithdrawParams{})
		rt.Verify()
		actor.checkState(rt)
	})

	t.Run("adding is idempotent", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		actor.addToWhitelist(rt, friends[0], friends[0], owner)
		actor.addToWhitelist(rt, friends[0])
		cfg, _ := actor.getLedger(rt)
		assert.Equal(t, []addr.Address{owner, recipient, friends[0]}, cfg.WhitelistedAddresses)
	})

	t.Run("removal keeps owner and recipient", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)
		actor.addToWhitelist(rt, friends...)

		ret := actor.removeFromWhitelist(rt, owner, recipient, friends[0], friends[2], tutil.NewIDAddr(t, 999))
		assert.Equal(t, "remove_from_whitelist", ret.Action)
		assertAttribute(t, ret, "whitelisted_addresses", fmt.Sprintf("[%s, %s, %s]", owner, recipient, friends[1]))
		cfg, _ := actor.getLedger(rt)
		assert.Equal(t, []addr.Address{owner, recipient, friends[1]}, cfg.WhitelistedAddresses)

		rt.SetCaller(friends[0])
		rt.ExpectValidateCallerAddr(owner, recipient, friends[1])
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.WithdrawCliffVestedFunds, &vesting.WithdrawParams{})
		})
		rt.Verify()
	})

	t.Run("only the owner administers", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.SetCaller(recipient)
		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.AddToWhitelist, &vesting.WhitelistParams{Addresses: []string{friends[0].String()}})
		})
		rt.Verify()
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.AddToWhitelist, &vesting.WhitelistParams{Addresses: []string{friends[0].String(), "nope"}})
		})
		rt.Verify()
	})

	t.Run("bounded size", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		many := tutil.NewIDAddrs(t, 1000, vesting.MaxWhitelistSize-2)
		actor.addToWhitelist(rt, many...)

		rt.ExpectValidateCallerAddr(owner)
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.AddToWhitelist, &vesting.WhitelistParams{Addresses: []string{friends[0].String()}})
		})
		rt.Verify()
	})
}

func TestUpdatePrincipals(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	owner := tutil.NewIDAddr(t, 101)
	recipient := tutil.NewIDAddr(t, 102)
	newOwner := tutil.NewIDAddr(t, 103)
	newRecipient := tutil.NewIDAddr(t, 104)
	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(owner).
		WithTime(startTime).
		WithBalance(abi.NewCoin(cliffAmount, denom))

	t.Run("update owner hands over administration", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner)
		ret := rt.Call(actor.UpdateOwner, &vesting.UpdateOwnerParams{Owner: newOwner.String()}).(*runtime.Response)
		rt.Verify()
		assert.Equal(t, "update_owner", ret.Action)
		assertAttribute(t, ret, "owner", newOwner.String())

		cfg, _ := actor.getLedger(rt)
		assert.Equal(t, newOwner, cfg.Owner)
		assert.Equal(t, []addr.Address{owner, recipient, newOwner}, cfg.WhitelistedAddresses)

		// The previous owner lost administration.
		rt.ExpectValidateCallerAddr(newOwner)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.UpdateOwner, &vesting.UpdateOwnerParams{Owner: owner.String()})
		})
		rt.Verify()
		actor.checkState(rt)
	})

	t.Run("update recipient redirects withdrawals", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAddr(owner)
		ret := rt.Call(actor.UpdateRecipient, &vesting.UpdateRecipientParams{Recipient: newRecipient.String()}).(*runtime.Response)
		rt.Verify()
		assert.Equal(t, "update_recipient", ret.Action)
		assertAttribute(t, ret, "recipient", newRecipient.String())

		actor.whitelist = []addr.Address{owner, recipient, newRecipient}
		actor.recipient = newRecipient
		ret = actor.withdrawCliff(rt, owner, "")
		assert.Equal(t, runtime.NewBankSend(newRecipient, abi.NewCoin(cliffAmount, denom)), ret.Messages[0])
	})

	t.Run("rejects malformed principals", func(t *testing.T) {
		rt := builder.Build(t)
		actor := newHarness(t, receiver, owner, recipient)
		actor.constructAndVerify(rt)

		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.UpdateRecipient, &vesting.UpdateRecipientParams{Recipient: ""})
		})
		rt.Verify()
	})
}

func TestQueries(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	owner := tutil.NewIDAddr(t, 101)
	recipient := tutil.NewIDAddr(t, 102)
	rt := mock.NewBuilder(context.Background(), receiver).
		WithCaller(tutil.NewIDAddr(t, 555)).
		WithTime(startTime).
		WithBalance(abi.NewCoin(cliffAmount, denom)).
		Build(t)
	actor := newHarness(t, receiver, owner, recipient)
	actor.constructAndVerify(rt)
	actor.withdrawCliff(rt, owner, "")

	rt.ExpectValidateCallerAny()
	cfg := rt.Call(actor.QueryConfig, nil).(*vesting.Config)
	rt.Verify()
	assert.Equal(t, owner, cfg.Owner)
	assert.Equal(t, endTime, cfg.EndTime)
	assert.Equal(t, denom, cfg.Denom)

	rt.ExpectValidateCallerAny()
	acct := rt.Call(actor.QueryState, nil).(*vesting.AccountingState)
	rt.Verify()
	assert.Equal(t, cliffAmount, acct.CliffAmountWithdrawn)
	assert.Equal(t, startTime, acct.LastWithdrawnTime)
}

//
// Harness
//

type actorHarness struct {
	vesting.Actor
	t testing.TB

	receiver   addr.Address
	owner      addr.Address
	recipient  addr.Address
	whitelist  []addr.Address
	controller vesting.Controller
}

func newHarness(t testing.TB, receiver, owner, recipient addr.Address) *actorHarness {
	whitelist := []addr.Address{owner}
	if recipient != owner {
		whitelist = append(whitelist, recipient)
	}
	return &actorHarness{
		t:         t,
		receiver:  receiver,
		owner:     owner,
		recipient: recipient,
		whitelist: whitelist,
	}
}

func (h *actorHarness) constructorParams() *vesting.ConstructorParams {
	start := startTime
	return &vesting.ConstructorParams{
		Owner:         h.owner.String(),
		Recipient:     h.recipient.String(),
		CliffAmount:   cliffAmount,
		VestingAmount: vestingAmount,
		StartTime:     &start,
		EndTime:       endTime,
		Denom:         denom,
		Controller:    h.controller,
	}
}

func (h *actorHarness) constructAndVerify(rt *mock.Runtime) *runtime.Response {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.Constructor, h.constructorParams()).(*runtime.Response)
	rt.Verify()
	return ret
}

func (h *actorHarness) withdrawCliff(rt *mock.Runtime, caller addr.Address, denom string) *runtime.Response {
	rt.SetCaller(caller)
	rt.ExpectValidateCallerAddr(h.whitelist...)
	ret := rt.Call(h.WithdrawCliffVestedFunds, &vesting.WithdrawParams{Denom: denom}).(*runtime.Response)
	rt.Verify()
	return ret
}

func (h *actorHarness) withdrawVested(rt *mock.Runtime, caller addr.Address, denom string) *runtime.Response {
	rt.SetCaller(caller)
	rt.ExpectValidateCallerAddr(h.whitelist...)
	ret := rt.Call(h.WithdrawVestedFunds, &vesting.WithdrawParams{Denom: denom}).(*runtime.Response)
	rt.Verify()
	return ret
}

func (h *actorHarness) addToWhitelist(rt *mock.Runtime, addrs ...addr.Address) *runtime.Response {
	rt.SetCaller(h.owner)
	rt.ExpectValidateCallerAddr(h.owner)
	ret := rt.Call(h.AddToWhitelist, &vesting.WhitelistParams{Addresses: addressStrings(addrs)}).(*runtime.Response)
	rt.Verify()
	cfg, _ := h.getLedger(rt)
	h.whitelist = cfg.WhitelistedAddresses
	return ret
}

func (h *actorHarness) removeFromWhitelist(rt *mock.Runtime, addrs ...addr.Address) *runtime.Response {
	rt.SetCaller(h.owner)
	rt.ExpectValidateCallerAddr(h.owner)
	ret := rt.Call(h.RemoveFromWhitelist, &vesting.WhitelistParams{Addresses: addressStrings(addrs)}).(*runtime.Response)
	rt.Verify()
	cfg, _ := h.getLedger(rt)
	h.whitelist = cfg.WhitelistedAddresses
	return ret
}

func (h *actorHarness) getLedger(rt *mock.Runtime) (*vesting.Config, *vesting.AccountingState) {
	var st vesting.State
	rt.GetState(&st)
	l, err := st.LoadLedger(adt.AsStore(rt))
	require.NoError(h.t, err)
	return l.Config, l.Accounting
}

func (h *actorHarness) checkState(rt *mock.Runtime) *vesting.StateSummary {
	var st vesting.State
	rt.GetState(&st)
	summary, msgs := vesting.CheckStateInvariants(&st, adt.AsStore(rt))
	assert.True(h.t, msgs.IsEmpty(), msgs.Messages())
	return summary
}

func addressStrings(addrs []addr.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}

func assertAttribute(t *testing.T, resp *runtime.Response, key, expected string) {
	t.Helper()
	actual, found := resp.Attribute(key)
	require.True(t, found, "missing attribute %s", key)
	assert.Equal(t, expected, actual, "attribute %s", key)
}
