package vesting_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/golden"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/builtin/vesting"
)

// Daily withdrawals over a month-long schedule, first with the whole pool on hand and then
// with the pool deposited in daily instalments that lag the release.
func TestVestingCurve(t *testing.T) {
	cfg := referenceConfig(t)
	cfg.CliffAmount = big.Zero()
	cfg.VestingAmount = big.NewInt(1_000_000_007)
	cfg.EndTime = cfg.StartTime + 2_600_000

	b := &bytes.Buffer{}
	withdrawDaily := func(days int, deposit func(paid abi.TokenAmount, balance abi.TokenAmount) abi.TokenAmount) abi.TokenAmount {
		st := vesting.NewAccountingState(cfg)
		paid, balance := big.Zero(), big.Zero()
		for d := 1; d <= days; d++ {
			now := cfg.StartTime + abi.Timestamp(d)*builtin.SecondsInDay
			balance = deposit(paid, balance)
			amount := big.Zero()
			w, err := st.WithdrawVested(cfg, now, denom, balance)
			if err != nil {
				require.Equal(t, vesting.ErrNothingToWithdraw, builtin.ExitCodeOf(err, 0), err.Error())
			} else {
				amount = w.Amount.Amount
				next := w.Next
				st = &next
				paid = big.Add(paid, amount)
				balance = big.Sub(balance, amount)
			}
			fmt.Fprintf(b, "%d,%s,%d\n", now-cfg.StartTime, amount, st.LastWithdrawnTime-cfg.StartTime)
		}
		return paid
	}

	b.WriteString("funded\n")
	paid := withdrawDaily(31, func(paid, _ abi.TokenAmount) abi.TokenAmount {
		return big.Sub(cfg.VestingAmount, paid)
	})
	require.Equal(t, cfg.VestingAmount, paid)

	b.WriteString("underfunded\n")
	withdrawDaily(40, func(_, balance abi.TokenAmount) abi.TokenAmount {
		return big.Add(balance, big.NewInt(25_000_000))
	})

	golden.Assert(t, b.Bytes())
}
