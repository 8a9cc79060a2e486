package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
)

// State is the actor's state root. The schedule and its progress live as two records
// in a HAMT so that each can be rewritten independently.
type State struct {
	Records cid.Cid // HAMT[string]record
}

// Config holds the schedule parameters. Only the principals and the whitelist change after setup.
type Config struct {
	// Manages delegation and administrative fields, unless Controller says otherwise.
	Owner addr.Address `json:"owner"`
	// Receives every released amount and swept reward.
	Recipient addr.Address `json:"recipient"`

	// Released in full once the schedule starts. Independent of VestingAmount.
	CliffAmount abi.TokenAmount `json:"cliff_amount"`
	// Released linearly between StartTime and EndTime.
	VestingAmount abi.TokenAmount `json:"vesting_amount"`

	StartTime abi.Timestamp `json:"start_time"`
	EndTime   abi.Timestamp `json:"end_time"`

	// Principals allowed to trigger withdrawals. Always contains Owner and Recipient.
	WhitelistedAddresses []addr.Address `json:"whitelisted_addresses"`

	// The tracked denomination.
	Denom      string     `json:"denom"`
	Controller Controller `json:"controller"`
}

// AccountingState records withdrawal progress.
type AccountingState struct {
	CliffAmountWithdrawn abi.TokenAmount `json:"cliff_amount_withdrawn"`
	// Virtual time up to which the linear pool has been paid out.
	// Lags real time when a withdrawal was limited by the available balance.
	LastWithdrawnTime abi.Timestamp `json:"last_withdrawn_time"`
}

// Withdrawal is the outcome of a successful engine computation.
type Withdrawal struct {
	Amount abi.Coin
	// Whether Amount is of the tracked denomination, in which case Next replaces the accounting state.
	Tracked bool
	Next    AccountingState
}

func NewAccountingState(cfg *Config) *AccountingState {
	return &AccountingState{
		CliffAmountWithdrawn: big.Zero(),
		LastWithdrawnTime:    cfg.StartTime,
	}
}

// Validate checks the schedule parameters.
func (c *Config) Validate() error {
	if c.EndTime <= c.StartTime {
		return builtin.Wrapf(exitcode.ErrIllegalArgument, "end time %s must be after start time %s", c.EndTime, c.StartTime)
	}
	if c.CliffAmount.Int == nil || c.CliffAmount.Sign() < 0 {
		return builtin.Wrapf(exitcode.ErrIllegalArgument, "cliff amount %v must be non-negative", c.CliffAmount)
	}
	if c.VestingAmount.Int == nil || c.VestingAmount.Sign() < 0 {
		return builtin.Wrapf(exitcode.ErrIllegalArgument, "vesting amount %v must be non-negative", c.VestingAmount)
	}
	if err := abi.ValidateDenom(c.Denom); err != nil {
		return builtin.Wrapf(exitcode.ErrIllegalArgument, "tracked denomination: %w", err)
	}
	if c.Controller > ControllerRecipient {
		return builtin.Wrapf(exitcode.ErrIllegalArgument, "invalid controller %s", c.Controller)
	}
	if c.Owner.Empty() || c.Recipient.Empty() {
		return builtin.Wrapf(exitcode.ErrIllegalArgument, "owner and recipient must be set")
	}
	if len(c.WhitelistedAddresses) > MaxWhitelistSize {
		return builtin.Wrapf(exitcode.ErrIllegalArgument, "whitelist of %d exceeds maximum %d", len(c.WhitelistedAddresses), MaxWhitelistSize)
	}
	return nil
}

// Duration of the linear schedule in seconds.
func (c *Config) Duration() uint64 {
	return c.EndTime.Since(c.StartTime)
}

// Admin is the principal allowed to delegate and to change the whitelist and principals.
func (c *Config) Admin() addr.Address {
	if c.Controller == ControllerRecipient {
		return c.Recipient
	}
	return c.Owner
}

func (c *Config) IsWhitelisted(a addr.Address) bool {
	for _, w := range c.WhitelistedAddresses {
		if w == a {
			return true
		}
	}
	return false
}

// AddToWhitelist adds each principal that is not already present, preserving order.
func (c *Config) AddToWhitelist(addrs ...addr.Address) {
	for _, a := range addrs {
		if !c.IsWhitelisted(a) {
			c.WhitelistedAddresses = append(c.WhitelistedAddresses, a)
		}
	}
}

// RemoveFromWhitelist removes the given principals. Owner and recipient are never removed.
func (c *Config) RemoveFromWhitelist(addrs ...addr.Address) {
	drop := make(map[addr.Address]struct{}, len(addrs))
	for _, a := range addrs {
		drop[a] = struct{}{}
	}
	kept := make([]addr.Address, 0, len(c.WhitelistedAddresses))
	for _, w := range c.WhitelistedAddresses {
		if _, ok := drop[w]; ok && w != c.Owner && w != c.Recipient {
			continue
		}
		kept = append(kept, w)
	}
	c.WhitelistedAddresses = kept
	// A principal change may have left the current owner or recipient outside the list.
	c.AddToWhitelist(c.Owner, c.Recipient)
}

// Linear release per second, rounded down.
func (c *Config) RatePerSecond() abi.TokenAmount {
	return big.Div(c.VestingAmount, big.NewIntUnsigned(c.Duration()))
}

// The share of the vesting pool released over `span` seconds, rounded down.
func (c *Config) ratio(span uint64) abi.TokenAmount {
	return big.Div(big.Mul(c.VestingAmount, big.NewIntUnsigned(span)), big.NewIntUnsigned(c.Duration()))
}

// Clamps t into the schedule window.
func (c *Config) clamp(t abi.Timestamp) abi.Timestamp {
	if t < c.StartTime {
		return c.StartTime
	}
	return abi.MinTimestamp(t, c.EndTime)
}

// CliffRemaining is the part of the cliff pool not yet withdrawn.
func (st *AccountingState) CliffRemaining(cfg *Config) abi.TokenAmount {
	return big.Max(big.Sub(cfg.CliffAmount, st.CliffAmountWithdrawn), big.Zero())
}

// Accrued is the linear entitlement vested between the last withdrawal and `now`.
//
// It is computed as V - V*(lwt-start)/D - V*(end-now)/D with each quotient floored
// independently, so it may differ from V*(now-lwt)/D by a few base units.
func (st *AccountingState) Accrued(cfg *Config, now abi.Timestamp) abi.TokenAmount {
	effNow := cfg.clamp(now)
	lwt := cfg.clamp(st.LastWithdrawnTime)
	consumed := cfg.ratio(lwt.Since(cfg.StartTime))
	remaining := cfg.ratio(cfg.EndTime.Since(effNow))
	accrued := big.Sub(big.Sub(cfg.VestingAmount, consumed), remaining)
	return big.Max(accrued, big.Zero())
}

// WithdrawCliff computes a withdrawal from the cliff pool given the receiver's balance
// of `denom`. Other denominations are swept whole.
func (st *AccountingState) WithdrawCliff(cfg *Config, now abi.Timestamp, denom string, balance abi.TokenAmount) (*Withdrawal, error) {
	if now < cfg.StartTime {
		return nil, builtin.Wrapf(exitcode.ErrForbidden, "schedule starts at %s, now %s", cfg.StartTime, now)
	}
	if denom != cfg.Denom {
		return st.sweep(denom, balance)
	}

	remaining := st.CliffRemaining(cfg)
	if remaining.IsZero() {
		return nil, builtin.Wrapf(ErrNothingToWithdraw, "cliff amount %v fully withdrawn", cfg.CliffAmount)
	}
	if balance.Sign() <= 0 {
		return nil, builtin.Wrapf(ErrNothingToWithdraw, "no %s balance", denom)
	}

	amount := big.Min(balance, remaining)
	return &Withdrawal{
		Amount:  abi.NewCoin(amount, denom),
		Tracked: true,
		Next: AccountingState{
			CliffAmountWithdrawn: big.Add(st.CliffAmountWithdrawn, amount),
			LastWithdrawnTime:    st.LastWithdrawnTime,
		},
	}, nil
}

// WithdrawVested computes a withdrawal from the linear pool given the receiver's balance
// of `denom`. The cliff pool must be drained first, after which other denominations are swept whole.
//
// When the balance cannot cover the accrued entitlement before the schedule ends, the whole
// balance is paid and the virtual clock advances only by the time that balance represents
// at the per-second rate, so that the unpaid remainder stays accruable.
func (st *AccountingState) WithdrawVested(cfg *Config, now abi.Timestamp, denom string, balance abi.TokenAmount) (*Withdrawal, error) {
	if now < cfg.StartTime {
		return nil, builtin.Wrapf(exitcode.ErrForbidden, "schedule starts at %s, now %s", cfg.StartTime, now)
	}
	if st.CliffAmountWithdrawn.LessThan(cfg.CliffAmount) {
		return nil, builtin.Wrapf(ErrWithdrawCliffFirst, "cliff withdrawn %v of %v", st.CliffAmountWithdrawn, cfg.CliffAmount)
	}
	if denom != cfg.Denom {
		return st.sweep(denom, balance)
	}
	if balance.Sign() <= 0 {
		return nil, builtin.Wrapf(ErrNothingToWithdraw, "no %s balance", denom)
	}

	effNow := cfg.clamp(now)
	next := AccountingState{CliffAmountWithdrawn: st.CliffAmountWithdrawn}
	var amount abi.TokenAmount

	if effNow == cfg.EndTime {
		// Schedule matured: everything left is released.
		amount = balance
		next.LastWithdrawnTime = cfg.EndTime
	} else if accrued := st.Accrued(cfg, now); balance.LessThan(accrued) {
		amount = balance
		advance, err := secondsFor(cfg, balance)
		if err != nil {
			return nil, err
		}
		// The virtual clock never passes real time.
		lwt := cfg.clamp(st.LastWithdrawnTime)
		if window := effNow.Since(lwt); advance > window {
			advance = window
		}
		next.LastWithdrawnTime = lwt + abi.Timestamp(advance)
	} else {
		amount = accrued
		next.LastWithdrawnTime = effNow
	}

	if amount.IsZero() {
		return nil, builtin.Wrapf(ErrNothingToWithdraw, "nothing vested since %s", st.LastWithdrawnTime)
	}
	return &Withdrawal{
		Amount:  abi.NewCoin(amount, denom),
		Tracked: true,
		Next:    next,
	}, nil
}

// Converts an amount into whole seconds of linear release.
func secondsFor(cfg *Config, amount abi.TokenAmount) (uint64, error) {
	rate := cfg.RatePerSecond()
	if rate.IsZero() {
		return 0, builtin.Wrapf(ErrZeroVestingRate, "vesting %v over %d seconds releases nothing per second", cfg.VestingAmount, cfg.Duration())
	}
	secs := big.Div(amount, rate)
	if !secs.Int.IsUint64() {
		return 0, builtin.Wrapf(ErrConversionOverflow, "%v at %v per second overflows seconds", amount, rate)
	}
	return secs.Int.Uint64(), nil
}

func (st *AccountingState) sweep(denom string, balance abi.TokenAmount) (*Withdrawal, error) {
	if err := abi.ValidateDenom(denom); err != nil {
		return nil, builtin.Wrapf(exitcode.ErrIllegalArgument, "%w", err)
	}
	if balance.Sign() <= 0 {
		return nil, builtin.Wrapf(ErrNothingToWithdraw, "no %s balance", denom)
	}
	return &Withdrawal{
		Amount:  abi.NewCoin(balance, denom),
		Tracked: false,
		Next:    *st,
	}, nil
}
