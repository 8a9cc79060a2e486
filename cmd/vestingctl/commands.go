package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	flag "github.com/spf13/pflag"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/builtin/vesting"
	"github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/support/ledger"
	"github.com/cpvesting/vesting-actors/support/vm"
)

type cli struct {
	log    *slog.Logger
	clock  clockwork.Clock
	dsn    string
	ledger string
	caller string
	out    io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, c *cli, args []string) error
}

var commands = map[string]command{
	"migrate":          {"apply database migrations", runMigrate},
	"init":             {"create a ledger and construct its vesting schedule", runInit},
	"fund":             {"credit coins to a ledger's balance", runFund},
	"accrue-reward":    {"add staking rewards to one of a ledger's delegations", runAccrueReward},
	"withdraw-cliff":   {"release the cliff pool to the recipient", runWithdraw(builtin.MethodsVesting.WithdrawCliffVestedFunds)},
	"withdraw":         {"release the linear pool accrued so far to the recipient", runWithdraw(builtin.MethodsVesting.WithdrawVestedFunds)},
	"claim-reward":     {"claim staking rewards from a validator", runClaimReward},
	"delegate":         {"bond funds to a validator", runDelegation(builtin.MethodsVesting.DelegateFunds)},
	"undelegate":       {"unbond funds from a validator", runDelegation(builtin.MethodsVesting.UndelegateFunds)},
	"redelegate":       {"move bonded funds between validators", runRedelegate},
	"whitelist-add":    {"add addresses to the withdrawal whitelist", runWhitelist(builtin.MethodsVesting.AddToWhitelist)},
	"whitelist-remove": {"remove addresses from the withdrawal whitelist", runWhitelist(builtin.MethodsVesting.RemoveFromWhitelist)},
	"update-owner":     {"replace the owner", runUpdateOwner},
	"update-recipient": {"replace the recipient", runUpdateRecipient},
	"query-config":     {"print the schedule configuration", runQuery(builtin.MethodsVesting.QueryConfig)},
	"query-state":      {"print the withdrawal accounting", runQuery(builtin.MethodsVesting.QueryState)},
	"world":            {"print the ledger's balances and delegations", runWorld},
	"journal":          {"print the ledger's journal", runJournal},
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func runMigrate(ctx context.Context, c *cli, args []string) error {
	if err := newFlagSet("migrate").Parse(args); err != nil {
		return err
	}
	pool, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	return ledger.Migrate(ctx, c.log, pool)
}

func runInit(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("init")
	receiverFlag := fs.String("receiver", "", "address hosting the schedule, derived from the ledger name if empty")
	ownerFlag := fs.String("owner", "", "owner address, defaults to the caller")
	recipientFlag := fs.String("recipient", "", "recipient address")
	cliffFlag := fs.String("cliff", "0", "cliff amount")
	amountFlag := fs.String("amount", "", "linear vesting amount")
	startFlag := fs.String("start", "", "vesting start (RFC3339 or unix seconds), defaults to the block time")
	endFlag := fs.String("end", "", "vesting end (RFC3339 or unix seconds)")
	durationFlag := fs.Duration("duration", 0, "vesting duration from the start, used when --end is empty")
	denomFlag := fs.String("denom", vesting.DefaultDenom, "tracked denomination")
	controllerFlag := fs.String("controller", "owner", "principal managing delegation and administration (owner or recipient)")
	fundFlag := fs.String("fund", "", "coins to credit after construction, e.g. 1000000uluna")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name, err := c.ledgerName()
	if err != nil {
		return err
	}
	caller, err := c.callerAddress()
	if err != nil {
		return err
	}
	receiver, err := receiverAddress(*receiverFlag, name)
	if err != nil {
		return err
	}

	owner := *ownerFlag
	if owner == "" {
		owner = caller.String()
	}
	if *recipientFlag == "" {
		return fmt.Errorf("--recipient is required")
	}
	cliff, err := big.FromString(*cliffFlag)
	if err != nil {
		return fmt.Errorf("invalid --cliff: %w", err)
	}
	amount, err := big.FromString(*amountFlag)
	if err != nil {
		return fmt.Errorf("invalid --amount: %w", err)
	}
	controller, err := vesting.ParseController(*controllerFlag)
	if err != nil {
		return err
	}
	funds, err := abi.ParseCoins(*fundFlag)
	if err != nil {
		return fmt.Errorf("invalid --fund: %w", err)
	}

	params := &vesting.ConstructorParams{
		Owner:         owner,
		Recipient:     *recipientFlag,
		CliffAmount:   cliff,
		VestingAmount: amount,
		Denom:         *denomFlag,
		Controller:    controller,
	}
	start := c.clock.Now()
	if *startFlag != "" {
		if start, err = parseTime(*startFlag); err != nil {
			return err
		}
		ts := abi.Timestamp(start.Unix())
		params.StartTime = &ts
	}
	switch {
	case *endFlag != "":
		end, err := parseTime(*endFlag)
		if err != nil {
			return err
		}
		params.EndTime = abi.Timestamp(end.Unix())
	case *durationFlag > 0:
		params.EndTime = abi.Timestamp(start.Add(*durationFlag).Unix())
	default:
		return fmt.Errorf("one of --end or --duration is required")
	}

	store, closeStore, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.Create(ctx, name, receiver, func(v *vm.VM) error {
		if _, err := ledger.Send(v, caller, builtin.MethodConstructor, params); err != nil {
			return err
		}
		v.Fund(funds...)
		return nil
	})
	if err != nil {
		return err
	}
	return c.print(entries)
}

func runFund(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("fund")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: fund <coins>")
	}
	coins, err := abi.ParseCoins(fs.Arg(0))
	if err != nil {
		return err
	}
	return c.applyWorld(ctx, func(v *vm.VM) error {
		v.Fund(coins...)
		return nil
	})
}

func runAccrueReward(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("accrue-reward")
	validatorFlag := fs.String("validator", "", "validator address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: accrue-reward --validator <validator> <coins>")
	}
	coins, err := abi.ParseCoins(fs.Arg(0))
	if err != nil {
		return err
	}
	return c.applyWorld(ctx, func(v *vm.VM) error {
		return v.AccrueReward(*validatorFlag, coins...)
	})
}

func runWithdraw(method abi.MethodNum) func(ctx context.Context, c *cli, args []string) error {
	return func(ctx context.Context, c *cli, args []string) error {
		fs := newFlagSet("withdraw")
		denomFlag := fs.String("denom", "", "denomination to withdraw, defaults to the tracked one")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return c.send(ctx, method, &vesting.WithdrawParams{Denom: *denomFlag})
	}
}

func runClaimReward(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("claim-reward")
	validatorFlag := fs.String("validator", "", "validator address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.send(ctx, builtin.MethodsVesting.WithdrawDelegatorReward, &vesting.WithdrawDelegatorRewardParams{Validator: *validatorFlag})
}

func runDelegation(method abi.MethodNum) func(ctx context.Context, c *cli, args []string) error {
	return func(ctx context.Context, c *cli, args []string) error {
		fs := newFlagSet("delegate")
		validatorFlag := fs.String("validator", "", "validator address")
		amountFlag := fs.String("amount", "", "coin to move, e.g. 1000uluna")
		if err := fs.Parse(args); err != nil {
			return err
		}
		amount, err := abi.ParseCoin(*amountFlag)
		if err != nil {
			return err
		}
		return c.send(ctx, method, &vesting.DelegateParams{Validator: *validatorFlag, Amount: amount})
	}
}

func runRedelegate(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("redelegate")
	srcFlag := fs.String("src", "", "source validator address")
	dstFlag := fs.String("dst", "", "destination validator address")
	amountFlag := fs.String("amount", "", "coin to move, e.g. 1000uluna")
	if err := fs.Parse(args); err != nil {
		return err
	}
	amount, err := abi.ParseCoin(*amountFlag)
	if err != nil {
		return err
	}
	return c.send(ctx, builtin.MethodsVesting.RedelegateFunds, &vesting.RedelegateParams{
		SrcValidator: *srcFlag,
		DstValidator: *dstFlag,
		Amount:       amount,
	})
}

func runWhitelist(method abi.MethodNum) func(ctx context.Context, c *cli, args []string) error {
	return func(ctx context.Context, c *cli, args []string) error {
		fs := newFlagSet("whitelist")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			return fmt.Errorf("at least one address is required")
		}
		return c.send(ctx, method, &vesting.WhitelistParams{Addresses: fs.Args()})
	}
}

func runUpdateOwner(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("update-owner")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: update-owner <address>")
	}
	return c.send(ctx, builtin.MethodsVesting.UpdateOwner, &vesting.UpdateOwnerParams{Owner: fs.Arg(0)})
}

func runUpdateRecipient(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("update-recipient")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: update-recipient <address>")
	}
	return c.send(ctx, builtin.MethodsVesting.UpdateRecipient, &vesting.UpdateRecipientParams{Recipient: fs.Arg(0)})
}

func runQuery(method abi.MethodNum) func(ctx context.Context, c *cli, args []string) error {
	return func(ctx context.Context, c *cli, args []string) error {
		if err := newFlagSet("query").Parse(args); err != nil {
			return err
		}
		var ret runtime.CBORMarshaler
		err := c.view(ctx, func(v *vm.VM) error {
			var err error
			// Queries accept any caller.
			ret, err = ledger.Send(v, v.Receiver(), method, nil)
			return err
		})
		if err != nil {
			return err
		}
		return c.print(ret)
	}
}

func runWorld(ctx context.Context, c *cli, args []string) error {
	if err := newFlagSet("world").Parse(args); err != nil {
		return err
	}
	var world vm.World
	err := c.view(ctx, func(v *vm.VM) error {
		world = v.World()
		return nil
	})
	if err != nil {
		return err
	}
	return c.print(struct {
		Balances    abi.Coins            `json:"balances"`
		Delegations []runtime.Delegation `json:"delegations"`
	}{world.Balances, world.Delegations})
}

func runJournal(ctx context.Context, c *cli, args []string) error {
	if err := newFlagSet("journal").Parse(args); err != nil {
		return err
	}
	name, err := c.ledgerName()
	if err != nil {
		return err
	}
	store, closeStore, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.Journal(ctx, name)
	if err != nil {
		return err
	}
	return c.print(entries)
}

//
// Helpers
//

func (c *cli) send(ctx context.Context, method abi.MethodNum, params runtime.CBORMarshaler) error {
	caller, err := c.callerAddress()
	if err != nil {
		return err
	}
	return c.applyWorld(ctx, func(v *vm.VM) error {
		_, err := ledger.Send(v, caller, method, params)
		return err
	})
}

func (c *cli) applyWorld(ctx context.Context, fn func(v *vm.VM) error) error {
	name, err := c.ledgerName()
	if err != nil {
		return err
	}
	store, closeStore, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := store.Apply(ctx, name, fn)
	if err != nil {
		return err
	}
	return c.print(entries)
}

func (c *cli) view(ctx context.Context, fn func(v *vm.VM) error) error {
	name, err := c.ledgerName()
	if err != nil {
		return err
	}
	store, closeStore, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	return store.View(ctx, name, fn)
}

func (c *cli) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if c.dsn == "" {
		return nil, fmt.Errorf("--pg-dsn is required")
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return ledger.Connect(connectCtx, c.dsn)
}

func (c *cli) openStore(ctx context.Context) (*ledger.Store, func(), error) {
	pool, err := c.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	store := ledger.NewStore(pool, ledger.StoreConfig{Logger: c.log, Clock: c.clock})
	return store, pool.Close, nil
}

func (c *cli) ledgerName() (string, error) {
	if c.ledger == "" {
		return "", fmt.Errorf("--ledger is required")
	}
	return c.ledger, nil
}

func (c *cli) callerAddress() (addr.Address, error) {
	if c.caller == "" {
		return addr.Undef, fmt.Errorf("--caller is required")
	}
	a, err := addr.NewFromString(c.caller)
	if err != nil {
		return addr.Undef, fmt.Errorf("invalid caller %q: %w", c.caller, err)
	}
	return a, nil
}

func receiverAddress(s, ledgerName string) (addr.Address, error) {
	if s == "" {
		return addr.NewActorAddress([]byte("vesting/" + ledgerName))
	}
	a, err := addr.NewFromString(s)
	if err != nil {
		return addr.Undef, fmt.Errorf("invalid receiver %q: %w", s, err)
	}
	return a, nil
}

func (c *cli) print(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
