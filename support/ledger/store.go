package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	addr "github.com/filecoin-project/go-address"
	"github.com/google/uuid"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
	"github.com/cpvesting/vesting-actors/actors/builtin/vesting"
	"github.com/cpvesting/vesting-actors/actors/runtime"
	"github.com/cpvesting/vesting-actors/support/ipld"
	"github.com/cpvesting/vesting-actors/support/vm"
)

var (
	ErrLedgerExists   = errors.New("ledger already exists")
	ErrLedgerNotFound = errors.New("ledger not found")
)

const uniqueViolation = "23505"

// Store keeps named vesting ledgers in PostgreSQL. Each ledger is a VM world whose blocks live in
// ledger_blocks, with its current root in ledger_heads and every applied response in ledger_journal.
type Store struct {
	pool  *pgxpool.Pool
	log   *slog.Logger
	clock clockwork.Clock
}

type StoreConfig struct {
	Logger *slog.Logger
	// Source of block time for messages and of journal timestamps. Defaults to the wall clock.
	Clock clockwork.Clock
}

func NewStore(pool *pgxpool.Pool, cfg StoreConfig) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Store{pool: pool, log: cfg.Logger, clock: cfg.Clock}
}

// Connect opens a connection pool for dsn.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = 4
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

// Entry is a journaled response.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Ledger    string          `json:"ledger"`
	Seq       int64           `json:"seq"`
	Caller    string          `json:"caller"`
	Method    abi.MethodNum   `json:"method"`
	Action    string          `json:"action"`
	Response  json.RawMessage `json:"response"`
	Root      string          `json:"root"`
	BlockTime abi.Timestamp   `json:"block_time"`
	AppliedAt time.Time       `json:"applied_at"`
}

// MessageError reports a message that aborted. Nothing it did was committed.
type MessageError struct {
	Method abi.MethodNum
	Result vm.MessageResult
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("method %d exited %d: %v", e.Method, e.Result.Code, e.Result.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Result.Err
}

// Send applies a message and converts an abort into a *MessageError.
func Send(v *vm.VM, from addr.Address, method abi.MethodNum, params runtime.CBORMarshaler) (runtime.CBORMarshaler, error) {
	result := v.ApplyMessage(from, method, params)
	if result.Code.IsError() {
		return nil, &MessageError{Method: method, Result: result}
	}
	return result.Ret, nil
}

// Create starts a new ledger hosted at receiver and runs fn against it, normally to construct
// the actor and fund it. Fails with ErrLedgerExists if the name is taken.
func (s *Store) Create(ctx context.Context, name string, receiver addr.Address, fn func(v *vm.VM) error) ([]Entry, error) {
	var entries []Entry
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ledger_heads WHERE name = $1)`, name).Scan(&exists); err != nil {
			return fmt.Errorf("failed to look up ledger %s: %w", name, err)
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrLedgerExists, name)
		}

		store := ipld.WrapBlockStore(ctx, &txBlockstore{ctx: ctx, tx: tx})
		v := vm.NewVM(ctx, store, vesting.Actor{}, receiver, s.vmOptions()...)
		if err := fn(v); err != nil {
			return err
		}
		root, err := v.Root()
		if err != nil {
			return err
		}

		now := s.clock.Now()
		_, err = tx.Exec(ctx,
			`INSERT INTO ledger_heads (name, receiver, root, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
			name, receiver.String(), root.String(), now)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: %s", ErrLedgerExists, name)
			}
			return fmt.Errorf("failed to write head of %s: %w", name, err)
		}

		entries, err = s.journal(ctx, tx, name, 0, v, root)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("ledger created", "ledger", name, "receiver", receiver, "entries", len(entries))
	return entries, nil
}

// Apply runs fn against the ledger's current world while holding its head row lock, then commits
// the new root and one journal entry per response produced. An error from fn rolls everything back.
func (s *Store) Apply(ctx context.Context, name string, fn func(v *vm.VM) error) ([]Entry, error) {
	var entries []Entry
	var blocks *ipld.MetricsBlockStore
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		blocks = ipld.NewMetricsBlockStore(&txBlockstore{ctx: ctx, tx: tx})
		v, prior, err := s.load(ctx, tx, blocks, name, true)
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
		root, err := v.Root()
		if err != nil {
			return err
		}

		var seq int64
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0) FROM ledger_journal WHERE ledger = $1`, name).Scan(&seq); err != nil {
			return fmt.Errorf("failed to read journal position of %s: %w", name, err)
		}
		if !root.Equals(prior) {
			_, err = tx.Exec(ctx, `UPDATE ledger_heads SET root = $2, updated_at = $3 WHERE name = $1`, name, root.String(), s.clock.Now())
			if err != nil {
				return fmt.Errorf("failed to write head of %s: %w", name, err)
			}
		}
		entries, err = s.journal(ctx, tx, name, seq, v, root)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("ledger updated", "ledger", name, "entries", len(entries),
		"blocks_read", blocks.Reads, "blocks_written", blocks.Writes, "bytes_written", blocks.WriteBytes)
	return entries, nil
}

// View runs fn against the ledger's current world. Nothing fn does is committed.
func (s *Store) View(ctx context.Context, name string, fn func(v *vm.VM) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // nolint: errcheck

	v, _, err := s.load(ctx, tx, &txBlockstore{ctx: ctx, tx: tx}, name, false)
	if err != nil {
		return err
	}
	return fn(v)
}

// Journal lists the journal of a ledger in application order.
func (s *Store) Journal(ctx context.Context, name string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, ledger, seq, caller, method, action, response, root, block_time, applied_at
		FROM ledger_journal
		WHERE ledger = $1
		ORDER BY seq`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal of %s: %w", name, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		var method, blockTime int64
		err := row.Scan(&e.ID, &e.Ledger, &e.Seq, &e.Caller, &method, &e.Action, &e.Response, &e.Root, &blockTime, &e.AppliedAt)
		e.Method = abi.MethodNum(method)
		e.BlockTime = abi.Timestamp(blockTime)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read journal of %s: %w", name, err)
	}
	return entries, nil
}

func (s *Store) vmOptions() []vm.Option {
	return []vm.Option{vm.WithClock(s.clock), vm.WithLogger(s.log)}
}

func (s *Store) load(ctx context.Context, tx pgx.Tx, bs ipldcbor.IpldBlockstore, name string, lock bool) (*vm.VM, cid.Cid, error) {
	query := `SELECT receiver, root FROM ledger_heads WHERE name = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var receiverStr, rootStr string
	err := tx.QueryRow(ctx, query, name).Scan(&receiverStr, &rootStr)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, cid.Undef, fmt.Errorf("%w: %s", ErrLedgerNotFound, name)
	}
	if err != nil {
		return nil, cid.Undef, fmt.Errorf("failed to read head of %s: %w", name, err)
	}

	receiver, err := addr.NewFromString(receiverStr)
	if err != nil {
		return nil, cid.Undef, fmt.Errorf("corrupt receiver of %s: %w", name, err)
	}
	root, err := cid.Decode(rootStr)
	if err != nil {
		return nil, cid.Undef, fmt.Errorf("corrupt root of %s: %w", name, err)
	}

	store := ipld.WrapBlockStore(ctx, bs)
	v, err := vm.LoadVM(ctx, store, vesting.Actor{}, receiver, root, s.vmOptions()...)
	if err != nil {
		return nil, cid.Undef, err
	}
	return v, root, nil
}

// Writes a journal entry for every successful message that returned a response.
func (s *Store) journal(ctx context.Context, tx pgx.Tx, name string, seq int64, v *vm.VM, root cid.Cid) ([]Entry, error) {
	var entries []Entry
	for _, inv := range v.Invocations() {
		resp, ok := inv.Ret.(*runtime.Response)
		if inv.Exitcode.IsError() || !ok {
			continue
		}
		body, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode response: %w", err)
		}
		seq++
		e := Entry{
			ID:        uuid.New(),
			Ledger:    name,
			Seq:       seq,
			Caller:    inv.Msg.From.String(),
			Method:    inv.Msg.Method,
			Action:    resp.Action,
			Response:  body,
			Root:      root.String(),
			BlockTime: inv.Time,
			AppliedAt: s.clock.Now(),
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO ledger_journal (id, ledger, seq, caller, method, action, response, root, block_time, applied_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, e.Ledger, e.Seq, e.Caller, int64(e.Method), e.Action, e.Response, e.Root, int64(e.BlockTime), e.AppliedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to journal %s: %w", e.Action, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
