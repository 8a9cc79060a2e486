package vesting

import (
	"github.com/filecoin-project/go-state-types/exitcode"
	"golang.org/x/xerrors"

	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/util/adt"
)

// Record keys in the ledger HAMT.
const (
	ConfigKey = adt.StringKey("config")
	StateKey  = adt.StringKey("state")
)

// Ledger is the loaded form of the two ledger records.
type Ledger struct {
	records *adt.Map

	Config     *Config
	Accounting *AccountingState
}

// ConstructState writes the initial records and returns the state root referencing them.
func ConstructState(store adt.Store, cfg *Config) (*State, error) {
	m, err := adt.MakeEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}
	l := &Ledger{records: m, Config: cfg, Accounting: NewAccountingState(cfg)}
	st := &State{}
	if err := l.Flush(st); err != nil {
		return nil, err
	}
	return st, nil
}

// LoadLedger reads both records. A missing record is an illegal state.
func (st *State) LoadLedger(store adt.Store) (*Ledger, error) {
	m, err := adt.AsMap(store, st.Records, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, builtin.Wrapf(exitcode.ErrIllegalState, "failed to load ledger records: %w", err)
	}

	var cfg Config
	if found, err := m.Get(ConfigKey, &cfg); err != nil {
		return nil, builtin.Wrapf(exitcode.ErrIllegalState, "failed to read config: %w", err)
	} else if !found {
		return nil, builtin.Wrapf(exitcode.ErrIllegalState, "config record missing")
	}

	var acct AccountingState
	if found, err := m.Get(StateKey, &acct); err != nil {
		return nil, builtin.Wrapf(exitcode.ErrIllegalState, "failed to read accounting state: %w", err)
	} else if !found {
		return nil, builtin.Wrapf(exitcode.ErrIllegalState, "accounting state record missing")
	}

	return &Ledger{records: m, Config: &cfg, Accounting: &acct}, nil
}

// Flush writes both records and points the state root at the result.
func (l *Ledger) Flush(st *State) error {
	if err := l.records.Put(ConfigKey, l.Config); err != nil {
		return builtin.Wrapf(exitcode.ErrIllegalState, "failed to write config: %w", err)
	}
	if err := l.records.Put(StateKey, l.Accounting); err != nil {
		return builtin.Wrapf(exitcode.ErrIllegalState, "failed to write accounting state: %w", err)
	}
	root, err := l.records.Root()
	if err != nil {
		return builtin.Wrapf(exitcode.ErrIllegalState, "failed to flush ledger records: %w", err)
	}
	st.Records = root
	return nil
}

// Apply commits a withdrawal computed against this ledger. Untracked sweeps leave
// the accounting state alone.
func (l *Ledger) Apply(w *Withdrawal) {
	if w.Tracked {
		next := w.Next
		l.Accounting = &next
	}
}
