package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	addr "github.com/filecoin-project/go-address"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	got, err := parseTime("1672531200")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseTime("2023-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, int64(1672531200), got.Unix())

	_, err = parseTime("next tuesday")
	assert.Error(t, err)

	got, err = parseTime("0")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Unix())

	for _, s := range []string{"-1", "1969-12-31T23:59:59Z"} {
		_, err = parseTime(s)
		require.Error(t, err, s)
		assert.Contains(t, err.Error(), "before the unix epoch")
	}
}

func TestReceiverAddress(t *testing.T) {
	a, err := receiverAddress("", "alpha")
	require.NoError(t, err)
	assert.Equal(t, addr.Actor, a.Protocol())

	b, err := receiverAddress("", "alpha")
	require.NoError(t, err)
	assert.Equal(t, a, b, "derived receivers are stable")

	c, err := receiverAddress("", "beta")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = receiverAddress("not an address", "alpha")
	assert.Error(t, err)
}

func TestRunRejectsBadInvocations(t *testing.T) {
	t.Setenv("VESTING_PG_DSN", "")
	t.Setenv("VESTING_LEDGER", "")
	t.Setenv("VESTING_CALLER", "")
	var out bytes.Buffer

	err := run([]string{"--env-file", ""}, &out)
	assert.EqualError(t, err, "no command given")

	err = run([]string{"--env-file", "", "frobnicate"}, &out)
	assert.EqualError(t, err, `unknown command "frobnicate"`)

	err = run([]string{"--env-file", "", "--time", "soon", "query-state"}, &out)
	assert.Error(t, err)

	err = run([]string{"--env-file", "", "--time=-1", "query-state"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before the unix epoch")

	err = run([]string{"--env-file", "", "query-state"}, &out)
	assert.EqualError(t, err, "--ledger is required")

	err = run([]string{"--env-file", "", "--ledger", "alpha", "withdraw"}, &out)
	assert.EqualError(t, err, "--caller is required")

	err = run([]string{"--env-file", "", "--ledger", "alpha", "--caller", "t0101", "withdraw"}, &out)
	assert.EqualError(t, err, "--pg-dsn is required")

	assert.Empty(t, out.String())
}

func TestInitValidatesFlagsBeforeConnecting(t *testing.T) {
	c := &cli{ledger: "alpha", caller: "t0101", clock: clockwork.NewFakeClock(), out: &bytes.Buffer{}}
	ctx := context.Background()

	err := runInit(ctx, c, []string{"--amount", "1000", "--end", "1798761599"})
	assert.EqualError(t, err, "--recipient is required")

	err = runInit(ctx, c, []string{"--recipient", "t0102", "--amount", "lots", "--end", "1798761599"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --amount")

	err = runInit(ctx, c, []string{"--recipient", "t0102", "--amount", "1000", "--controller", "auditor", "--end", "1798761599"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown controller")

	err = runInit(ctx, c, []string{"--recipient", "t0102", "--amount", "1000"})
	assert.EqualError(t, err, "one of --end or --duration is required")

	err = runInit(ctx, c, []string{"--recipient", "t0102", "--amount", "1000", "--start=-86400", "--duration", "48h"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before the unix epoch")
}
