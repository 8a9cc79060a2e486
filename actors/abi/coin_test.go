package abi_test

import (
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/cpvesting/vesting-actors/actors/abi"
)

func TestParseCoin(t *testing.T) {
	c, err := abi.ParseCoin(" 1000uluna ")
	require.NoError(t, err)
	assert.Equal(t, "uluna", c.Denom)
	assert.Equal(t, "1000", c.Amount.String())
	assert.Equal(t, "1000uluna", c.String())

	c, err = abi.ParseCoin("7ibc/27394FB0")
	require.NoError(t, err)
	assert.Equal(t, "ibc/27394FB0", c.Denom)

	for _, s := range []string{"", "uluna", "1000", "-5uluna", "1.5uluna", "10 uluna", "5u"} {
		_, err := abi.ParseCoin(s)
		assert.Error(t, err, s)
	}
}

func TestParseCoins(t *testing.T) {
	cs, err := abi.ParseCoins("")
	require.NoError(t, err)
	assert.Nil(t, cs)

	cs, err = abi.ParseCoins("5uusd, 1000uluna,500uluna")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "1500uluna,5uusd", cs.String(), "merged and sorted by denomination")

	_, err = abi.ParseCoins("1000uluna,,5uusd")
	assert.Error(t, err)
}

func TestCoins(t *testing.T) {
	var cs abi.Coins
	cs = cs.Add(abi.NewCoin(big.NewInt(3), "uusd"))
	cs = cs.Add(abi.NewCoin(big.NewInt(4), "ukrw"))
	cs = cs.Add(abi.NewCoin(big.NewInt(5), "uusd"))
	assert.Equal(t, "4ukrw,8uusd", cs.String())

	t.Run("add does not alias the receiver", func(t *testing.T) {
		before := cs.String()
		_ = cs.Add(abi.NewCoin(big.NewInt(1), "ukrw"))
		assert.Equal(t, before, cs.String())
	})

	t.Run("amount of", func(t *testing.T) {
		assert.Equal(t, "8", cs.AmountOf("uusd").String())
		missing := cs.AmountOf("uluna")
		assert.True(t, missing.IsZero())
	})

	t.Run("non zero", func(t *testing.T) {
		withZeros := cs.Add(abi.NewCoin(big.Zero(), "uluna")).Add(abi.Coin{Denom: "umnt"})
		require.Len(t, withZeros, 4)
		assert.Equal(t, cs.String(), withZeros.NonZero().String())
		assert.Nil(t, abi.Coins{abi.Coin{Denom: "umnt"}}.NonZero())
	})

	t.Run("zero coin", func(t *testing.T) {
		assert.True(t, abi.Coin{Denom: "uluna"}.IsZero())
		assert.True(t, abi.NewCoin(big.Zero(), "uluna").IsZero())
		assert.False(t, abi.NewCoin(big.NewInt(1), "uluna").IsZero())
	})

	assert.Equal(t, "", abi.Coins(nil).String())
}

func TestValidateDenom(t *testing.T) {
	for _, d := range []string{"uluna", "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2", "factory:x.y_z-1"} {
		assert.NoError(t, abi.ValidateDenom(d), d)
	}
	for _, d := range []string{"", "u", "1uluna", "u luna", "/uluna"} {
		assert.Error(t, abi.ValidateDenom(d), d)
	}
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, abi.Timestamp(3), abi.MinTimestamp(3, 9))
	assert.Equal(t, abi.Timestamp(3), abi.MinTimestamp(9, 3))
	assert.Equal(t, uint64(6), abi.Timestamp(9).Since(3))
	assert.Equal(t, uint64(0), abi.Timestamp(3).Since(9))
	assert.Equal(t, "1672531200", abi.Timestamp(1672531200).String())
}
