package vesting_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/cpvesting/vesting-actors/actors/builtin/vesting"
)

func TestWhitelistParamsEncoding(t *testing.T) {
	t.Run("addresses survive a round trip", func(t *testing.T) {
		in := vesting.WhitelistParams{Addresses: []string{"terra1owner", "terra1friend"}}
		var buf bytes.Buffer
		require.NoError(t, in.MarshalCBOR(&buf))

		// tuple of one field, array of two text strings
		assert.Equal(t, []byte{0x81, 0x82, 0x6b}, buf.Bytes()[:3])

		var out vesting.WhitelistParams
		require.NoError(t, out.UnmarshalCBOR(&buf))
		assert.Equal(t, in, out)
	})

	t.Run("empty list decodes to nil", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&vesting.WhitelistParams{}).MarshalCBOR(&buf))
		assert.Equal(t, []byte{0x81, 0x80}, buf.Bytes())

		out := vesting.WhitelistParams{Addresses: []string{"stale"}}
		require.NoError(t, out.UnmarshalCBOR(&buf))
		assert.Nil(t, out.Addresses)
	})

	t.Run("wrong tuple arity is rejected", func(t *testing.T) {
		var out vesting.WhitelistParams
		err := out.UnmarshalCBOR(bytes.NewReader([]byte{0x82, 0x80, 0x80}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wrong number of fields")
	})

	t.Run("non-string entry is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		scratch := make([]byte, 9)
		require.NoError(t, cbg.WriteMajorTypeHeaderBuf(scratch, &buf, cbg.MajArray, 1))
		require.NoError(t, cbg.WriteMajorTypeHeaderBuf(scratch, &buf, cbg.MajArray, 1))
		require.NoError(t, cbg.WriteMajorTypeHeaderBuf(scratch, &buf, cbg.MajUnsignedInt, 7))

		var out vesting.WhitelistParams
		err := out.UnmarshalCBOR(&buf)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "addresses[0]")
	})
}
