package testing

import (
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/require"
)

func NewIDAddr(t testing.TB, id uint64) addr.Address {
	address, err := addr.NewIDAddress(id)
	require.NoError(t, err)
	return address
}

// NewActorAddr derives an actor address from a label, standing in for a contract address.
func NewActorAddr(t testing.TB, label string) addr.Address {
	address, err := addr.NewActorAddress([]byte(label))
	require.NoError(t, err)
	return address
}

// NewIDAddrs returns `n` consecutive ID addresses starting at `first`.
func NewIDAddrs(t testing.TB, first uint64, n int) []addr.Address {
	out := make([]addr.Address, n)
	for i := range out {
		out[i] = NewIDAddr(t, first+uint64(i))
	}
	return out
}
