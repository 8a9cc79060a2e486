package testing

import (
	"encoding/binary"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// NewCidForTestGetter returns a generator of distinct CIDs with no block behind them,
// standing in for dangling state roots.
func NewCidForTestGetter() func() cid.Cid {
	builder := cid.V1Builder{Codec: cid.DagCBOR, MhType: mh.SHA2_256}
	var n uint64
	return func() cid.Cid {
		n++
		c, err := builder.Sum(binary.BigEndian.AppendUint64(nil, n))
		if err != nil {
			panic(err)
		}
		return c
	}
}
