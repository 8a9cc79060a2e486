package ipld

import (
	"context"
	"fmt"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"

	"github.com/cpvesting/vesting-actors/actors/util/adt"
)

// Creates a new, empty IPLD store in memory, suitable for tests and single-threaded hosts.
func NewADTStore(ctx context.Context) adt.Store {
	return adt.WrapStore(ctx, ipldcbor.NewCborStore(NewBlockStoreInMemory()))
}

// Wraps a block store as an ADT store.
func WrapBlockStore(ctx context.Context, bs ipldcbor.IpldBlockstore) adt.Store {
	return adt.WrapStore(ctx, ipldcbor.NewCborStore(bs))
}

// BlockStoreInMemory is an unsynchronized block store backed by a map.
type BlockStoreInMemory struct {
	data map[cid.Cid]block.Block
}

var _ ipldcbor.IpldBlockstore = (*BlockStoreInMemory)(nil)

func NewBlockStoreInMemory() *BlockStoreInMemory {
	return &BlockStoreInMemory{make(map[cid.Cid]block.Block)}
}

func (mb *BlockStoreInMemory) Get(c cid.Cid) (block.Block, error) {
	if b, ok := mb.data[c]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("block %s not found", c)
}

func (mb *BlockStoreInMemory) Has(c cid.Cid) bool {
	_, ok := mb.data[c]
	return ok
}

func (mb *BlockStoreInMemory) Put(b block.Block) error {
	mb.data[b.Cid()] = b
	return nil
}

// Len returns the number of distinct blocks held.
func (mb *BlockStoreInMemory) Len() int {
	return len(mb.data)
}

// Copy returns a store holding the same blocks. Blocks are immutable so they are shared.
func (mb *BlockStoreInMemory) Copy() *BlockStoreInMemory {
	cpy := make(map[cid.Cid]block.Block, len(mb.data))
	for k, v := range mb.data {
		cpy[k] = v
	}
	return &BlockStoreInMemory{cpy}
}

// MetricsBlockStore wraps a block store and counts reads and writes.
type MetricsBlockStore struct {
	bs         ipldcbor.IpldBlockstore
	Writes     uint64
	WriteBytes uint64
	Reads      uint64
	ReadBytes  uint64
}

func NewMetricsBlockStore(underlying ipldcbor.IpldBlockstore) *MetricsBlockStore {
	return &MetricsBlockStore{bs: underlying}
}

func (ms *MetricsBlockStore) Get(c cid.Cid) (block.Block, error) {
	ms.Reads++
	blk, err := ms.bs.Get(c)
	if err != nil {
		return blk, err
	}
	ms.ReadBytes += uint64(len(blk.RawData()))
	return blk, nil
}

func (ms *MetricsBlockStore) Put(b block.Block) error {
	ms.Writes++
	ms.WriteBytes += uint64(len(b.RawData()))
	return ms.bs.Put(b)
}
