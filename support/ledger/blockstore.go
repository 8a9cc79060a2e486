package ledger

import (
	"context"
	"errors"
	"fmt"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"github.com/jackc/pgx/v5"
)

// ErrBlockNotFound is returned by the blockstore for an unknown CID.
var ErrBlockNotFound = errors.New("block not found")

// Content-addressed blocks in the ledger_blocks table, read and written through one transaction.
// Blocks are immutable, so concurrent writers of the same CID are harmless.
type txBlockstore struct {
	ctx context.Context
	tx  pgx.Tx
}

var _ ipldcbor.IpldBlockstore = (*txBlockstore)(nil)

func (bs *txBlockstore) Get(c cid.Cid) (block.Block, error) {
	var data []byte
	err := bs.tx.QueryRow(bs.ctx, `SELECT data FROM ledger_blocks WHERE cid = $1`, c.String()).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, c)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read block %s: %w", c, err)
	}
	return block.NewBlockWithCid(data, c)
}

func (bs *txBlockstore) Put(b block.Block) error {
	_, err := bs.tx.Exec(bs.ctx,
		`INSERT INTO ledger_blocks (cid, data) VALUES ($1, $2) ON CONFLICT (cid) DO NOTHING`,
		b.Cid().String(), b.RawData())
	if err != nil {
		return fmt.Errorf("failed to write block %s: %w", b.Cid(), err)
	}
	return nil
}
