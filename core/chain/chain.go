package chain

import (
	"errors"
	"strings"
	"sync"
	"time"

	"cipherledger/core/block"
	"cipherledger/types/ids"
)

// ErrMiningExhausted is returned when the nonce search hits its attempt
// bound before the difficulty predicate is satisfied.
var ErrMiningExhausted = errors.New("mining attempt limit reached")

// Chain is the append-only, hash-linked block sequence. It is an owned
// object passed by reference; there is no package-level instance. The
// reference pipeline is single-writer, the mutex keeps the tail safe if
// a future caller introduces concurrent producers.
type Chain struct {
	mu     sync.Mutex
	blocks []block.Block
}

// New builds a chain holding only the genesis block: height 0, all-zero
// sentinel previous hash, no payload, hash computed the same way as any
// other block.
func New() *Chain {
	genesis := block.Block{
		Height:    0,
		PrevHash:  ids.Empty.String(),
		Timestamp: time.Now().UTC(),
	}
	genesis.Hash = genesis.ComputeHash()
	return &Chain{blocks: []block.Block{genesis}}
}

// NewFromBlocks resumes a chain from previously archived blocks. The
// sequence must be non-empty, height-ordered, and hash-linked.
func NewFromBlocks(blocks []block.Block) (*Chain, error) {
	if len(blocks) == 0 {
		return nil, errors.New("cannot resume from an empty block sequence")
	}
	c := &Chain{blocks: append([]block.Block(nil), blocks...)}
	if !c.IsValid() {
		return nil, errors.New("archived blocks fail chain validation")
	}
	return c, nil
}

// AppendRecord wraps one message record in a new block and pushes it.
// This and AppendTransactions are the only mutators of chain state.
func (c *Chain) AppendRecord(rec block.MessageRecord) block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	blk := c.nextLocked()
	blk.Record = &rec
	blk.Hash = blk.ComputeHash()
	c.blocks = append(c.blocks, blk)
	return blk
}

// AppendTransactions wraps a transaction batch in a new block. With
// difficulty 0 no search runs; with difficulty N the block hash must
// start with N zero hex digits, found by incrementing only the nonce.
// The search is bounded by maxAttempts so a bad difficulty cannot spin
// forever; the chain is untouched on ErrMiningExhausted.
func (c *Chain) AppendTransactions(txs []block.Transaction, difficulty int, maxAttempts uint64) (block.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blk := c.nextLocked()
	blk.Transactions = txs
	blk.Hash = blk.ComputeHash()

	if difficulty > 0 {
		prefix := strings.Repeat("0", difficulty)
		attempts := uint64(0)
		for !strings.HasPrefix(blk.Hash.String(), prefix) {
			attempts++
			if attempts >= maxAttempts {
				return block.Block{}, ErrMiningExhausted
			}
			blk.Nonce++
			blk.Hash = blk.ComputeHash()
		}
	}

	c.blocks = append(c.blocks, blk)
	return blk, nil
}

// nextLocked prepares the successor of the current tip. Caller holds mu.
func (c *Chain) nextLocked() block.Block {
	tip := c.blocks[len(c.blocks)-1]
	return block.Block{
		Height:    tip.Height + 1,
		PrevHash:  tip.Hash.String(),
		Timestamp: time.Now().UTC(),
	}
}

// IsValid recomputes every block hash and checks parent linkage. It
// answers false on the first violation without saying which block
// failed; that minimal contract is intentional.
func (c *Chain) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.blocks {
		if c.blocks[i].Hash != c.blocks[i].ComputeHash() {
			return false
		}
		if i > 0 && c.blocks[i].PrevHash != c.blocks[i-1].Hash.String() {
			return false
		}
	}
	return true
}

// Tip returns the most recent block.
func (c *Chain) Tip() block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[len(c.blocks)-1]
}

// Height returns the tip height.
func (c *Chain) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[len(c.blocks)-1].Height
}

// Blocks exposes the underlying block slice. Treat it as a read-only
// view; mutating an element breaks the chain and IsValid will say so.
func (c *Chain) Blocks() []block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks
}
