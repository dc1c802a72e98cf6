package txledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"cipherledger/core/block"
	"cipherledger/core/chain"
	"cipherledger/core/mempool"
)

const (
	// MiningReward is the fixed amount issued to the miner per block.
	MiningReward = 100

	// DefaultMaxAttempts bounds the nonce search per mined block.
	DefaultMaxAttempts = 1_000_000

	// DefaultPoolSize is the pending-queue capacity.
	DefaultPoolSize = 1024
)

var ErrNoRewardAddress = errors.New("reward address required")

// Ledger layers reward issuance and balance accounting on top of the
// hash-linked chain. Queued transactions are not validated against
// sender balances; balances may go negative, which is a documented
// simplification of this design rather than a bug.
type Ledger struct {
	chain       *chain.Chain
	pool        *mempool.Pool
	reward      int64
	difficulty  int
	maxAttempts uint64
}

// Option tunes a Ledger at construction.
type Option func(*Ledger)

// WithDifficulty requires mined block hashes to start with n zero hex
// digits. 0 disables the search.
func WithDifficulty(n int) Option {
	return func(l *Ledger) { l.difficulty = n }
}

// WithMaxAttempts bounds the mining nonce search.
func WithMaxAttempts(n uint64) Option {
	return func(l *Ledger) { l.maxAttempts = n }
}

// WithReward overrides the fixed mining reward.
func WithReward(amount int64) Option {
	return func(l *Ledger) { l.reward = amount }
}

// New creates a transaction ledger over an existing chain.
func New(c *chain.Chain, opts ...Option) *Ledger {
	l := &Ledger{
		chain:       c,
		pool:        mempool.New(DefaultPoolSize),
		reward:      MiningReward,
		difficulty:  0,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// QueueTransaction adds a transfer to the pending pool. A missing TxID
// or timestamp is filled in. Returns false on duplicate TxID.
func (l *Ledger) QueueTransaction(tx block.Transaction) bool {
	if tx.TxID == "" {
		tx.TxID = uuid.NewString()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC()
	}
	return l.pool.Add(tx)
}

// Pending returns the queued transactions in arrival order.
func (l *Ledger) Pending() []block.Transaction {
	return l.pool.All()
}

// MineBlock appends the reward transaction to the pending list, wraps
// the whole list as one block, and clears the queue. The queue is left
// untouched when the bounded nonce search fails.
func (l *Ledger) MineBlock(rewardAddress string) (block.Block, error) {
	if rewardAddress == "" {
		return block.Block{}, ErrNoRewardAddress
	}
	txs := append(l.pool.All(), block.Transaction{
		TxID:      uuid.NewString(),
		ToAddress: rewardAddress,
		Amount:    l.reward,
		Timestamp: time.Now().UTC(),
	})
	blk, err := l.chain.AppendTransactions(txs, l.difficulty, l.maxAttempts)
	if err != nil {
		return block.Block{}, err
	}
	l.pool.Drain()
	return blk, nil
}

// GetBalance derives an address balance by scanning every transaction
// in every block. Linear in chain length times block size; accepted at
// this scale, known not to scale further.
func (l *Ledger) GetBalance(address string) int64 {
	var balance int64
	for _, blk := range l.chain.Blocks() {
		for _, tx := range blk.Transactions {
			if tx.FromAddress == address && !tx.IsReward() {
				balance -= tx.Amount
			}
			if tx.ToAddress == address {
				balance += tx.Amount
			}
		}
	}
	return balance
}
