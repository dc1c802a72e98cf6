package mempool

import (
	"sync"

	"cipherledger/core/block"
)

// Pool holds transactions queued for the next mined block.
type Pool struct {
	mu     sync.Mutex
	txs    map[string]block.Transaction // TxID -> Transaction
	order  []string                     // FIFO order
	maxTxs int
}

// New creates a pool with a maximum size.
func New(maxTxs int) *Pool {
	return &Pool{
		txs:    make(map[string]block.Transaction),
		order:  make([]string, 0),
		maxTxs: maxTxs,
	}
}

// Add queues a transaction. Returns false on duplicate TxID. At
// capacity the oldest entry is evicted.
func (p *Pool) Add(tx block.Transaction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.txs[tx.TxID]; exists {
		return false
	}
	if len(p.txs) >= p.maxTxs {
		oldest := p.order[0]
		delete(p.txs, oldest)
		p.order = p.order[1:]
	}
	p.txs[tx.TxID] = tx
	p.order = append(p.order, tx.TxID)
	return true
}

// Get returns a queued transaction by TxID.
func (p *Pool) Get(txID string) (block.Transaction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tx, ok := p.txs[txID]
	return tx, ok
}

// All returns the queued transactions in arrival order.
func (p *Pool) All() []block.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	txs := make([]block.Transaction, 0, len(p.txs))
	for _, id := range p.order {
		txs = append(txs, p.txs[id])
	}
	return txs
}

// Drain returns the queued transactions in arrival order and empties
// the pool in one step.
func (p *Pool) Drain() []block.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	txs := make([]block.Transaction, 0, len(p.txs))
	for _, id := range p.order {
		txs = append(txs, p.txs[id])
	}
	p.txs = make(map[string]block.Transaction)
	p.order = p.order[:0]
	return txs
}

// Size returns the number of queued transactions.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.txs)
}
