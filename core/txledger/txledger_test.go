package txledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cipherledger/core/block"
	"cipherledger/core/chain"
)

func TestBalanceScenario(t *testing.T) {
	c := chain.New()
	l := New(c)

	require.True(t, l.QueueTransaction(block.Transaction{FromAddress: "alice", ToAddress: "bob", Amount: 1}))

	blk, err := l.MineBlock("miner")
	require.NoError(t, err)
	require.Len(t, blk.Transactions, 2, "transfer plus reward")

	require.Equal(t, int64(-1), l.GetBalance("alice"))
	require.Equal(t, int64(1), l.GetBalance("bob"))
	require.Equal(t, int64(100), l.GetBalance("miner"))
	require.True(t, c.IsValid())
}

func TestQueueFillsIDAndTimestamp(t *testing.T) {
	l := New(chain.New())
	require.True(t, l.QueueTransaction(block.Transaction{FromAddress: "alice", ToAddress: "bob", Amount: 3}))

	pending := l.Pending()
	require.Len(t, pending, 1)
	require.NotEmpty(t, pending[0].TxID)
	require.False(t, pending[0].Timestamp.IsZero())
}

func TestMineClearsPendingQueue(t *testing.T) {
	l := New(chain.New())
	l.QueueTransaction(block.Transaction{FromAddress: "alice", ToAddress: "bob", Amount: 1})
	l.QueueTransaction(block.Transaction{FromAddress: "bob", ToAddress: "carol", Amount: 2})

	_, err := l.MineBlock("miner")
	require.NoError(t, err)
	require.Empty(t, l.Pending())

	// mining an empty queue still issues the reward
	blk, err := l.MineBlock("miner")
	require.NoError(t, err)
	require.Len(t, blk.Transactions, 1)
	require.Equal(t, int64(200), l.GetBalance("miner"))
}

func TestMineRequiresRewardAddress(t *testing.T) {
	l := New(chain.New())
	_, err := l.MineBlock("")
	require.ErrorIs(t, err, ErrNoRewardAddress)
}

func TestBalancesMayGoNegative(t *testing.T) {
	l := New(chain.New())
	// no solvency check: alice never held funds
	l.QueueTransaction(block.Transaction{FromAddress: "alice", ToAddress: "bob", Amount: 50})
	_, err := l.MineBlock("miner")
	require.NoError(t, err)
	require.Equal(t, int64(-50), l.GetBalance("alice"))
}

func TestExhaustedMiningKeepsQueue(t *testing.T) {
	l := New(chain.New(), WithDifficulty(64), WithMaxAttempts(5))
	l.QueueTransaction(block.Transaction{FromAddress: "alice", ToAddress: "bob", Amount: 1})

	_, err := l.MineBlock("miner")
	require.ErrorIs(t, err, chain.ErrMiningExhausted)
	require.Len(t, l.Pending(), 1, "queue untouched when mining fails")
}

func TestRewardOverride(t *testing.T) {
	l := New(chain.New(), WithReward(7))
	_, err := l.MineBlock("miner")
	require.NoError(t, err)
	require.Equal(t, int64(7), l.GetBalance("miner"))
}

func TestMinedBlockSatisfiesDifficulty(t *testing.T) {
	l := New(chain.New(), WithDifficulty(1))
	blk, err := l.MineBlock("miner")
	require.NoError(t, err)
	require.Equal(t, byte('0'), blk.Hash.String()[0])
}
