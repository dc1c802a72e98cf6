package chain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cipherledger/core/block"
	"cipherledger/types/ids"
)

func record(sender, msg string) block.MessageRecord {
	return block.MessageRecord{
		RecordID:         sender + "-" + msg,
		Sender:           sender,
		Recipient:        "bob",
		EncryptedMessage: "Y2lwaGVydGV4dA==",
		Timestamp:        time.Now().UTC(),
	}
}

func TestFreshChainIsValid(t *testing.T) {
	c := New()
	require.True(t, c.IsValid())

	genesis := c.Tip()
	require.Equal(t, uint64(0), genesis.Height)
	require.Equal(t, ids.Empty.String(), genesis.PrevHash)
	require.Nil(t, genesis.Record)
	require.Equal(t, genesis.ComputeHash(), genesis.Hash, "genesis hash computed like any other block")
}

func TestAppendRecordLinksBlocks(t *testing.T) {
	c := New()
	prev := c.Tip()

	for i, msg := range []string{"one", "two", "three"} {
		blk := c.AppendRecord(record("alice", msg))
		require.Equal(t, prev.Height+1, blk.Height)
		require.Equal(t, prev.Hash.String(), blk.PrevHash)
		require.Equal(t, uint64(i+1), blk.Height)
		require.True(t, c.IsValid())
		prev = blk
	}
}

func TestTamperedPayloadInvalidatesChain(t *testing.T) {
	c := New()
	c.AppendRecord(record("alice", "hello"))
	require.True(t, c.IsValid())

	blocks := c.Blocks()
	blocks[1].Record.EncryptedMessage = "dGFtcGVyZWQ="
	require.False(t, c.IsValid())
}

func TestTamperedHashInvalidatesChain(t *testing.T) {
	c := New()
	c.AppendRecord(record("alice", "hello"))
	c.AppendRecord(record("alice", "again"))
	require.True(t, c.IsValid())

	blocks := c.Blocks()
	blocks[1].Hash = ids.NewID([]byte("forged"))
	require.False(t, c.IsValid())
}

func TestAppendTransactionsNoSearchAtZeroDifficulty(t *testing.T) {
	c := New()
	blk, err := c.AppendTransactions([]block.Transaction{
		{TxID: "t1", FromAddress: "alice", ToAddress: "bob", Amount: 5, Timestamp: time.Now().UTC()},
	}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(0), blk.Nonce)
	require.True(t, c.IsValid())
}

func TestMiningSearchFindsPrefix(t *testing.T) {
	c := New()
	blk, err := c.AppendTransactions([]block.Transaction{
		{TxID: "t1", ToAddress: "miner", Amount: 100, Timestamp: time.Now().UTC()},
	}, 1, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, byte('0'), blk.Hash.String()[0])
	require.True(t, c.IsValid())
}

func TestMiningSearchIsBounded(t *testing.T) {
	c := New()
	height := c.Height()

	_, err := c.AppendTransactions([]block.Transaction{
		{TxID: "t1", ToAddress: "miner", Amount: 100, Timestamp: time.Now().UTC()},
	}, 64, 10)
	require.ErrorIs(t, err, ErrMiningExhausted)
	require.Equal(t, height, c.Height(), "chain untouched when the search fails")
	require.True(t, c.IsValid())
}

func TestNewFromBlocksResumesChain(t *testing.T) {
	c := New()
	c.AppendRecord(record("alice", "hello"))
	c.AppendRecord(record("alice", "again"))

	resumed, err := NewFromBlocks(c.Blocks())
	require.NoError(t, err)
	require.Equal(t, c.Height(), resumed.Height())
	require.True(t, resumed.IsValid())

	blk := resumed.AppendRecord(record("alice", "more"))
	require.Equal(t, uint64(3), blk.Height)
	require.True(t, resumed.IsValid())
}

func TestNewFromBlocksRejectsBrokenSequence(t *testing.T) {
	c := New()
	c.AppendRecord(record("alice", "hello"))

	blocks := append([]block.Block(nil), c.Blocks()...)
	blocks[1].PrevHash = ids.NewID([]byte("wrong")).String()

	_, err := NewFromBlocks(blocks)
	require.Error(t, err)

	_, err = NewFromBlocks(nil)
	require.Error(t, err)
}
