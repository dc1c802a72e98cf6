package scan

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cipherledger/core/block"
	"cipherledger/core/chain"
	"cipherledger/core/storage"
	"cipherledger/types/ids"
)

func archiveChain(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c := chain.New()
	c.AppendRecord(block.MessageRecord{RecordID: "r1", Sender: "alice", Recipient: "bob", EncryptedMessage: "YQ=="})
	_, err = c.AppendTransactions([]block.Transaction{{TxID: "t1", ToAddress: "miner", Amount: 100}}, 0, 10)
	require.NoError(t, err)

	for _, blk := range c.Blocks() {
		require.NoError(t, store.SaveBlock(blk))
	}
	return store
}

func TestScanArchiveValid(t *testing.T) {
	store := archiveChain(t)

	var out bytes.Buffer
	valid, err := ScanArchive(store, &out)
	require.NoError(t, err)
	require.True(t, valid)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "height=0")
	require.Contains(t, lines[2], "txs=1")
}

func TestScanArchiveDetectsBrokenLinkage(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	c := chain.New()
	require.NoError(t, store.SaveBlock(c.Tip()))

	// a well-formed block whose parent pointer does not match genesis
	orphan := block.Block{
		Height:    1,
		PrevHash:  ids.NewID([]byte("not the genesis hash")).String(),
		Timestamp: time.Now().UTC(),
		Record:    &block.MessageRecord{RecordID: "r2", Sender: "bob", Recipient: "alice", EncryptedMessage: "Yg=="},
	}
	orphan.Hash = orphan.ComputeHash()
	require.NoError(t, store.SaveBlock(orphan))

	valid, err := ScanArchive(store, nil)
	require.NoError(t, err)
	require.False(t, valid)
}
