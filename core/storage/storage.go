package storage

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"

	"cipherledger/core/block"
)

const blockPrefix = "block:"

// Store is the LevelDB block archive. Blocks are kept under
// block:<hash> with a height:<n> index for O(1) height lookups.
type Store struct {
	db *leveldb.DB
}

func NewStore(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBlock archives one block and updates the height index and latest
// pointer in a single batch.
func (s *Store) SaveBlock(blk block.Block) error {
	data, err := blk.Serialize()
	if err != nil {
		return err
	}
	enc, err := Encrypt(data)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Put([]byte(blockPrefix+blk.Hash.String()), enc)
	batch.Put([]byte(fmt.Sprintf("height:%d", blk.Height)), blk.Hash[:])
	batch.Put([]byte("latestBlockHash"), blk.Hash[:])
	return s.db.Write(batch, nil)
}

// GetBlock retrieves a block by its hex hash.
func (s *Store) GetBlock(hashHex string) (*block.Block, error) {
	enc, err := s.db.Get([]byte(blockPrefix+hashHex), nil)
	if err != nil {
		return nil, err
	}
	data, err := Decrypt(enc)
	if err != nil {
		return nil, err
	}
	return block.Deserialize(data)
}

// GetBlockByHeight uses the height index.
func (s *Store) GetBlockByHeight(height uint64) (*block.Block, error) {
	hash, err := s.db.Get([]byte(fmt.Sprintf("height:%d", height)), nil)
	if err != nil {
		return nil, fmt.Errorf("no block at height %d", height)
	}
	return s.GetBlock(fmt.Sprintf("%x", hash))
}

// LatestBlockHash returns the hash of the most recently archived block.
func (s *Store) LatestBlockHash() ([32]byte, error) {
	var latest [32]byte
	data, err := s.db.Get([]byte("latestBlockHash"), nil)
	if err != nil {
		return latest, err
	}
	copy(latest[:], data)
	return latest, nil
}

// ChainHeight counts archived blocks.
func (s *Store) ChainHeight() (int, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	height := 0
	for iter.Next() {
		if bytes.HasPrefix(iter.Key(), []byte(blockPrefix)) {
			height++
		}
	}
	if err := iter.Error(); err != nil {
		return 0, err
	}
	return height, nil
}

// ListRecentBlocks returns summaries of up to max archived blocks,
// newest key first.
func (s *Store) ListRecentBlocks(max int) ([]map[string]string, error) {
	var summaries []map[string]string

	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	count := 0
	for iter.Last(); iter.Valid() && count < max; iter.Prev() {
		if !bytes.HasPrefix(iter.Key(), []byte(blockPrefix)) {
			continue
		}
		data, err := Decrypt(iter.Value())
		if err != nil {
			continue // skip undecryptable entries
		}
		blk, err := block.Deserialize(data)
		if err != nil {
			continue
		}
		summaries = append(summaries, map[string]string{
			"hash":      blk.Hash.String(),
			"height":    fmt.Sprintf("%d", blk.Height),
			"prevHash":  blk.PrevHash,
			"timestamp": blk.Timestamp.UTC().Format(time.RFC3339),
		})
		count++
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListBlocks returns every archived block, sorted by height.
func (s *Store) ListBlocks() ([]block.Block, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var blocks []block.Block
	for iter.Next() {
		if !bytes.HasPrefix(iter.Key(), []byte(blockPrefix)) {
			continue
		}
		data, err := Decrypt(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("decrypt archived block %s: %w", iter.Key(), err)
		}
		blk, err := block.Deserialize(data)
		if err != nil {
			return nil, fmt.Errorf("decode archived block %s: %w", iter.Key(), err)
		}
		blocks = append(blocks, *blk)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Height < blocks[j].Height
	})
	return blocks, nil
}

// Iterator exposes a raw iterator over the archive.
func (s *Store) Iterator() iterator.Iterator {
	return s.db.NewIterator(nil, nil)
}
