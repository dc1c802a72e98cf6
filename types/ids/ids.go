package ids

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ID is a 32-byte SHA-256 digest.
type ID [32]byte

// Empty is the zero-value ID (all zeros). It is the sentinel previous
// hash carried by the genesis block.
var Empty ID

// NewID hashes input bytes into an ID.
func NewID(data []byte) ID {
	hash := sha256.Sum256(data)
	return ID(hash)
}

// FromString parses a 64-character hex string into an ID.
func FromString(s string) (ID, error) {
	var id ID
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(bytes) != len(id) {
		return id, fmt.Errorf("expected %d hash bytes, got %d", len(id), len(bytes))
	}
	copy(id[:], bytes)
	return id, nil
}

// String converts an ID back to a hex string.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsEmpty reports whether the ID is the all-zero sentinel.
func (id ID) IsEmpty() bool {
	return id == Empty
}
