package block

import (
	"encoding/json"
	"time"

	"cipherledger/types/ids"
)

// MessageRecord is the audit record of one encrypted exchange. It is the
// payload wrapped by a message block and the unit handed to the
// persistence sink.
type MessageRecord struct {
	RecordID         string    `json:"recordId"`
	Sender           string    `json:"sender"`
	Recipient        string    `json:"recipient"`
	EncryptedMessage string    `json:"encryptedMessage"`          // base64 ciphertext
	Signature        string    `json:"signature,omitempty"`       // base64, absent when signing declined
	DecryptedMessage string    `json:"decryptedMessage,omitempty"` // self-check plaintext
	Timestamp        time.Time `json:"timestamp"`
	BlockHeight      uint64    `json:"blockHeight"`
	BlockHash        string    `json:"blockHash"`
	PrevBlockHash    string    `json:"prevBlockHash"`
}

// Transaction is one ledger transfer. An empty FromAddress marks a
// system-issued reward.
type Transaction struct {
	TxID        string    `json:"txId"`
	FromAddress string    `json:"fromAddress,omitempty"`
	ToAddress   string    `json:"toAddress"`
	Amount      int64     `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// IsReward reports whether the transaction was issued by the system
// rather than debited from a sender.
func (tx Transaction) IsReward() bool {
	return tx.FromAddress == ""
}

type Block struct {
	Hash         ids.ID        `json:"hash,omitempty"`     // Computed block digest
	Height       uint64        `json:"height"`             // Block height (genesis = 0)
	PrevHash     string        `json:"prevHash"`           // Parent block hash, hex
	Timestamp    time.Time     `json:"timestamp"`          // UTC creation time
	Nonce        uint64        `json:"nonce"`              // Mutated only by the mining search
	Record       *MessageRecord `json:"record,omitempty"`   // One exchanged message, message blocks only
	Transactions []Transaction `json:"transactions,omitempty"` // Mined transfer batch, transaction blocks only
}

// ComputeHash digests the block fields excluding Hash itself. The header
// is a fixed struct so encoding/json emits fields in declaration order,
// which keeps the digest deterministic across runs.
func (b *Block) ComputeHash() ids.ID {
	header := struct {
		Height       uint64
		PrevHash     string
		Timestamp    time.Time
		Nonce        uint64
		Record       *MessageRecord
		Transactions []Transaction
	}{
		b.Height, b.PrevHash, b.Timestamp, b.Nonce, b.Record, b.Transactions,
	}
	data, _ := json.Marshal(header)
	return ids.NewID(data)
}

// Serialize encodes Block into JSON.
func (b *Block) Serialize() ([]byte, error) {
	return json.Marshal(b)
}

// Deserialize decodes JSON into Block.
func Deserialize(data []byte) (*Block, error) {
	var b Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
