package exchange

import (
	"encoding/json"
	"fmt"
	"os"

	"cipherledger/core/block"
	"cipherledger/core/validation"
)

// Sink accepts completed message records for persistence.
type Sink interface {
	Persist(rec block.MessageRecord) error
}

// FileSink keeps every historical record in one JSON document. The
// first write creates a single-element array; later writes read the
// existing array, append, and rewrite the whole document. The
// read-modify-write is not locked against other processes sharing the
// same file; single-writer operation is assumed.
type FileSink struct {
	Path     string
	Validate bool // schema-check records before writing
}

func (s *FileSink) Persist(rec block.MessageRecord) error {
	if s.Validate {
		if err := validation.ValidateRecord(rec); err != nil {
			return err
		}
	}

	var records []block.MessageRecord
	data, err := os.ReadFile(s.Path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("existing record document is corrupt: %w", err)
		}
	case os.IsNotExist(err):
		// first write
	default:
		return fmt.Errorf("read record document: %w", err)
	}

	records = append(records, rec)
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize record document: %w", err)
	}
	if err := os.WriteFile(s.Path, out, 0644); err != nil {
		return fmt.Errorf("write record document: %w", err)
	}
	return nil
}

// MemorySink collects records in memory, for tests and dry runs.
type MemorySink struct {
	Records []block.MessageRecord
}

func (s *MemorySink) Persist(rec block.MessageRecord) error {
	s.Records = append(s.Records, rec)
	return nil
}
