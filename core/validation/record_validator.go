package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"cipherledger/core/block"
)

// SchemaPathEnvVar overrides the on-disk schema location, mainly so
// tests can point at the schema from their own working directory.
const SchemaPathEnvVar = "CIPHERLEDGER_RECORD_SCHEMA_PATH"

func schemaPath() string {
	if env := os.Getenv(SchemaPathEnvVar); env != "" {
		return env
	}
	return filepath.Join("core", "validation", "schemas", "message_record_schema.json")
}

// ValidateRecord checks a message record against the JSON schema before
// it reaches the persistence sink. Schema violations are aggregated
// into one error.
func ValidateRecord(rec block.MessageRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serialize record: %w", err)
	}
	return ValidateRecordJSON(payload)
}

// ValidateRecordJSON validates a raw record document.
func ValidateRecordJSON(payload []byte) error {
	path, err := filepath.Abs(schemaPath())
	if err != nil {
		return fmt.Errorf("resolve schema path: %w", err)
	}
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + path)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("record failed schema validation: %s", strings.Join(msgs, "; "))
	}
	return nil
}
