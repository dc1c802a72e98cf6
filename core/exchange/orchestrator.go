package exchange

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cipherledger/core/audit"
	"cipherledger/core/block"
	"cipherledger/core/chain"
	"cipherledger/core/cryptoengine"
	"cipherledger/core/keys"
	"cipherledger/core/storage"
)

// Orchestrator sequences one message exchange end to end: keys,
// encryption, optional signature, self-check decryption, chain append,
// persistence. Failures abort the current run and propagate; nothing is
// retried.
type Orchestrator struct {
	Provider keys.Provider
	Chain    *chain.Chain
	Sink     Sink
	Audit    audit.Logger
	Archive  *storage.Store // optional block archive

	// SelfCheck decrypts the ciphertext right after encrypting, an
	// audit/demo step rather than a security requirement.
	SelfCheck bool
}

// Run drains the input source, performing one exchange per request,
// until the source stops continuing, is exhausted, or ctx is done.
func (o *Orchestrator) Run(ctx context.Context, source InputSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, err := source.Next()
		if err != nil {
			return err
		}
		if _, err := o.Exchange(req); err != nil {
			return err
		}
		if !req.Continue {
			return nil
		}
	}
}

// Exchange performs one exchange and returns the persisted record.
func (o *Orchestrator) Exchange(req *Request) (*block.MessageRecord, error) {
	logger := o.logger()

	senderKeys, err := o.Provider.KeyPairFor(req.Sender)
	if err != nil {
		logger.LogEvent(o.event("KeyGeneration", req.Sender, err))
		return nil, fmt.Errorf("keys for sender %q: %w", req.Sender, err)
	}
	recipientKeys, err := o.Provider.KeyPairFor(req.Recipient)
	if err != nil {
		logger.LogEvent(o.event("KeyGeneration", req.Recipient, err))
		return nil, fmt.Errorf("keys for recipient %q: %w", req.Recipient, err)
	}
	logger.LogEvent(o.event("KeyGeneration", req.Sender+","+req.Recipient, nil))

	recipientPub, err := recipientKeys.Public()
	if err != nil {
		return nil, err
	}
	ciphertext, err := cryptoengine.Encrypt([]byte(req.Plaintext), recipientPub)
	if err != nil {
		logger.LogEvent(o.event("Encrypt", req.Sender, err))
		return nil, err
	}

	rec := block.MessageRecord{
		RecordID:         uuid.NewString(),
		Sender:           req.Sender,
		Recipient:        req.Recipient,
		EncryptedMessage: base64.StdEncoding.EncodeToString(ciphertext),
		Timestamp:        time.Now().UTC(),
	}

	if req.Sign {
		senderPriv, err := senderKeys.Private()
		if err != nil {
			return nil, err
		}
		sig, err := cryptoengine.Sign(ciphertext, senderPriv)
		if err != nil {
			logger.LogEvent(o.event("Sign", req.Sender, err))
			return nil, err
		}
		rec.Signature = base64.StdEncoding.EncodeToString(sig)

		senderPub, err := senderKeys.Public()
		if err != nil {
			return nil, err
		}
		ok, err := cryptoengine.Verify(ciphertext, sig, senderPub)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.LogEvent(o.event("SignatureVerification", req.Sender, fmt.Errorf("fresh signature did not verify")))
			return nil, fmt.Errorf("fresh signature did not verify for %q", req.Sender)
		}
		logger.LogEvent(o.event("SignatureVerification", req.Sender, nil))
	}

	if o.SelfCheck {
		recipientPriv, err := recipientKeys.Private()
		if err != nil {
			return nil, err
		}
		plain, err := cryptoengine.Decrypt(ciphertext, recipientPriv)
		if err != nil {
			logger.LogEvent(o.event("SelfCheckDecrypt", req.Recipient, err))
			return nil, err
		}
		if !bytes.Equal(plain, []byte(req.Plaintext)) {
			return nil, fmt.Errorf("self-check decrypt mismatch for record %s", rec.RecordID)
		}
		rec.DecryptedMessage = string(plain)
	}

	blk := o.Chain.AppendRecord(rec)
	logger.LogEvent(o.event("BlockAppend", blk.Hash.String(), nil))

	if o.Archive != nil {
		if err := o.Archive.SaveBlock(blk); err != nil {
			return nil, fmt.Errorf("archive block %d: %w", blk.Height, err)
		}
	}

	// The persisted record carries its ledger position; the in-chain
	// copy cannot, since the block hash covers the payload.
	persisted := rec
	persisted.BlockHeight = blk.Height
	persisted.BlockHash = blk.Hash.String()
	persisted.PrevBlockHash = blk.PrevHash
	if err := o.Sink.Persist(persisted); err != nil {
		return nil, fmt.Errorf("persist record %s: %w", rec.RecordID, err)
	}
	return &persisted, nil
}

func (o *Orchestrator) logger() audit.Logger {
	if o.Audit != nil {
		return o.Audit
	}
	return audit.NopLogger{}
}

func (o *Orchestrator) event(eventType, entity string, err error) audit.Event {
	evt := audit.Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		EntityID:  entity,
		Result:    "success",
	}
	if err != nil {
		evt.Result = "failure"
		evt.Reason = err.Error()
	}
	return evt
}
