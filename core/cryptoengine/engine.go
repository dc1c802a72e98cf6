package cryptoengine

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"

	"cipherledger/core/keys"
)

// MaxPlaintextLen is the largest message RSA-2048 with OAEP/SHA-256 can
// carry: modulus 256 bytes minus twice the hash size minus 2.
const MaxPlaintextLen = keys.KeyBits/8 - 2*sha256.Size - 2

var (
	// ErrMessageTooLarge is a precondition violation; the caller must
	// shorten the input. No partial encryption is attempted.
	ErrMessageTooLarge = errors.New("plaintext exceeds maximum message length")

	// ErrDecryption covers ciphertext produced for a different key as
	// well as corrupted ciphertext; the two are indistinguishable.
	ErrDecryption = errors.New("decryption failed")

	// ErrSignatureFormat signals malformed signature bytes, as opposed
	// to a well-formed signature that simply does not match.
	ErrSignatureFormat = errors.New("malformed signature")
)

// Encrypt seals plaintext under the recipient's public key using
// RSA-OAEP with SHA-256.
func Encrypt(plaintext []byte, pub *rsa.PublicKey) ([]byte, error) {
	if len(plaintext) > MaxPlaintextLen {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrMessageTooLarge, len(plaintext), MaxPlaintextLen)
	}
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	return ct, nil
}

// Decrypt is the inverse of Encrypt with matching padding parameters.
func Decrypt(ciphertext []byte, priv *rsa.PrivateKey) ([]byte, error) {
	pt, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return pt, nil
}

// Sign signs data with PKCS#1 v1.5 over its SHA-256 digest. The
// orchestrator signs the ciphertext, not the plaintext: verifying then
// proves who produced this specific encrypted artifact, independent of
// who can decrypt it.
func Sign(data []byte, priv *rsa.PrivateKey) ([]byte, error) {
	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature of data under pub. A
// mismatch is a plain false; only structurally invalid signature bytes
// return an error.
func Verify(data, sig []byte, pub *rsa.PublicKey) (bool, error) {
	if len(sig) != pub.Size() {
		return false, fmt.Errorf("%w: %d bytes, want %d", ErrSignatureFormat, len(sig), pub.Size())
	}
	digest := sha256.Sum256(data)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig); err != nil {
		return false, nil
	}
	return true, nil
}
