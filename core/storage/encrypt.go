package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"os"
)

// DEKEnvVar names the optional at-rest Data Encryption Key: 32 bytes,
// base64-encoded. When unset the archive stores plaintext.
const DEKEnvVar = "CIPHERLEDGER_DEK"

func getDEK() ([]byte, error) {
	dekB64 := os.Getenv(DEKEnvVar)
	if dekB64 == "" {
		return nil, nil
	}
	dek, err := base64.StdEncoding.DecodeString(dekB64)
	if err != nil {
		return nil, errors.New("failed to decode " + DEKEnvVar + ": " + err.Error())
	}
	if len(dek) != 32 {
		return nil, errors.New(DEKEnvVar + " must be 32 bytes (base64-encoded)")
	}
	return dek, nil
}

// Encrypt seals archive bytes with AES-256-GCM under the environment
// DEK. Pass-through when no DEK is configured.
func Encrypt(plaintext []byte) ([]byte, error) {
	dek, err := getDEK()
	if err != nil {
		return nil, err
	}
	if dek == nil {
		return plaintext, nil
	}
	blk, err := aes.NewCipher(dek)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(blk)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt under the same environment DEK.
func Decrypt(ciphertext []byte) ([]byte, error) {
	dek, err := getDEK()
	if err != nil {
		return nil, err
	}
	if dek == nil {
		return ciphertext, nil
	}
	blk, err := aes.NewCipher(dek)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(blk)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ct := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ct, nil)
}
