package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// KeyBits is the fixed RSA modulus length for every generated pair.
const KeyBits = 2048

// ErrKeyGeneration signals an underlying entropy or library failure.
// It is fatal for the run; callers do not retry.
var ErrKeyGeneration = errors.New("key generation failed")

// KeyPair holds one participant's RSA pair, PEM encoded: PKCS#8 for the
// private half, PKIX for the public half.
type KeyPair struct {
	PublicKeyPEM  string
	PrivateKeyPEM string

	private *rsa.PrivateKey
}

// Generate produces a fresh RSA-2048 pair. Every call generates new key
// material; nothing is cached or seeded.
func Generate() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return fromPrivate(priv)
}

func fromPrivate(priv *rsa.PrivateKey) (*KeyPair, error) {
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &KeyPair{
		PrivateKeyPEM: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})),
		PublicKeyPEM:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
		private:       priv,
	}, nil
}

// Private returns the decoded RSA private key.
func (kp *KeyPair) Private() (*rsa.PrivateKey, error) {
	if kp.private != nil {
		return kp.private, nil
	}
	priv, err := ParsePrivateKeyPEM(kp.PrivateKeyPEM)
	if err != nil {
		return nil, err
	}
	kp.private = priv
	return priv, nil
}

// Public returns the decoded RSA public key.
func (kp *KeyPair) Public() (*rsa.PublicKey, error) {
	if kp.private != nil {
		return &kp.private.PublicKey, nil
	}
	return ParsePublicKeyPEM(kp.PublicKeyPEM)
}

// ParsePrivateKeyPEM decodes a PKCS#8 PEM private key.
func ParsePrivateKeyPEM(pemText string) (*rsa.PrivateKey, error) {
	blk, _ := pem.Decode([]byte(pemText))
	if blk == nil {
		return nil, errors.New("no PEM block in private key")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(blk.Bytes)
	if err != nil {
		return nil, fmt.Errorf("invalid PKCS#8 private key: %w", err)
	}
	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return priv, nil
}

// ParsePublicKeyPEM decodes a PKIX PEM public key.
func ParsePublicKeyPEM(pemText string) (*rsa.PublicKey, error) {
	blk, _ := pem.Decode([]byte(pemText))
	if blk == nil {
		return nil, errors.New("no PEM block in public key")
	}
	parsed, err := x509.ParsePKIXPublicKey(blk.Bytes)
	if err != nil {
		return nil, fmt.Errorf("invalid PKIX public key: %w", err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return pub, nil
}
