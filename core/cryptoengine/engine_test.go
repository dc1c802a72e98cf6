package cryptoengine

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	priv := testKey(t)

	for _, plaintext := range [][]byte{
		[]byte("hi"),
		[]byte(""),
		bytes.Repeat([]byte("a"), MaxPlaintextLen),
	} {
		ct, err := Encrypt(plaintext, &priv.PublicKey)
		require.NoError(t, err)

		pt, err := Decrypt(ct, priv)
		require.NoError(t, err)
		require.Equal(t, plaintext, pt)
	}
}

func TestEncryptRejectsOversizedPlaintext(t *testing.T) {
	priv := testKey(t)

	tooLong := bytes.Repeat([]byte("a"), MaxPlaintextLen+1)
	ct, err := Encrypt(tooLong, &priv.PublicKey)
	require.ErrorIs(t, err, ErrMessageTooLarge)
	require.Nil(t, ct, "no partial encryption on precondition failure")
}

func TestMaxPlaintextLenMatchesOAEPOverhead(t *testing.T) {
	// 2048-bit modulus, SHA-256 OAEP: 256 - 2*32 - 2
	if MaxPlaintextLen != 190 {
		t.Fatalf("expected max plaintext of 190 bytes, got %d", MaxPlaintextLen)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	priv := testKey(t)
	other := testKey(t)

	ct, err := Encrypt([]byte("secret"), &priv.PublicKey)
	require.NoError(t, err)

	_, err = Decrypt(ct, other)
	require.ErrorIs(t, err, ErrDecryption)
}

func TestSignAndVerifyCiphertext(t *testing.T) {
	priv := testKey(t)

	ct, err := Encrypt([]byte("payload"), &priv.PublicKey)
	require.NoError(t, err)

	sig, err := Sign(ct, priv)
	require.NoError(t, err)

	ok, err := Verify(ct, sig, &priv.PublicKey)
	require.NoError(t, err)
	require.True(t, ok)

	tampered := append([]byte{}, ct...)
	tampered[0] ^= 0xff
	ok, err = Verify(tampered, sig, &priv.PublicKey)
	require.NoError(t, err, "mismatch is a plain false, not an error")
	require.False(t, ok)
}

func TestVerifyMalformedSignature(t *testing.T) {
	priv := testKey(t)

	_, err := Verify([]byte("data"), []byte("short"), &priv.PublicKey)
	if !errors.Is(err, ErrSignatureFormat) {
		t.Fatalf("expected ErrSignatureFormat, got %v", err)
	}
}

func TestVerifyWrongSigner(t *testing.T) {
	priv := testKey(t)
	other := testKey(t)

	sig, err := Sign([]byte("data"), priv)
	require.NoError(t, err)

	ok, err := Verify([]byte("data"), sig, &other.PublicKey)
	require.NoError(t, err)
	require.False(t, ok)
}
