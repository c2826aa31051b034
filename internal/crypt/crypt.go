package crypt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required length of the shared answer key.
const KeySize = chacha20poly1305.KeySize

// ErrDecrypt is the only error Open returns. Malformed input, tampered
// ciphertext and a wrong key are deliberately indistinguishable so the HTTP
// layer cannot become a decryption oracle.
var ErrDecrypt = errors.New("cannot decrypt answer")

// Box seals and opens correct answers with XChaCha20-Poly1305 under a
// process-wide shared key. The wire format is base64(nonce || ciphertext).
type Box struct {
	key []byte
}

func New(key []byte) (*Box, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("answer key must be %d bytes, got %d", KeySize, len(key))
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Box{key: k}, nil
}

// Seal encrypts a plaintext answer. It exists for the authoring side of the
// shared-key contract and for tests; the server itself only opens.
func (b *Box) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a correct answer received from a client. Every failure mode
// collapses into ErrDecrypt.
func (b *Box) Open(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecrypt
	}
	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return "", ErrDecrypt
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrDecrypt
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plaintext), nil
}
