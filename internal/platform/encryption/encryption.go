// Package encryption provides per-report content encryption. Every stored
// report gets its own random AES-256 key, carried as a 64-character hex
// string alongside the report row.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// ErrDecrypt is returned when ciphertext cannot be decrypted, whether it was
// corrupted, truncated, or sealed under a different key.
var ErrDecrypt = errors.New("encryption: cannot decrypt content")

// GenerateKey returns a fresh random AES-256 key as a hex string.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("encryption: generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Encryptor seals and opens report content with a single AES-256-GCM key.
type Encryptor struct {
	aead cipher.AEAD
}

// NewEncryptor creates an Encryptor from a hex-encoded AES-256 key.
func NewEncryptor(hexKey string) (*Encryptor, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("encryption: decode key: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption: key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption: create GCM: %w", err)
	}
	return &Encryptor{aead: aead}, nil
}

// Encrypt seals the plaintext and returns a base64-encoded blob with the
// random nonce prepended.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	sealed, err := e.EncryptBytes([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decodes the base64 blob, splits off the nonce, and opens the
// ciphertext. Any failure is reported as ErrDecrypt.
func (e *Encryptor) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", ErrDecrypt, err)
	}
	plaintext, err := e.DecryptBytes(data)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptBytes seals data and returns the nonce prepended to the ciphertext.
func (e *Encryptor) EncryptBytes(data []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("encryption: generate nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, so the result is nonce + ciphertext.
	return e.aead.Seal(nonce, nonce, data, nil), nil
}

// DecryptBytes splits the nonce off the front of data and opens the
// remainder.
func (e *Encryptor) DecryptBytes(data []byte) ([]byte, error) {
	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return plaintext, nil
}
