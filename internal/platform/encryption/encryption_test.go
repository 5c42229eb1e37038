package encryption

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != 2*KeySize {
		t.Fatalf("key length = %d, want %d hex characters", len(key), 2*KeySize)
	}
	if _, err := hex.DecodeString(key); err != nil {
		t.Fatalf("key is not valid hex: %v", err)
	}

	other, err := GenerateKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key == other {
		t.Fatal("two generated keys are identical")
	}
}

func TestNewEncryptor(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		key, _ := GenerateKey()
		enc, err := NewEncryptor(key)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if enc == nil {
			t.Fatal("expected non-nil encryptor")
		}
	})

	t.Run("not hex", func(t *testing.T) {
		if _, err := NewEncryptor(strings.Repeat("zz", KeySize)); err == nil {
			t.Fatal("expected error for non-hex key")
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		if _, err := NewEncryptor("deadbeef"); err == nil {
			t.Fatal("expected error for short key")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := NewEncryptor(""); err == nil {
			t.Fatal("expected error for empty key")
		}
	})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, _ := GenerateKey()
	enc, err := NewEncryptor(key)
	if err != nil {
		t.Fatalf("create encryptor: %v", err)
	}

	cases := []string{
		"",
		"hello",
		`<?xml version="1.0" encoding="UTF-8"?><ichicsr lang="en"></ichicsr>`,
		strings.Repeat("long content ", 10_000),
		"unicode: héllo wörld 日本語",
	}
	for _, plaintext := range cases {
		sealed, err := enc.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		if sealed == plaintext && plaintext != "" {
			t.Fatal("ciphertext equals plaintext")
		}
		got, err := enc.Decrypt(sealed)
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip mismatch: got %q", got)
		}
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	key, _ := GenerateKey()
	enc, _ := NewEncryptor(key)

	a, _ := enc.Encrypt("same content")
	b, _ := enc.Encrypt("same content")
	if a == b {
		t.Fatal("two encryptions of the same plaintext are identical")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	keyA, _ := GenerateKey()
	keyB, _ := GenerateKey()
	encA, _ := NewEncryptor(keyA)
	encB, _ := NewEncryptor(keyB)

	sealed, err := encA.Encrypt("secret report")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := encB.Decrypt(sealed); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("got %v, want ErrDecrypt", err)
	}
}

func TestDecryptCorruptedInput(t *testing.T) {
	key, _ := GenerateKey()
	enc, _ := NewEncryptor(key)

	sealed, err := enc.Encrypt("secret report")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(sealed)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"truncated", base64.StdEncoding.EncodeToString(raw[:4])},
		{"tampered", tampered},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := enc.Decrypt(tt.input); !errors.Is(err, ErrDecrypt) {
				t.Errorf("got %v, want ErrDecrypt", err)
			}
		})
	}
}
