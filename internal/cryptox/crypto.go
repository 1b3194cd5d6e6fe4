// Package cryptox turns a master password into a vault key and seals/opens
// vault payloads with AES-256-GCM. All functions are free of I/O and shared
// mutable state; Engine only adds a bound on concurrent key derivations.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// NonceSize is the standard GCM nonce length in bytes.
	NonceSize = 12
	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16
)

var (
	// ErrInvalidInput reports malformed arguments: empty plaintext, a key of
	// the wrong size, or an envelope that is empty, not base64 or too short.
	ErrInvalidInput = errors.New("cryptox: invalid input")

	// ErrAuthenticationFailure reports that the GCM tag did not verify.
	// A wrong key and a tampered envelope yield this same value.
	ErrAuthenticationFailure = errors.New("cryptox: message authentication failed")
)

// Params are the Argon2id cost parameters. Memory is in KiB.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultParams returns the production policy: 16 passes over 256 MiB
// with 4 lanes, producing a 32-byte key.
func DefaultParams() Params {
	return Params{
		Time:    16,
		Memory:  256 * 1024,
		Threads: 4,
		KeyLen:  KeySize,
	}
}

// DeriveKey stretches password with salt into a p.KeyLen-byte key.
// The result depends only on its inputs.
func DeriveKey(p Params, password, salt []byte) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

// Seal encrypts plaintext under key with a fresh random nonce and returns
// base64(nonce || ciphertext || tag).
func Seal(plaintext string, key []byte) (string, error) {
	if plaintext == "" || len(key) != KeySize {
		return "", ErrInvalidInput
	}

	aead, err := newGCM(key)
	if err != nil {
		return "", ErrInvalidInput
	}

	nonce := make([]byte, NonceSize, NonceSize+len(plaintext)+TagSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Seal appends ciphertext||tag after the nonce already in the buffer.
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Any tag mismatch is reported as ErrAuthenticationFailure
// without further detail.
func Open(envelope string, key []byte) (string, error) {
	if envelope == "" || len(key) != KeySize {
		return "", ErrInvalidInput
	}

	data, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", ErrInvalidInput
	}
	if len(data) < NonceSize+TagSize {
		return "", ErrInvalidInput
	}

	aead, err := newGCM(key)
	if err != nil {
		return "", ErrInvalidInput
	}

	nonce, body := data[:NonceSize], data[NonceSize:]
	plaintext, err := aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", ErrAuthenticationFailure
	}

	return string(plaintext), nil
}
