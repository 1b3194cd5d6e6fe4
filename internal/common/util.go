package common

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// randReader is swapped in tests to simulate entropy failures.
var randReader io.Reader = rand.Reader

// RandBytes returns size bytes from the system CSPRNG.
func RandBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// MakeRandHexString returns size random bytes hex-encoded, so the string
// is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b, err := RandBytes(size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites b with zeros. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	clear(b)
}
