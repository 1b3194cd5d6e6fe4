package models

import "time"

// Vault is the single per-user record holding the sealed envelope.
// EncryptedData is base64(nonce || ciphertext || tag) and is the only form
// in which vault contents are ever persisted.
type Vault struct {
	ID            string
	UserID        string
	EncryptedData string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LoginInfo is one stored credential.
type LoginInfo struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VaultData maps a domain name to its credential. It is the plaintext form
// that exists only in memory during a single request.
type VaultData map[string]LoginInfo
