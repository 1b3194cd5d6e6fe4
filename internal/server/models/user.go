// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the identity anchor. Email is unique and doubles as the salt for
// vault key derivation, so changing it would orphan an existing vault.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
