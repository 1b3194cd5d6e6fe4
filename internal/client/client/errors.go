package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
	ErrDecryption   = errors.New("could not decrypt the vault")
	ErrRateLimited  = errors.New("too many requests")
	ErrNotLoggedIn  = errors.New("not logged in")
)
