package cryptox

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Engine binds a fixed Params policy and limits how many Argon2 derivations
// run at once, since each one holds Params.Memory KiB for its duration.
type Engine struct {
	params Params
	sem    *semaphore.Weighted
}

// NewEngine returns an Engine using p. maxConcurrent below 1 is treated as 1.
func NewEngine(p Params, maxConcurrent int) *Engine {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Engine{params: p, sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

// Params returns the derivation policy of the engine.
func (e *Engine) Params() Params {
	return e.params
}

// DeriveKey waits for a derivation slot and then runs DeriveKey.
// It returns ctx.Err() if the context ends while waiting.
func (e *Engine) DeriveKey(ctx context.Context, password, salt []byte) ([]byte, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	return DeriveKey(e.params, password, salt), nil
}

// Seal seals plaintext under key; see the package-level Seal.
func (e *Engine) Seal(plaintext string, key []byte) (string, error) {
	return Seal(plaintext, key)
}

// Open opens an envelope under key; see the package-level Open.
func (e *Engine) Open(envelope string, key []byte) (string, error) {
	return Open(envelope, key)
}
