package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_Lifecycle(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", "tok", time.Minute))

	got, err := repo.Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.Expires.After(time.Now()))

	require.NoError(t, repo.Delete(ctx, "tok"))
	assert.ErrorIs(t, repo.Delete(ctx, "tok"), common.ErrorNotFound, "a token is consumed once")

	_, err = repo.Find(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemory_StoresHashOnly(t *testing.T) {
	repo := NewInMemoryRepository()
	require.NoError(t, repo.Create(context.Background(), "u1", "plain-token", time.Minute))

	_, plain := repo.tokens["plain-token"]
	assert.False(t, plain)
	_, hashed := repo.tokens[HashToken("plain-token")]
	assert.True(t, hashed)
}

func TestInMemory_DeleteExpired(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", "old", -time.Minute))
	require.NoError(t, repo.Create(ctx, "u1", "fresh", time.Hour))

	n, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Find(ctx, "old")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Find(ctx, "fresh")
	assert.NoError(t, err)
}

func TestHashToken(t *testing.T) {
	h := HashToken("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("abc"))
	assert.NotEqual(t, h, HashToken("abd"))
}
