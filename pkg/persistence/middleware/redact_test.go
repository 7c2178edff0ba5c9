package middleware_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sfsweb/pkg/adapters/memory"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/persistence/middleware"
)

func TestRedactMiddleware_Masking(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewRedactMiddleware([]string{"(?i)query"})
	require.NoError(t, err)
	store := mw(underlyingStore)

	ctx := context.Background()
	board := domain.NewBoard()
	board.Apply(domain.Navigate("/search?searchQuery=tax+returns&page=2"))

	require.NoError(t, store.Save(ctx, "default", board))
	assert.Equal(t, "/search?searchQuery=tax+returns&page=2", board.Location, "live board must not be modified")

	stored, err := underlyingStore.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "/search?page=2&searchQuery=%2A%2A%2A", stored.Location)
}

func TestRedactMiddleware_Untouched(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw, err := middleware.NewRedactMiddleware([]string{"searchQuery"})
	require.NoError(t, err)
	store := mw(underlyingStore)

	ctx := context.Background()
	board := domain.NewBoard()
	board.Apply(domain.Navigate("/user"))
	require.NoError(t, store.Save(ctx, "default", board))

	stored, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "/user", stored.Location)
}

func TestRedactMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewRedactMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	underlyingStore := memory.NewStore()
	redact, err := middleware.NewRedactMiddleware([]string{"searchQuery"})
	require.NoError(t, err)
	encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	store := middleware.Chain(underlyingStore, redact, encrypt)

	ctx := context.Background()
	board := domain.NewBoard()
	board.Apply(domain.Navigate("/search?searchQuery=secret"))
	require.NoError(t, store.Save(ctx, "default", board))

	stored, err := underlyingStore.Load(ctx, "default")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Sealed)

	loaded, err := store.Load(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "/search?searchQuery=%2A%2A%2A", loaded.Location)
}
