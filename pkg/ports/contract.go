package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStatusStoreContract runs a suite of tests to verify that a StatusStore implementation
// adheres to the defined interface contract.
func RunStatusStoreContract(t *testing.T, store StatusStore) {
	ctx := context.Background()
	key := "contract-test-board-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		board := domain.NewBoard()
		board.SetBusy("spinner", true)
		board.Apply(domain.Message("Item(s) added successfully", domain.ToneSuccess))
		board.Connectivity = domain.ConnectivityOnline
		board.Revision = 3

		require.NoError(t, store.Save(ctx, key, board), "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, []string{"spinner"}, loaded.Busy)
		require.NotNil(t, loaded.Notice)
		assert.Equal(t, "Item(s) added successfully", loaded.Notice.Text)
		assert.Equal(t, domain.ToneSuccess, loaded.Notice.Tone)
		assert.Equal(t, domain.ConnectivityOnline, loaded.Connectivity)
		assert.Equal(t, uint64(3), loaded.Revision)
	})

	t.Run("Isolation", func(t *testing.T) {
		board := domain.NewBoard()
		require.NoError(t, store.Save(ctx, key+"-iso", board))
		board.Apply(domain.Navigate("/user"))

		loaded, err := store.Load(ctx, key+"-iso")
		require.NoError(t, err)
		assert.Equal(t, domain.HomeLocation, loaded.Location, "mutating after Save must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrBoardNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, domain.NewBoard()))
		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrBoardNotFound, "Load after Delete should return ErrBoardNotFound")
	})
}
