package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/formation/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")
	doc := []byte("# contract\nStatic 1\n")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, docID, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		next := []byte("UvA 1\n")
		require.NoError(t, store.Save(ctx, docID, next))

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, next, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, doc))

		err := store.Delete(ctx, docID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, docID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		_ = store.Save(ctx, id1, doc)
		_ = store.Save(ctx, id2, doc)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
