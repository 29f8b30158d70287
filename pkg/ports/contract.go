package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-doc-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := sketch.NewDocument()
		a := doc.AddPoint(domain.Vec2{X: 1, Y: 2})
		b := doc.AddPoint(domain.Vec2{X: 4, Y: 6})
		_, err := doc.AddLine(a, b)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, docID, doc))

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Len(t, loaded.Points, 2)
		assert.Len(t, loaded.Lines, 1)
		p, ok := loaded.Point(b)
		require.True(t, ok)
		assert.Equal(t, domain.Vec2{X: 4, Y: 6}, p.Co)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, sketch.NewDocument()))
		require.NoError(t, store.Delete(ctx, docID))

		_, err := store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		require.NoError(t, store.Save(ctx, id1, sketch.NewDocument()))
		require.NoError(t, store.Save(ctx, id2, sketch.NewDocument()))
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
