package ports

import (
	"context"

	"github.com/aretw0/stencil/pkg/sketch"
)

// DocumentStore defines the interface for persisting sketch documents.
type DocumentStore interface {
	// Save persists the document under the given id.
	Save(ctx context.Context, id string, doc *sketch.Document) error

	// Load retrieves the document with the given id.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, id string) (*sketch.Document, error)

	// Delete removes the document.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored documents.
	List(ctx context.Context) ([]string, error)
}
