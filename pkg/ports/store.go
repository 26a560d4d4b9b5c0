package ports

import "context"

// DocumentStore persists serialized formation documents.
type DocumentStore interface {
	// Save stores doc under id, replacing any previous document.
	Save(ctx context.Context, id string, doc []byte) error

	// Load retrieves the document stored under id.
	// Returns domain.ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, id string) ([]byte, error)

	// Delete removes the document stored under id. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored IDs.
	List(ctx context.Context) ([]string, error)
}
