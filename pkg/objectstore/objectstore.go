package objectstore

import (
	"context"
	"io"
)

// Store saves and deletes proof artifacts. Put returns a retrievable URL;
// Delete accepts that URL back. Owns reports whether a URL points into this
// store, so callers can skip deletes for foreign references.
type Store interface {
	Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, objectURL string) error
	Owns(objectURL string) bool
}
