// Package storage provides access to the object store holding uploaded
// report assets (product photos, facility images, company logos).
package storage

import (
	"context"
	"io"
)

// Object is a fetched object's content stream plus its content-type metadata.
// Callers own the stream and must close it.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStore is the engine's only outbound dependency besides the rendering
// engine itself: fetch file by path, returning a byte stream + content type.
type ObjectStore interface {
	// Fetch retrieves the object stored under the given key.
	Fetch(ctx context.Context, key string) (*Object, error)
}
