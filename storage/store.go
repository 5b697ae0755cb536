// Package storage abstracts the image blob store. The service only ever
// needs "put a blob, get a public URL back" and "delete a blob", so that is
// the whole interface; S3 is the production implementation.
package storage

import (
	"context"
	"io"
)

type Store interface {
	// Put stores the blob under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// Delete removes the blob. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
