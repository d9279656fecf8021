package storage

import (
	"context"
	"io"
)

// Provider is the byte-stream persistence backend. Save must be durable
// before it returns: upload and report records are only written after a
// successful Save.
type Provider interface {
	// Save writes the stream under key and returns a reference usable
	// with Open. For the local backend this is an absolute-ish file path.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	// Open reads back a previously saved object.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
