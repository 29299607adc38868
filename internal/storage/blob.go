package storage

import "io"

// BlobStore holds uploaded media: book covers, assignment attachments and
// other static assets served under /assets.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Exists(key string) bool
}
