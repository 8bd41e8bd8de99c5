// Package blob stores raw audio files on a remote WebDAV share, addressed by
// hierarchical path.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Open when nothing is stored at the path.
var ErrNotFound = errors.New("blob not found")

// Store is the minimal set of operations the playlist needs from the file
// host.
type Store interface {
	// Put writes the whole of r at path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader) error
	// Open returns a stream of the file at path. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
