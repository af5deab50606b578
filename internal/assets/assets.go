// Package assets stores uploaded site media (images, favicons) and hands
// back opaque public URLs that section fields reference. The filesystem
// implementation is content-addressable, so re-uploading the same bytes is
// free and URLs never go stale under edits.
package assets

import (
	"context"
	"io"
)

// Store is the media storage collaborator.
type Store interface {
	// Put stores the asset and returns its public URL. The name's
	// extension is preserved so browsers get a usable content type.
	Put(ctx context.Context, name string, r io.Reader) (string, error)

	// Open returns the asset behind a URL previously returned by Put.
	// Returns ErrNotFound if no such asset exists.
	Open(ctx context.Context, url string) (io.ReadCloser, error)

	// Exists reports whether the URL resolves to a stored asset.
	Exists(ctx context.Context, url string) (bool, error)
}

// ErrNotFound is returned when a URL resolves to no stored asset.
type ErrNotFound struct {
	URL string
}

func (e ErrNotFound) Error() string {
	return "asset not found: " + e.URL
}

// IsNotFound returns true if the error is ErrNotFound.
func IsNotFound(err error) bool {
	_, ok := err.(ErrNotFound)
	return ok
}
