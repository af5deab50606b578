package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// FSStore is a filesystem-backed asset store with a content-addressable
// layout:
//
//	assets/
//	  ab/
//	    cd1234....png (first 2 hash chars = subdir, rest + extension = file)
//
// URLs take the form <baseURL>/<hash><ext>.
type FSStore struct {
	basePath string
	baseURL  string
	mu       sync.RWMutex
}

// NewFSStore creates an asset store rooted at basePath. baseURL is the
// public prefix URLs are minted under, e.g. "/assets".
func NewFSStore(basePath, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(basePath, 0750); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}
	return &FSStore{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (fs *FSStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read asset: %w", err)
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:]) + sanitizeExt(name)

	objectPath := fs.objectPath(key)
	if _, err := os.Stat(objectPath); err == nil {
		return fs.urlFor(key), nil
	}

	if err := os.MkdirAll(filepath.Dir(objectPath), 0750); err != nil {
		return "", fmt.Errorf("create asset subdirectory: %w", err)
	}
	if err := os.WriteFile(objectPath, data, 0600); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return fs.urlFor(key), nil
}

func (fs *FSStore) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	key, ok := fs.keyFor(url)
	if !ok {
		return nil, ErrNotFound{URL: url}
	}
	// #nosec G304 - path is derived from a hash key, not caller input
	f, err := os.Open(fs.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound{URL: url}
		}
		return nil, fmt.Errorf("open asset: %w", err)
	}
	return f, nil
}

func (fs *FSStore) Exists(ctx context.Context, url string) (bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	key, ok := fs.keyFor(url)
	if !ok {
		return false, nil
	}
	_, err := os.Stat(fs.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat asset: %w", err)
	}
	return true, nil
}

func (fs *FSStore) urlFor(key string) string {
	return fs.baseURL + "/" + key
}

// keyFor inverts urlFor and rejects anything that is not a minted key.
func (fs *FSStore) keyFor(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, fs.baseURL+"/")
	if !ok {
		return "", false
	}
	hash := strings.TrimSuffix(key, path.Ext(key))
	if len(hash) != sha256.Size*2 {
		return "", false
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return "", false
	}
	return key, true
}

func (fs *FSStore) objectPath(key string) string {
	return filepath.Join(fs.basePath, key[:2], key[2:])
}

// sanitizeExt keeps a short, lowercase extension from the upload name and
// drops anything suspicious.
func sanitizeExt(name string) string {
	ext := strings.ToLower(path.Ext(path.Base(name)))
	if ext == "" || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
