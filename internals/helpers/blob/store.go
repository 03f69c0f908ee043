package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrObjectNotFound = errors.New("blob: object not found")
	// ErrForeignURL means the URL does not point into this store.
	ErrForeignURL = errors.New("blob: url does not belong to this store")
)

// Store is the remote object store seen as put/copy/delete by key.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(url string) (string, error)
}

// NewStoreFromEnv picks a backend by BLOB_DRIVER (oss|s3|memory).
func NewStoreFromEnv(ctx context.Context) (Store, error) {
	switch driver := strings.ToLower(strings.TrimSpace(os.Getenv("BLOB_DRIVER"))); driver {
	case "", "oss":
		return NewOSSStoreFromEnv()
	case "s3":
		return NewS3StoreFromEnv(ctx)
	case "memory":
		return NewMemoryStore(os.Getenv("BLOB_PUBLIC_BASE")), nil
	default:
		return nil, fmt.Errorf("unsupported BLOB_DRIVER %q", driver)
	}
}

// keyUnderBase strips base from url; the remainder is the object key.
func keyUnderBase(base, url string) (string, error) {
	if base == "" || url == "" {
		return "", ErrForeignURL
	}
	base = strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return "", ErrForeignURL
	}
	key := strings.TrimPrefix(url, base)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" {
		return "", ErrForeignURL
	}
	return key, nil
}
