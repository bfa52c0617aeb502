package persistence

import (
	"context"
	"errors"
)

const (
	// KeyBooks holds the JSON array of every book.
	KeyBooks = "myBooks"
	// KeyTheme holds "light" or "dark".
	KeyTheme = "theme"
)

// ErrNotFound is returned by a KV when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the durable key-value store behind the adapter. Set overwrites the
// whole value; there are no partial writes.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Namespaced prefixes every key with prefix. An empty prefix returns kv.
func Namespaced(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return &namespaced{KV: kv, prefix: prefix}
}

type namespaced struct {
	KV
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.KV.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.KV.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.KV.Delete(ctx, n.prefix+key)
}
