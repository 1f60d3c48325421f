// Package storage provides the durable key-value store that keeps the cart
// and wishlist between sessions.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Keys used by the storefront stores.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

// ErrCorrupt marks a persisted value that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt persisted value")

// KV is a durable key-value store holding serialized documents.
type KV interface {
	// Get returns the value stored under key. A missing key yields an
	// error matching apperrors.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LoadJSON reads key and decodes it into a T. A missing key returns an
// ErrNotFound error, malformed data an ErrCorrupt error.
func LoadJSON[T any](ctx context.Context, kv KV, key string) (T, error) {
	var v T

	data, err := kv.Get(ctx, key)
	if err != nil {
		return v, err
	}

	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %q: %w: %w", key, ErrCorrupt, err)
	}
	return v, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store %q: %w", key, err)
	}
	return nil
}

// IsNotFound reports whether err means the key was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
