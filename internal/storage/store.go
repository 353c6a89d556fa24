// Package storage provides the key-value persistence the weather cache sits on.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key was never written.
var ErrNotFound = errors.New("key not found")

// Store is a string key-value store with explicit get/set semantics.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
