package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Storage.Read when no value exists for the key.
var ErrNotFound = errors.New("session not found")

// Storage is the durable backing for sessions: one opaque blob per key.
// Absence of a key means "no session". Deleting a missing key succeeds.
type Storage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
