package store

import "errors"

// Well-known keys.
const (
	KeyTasks     = "tasks"
	KeyFavorites = "favorites"
)

var ErrInvalidKey = errors.New("invalid key")

// Store is a synchronous key-value byte store. Get returns (nil, nil)
// for a key that has never been written.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
