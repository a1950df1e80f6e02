// Package storage provides the small key-value persistence layer used for
// state that survives restarts. Everything else in the process is recomputed
// fresh on startup.
package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store reads and writes named slots of opaque bytes. Implementations must
// treat a missing key as ErrNotFound, not a failure.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
}
