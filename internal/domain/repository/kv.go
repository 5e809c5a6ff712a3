// Package repository declares the persistence contracts of the domain.
package repository

import "context"

// KeyValueRepository is the string-keyed storage surface holding the
// serialized settings document and the shortcut list.
type KeyValueRepository interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}
