// Package secret provides a pluggable store for sensitive values such as
// database passwords, kept separate from persisted profile metadata.
package secret

// Store is the interface for secret storage operations.
type Store interface {
	// Set stores a secret value under the given key.
	Set(key string, value []byte) error

	// Get retrieves the secret value for the given key.
	// Returns nil value and nil error if the key does not exist.
	Get(key string) ([]byte, error)

	// Delete removes the secret for the given key. Unknown keys are a no-op.
	Delete(key string) error
}
