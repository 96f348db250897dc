package secrets

import (
	"os"
	"strings"
)

// Store resolves named credentials. Implementations must be safe for
// concurrent use; the relay never caches resolved values across requests.
type Store interface {
	// Resolve returns the credential for the given reference. The second
	// return value is false when the credential is absent or empty.
	Resolve(name string) (string, bool)
}

// EnvStore resolves credentials from the process environment.
type EnvStore struct{}

// NewEnvStore creates an environment-backed credential store.
func NewEnvStore() EnvStore {
	return EnvStore{}
}

// Resolve implements Store. Whitespace-only values count as absent so a
// misconfigured deployment fails closed.
func (EnvStore) Resolve(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

// StaticStore resolves credentials from a fixed map. Intended for tests.
type StaticStore map[string]string

// Resolve implements Store.
func (s StaticStore) Resolve(name string) (string, bool) {
	v, ok := s[name]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
