package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey returns the key for a computed result of the given scenario hash.
	ResultKey(scenarioHash string) string
}

// DefaultKeyer produces keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(scenarioHash string) string {
	return hashKey("result", scenarioHash)
}

// ScopedKeyer prefixes another keyer's keys, e.g. per tenant or per version.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (or the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey implements Keyer.
func (k *ScopedKeyer) ResultKey(scenarioHash string) string {
	return k.prefix + k.inner.ResultKey(scenarioHash)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data as 64 hex characters.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
