package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// ResultCache memoizes completed runs.
// Keys are derived from the machine fingerprint, the input tape and the step bound,
// so an entry never needs invalidation; expiry is only a space concern.
type ResultCache interface {
	// Get returns the cached result for key.
	// Returns domain.ErrCacheMiss if no entry exists.
	Get(ctx context.Context, key string) (*domain.RunResult, error)

	// Put stores the result under key, replacing any previous entry.
	Put(ctx context.Context, key string, result *domain.RunResult) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
