package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache implementation
// adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		result := &domain.RunResult{
			Machine: "increment",
			Input:   "101",
			Output:  "110",
			Tape:    domain.Symbols("110 "),
			State:   "qf",
			Head:    1,
			Steps:   6,
		}

		err := cache.Put(ctx, key, result)
		require.NoError(t, err, "Put should not return error")

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, result.Output, loaded.Output)
		assert.Equal(t, result.Tape, loaded.Tape)
		assert.Equal(t, result.State, loaded.State)
		assert.Equal(t, result.Head, loaded.Head)
		assert.Equal(t, result.Steps, loaded.Steps)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, &domain.RunResult{Output: "first"}))
		require.NoError(t, cache.Put(ctx, key, &domain.RunResult{Output: "second"}))

		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.Output)
	})

	t.Run("Isolation", func(t *testing.T) {
		result := &domain.RunResult{Output: "original", Tape: domain.Symbols("ab")}
		require.NoError(t, cache.Put(ctx, key, result))

		result.Tape[0] = "z"
		loaded, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "ab", domain.Join(loaded.Tape), "stored entry must not alias the caller's slice")

		loaded.Output = "mutated"
		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "original", again.Output)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, &domain.RunResult{Output: "x"}))

		err := cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting twice is not an error")
	})
}
