package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/executor"
	"github.com/aretw0/turing/pkg/ports"
)

// DefaultServiceMaxSteps caps runs requested by network clients when no step limit was
// configured, so an inline definition that never halts cannot hold a worker forever.
const DefaultServiceMaxSteps = 1_000_000

// Options collects the flags shared by the commands that build an executor.
type Options struct {
	// Dir holds extra definition files, served next to the built-in programs.
	Dir string

	// RedisAddr enables the Redis result cache and distributed lock.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CacheDir enables the on-disk result cache when Redis is not configured.
	CacheDir string

	MaxSteps int
	Logger   *slog.Logger
}

// NewExecutor wires sources and caches according to opts.
// The returned close function releases backend connections.
func NewExecutor(ctx context.Context, opts Options, extra ...executor.Option) (*executor.Executor, func() error, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	execOpts := []executor.Option{
		executor.WithSources(Sources(opts.Dir)...),
		executor.WithMaxSteps(opts.MaxSteps),
		executor.WithLogger(logger),
	}
	closeFn := func() error { return nil }

	var cache ports.ResultCache
	switch {
	case opts.RedisAddr != "":
		rc := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Debug("using redis result cache", "address", opts.RedisAddr)
		cache = rc
		execOpts = append(execOpts, executor.WithLocker(redis.NewLocker(rc.Client(), "turing:"), executor.DefaultLockTTL))
		closeFn = rc.Close
	case opts.CacheDir != "":
		logger.Debug("using file result cache", "dir", opts.CacheDir)
		cache = file.NewCache(opts.CacheDir)
	default:
		cache = memory.NewCache()
	}
	execOpts = append(execOpts, executor.WithCache(cache))

	return executor.New(append(execOpts, extra...)...), closeFn, nil
}

// Sources returns the built-in programs followed by the definitions in dir, if any.
func Sources(dir string) []ports.DefinitionSource {
	sources := []ports.DefinitionSource{memory.NewBuiltinSource()}
	if dir != "" {
		sources = append(sources, file.NewSource(dir))
	}
	return sources
}
