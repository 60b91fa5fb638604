package executor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed run lock is held.
const DefaultLockTTL = 30 * time.Second

// ErrInvalidRequest reports a request that names neither a program nor a definition,
// or carries an unacceptable tape.
var ErrInvalidRequest = errors.New("invalid request")

// Request describes one run.
// Definition takes precedence over Program. An empty Tape runs the definition's default input.
type Request struct {
	Program    string                 `json:"program,omitempty"`
	Definition *definition.Definition `json:"definition,omitempty"`
	Tape       string                 `json:"tape,omitempty"`
	MaxSteps   int                    `json:"max_steps,omitempty"`
}

// Summary describes a resolvable program.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
	States      int    `json:"states"`
	Rules       int    `json:"rules"`
}

// Metrics receives executor-level measurements. Step-level events go through
// lifecycle hooks instead.
type Metrics interface {
	CacheLookup(hit bool)
	RunCompleted(machine string, elapsed time.Duration, err error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Executor resolves and runs machines.
type Executor struct {
	sources  []ports.DefinitionSource
	cache    ports.ResultCache
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	maxSteps int
	hooks    domain.LifecycleHooks
	metrics  Metrics
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[string]*lockEntry
}

// Option configures the Executor.
type Option func(*Executor)

// WithSources appends definition sources. Earlier sources win on name clashes.
func WithSources(sources ...ports.DefinitionSource) Option {
	return func(e *Executor) {
		e.sources = append(e.sources, sources...)
	}
}

// WithCache enables result memoization.
func WithCache(cache ports.ResultCache) Option {
	return func(e *Executor) {
		e.cache = cache
	}
}

// WithLocker enables distributed locking around cache misses.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Executor) {
		e.locker = locker
		if ttl > 0 {
			e.lockTTL = ttl
		}
	}
}

// WithMaxSteps sets the step ceiling. Requests may lower it but never raise it.
// Zero leaves runs unbounded unless the request sets a bound.
func WithMaxSteps(n int) Option {
	return func(e *Executor) {
		e.maxSteps = n
	}
}

// WithLifecycleHooks attaches hooks to every machine the executor builds.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// WithMetrics registers a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithLogger configures a logger for the Executor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
		locks:   make(map[string]*lockEntry),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve returns the definition a request refers to.
func (e *Executor) Resolve(req Request) (*definition.Definition, error) {
	if req.Definition != nil {
		return req.Definition, nil
	}
	if req.Program == "" {
		return nil, fmt.Errorf("either program or definition is required: %w", ErrInvalidRequest)
	}
	return e.Lookup(req.Program)
}

// Lookup finds a named definition in the configured sources.
func (e *Executor) Lookup(name string) (*definition.Definition, error) {
	for _, src := range e.sources {
		def, err := src.Get(name)
		if err == nil {
			return def, nil
		}
		if !errors.Is(err, domain.ErrProgramNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%q: %w", name, domain.ErrProgramNotFound)
}

// List returns a summary of every program across all sources, sorted by name.
func (e *Executor) List() ([]Summary, error) {
	seen := make(map[string]bool)
	var out []Summary
	for _, src := range e.sources {
		names, err := src.List()
		if err != nil {
			return nil, fmt.Errorf("failed to list programs: %w", err)
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true

			def, err := src.Get(name)
			if err != nil {
				e.logger.Debug("skipping unreadable program", "name", name, "err", err)
				continue
			}
			out = append(out, summarize(name, def))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func summarize(name string, def *definition.Definition) Summary {
	states := make(map[string]bool)
	rules := 0
	for _, r := range def.Rules {
		states[r.State] = true
		states[r.Next] = true
		rules += len(r.Read)
	}
	states[def.Start] = true
	return Summary{
		Name:        name,
		Description: def.Description,
		Example:     domain.Join(def.Symbols()),
		States:      len(states),
		Rules:       rules,
	}
}

// Key derives the cache key of a run.
func Key(def *definition.Definition, input string, maxSteps int) string {
	h := sha256.New()
	h.Write([]byte(def.Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(input))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(maxSteps)))
	return hex.EncodeToString(h.Sum(nil))
}

// Execute runs the requested machine to completion and returns its result.
// Faulted runs (undefined transition, step limit, cancellation) are never cached.
func (e *Executor) Execute(ctx context.Context, req Request) (*domain.RunResult, error) {
	if err := SanitizeTape(req.Tape); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	def, err := e.Resolve(req)
	if err != nil {
		return nil, err
	}

	input := e.input(def, req)
	maxSteps := e.limit(req)

	if e.cache == nil {
		return e.run(ctx, def, input, maxSteps)
	}

	key := Key(def, input, maxSteps)
	if res, ok := e.cached(ctx, key); ok {
		return res, nil
	}

	var result *domain.RunResult
	err = e.withLock(ctx, key, func(ctx context.Context) error {
		// Another caller may have filled the entry while we waited.
		if res, ok := e.cached(ctx, key); ok {
			result = res
			return nil
		}

		res, err := e.run(ctx, def, input, maxSteps)
		if err != nil {
			return err
		}
		if err := e.cache.Put(ctx, key, res); err != nil {
			e.logger.Warn("Failed to cache run result", "machine", def.Name, "err", err)
		}
		result = res
		return nil
	})
	return result, err
}

// Trace runs the requested machine like Execute but bypasses the cache, so that
// hooks observe every step. They run after the executor's own hooks.
func (e *Executor) Trace(ctx context.Context, req Request, hooks domain.LifecycleHooks) (*domain.RunResult, error) {
	if err := SanitizeTape(req.Tape); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	def, err := e.Resolve(req)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, def, e.input(def, req), e.limit(req), hooks)
}

// MaxSteps returns the configured step ceiling.
func (e *Executor) MaxSteps() int {
	return e.maxSteps
}

func (e *Executor) input(def *definition.Definition, req Request) string {
	if req.Tape == "" {
		return domain.Join(def.Symbols())
	}
	return req.Tape
}

func (e *Executor) limit(req Request) int {
	switch {
	case req.MaxSteps <= 0:
		return e.maxSteps
	case e.maxSteps > 0 && req.MaxSteps > e.maxSteps:
		return e.maxSteps
	default:
		return req.MaxSteps
	}
}

func (e *Executor) cached(ctx context.Context, key string) (*domain.RunResult, bool) {
	res, err := e.cache.Get(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		e.logger.Warn("Cache lookup failed", "key", key, "err", err)
	}
	hit := err == nil
	if e.metrics != nil {
		e.metrics.CacheLookup(hit)
	}
	if !hit {
		return nil, false
	}
	res.Cached = true
	return res, true
}

func (e *Executor) run(ctx context.Context, def *definition.Definition, input string, maxSteps int, extra ...domain.LifecycleHooks) (*domain.RunResult, error) {
	hooks := observability.Combine(append([]domain.LifecycleHooks{e.hooks}, extra...)...)
	m, err := def.Build(domain.Symbols(input),
		turing.WithLogger(e.logger),
		turing.WithLifecycleHooks(hooks),
		turing.WithMaxSteps(maxSteps),
	)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	contents, err := m.Run(ctx)
	if e.metrics != nil {
		e.metrics.RunCompleted(def.Name, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", def.Name, err)
	}

	return &domain.RunResult{
		Machine: def.Name,
		Input:   input,
		Output:  turing.Result(contents, m.Blank()),
		Tape:    contents,
		State:   m.CurrentState(),
		Head:    m.HeadPosition(),
		Steps:   m.Steps(),
	}, nil
}

// acquire gets or creates a lock entry and increments its reference count.
func (e *Executor) acquire(key string) *lockEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, exists := e.locks[key]
	if !exists {
		entry = &lockEntry{}
		e.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (e *Executor) release(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, exists := e.locks[key]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(e.locks, key)
	}
}

// withLock executes fn while holding the local and, if configured, the distributed lock for key.
func (e *Executor) withLock(ctx context.Context, key string, fn func(context.Context) error) error {
	entry := e.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		e.release(key)
	}()

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, key, e.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				e.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// lockCount reports the number of live lock entries.
func (e *Executor) lockCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.locks)
}
