// Package executor runs machines on behalf of the front-ends.
//
// An Executor resolves a program by name (or accepts an inline definition), builds a
// fresh machine for every request and runs it to completion. Because runs are
// deterministic, results can be memoized in a ports.ResultCache; concurrent requests
// for the same run are collapsed by a per-key lock, optionally backed by a
// ports.DistributedLocker when several replicas share the cache.
package executor
