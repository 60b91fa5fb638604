/*
Package ports defines the driven ports (interfaces) of the machine services.

These interfaces decouple the executor from external implementations, allowing
results to be memoized in memory, in Redis, or not at all.

# Key Interfaces

  - ResultCache: Memoizes completed runs by a deterministic key.
*/
package ports
