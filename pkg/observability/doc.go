/*
Package observability provides tools for monitoring machine runs.

It includes Prometheus collectors fed by engine lifecycle hooks, a structured-logging
hook set, and a helper to combine several hook sets into one.
*/
package observability
