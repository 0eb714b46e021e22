// Package store caches resolution results in SQLite.
//
// Resolved argument types are immutable for a given (IDL source, method)
// pair, so they are cached under the source's content hash plus the method
// name. Any textual change to the source produces a different hash and
// therefore a cache miss; stale entries are harmless and never consulted.
package store
