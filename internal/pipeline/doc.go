// Package pipeline runs one disclosure lookup end to end: normalize the
// identifier, build the query, fetch, and normalize the result into a table.
//
// A Lookup runs synchronously on the caller's goroutine. Services hold only
// read-only configuration, so one Service may serve concurrent lookups.
package pipeline
