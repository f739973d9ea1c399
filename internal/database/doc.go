// Package database provides the PostgreSQL connection pool and the lookup
// audit log.
//
// The audit log stores one row per lookup: what was asked, how it ended and
// how long it took. Fetched disclosure records are never persisted.
package database
