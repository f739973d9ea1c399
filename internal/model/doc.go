// Package model defines the data types shared by the lookup pipeline stages.
//
// Conventions:
//   - Queries are immutable values built once per lookup.
//   - Raw records are kept as undecoded JSON objects; their schema is not fixed.
//   - Table cells are tagged Values; a field the upstream did not supply is
//     Missing, never zero.
package model
