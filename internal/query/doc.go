// Package query builds upstream request descriptors for each disclosure dataset.
//
// Build is a pure function: it performs no I/O and identical inputs always
// produce identical queries.
//
// Upstream conventions:
//   - Quiver congressional trading: GET with a representative name parameter.
//   - sec-api.io insider trading: structured search on issuer.tradingSymbol.
//   - sec-api.io 13F holdings: structured search on a 10-digit zero-padded CIK
//     and period of report, at most 50 records per call.
package query
