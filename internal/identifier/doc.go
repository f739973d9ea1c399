// Package identifier canonicalizes user-entered lookup identifiers.
//
// Three kinds are supported:
//   - PersonName: a legislator's name, e.g. "Nancy Pelosi"
//   - TickerSymbol: an issuer's trading symbol, e.g. "TSLA"
//   - RegistryID: an SEC Central Index Key (CIK), e.g. "0001067983"
//
// Normalization never fails. Input that cannot be used degrades to an inert
// identifier (Empty reports true) so callers can skip any network call.
package identifier
