// Package api is the Result Fetcher: it executes built queries against the
// upstream disclosure APIs and classifies the outcome.
//
// REST endpoints:
//   - Quiver Quantitative: https://api.quiverquant.com
//   - sec-api.io: https://api.sec-api.io
//
// Each Fetch performs exactly one round trip. Retrying is a caller policy; see
// RetryFetcher.
package api
