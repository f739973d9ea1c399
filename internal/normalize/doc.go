// Package normalize is the Result Normalizer. It turns schema-variable raw
// records into a Table with a stable, dataset-specific column order.
//
// Nested objects are flattened to dot-notation keys in document order. Each
// dataset declares its recognized columns; the table keeps the recognized
// columns actually present in the payload, so upstream schema drift drops
// columns instead of failing. When nothing recognized is present the table
// falls back to every present field.
package normalize
