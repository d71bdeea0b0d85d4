// Package ingestion builds a vocabulary and tag graph from an item corpus.
//
// The Pipeline type manages the construction workflow, including:
//   - Validating items and skipping malformed or duplicate ones
//   - Counting raw tags in parallel batches
//   - Canonicalizing the counted tags into a vocabulary
//   - Linking items to canonical tags in parallel batches
//
// Batches run on a worker pool. Shared state (the tag counter and the graph
// builder) is mutex-protected. Node insertion stays sequential so node order
// follows corpus order. Ingestion-shape problems are logged, never fatal.
package ingestion
