// Package catalog defines the records that intelseed loads into the
// intelligence database, together with the fixed batches compiled into the
// binary.
//
// This package contains the following main types:
//   - ResearchEntry: A research note (paper, article) keyed by its title
//   - OptimizationEntry: An implementation note grouped by category
//   - Catalog: The immutable pair of literal batches
//
// Design decision: The batches are package-level literals rather than an
// external data file. Accessors return copies, so no caller can alter what a
// later run inserts.
package catalog
