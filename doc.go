// Package h2o3 is the root of a Go port of the H2O-3 Generalized Low
// Rank Model numeric core.
//
// The building blocks live in subpackages:
//
//   - glrm: losses, multi-losses, regularizers with proximal
//     operators, and the partition-parallel reconstruction pass
//   - metrics: reconstruction-error metrics
//   - core/parallel: chunked goroutine fan-out helpers
//   - pkg/errors, pkg/log: structured errors and logging
package h2o3
