// Package glrm implements the numeric core of a Generalized Low Rank
// Model: pluggable scalar losses for numeric columns, multi-losses for
// categorical columns, regularizers with their proximal operators, and
// the partition-parallel reconstruction pass that applies fitted X·Y
// factors back onto a row-partitioned dataset.
//
// A GLRM factors an expanded numeric representation A of a mixed
// numeric/categorical table into X (n×k) and Y (k×m_expanded),
// minimizing a per-entry loss plus per-row penalties on X and
// per-column penalties on Y. Entries marked missing contribute no
// loss. This package supplies the per-entry mathematics and the
// scoring contract; the alternating-minimization driver,
// initialization strategies and distributed storage live elsewhere and
// consume these pieces through Parameters, Functions and Scorer.
//
// All loss and regularizer implementations are stateless and pure:
// safe to broadcast across goroutines and deterministic given their
// inputs (the one-sparse proximal operators take an explicit random
// source for tie-breaking, so a fixed seed reproduces results).
// Infinite penalties and imputations are sentinel values - "constraint
// violated" and "minimizer at infinity" - and are propagated as
// ordinary floating-point infinities, never as errors.
package glrm
