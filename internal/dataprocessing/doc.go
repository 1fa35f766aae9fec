// Package dataprocessing implements the loan data pipeline: safe scalar
// conversion, division name canonicalization, filename-based loan type
// classification, per-row normalization with derived repayment fields, and
// the aggregation engine that folds raw loan rows into per-employee
// summaries.
//
// The pipeline is deliberately forgiving: malformed scalars degrade to safe
// defaults, unreadable files contribute zero rows, and an unexpected failure
// inside a whole aggregation run yields an empty result instead of an error.
// Diagnostics go to the structured log, not to the caller.
package dataprocessing
