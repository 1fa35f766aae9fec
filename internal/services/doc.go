// Package services implements the business logic layer between the HTTP
// handlers and the data pipeline. The loan service shapes the per-run
// aggregation output into filtered listings, per-employee statements and
// dashboard figures; it holds no state, so every call reflects the current
// contents of the upload directory.
package services
