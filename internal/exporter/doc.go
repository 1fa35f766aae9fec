// Package exporter renders employee loan summaries into downloadable
// report files. All formats share one fixed, ordered set of eleven report
// columns; only the rendering differs between CSV, XLSX and PDF.
package exporter
