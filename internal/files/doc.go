// Package files handles the upload directory: discovery of loan data files
// for the aggregation engine and lifecycle management of uploaded files
// (save, collision renaming, reset).
package files
