// Package readers provides the record source adapters that turn one input
// file into a sequence of raw key-value records. Two formats are supported:
// legacy dBASE (.dbf) tables and spreadsheet (.xlsx) exports.
//
// Both adapters degrade rather than fail: a corrupt or unreadable file
// yields an empty record set and a log entry, so one bad upload never
// aborts processing of the others.
package readers
