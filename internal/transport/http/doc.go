// Package http contains the chi HTTP handlers for the cooperative loan
// API: employee listings, statements, the dashboard, data file management
// and report exports. Handlers shape requests and responses only; all
// domain behavior lives in the services layer.
package http
