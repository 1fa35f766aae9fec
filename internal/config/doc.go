// Package config loads the application configuration from environment
// variables (prefix KOPKAR) layered over an optional YAML file, resolves
// the data directories and validates the result.
package config
