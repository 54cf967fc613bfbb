// Package store persists the catalog between runs as a single JSON document,
// by default at paths.CatalogPath(). All file access goes through afero so
// tests run against an in-memory filesystem.
package store
