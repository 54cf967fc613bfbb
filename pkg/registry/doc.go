// Package registry provides a generic, ordered, thread-safe registry keyed by
// string id. The catalog keeps one registry per entity kind; insertion order
// is preserved so listings and persisted state stay stable.
package registry
