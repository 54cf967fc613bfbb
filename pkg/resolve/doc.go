// Package resolve applies rulesets to trees and nodes.
//
// Import rulesets prune a raw tree. Every node inherits its parent's
// decision (the roots start included) and the first enabled rule, by
// ascending priority, whose matches hit the node and whose action applies to
// the node's kind overrides it. Files survive when included. Directories
// survive when included or when any descendant survives, so paths to nested
// inclusions are never cut.
//
// Compression rulesets are cumulative: the flags of every matching rule are
// ORed together. Line-limit rulesets are first-match. Per-file overrides
// take precedence over both.
package resolve
