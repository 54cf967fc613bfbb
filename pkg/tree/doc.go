// Package tree holds an imported directory tree as an arena.
//
// Nodes live in a slice and reference each other by index; callers address
// them by NodeID, which stays stable across Clone and Filter. A Tree is not
// safe for concurrent mutation. Derived trees are produced by cloning first,
// so a published tree is never modified in place by the engine.
//
// File content has two states. Unhydrated carries only the source reference
// needed to read the file later; Hydrated carries the text. Code that needs
// text must type-switch on Content, which keeps unread files unread.
package tree
