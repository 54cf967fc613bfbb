// Package types defines the catalog data model shared by every dirx package:
// matches, rules, rulesets, operations and macros.
//
// Rule payloads are a closed set of RuleAction implementations, so code that
// dispatches on a rule's kind uses a type switch instead of string checks.
package types
