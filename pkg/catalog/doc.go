// Package catalog holds the user-editable definitions that drive dirx:
// matches, rules, rulesets, operations and macros, plus the pointers to the
// active ruleset of each kind.
//
// Every mutation keeps the catalog referentially tidy. Deleting a match
// strips it from the rules and operations that reference it, deleting a
// rule removes its ruleset instances, deleting an operation removes its macro
// instances and deleting a selected ruleset moves the selection back to the
// built-in default. Lookups tolerate dangling references anyway, so a
// catalog restored from older state never fails at evaluation time.
//
// The built-in catalog is described in embedded/defaults.yaml and loaded by
// Default.
package catalog
