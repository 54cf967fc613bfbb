package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Curate a directory tree into a single text export"
	MsgTreeShort       = "Import a directory and print the pruned tree"
	MsgExportShort     = "Export the selected files of a directory"
	MsgCatalogShort    = "Inspect and manage the rule catalog"
	MsgCatalogList     = "List catalog entries of one type"
	MsgCatalogShow     = "Print one catalog entry"
	MsgCatalogSelect   = "Select the active ruleset of a kind"
	MsgCatalogCopy     = "Duplicate a ruleset or macro"
	MsgCatalogReset    = "Restore the built-in catalog"
	MsgCatalogPath     = "Print where the catalog is stored"
	MsgMatchShort      = "Work with matches"
	MsgMatchTest       = "Test a comparison against names or paths"
	MsgMacroShort      = "Work with macros"
	MsgMacroRun        = "Preview the files a macro selects"
	MsgConfigShort     = "Inspect and create the configuration file"
	MsgConfigInit      = "Write a commented configuration template"
	MsgConfigShow      = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgImported         = "Imported %d of %d entries (%d loaded, %d skipped, %d unreadable)"
	MsgMacroApplied     = "Ran %s: %d operations applied, %d skipped, %d files changed"
	MsgSelectedCount    = "%d files selected"
	MsgExportWritten    = "Wrote %s"
	MsgExportCopied     = "Copied %s to the clipboard"
	MsgRulesetSelected  = "Selected %s ruleset %s"
	MsgCopied           = "Created %s"
	MsgCatalogResetDone = "Catalog restored to defaults"
	MsgConfigWritten    = "Wrote %s"
	MsgMatchYes         = "match"
	MsgMatchNo          = "no match"
	MsgNoEntries        = "No entries."

	// Error messages
	MsgErrConfigExists = "%s already exists, use --force to overwrite"
	MsgErrUnknownType  = "unknown catalog type %q (want matches, rules, rulesets, operations or macros)"
	MsgErrUnknownSink  = "unknown destination %q (want file, stdout or clipboard)"
	MsgErrUnknownMode  = "unknown export mode %q (want merged, tree or separate)"
	MsgErrEntryMissing = "no catalog entry with id %q"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Configuration file (default is the dirx config dir)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagFixture     = "Read the tree from a YAML fixture instead of the disk"
	MsgFlagRuleset     = "Import ruleset to use instead of the selected one"
	MsgFlagMacro       = "Macro to run before printing or exporting"
	MsgFlagExplain     = "Print import decisions for pruned entries"
	MsgFlagAll         = "With --explain, list decisions for every entry"
	MsgFlagMode        = "Export mode: merged, tree or separate"
	MsgFlagTo          = "Destination: file, stdout or clipboard"
	MsgFlagOutDir      = "Directory for file exports"
	MsgFlagSelect      = "Select a file by node path (repeatable)"
	MsgFlagSelectAll   = "Select every imported file"
	MsgFlagCompression = "Compression ruleset id (overrides the selected one)"
	MsgFlagLineLimit   = "Line-limit ruleset id (overrides the selected one)"
	MsgFlagTree        = "Append the directory tree to merged exports"
	MsgFlagKind        = "Only list entries of this rule kind"
	MsgFlagTarget      = "Node kind to test: file or folder"
	MsgFlagCompare     = "Comparison mode, see 'dirx help matching'"
	MsgFlagValue       = "Value to compare with (repeatable)"
	MsgFlagForce       = "Overwrite an existing file"
	MsgFlagManDir      = "Directory to write man pages into"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/tree-long.txt
	msgTreeLongRaw string
	MsgTreeLong    = strings.TrimSpace(msgTreeLongRaw)

	//go:embed msgs/tree-example.txt
	msgTreeExampleRaw string
	MsgTreeExample    = strings.TrimRight(msgTreeExampleRaw, "\n")

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimRight(msgExportExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
