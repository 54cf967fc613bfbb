package types

// NodeKind distinguishes files from directories in a tree.
type NodeKind string

const (
	NodeFile      NodeKind = "file"
	NodeDirectory NodeKind = "directory"
)

// TargetKind scopes a Match to folders or files.
type TargetKind string

const (
	TargetFolder TargetKind = "folder"
	TargetFile   TargetKind = "file"
)

// Accepts reports whether nodes of kind k can ever match this target.
func (t TargetKind) Accepts(k NodeKind) bool {
	switch t {
	case TargetFolder:
		return k == NodeDirectory
	case TargetFile:
		return k == NodeFile
	}
	return false
}

// ComparisonMode selects how a condition string is compared to a node.
type ComparisonMode string

const (
	// NameSubstring is a case-insensitive substring test on the node name
	NameSubstring ComparisonMode = "name_substring"
	// SuffixExact is a case-insensitive suffix test; a missing leading dot is added
	SuffixExact ComparisonMode = "suffix_exact"
	// NameWildcard is an anchored, case-insensitive * and ? glob on the node name
	NameWildcard ComparisonMode = "name_wildcard"
	// NameRegex is an unanchored regular expression on the node name
	NameRegex ComparisonMode = "name_regex"
	// PathWildcard is a glob on the full path where only ** crosses separators
	PathWildcard ComparisonMode = "path_wildcard"
	// PathRegex is an unanchored regular expression on the full path
	PathRegex ComparisonMode = "path_regex"
)

// ValidFor reports whether the mode is allowed for the target kind.
// Folders have no suffix mode.
func (m ComparisonMode) ValidFor(t TargetKind) bool {
	switch m {
	case NameSubstring, NameWildcard, NameRegex, PathWildcard, PathRegex:
		return t == TargetFolder || t == TargetFile
	case SuffixExact:
		return t == TargetFile
	}
	return false
}

// Condition is one pattern string of a Match.
type Condition struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Match is a named OR-group of conditions.
type Match struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Target      TargetKind     `json:"target"`
	Mode        ComparisonMode `json:"mode"`
	Conditions  []Condition    `json:"conditions"`
}

// Clone returns a copy that shares no slices with m.
func (m Match) Clone() Match {
	m.Conditions = append([]Condition(nil), m.Conditions...)
	return m
}
