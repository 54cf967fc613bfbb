package types

import "sort"

// OperationTarget selects what an operation's matches are tested against.
type OperationTarget string

const (
	// TargetMatchedFile tests files directly
	TargetMatchedFile OperationTarget = "matched_file"
	// TargetMatchedFolderContents tests folders and acts on every file below a match
	TargetMatchedFolderContents OperationTarget = "matched_folder_contents"
)

// OperationAction is the selection change an operation performs.
type OperationAction string

const (
	Check       OperationAction = "check"
	Uncheck     OperationAction = "uncheck"
	SelectAll   OperationAction = "select_all"
	DeselectAll OperationAction = "deselect_all"
	Invert      OperationAction = "invert"
)

// ValidFor reports whether the action is allowed for the target.
func (a OperationAction) ValidFor(t OperationTarget) bool {
	switch t {
	case TargetMatchedFile:
		return a == Check || a == Uncheck
	case TargetMatchedFolderContents:
		return a == SelectAll || a == DeselectAll || a == Invert
	}
	return false
}

// Operation is a named selection-mutating action scoped to Matches.
type Operation struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Target      OperationTarget `json:"target"`
	MatchRefs   []string        `json:"matchRefs"`
	Action      OperationAction `json:"action"`
}

// Clone returns a copy that shares no slices with o.
func (o Operation) Clone() Operation {
	o.MatchRefs = append([]string(nil), o.MatchRefs...)
	return o
}

// OperationInstance places an Operation inside a Macro. Lower sequence runs first.
type OperationInstance struct {
	ID           string `json:"id"`
	OperationRef string `json:"operationRef"`
	Sequence     int    `json:"sequence"`
	Enabled      bool   `json:"enabled"`
}

// Macro is an ordered batch of operations.
type Macro struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Instances   []OperationInstance `json:"instances"`
}

// Ordered returns the enabled instances sorted by ascending sequence.
func (m Macro) Ordered() []OperationInstance {
	out := make([]OperationInstance, 0, len(m.Instances))
	for _, inst := range m.Instances {
		if inst.Enabled {
			out = append(out, inst)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// Clone returns a copy that shares no slices with m.
func (m Macro) Clone() Macro {
	m.Instances = append([]OperationInstance(nil), m.Instances...)
	return m
}
