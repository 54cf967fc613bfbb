package cli

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/matching"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

func newMatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "match",
		Short:   MsgMatchShort,
		GroupID: "catalog",
	}
	cmd.AddCommand(newMatchTestCmd(a))
	return cmd
}

type matchResult struct {
	Path      string `json:"path"`
	Matched   bool   `json:"matched"`
	Condition string `json:"condition,omitempty"`
}

func newMatchTestCmd(a *app) *cobra.Command {
	var (
		id     string
		target string
		mode   string
		values []string
	)

	cmd := &cobra.Command{
		Use:   "test <path>...",
		Short: MsgMatchTest,
		Long: `Test a comparison against names or paths without touching the catalog.

Either name a catalog match with --id, or describe one with --mode and --value.
Arguments are node paths; the last segment is the name.`,
		Example: `  dirx match test --mode suffix_exact --value .lock package-lock.json yarn.lock
  dirx match test --id m-node-modules-folder --target folder web/node_modules`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session()
			m := s.Matcher()

			var match types.Match
			if id != "" {
				found, ok := s.Catalog().Match(id)
				if !ok {
					return errors.Newf(errors.ErrNotFound, MsgErrEntryMissing, id)
				}
				match = found
			} else {
				match = types.Match{
					ID:     "cli",
					Target: types.TargetKind(target),
					Mode:   types.ComparisonMode(mode),
				}
				for i, v := range values {
					match.Conditions = append(match.Conditions, types.Condition{ID: fmt.Sprintf("c%d", i+1), Value: v})
				}
			}
			if err := m.Validate(match); err != nil {
				return err
			}

			results := testPaths(m, match, args)
			out := cmd.OutOrStdout()
			if a.json() {
				return writeJSON(out, results)
			}
			for _, r := range results {
				if r.Matched {
					fmt.Fprintf(out, "%s  %s (%s)\n", a.render.Success(MsgMatchYes), r.Path, r.Condition)
				} else {
					fmt.Fprintf(out, "%s  %s\n", a.render.Error(MsgMatchNo), r.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Catalog match to test")
	cmd.Flags().StringVar(&target, "target", string(types.TargetFile), MsgFlagTarget)
	cmd.Flags().StringVar(&mode, "mode", string(types.NameWildcard), MsgFlagCompare)
	cmd.Flags().StringArrayVar(&values, "value", nil, MsgFlagValue)
	return cmd
}

// testPaths evaluates match against synthetic nodes of the match's target kind.
func testPaths(m *matching.Matcher, match types.Match, paths []string) []matchResult {
	kind := types.NodeFile
	if match.Target == types.TargetFolder {
		kind = types.NodeDirectory
	}

	results := make([]matchResult, 0, len(paths))
	for _, p := range paths {
		node := tree.Node{ID: tree.NodeID(p), Name: path.Base(p), Path: p, Kind: kind}
		cond, ok := m.MatchingCondition(node, match)
		results = append(results, matchResult{Path: p, Matched: ok, Condition: cond.Value})
	}
	return results
}
