package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

// nodeJSON is the machine-readable form of a tree node.
type nodeJSON struct {
	ID          string                  `json:"id"`
	Path        string                  `json:"path"`
	Kind        types.NodeKind          `json:"kind"`
	Selected    bool                    `json:"selected,omitempty"`
	Lines       int                     `json:"lines,omitempty"`
	Description string                  `json:"description,omitempty"`
	LineLimit   *types.LineLimit        `json:"lineLimit,omitempty"`
	Compression *types.CompressionFlags `json:"compression,omitempty"`
}

func treeJSON(t *tree.Tree) []nodeJSON {
	var out []nodeJSON
	t.Walk(func(n tree.Node, _ int) bool {
		out = append(out, nodeJSON{
			ID:          string(n.ID),
			Path:        n.Path,
			Kind:        n.Kind,
			Selected:    n.Selected,
			Lines:       n.TotalLines(),
			Description: n.DescriptionOverride,
			LineLimit:   n.LineLimitOverride,
			Compression: n.CompressionOverride,
		})
		return true
	})
	return out
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		in      inputFlags
		explain bool
		all     bool
	)

	cmd := &cobra.Command{
		Use:     "tree [dir]",
		Short:   MsgTreeShort,
		Long:    MsgTreeLong,
		Example: MsgTreeExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd.Context(), cmd, in, args)
			if err != nil {
				return err
			}
			t := s.Tree()
			out := cmd.OutOrStdout()

			if a.json() {
				return writeJSON(out, treeJSON(t))
			}

			fmt.Fprint(out, a.render.Tree(t))
			if in.macro != "" {
				fmt.Fprintln(out, a.render.Muted(fmt.Sprintf(MsgSelectedCount, len(t.SelectedFiles()))))
			}
			if explain {
				table, err := a.render.Decisions(s.Decisions(), !all)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, table)
			}
			return nil
		},
	}

	in.register(cmd, "")
	cmd.Flags().BoolVar(&explain, "explain", false, MsgFlagExplain)
	cmd.Flags().BoolVar(&all, "all", false, MsgFlagAll)
	return cmd
}
