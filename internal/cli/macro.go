package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMacroCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "macro",
		Short:   MsgMacroShort,
		GroupID: "catalog",
	}
	cmd.AddCommand(newMacroRunCmd(a))
	return cmd
}

func newMacroRunCmd(a *app) *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:     "run <macro-id> [dir]",
		Short:   MsgMacroRun,
		Example: "  dirx macro run macro-common-code ./project",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.macro = args[0]
			s, err := a.load(cmd.Context(), cmd, in, args[1:])
			if err != nil {
				return err
			}

			files := s.Tree().SelectedFiles()
			out := cmd.OutOrStdout()
			if a.json() {
				paths := make([]string, 0, len(files))
				for _, n := range files {
					paths = append(paths, n.Path)
				}
				return writeJSON(out, paths)
			}
			for _, n := range files {
				fmt.Fprintln(out, n.Path)
			}
			fmt.Fprintln(out, a.render.Muted(fmt.Sprintf(MsgSelectedCount, len(files))))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.fixture, "fixture", "", MsgFlagFixture)
	cmd.Flags().StringVar(&in.ruleset, "ruleset", "", MsgFlagRuleset)
	return cmd
}
