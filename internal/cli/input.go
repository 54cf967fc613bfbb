package cli

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/session"
	"github.com/arthur-debert/dirx/pkg/source"
	"github.com/arthur-debert/dirx/pkg/types"
)

// inputFlags selects where a command reads its tree from.
type inputFlags struct {
	fixture string
	ruleset string
	macro   string
}

func (f *inputFlags) register(cmd *cobra.Command, defaultMacro string) {
	cmd.Flags().StringVar(&f.fixture, "fixture", "", MsgFlagFixture)
	cmd.Flags().StringVar(&f.ruleset, "ruleset", "", MsgFlagRuleset)
	cmd.Flags().StringVar(&f.macro, "macro", defaultMacro, MsgFlagMacro)
}

// source returns the fixture source when --fixture is set, otherwise the
// directory named by args (default ".").
func (a *app) source(f inputFlags, args []string) (source.Source, error) {
	if f.fixture != "" {
		data, err := afero.ReadFile(a.fs, f.fixture)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSourceRead, "cannot read fixture %s", f.fixture)
		}
		return source.ParseFixture(data)
	}
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	return source.NewFS(a.fs, root), nil
}

// load imports the input into a fresh session and runs the macro, if any.
func (a *app) load(ctx context.Context, cmd *cobra.Command, f inputFlags, args []string) (*session.Session, error) {
	src, err := a.source(f, args)
	if err != nil {
		return nil, err
	}

	s := a.session()
	if f.ruleset != "" {
		if err := s.Catalog().SelectRuleset(types.RuleImport, f.ruleset); err != nil {
			return nil, err
		}
	}

	report, err := s.Import(ctx, src)
	if err != nil {
		return nil, err
	}
	if !a.json() {
		st := report.Hydrated
		cmd.PrintErrln(a.render.Muted(fmt.Sprintf(MsgImported, report.Kept, report.Raw, st.Loaded, st.NoLines, st.Failed)))
	}

	if f.macro != "" {
		mr, err := s.ExecuteMacro(f.macro)
		if err != nil {
			return nil, err
		}
		if !a.json() {
			cmd.PrintErrln(a.render.Muted(fmt.Sprintf(MsgMacroApplied, f.macro, mr.Applied, mr.Skipped, mr.Changed)))
		}
	}
	return s, nil
}
