package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirx/pkg/config"
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/paths"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}
	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShow,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.json() {
				return writeJSON(cmd.OutOrStdout(), a.cfg)
			}
			text, err := config.Dump(a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	})
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: MsgConfigInit,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := paths.ConfigFilePath()
			if len(args) > 0 {
				target = args[0]
			}

			exists, err := afero.Exists(a.fs, target)
			if err != nil {
				return err
			}
			if exists && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, target)
			}

			if err := a.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, "cannot create %s", filepath.Dir(target))
			}
			if err := afero.WriteFile(a.fs, target, []byte(config.GenerateConfigContent()), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, "cannot write %s", target)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.render.Success(fmt.Sprintf(MsgConfigWritten, target)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
