// Package cli wires the dirx command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirx/internal/version"
	"github.com/arthur-debert/dirx/pkg/config"
	"github.com/arthur-debert/dirx/pkg/logging"
	"github.com/arthur-debert/dirx/pkg/paths"
	"github.com/arthur-debert/dirx/pkg/session"
	"github.com/arthur-debert/dirx/pkg/store"
	"github.com/arthur-debert/dirx/pkg/style"
	"github.com/arthur-debert/dirx/pkg/topics"
)

// app carries what every command needs once flags are parsed.
type app struct {
	fs afero.Fs

	verbosity  int
	configPath string
	formatArg  string

	cfg    *config.Config
	format style.Format
	render *style.Renderer
}

// setup loads configuration and prepares logging and output styling.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	logging.Setup(logging.Options{
		Verbosity:   a.verbosity,
		FileEnabled: a.cfg.Logging.FileEnabled,
		MaxSizeMB:   a.cfg.Logging.MaxSizeMB,
		MaxBackups:  a.cfg.Logging.MaxBackups,
		MaxAgeDays:  a.cfg.Logging.MaxAgeDays,
		Console:     cmd.ErrOrStderr(),
	})

	f, err := style.ParseFormat(a.formatArg)
	if err != nil {
		return err
	}
	a.format = f.Resolve(cmd.OutOrStdout())
	a.render = style.NewRenderer(a.format)
	if a.render.Plain() {
		pterm.DisableStyling()
	} else {
		pterm.EnableStyling()
	}

	logger := logging.WithFields(map[string]interface{}{
		"command": cmd.CommandPath(),
		"format":  a.format.String(),
	})
	logger.Debug().Msg("Command started")
	return nil
}

// session opens a session over the persisted catalog.
func (a *app) session() *session.Session {
	return session.New(session.Options{
		Config: *a.cfg,
		Store:  store.New(a.fs, paths.CatalogPath()),
	})
}

func (a *app) json() bool { return a.format == style.FormatJSON }

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	initTemplateFormatting()
	a := &app{fs: fs}

	rootCmd := &cobra.Command{
		Use:     "dirx",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.formatArg, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "catalog", Title: "CATALOG:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newTreeCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newCatalogCmd(a))
	rootCmd.AddCommand(newMatchCmd(a))
	rootCmd.AddCommand(newMacroCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	renderer := topics.Renderer(topics.PlainRenderer{})
	if isatty.IsTerminal(os.Stdout.Fd()) {
		renderer = topics.NewGlamourRenderer()
	}
	if m, err := topics.Load(topics.Builtin(), topics.Options{Renderer: renderer}); err == nil {
		m.Install(rootCmd)
	} else {
		log.Warn().Err(err).Msg("help topics unavailable")
	}

	return rootCmd
}

// formatBold returns s in bold when stdout is a terminal
func formatBold(s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}
