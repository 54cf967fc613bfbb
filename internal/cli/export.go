package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/export"
	"github.com/arthur-debert/dirx/pkg/session"
	"github.com/arthur-debert/dirx/pkg/tree"
	"github.com/arthur-debert/dirx/pkg/types"
)

const (
	modeMerged   = "merged"
	modeTree     = "tree"
	modeSeparate = "separate"

	sinkFile      = "file"
	sinkStdout    = "stdout"
	sinkClipboard = "clipboard"
)

type exportFlags struct {
	mode        string
	to          string
	outDir      string
	selects     []string
	all         bool
	compression string
	lineLimit   string
	includeTree bool
}

func newExportCmd(a *app) *cobra.Command {
	var (
		in inputFlags
		f  exportFlags
	)

	cmd := &cobra.Command{
		Use:     "export [dir]",
		Short:   MsgExportShort,
		Long:    MsgExportLong,
		Example: MsgExportExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := a.sink(cmd, f)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("include-tree") {
				a.cfg.Export.IncludeTree = f.includeTree
			}

			s, err := a.load(cmd.Context(), cmd, in, args)
			if err != nil {
				return err
			}
			if err := applySelection(s, f); err != nil {
				return err
			}
			if err := overrideRulesets(cmd, s, f); err != nil {
				return err
			}

			docs, err := exportDocs(s, f.mode)
			if err != nil {
				return err
			}
			for _, doc := range docs {
				if err := sink.Write(cmd.Context(), doc); err != nil {
					return err
				}
				a.reportWrite(cmd, sink, doc)
			}
			return nil
		},
	}

	in.register(cmd, "macro-common-code")
	cmd.Flags().StringVar(&f.mode, "mode", modeMerged, MsgFlagMode)
	cmd.Flags().StringVar(&f.to, "to", sinkFile, MsgFlagTo)
	cmd.Flags().StringVar(&f.outDir, "out-dir", ".", MsgFlagOutDir)
	cmd.Flags().StringArrayVar(&f.selects, "select", nil, MsgFlagSelect)
	cmd.Flags().BoolVar(&f.all, "all", false, MsgFlagSelectAll)
	cmd.Flags().StringVar(&f.compression, "compression", "", MsgFlagCompression)
	cmd.Flags().StringVar(&f.lineLimit, "line-limit", "", MsgFlagLineLimit)
	cmd.Flags().BoolVar(&f.includeTree, "include-tree", false, MsgFlagTree)
	return cmd
}

func (a *app) sink(cmd *cobra.Command, f exportFlags) (export.Sink, error) {
	switch f.to {
	case sinkFile:
		return export.NewFileSink(a.fs, f.outDir), nil
	case sinkStdout:
		return export.WriterSink{W: cmd.OutOrStdout()}, nil
	case sinkClipboard:
		if f.mode == modeSeparate {
			return nil, errors.New(errors.ErrInvalidInput, "separate exports cannot go to the clipboard")
		}
		return export.ClipboardSink{}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownSink, f.to)
	}
}

func (a *app) reportWrite(cmd *cobra.Command, sink export.Sink, doc export.Document) {
	switch s := sink.(type) {
	case *export.FileSink:
		cmd.PrintErrln(a.render.Success(fmt.Sprintf(MsgExportWritten, s.PathFor(doc))))
	case export.ClipboardSink:
		cmd.PrintErrln(a.render.Success(fmt.Sprintf(MsgExportCopied, doc.Name)))
	}
}

// applySelection adds --select and --all on top of the macro's selection.
func applySelection(s *session.Session, f exportFlags) error {
	if f.all {
		for _, root := range s.Tree().Roots() {
			if err := s.SelectAllIn(root, true); err != nil {
				return err
			}
		}
	}
	for _, id := range f.selects {
		if err := s.SetSelection(tree.NodeID(id), true); err != nil {
			return err
		}
	}
	return nil
}

// overrideRulesets selects the --compression and --line-limit rulesets for
// this run only; the catalog is not saved.
func overrideRulesets(cmd *cobra.Command, s *session.Session, f exportFlags) error {
	if cmd.Flags().Changed("compression") {
		if err := s.Catalog().SelectRuleset(types.RuleCompression, f.compression); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("line-limit") {
		if err := s.Catalog().SelectRuleset(types.RuleLineLimit, f.lineLimit); err != nil {
			return err
		}
	}
	return nil
}

func exportDocs(s *session.Session, mode string) ([]export.Document, error) {
	switch mode {
	case modeMerged:
		doc, err := s.ExportMerged()
		if err != nil {
			return nil, err
		}
		return []export.Document{doc}, nil
	case modeTree:
		doc, err := s.ExportTree()
		if err != nil {
			return nil, err
		}
		return []export.Document{doc}, nil
	case modeSeparate:
		return s.ExportSeparate()
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownMode, mode)
	}
}
