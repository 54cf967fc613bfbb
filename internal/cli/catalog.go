package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dirx/pkg/catalog"
	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/paths"
	"github.com/arthur-debert/dirx/pkg/types"
)

var catalogTypes = []string{"matches", "rules", "rulesets", "operations", "macros"}

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Short:   MsgCatalogShort,
		GroupID: "catalog",
	}
	cmd.AddCommand(newCatalogListCmd(a))
	cmd.AddCommand(newCatalogShowCmd(a))
	cmd.AddCommand(newCatalogSelectCmd(a))
	cmd.AddCommand(newCatalogCopyCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: MsgCatalogReset,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session().ResetToDefaults(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.render.Success(MsgCatalogResetDone))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: MsgCatalogPath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), paths.CatalogPath())
			return nil
		},
	})
	return cmd
}

// parseKind accepts rule kinds with either separator.
func parseKind(s string) (types.RuleKind, error) {
	kind := types.RuleKind(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
	switch kind {
	case types.RuleImport, types.RuleCompression, types.RuleLineLimit:
		return kind, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown rule kind %q (want import, compression or line_limit)", s)
}

func newCatalogListCmd(a *app) *cobra.Command {
	var kindArg string

	cmd := &cobra.Command{
		Use:       "list <type>",
		Short:     MsgCatalogList,
		Args:      cobra.ExactArgs(1),
		ValidArgs: catalogTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind types.RuleKind
			if kindArg != "" {
				var err error
				if kind, err = parseKind(kindArg); err != nil {
					return err
				}
			}

			c := a.session().Catalog()
			entries, headers, rows, err := catalogRows(c, args[0], kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.json() {
				return writeJSON(out, entries)
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, a.render.Muted(MsgNoEntries))
				return nil
			}
			table, err := a.render.Table(headers, rows)
			if err != nil {
				return err
			}
			fmt.Fprint(out, table)
			return nil
		},
	}
	cmd.Flags().StringVar(&kindArg, "kind", "", MsgFlagKind)
	return cmd
}

// catalogRows returns the entries of one catalog type along with a table
// view of them. kind filters rules and rulesets when set.
func catalogRows(c *catalog.Catalog, typ string, kind types.RuleKind) (any, []string, [][]string, error) {
	var rows [][]string
	switch typ {
	case "matches":
		list := c.Matches()
		for _, m := range list {
			var values []string
			for _, cond := range m.Conditions {
				values = append(values, cond.Value)
			}
			rows = append(rows, []string{m.ID, m.Name, string(m.Target), string(m.Mode), truncate(strings.Join(values, " "), 48)})
		}
		return list, []string{"ID", "NAME", "TARGET", "MODE", "VALUES"}, rows, nil

	case "rules":
		list := c.Rules()
		if kind != "" {
			list = c.RulesOfKind(kind)
		}
		for _, r := range list {
			rows = append(rows, []string{r.ID, r.Name, string(r.Kind()), actionSummary(r.Action), strings.Join(r.MatchRefs, " ")})
		}
		return list, []string{"ID", "NAME", "KIND", "ACTION", "MATCHES"}, rows, nil

	case "rulesets":
		list := c.Rulesets()
		if kind != "" {
			list = c.RulesetsOfKind(kind)
		}
		sel := c.Selection()
		for _, rs := range list {
			mark := ""
			if sel.Get(rs.Kind) == rs.ID {
				mark = "*"
			}
			rows = append(rows, []string{mark, rs.ID, rs.Name, string(rs.Kind), strconv.Itoa(len(rs.Instances))})
		}
		return list, []string{"", "ID", "NAME", "KIND", "RULES"}, rows, nil

	case "operations":
		list := c.Operations()
		for _, op := range list {
			rows = append(rows, []string{op.ID, op.Name, string(op.Target), string(op.Action), strings.Join(op.MatchRefs, " ")})
		}
		return list, []string{"ID", "NAME", "TARGET", "ACTION", "MATCHES"}, rows, nil

	case "macros":
		list := c.Macros()
		for _, m := range list {
			rows = append(rows, []string{m.ID, m.Name, strconv.Itoa(len(m.Instances)), m.Description})
		}
		return list, []string{"ID", "NAME", "OPERATIONS", "DESCRIPTION"}, rows, nil
	}
	return nil, nil, nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownType, typ)
}

func actionSummary(action types.RuleAction) string {
	switch act := action.(type) {
	case types.ImportAction:
		return string(act)
	case types.CompressionFlags:
		var flags []string
		if act.RemoveEmptyLines {
			flags = append(flags, "empty lines")
		}
		if act.RemoveComments {
			flags = append(flags, "comments")
		}
		if act.Minify {
			flags = append(flags, "minify")
		}
		return "remove " + strings.Join(flags, ", ")
	case types.LineLimit:
		return act.Summary()
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// lookupEntry finds an id in any catalog registry.
func lookupEntry(c *catalog.Catalog, id string) (any, bool) {
	if m, ok := c.Match(id); ok {
		return m, true
	}
	if r, ok := c.Rule(id); ok {
		return r, true
	}
	if rs, ok := c.Ruleset(id); ok {
		return rs, true
	}
	if op, ok := c.Operation(id); ok {
		return op, true
	}
	if m, ok := c.Macro(id); ok {
		return m, true
	}
	return nil, false
}

func newCatalogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: MsgCatalogShow,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := lookupEntry(a.session().Catalog(), args[0])
			if !ok {
				return errors.Newf(errors.ErrNotFound, MsgErrEntryMissing, args[0])
			}
			out := cmd.OutOrStdout()
			if a.json() {
				return writeJSON(out, entry)
			}

			// round-trip through JSON so YAML keys follow the JSON names
			data, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			var generic any
			if err := json.Unmarshal(data, &generic); err != nil {
				return err
			}
			text, err := yaml.Marshal(generic)
			if err != nil {
				return err
			}
			_, err = out.Write(text)
			return err
		},
	}
}

func newCatalogSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <kind> <ruleset-id>",
		Short: MsgCatalogSelect,
		Long:  "Select the active ruleset of a kind. An empty id selects none.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			s := a.session()
			if err := s.Catalog().SelectRuleset(kind, args[1]); err != nil {
				return err
			}
			if err := s.SaveCatalog(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.render.Success(fmt.Sprintf(MsgRulesetSelected, kind, args[1])))
			return nil
		},
	}
}

func newCatalogCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "copy <ruleset|macro> <id>",
		Short:     MsgCatalogCopy,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"ruleset", "macro"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session()
			var newID string
			switch args[0] {
			case "ruleset":
				rs, err := s.Catalog().CopyRuleset(args[1])
				if err != nil {
					return err
				}
				newID = rs.ID
			case "macro":
				m, err := s.Catalog().CopyMacro(args[1])
				if err != nil {
					return err
				}
				newID = m.ID
			default:
				return errors.Newf(errors.ErrInvalidInput, "cannot copy %q (want ruleset or macro)", args[0])
			}
			if err := s.SaveCatalog(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.render.Success(fmt.Sprintf(MsgCopied, newID)))
			return nil
		},
	}
}
