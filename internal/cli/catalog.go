package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Catalog string
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the effective query catalog",
		Long: `List the queries the run command would execute, in execution order.

Without --catalog this shows the built-in catalog. New analytical
questions are added by appending entries to a catalog file; no pipeline
code changes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCatalog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "YAML catalog file (default: built-in catalog)")

	return cmd
}

// catalogEntry is the JSON shape of one listed query.
type catalogEntry struct {
	Name    string   `json:"name"`
	MaxRows int      `json:"max_rows"`
	Columns []string `json:"columns"`
}

func listCatalog(opts *CatalogOptions, cmd *cobra.Command) error {
	queries, err := loadCatalog(opts.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	if opts.Format == "json" {
		entries := make([]catalogEntry, 0, len(queries))
		for _, q := range queries {
			entries = append(entries, catalogEntry{Name: q.Name, MaxRows: q.MaxRows, Columns: q.ColumnNames()})
		}
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(entries)
	}

	out := cmd.OutOrStdout()
	for _, q := range queries {
		if _, err := fmt.Fprintf(out, "%-24s max_rows=%-7d columns: %s\n",
			q.Name, q.MaxRows, strings.Join(q.ColumnNames(), ", ")); err != nil {
			return err
		}
	}
	return nil
}
