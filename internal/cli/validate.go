package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/eddy/internal/catalog"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Validate a catalog file",
		Long: `Check a YAML catalog file against the catalog schema and rules:
well-formed queries, valid column roles, unique names, declared row
bounds, and the {source} placeholder in every text variant.

Exit code 0 means the catalog is runnable; 1 means it is not.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateCatalog(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func validateCatalog(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	queries, err := catalog.Load(path)
	if err != nil {
		code := "CATALOG_INVALID"
		var cerr *catalog.Error
		if errors.As(err, &cerr) {
			code = cerr.Code
		}
		_ = f.Error(code, err.Error())
		return WrapExitError(ExitFailure, "catalog is invalid", err)
	}

	return f.Success(fmt.Sprintf("catalog ok: %d queries", len(queries)))
}
