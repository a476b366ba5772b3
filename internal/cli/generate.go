package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/eddy/internal/dataset"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Output string
	Rows   int
	Seed   int64
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic transactions dataset",
		Long: `Generate the synthetic transactions dataset the built-in catalog
analyzes. The output format follows the file extension: .parquet for the
duckdb engine, .db/.sqlite for the sqlite engine. Generation is
deterministic for a given seed.

Example:
  eddy generate --out transactions.parquet --rows 10000000
  eddy generate --out transactions.db --rows 100000 --seed 7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Output, "out", "", "dataset path to create (.parquet or .db)")
	cmd.Flags().IntVar(&opts.Rows, "rows", 1000000, "number of rows to generate")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 42, "random seed")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	if opts.Rows <= 0 {
		return NewExitError(ExitCommandError, "--rows must be positive")
	}

	slog.Info("generating dataset", "path", opts.Output, "rows", opts.Rows, "seed", opts.Seed)
	if err := dataset.Generate(opts.Output, opts.Rows, opts.Seed); err != nil {
		return WrapExitError(ExitCommandError, "dataset generation failed", err)
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(map[string]any{"path": opts.Output, "rows": opts.Rows, "seed": opts.Seed})
	}

	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(cmd.OutOrStdout(), "generated %s with %d rows (seed %d)\n", opts.Output, opts.Rows, opts.Seed)
	return err
}
