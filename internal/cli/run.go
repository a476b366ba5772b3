package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/eddy/internal/artifact"
	"github.com/roach88/eddy/internal/catalog"
	"github.com/roach88/eddy/internal/engine"
	"github.com/roach88/eddy/internal/pipeline"
	"github.com/roach88/eddy/internal/report"
)

// timeRounding keeps elapsed times readable in the text summary.
const timeRounding = 10 * time.Millisecond

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Input       string
	Output      string
	Engine      string
	Catalog     string
	CategoryCap int
	MaxRows     int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the EDA pipeline against a dataset",
		Long: `Run every catalog query against the dataset and write report artifacts.

Each reduction query executes inside the embedded engine; only its small
result table is materialized. One query's failure never aborts the run:
the final tally reports which analyses succeeded and which were skipped.

Example:
  eddy run --input transactions.parquet --out eda_report
  eddy run --input transactions.db --engine sqlite --catalog extra.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "path to the dataset (parquet or sqlite)")
	cmd.Flags().StringVar(&opts.Output, "out", "eda_report", "output directory for report artifacts")
	cmd.Flags().StringVar(&opts.Engine, "engine", engine.DriverDuckDB, "analytical engine (duckdb|sqlite)")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "YAML catalog file (default: built-in catalog)")
	cmd.Flags().IntVar(&opts.CategoryCap, "category-cap", report.DefaultCategoryCap, "max bars on a count plot before the long tail collapses into \"other\"")
	cmd.Flags().IntVar(&opts.MaxRows, "max-result-rows", engine.DefaultMaxResultRows, "hard safety cap on any query's result size")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runPipeline(opts *RunOptions, cmd *cobra.Command) error {
	queries, err := loadCatalog(opts.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	slog.Info("catalog ready", "queries", len(queries))

	slog.Info("opening engine", "driver", opts.Engine, "dataset", opts.Input)
	conn, err := engine.Open(engine.Config{
		Driver:        opts.Engine,
		Path:          opts.Input,
		MaxResultRows: opts.MaxRows,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open engine", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("error closing engine connection", "error", closeErr)
		}
	}()

	// Interrupt cancels the current engine call; the tally still reports
	// whatever completed before the signal.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &pipeline.Runner{
		Conn:    conn,
		Queries: queries,
		Writer:  &artifact.Writer{Root: opts.Output, Tag: conn.Tag()},
		Report:  report.Options{CategoryCap: opts.CategoryCap},
	}
	summary := runner.Run(ctx)

	if err := printSummary(cmd.OutOrStdout(), opts.Format, summary); err != nil {
		return WrapExitError(ExitCommandError, "failed to print summary", err)
	}

	// Failures are tolerated and logged; only total failure is an error
	// exit.
	if summary.AllFailed() {
		return NewExitError(ExitFailure, "all catalog queries failed")
	}
	return nil
}

// loadCatalog returns the catalog to run: a validated file, or built-in.
func loadCatalog(path string) ([]catalog.Query, error) {
	if path == "" {
		return catalog.Builtin(), nil
	}
	return catalog.Load(path)
}

// runReport is the JSON shape of a finished run.
type runReport struct {
	RunID     string        `json:"run_id"`
	Engine    string        `json:"engine"`
	ElapsedMS int64         `json:"elapsed_ms"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Queries   []queryReport `json:"queries"`
}

type queryReport struct {
	Name      string           `json:"name"`
	Status    string           `json:"status"`
	Stage     string           `json:"stage,omitempty"`
	Rows      int              `json:"rows"`
	Error     string           `json:"error,omitempty"`
	Artifacts []artifactReport `json:"artifacts,omitempty"`
}

type artifactReport struct {
	Kind  string `json:"kind"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

func buildRunReport(s *pipeline.Summary) runReport {
	r := runReport{
		RunID:     s.RunID,
		Engine:    s.Tag,
		ElapsedMS: s.Elapsed.Milliseconds(),
		Succeeded: s.SucceededCount(),
		Failed:    s.FailedCount(),
	}
	for _, q := range s.Results {
		qr := queryReport{Name: q.Name, Status: "ok", Rows: q.Rows}
		if !q.Succeeded() {
			qr.Status = "failed"
			qr.Stage = string(q.Stage)
		}
		if q.Err != nil {
			qr.Error = q.Err.Error()
		}
		for _, a := range q.Artifacts {
			ar := artifactReport{Kind: a.Kind, Path: a.Path}
			if a.Err != nil {
				ar.Error = a.Err.Error()
			}
			qr.Artifacts = append(qr.Artifacts, ar)
		}
		r.Queries = append(r.Queries, qr)
	}
	return r
}

func printSummary(w io.Writer, format string, s *pipeline.Summary) error {
	if format == "json" {
		f := &OutputFormatter{Format: format, Writer: w}
		return f.Success(buildRunReport(s))
	}

	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "run %s (%s) finished in %v: %d succeeded, %d failed\n",
		s.RunID, s.Tag, s.Elapsed.Round(timeRounding), s.SucceededCount(), s.FailedCount()); err != nil {
		return err
	}

	for _, q := range s.Results {
		if q.Succeeded() {
			ok, total := artifactCounts(q)
			if _, err := p.Fprintf(w, "  ok    %-24s %d rows, %d/%d artifacts\n", q.Name, q.Rows, ok, total); err != nil {
				return err
			}
			continue
		}
		reason := string(q.Stage)
		if q.Err != nil {
			reason = fmt.Sprintf("%s: %v", q.Stage, q.Err)
		}
		if _, err := p.Fprintf(w, "  FAIL  %-24s %s\n", q.Name, reason); err != nil {
			return err
		}
	}
	return nil
}

func artifactCounts(q pipeline.QueryResult) (ok, total int) {
	for _, a := range q.Artifacts {
		if a.Err == nil {
			ok++
		}
	}
	return ok, len(q.Artifacts)
}
