package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/eddy/internal/artifact"
	"github.com/roach88/eddy/internal/catalog"
	"github.com/roach88/eddy/internal/engine"
	"github.com/roach88/eddy/internal/report"
	"github.com/roach88/eddy/internal/table"
)

// Stage identifies where in the per-query state machine a failure occurred.
type Stage string

const (
	// StageExecute covers query execution against the engine.
	StageExecute Stage = "execute"

	// StageReport covers classification, planning and artifact writing.
	StageReport Stage = "report"
)

// ArtifactResult is the outcome of one planned artifact.
type ArtifactResult struct {
	Kind string
	Path string // empty when Err is set
	Err  error
}

// QueryResult is the outcome of one catalog query.
type QueryResult struct {
	Name      string
	Stage     Stage // stage of Err, meaningful only when Err is set
	Rows      int
	Artifacts []ArtifactResult
	Err       error
}

// Succeeded reports whether the query produced at least one artifact.
// Execution failure fails the query outright; report-stage failures fail
// it only when every artifact failed.
func (r QueryResult) Succeeded() bool {
	if r.Err != nil {
		return false
	}
	for _, a := range r.Artifacts {
		if a.Err == nil {
			return true
		}
	}
	return false
}

// Summary is the tally a finished run always carries, regardless of how
// many queries failed along the way.
type Summary struct {
	RunID   string
	Tag     string
	Started time.Time
	Elapsed time.Duration
	Results []QueryResult
}

// SucceededCount returns the number of successful queries.
func (s *Summary) SucceededCount() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// FailedCount returns the number of failed queries.
func (s *Summary) FailedCount() int {
	return len(s.Results) - s.SucceededCount()
}

// AllFailed reports total failure: zero successful queries. This is the
// only condition that warrants a non-zero process exit.
func (s *Summary) AllFailed() bool {
	return s.SucceededCount() == 0
}

// Runner executes the catalog against one engine connection and writes
// artifacts through one writer. Both are exclusively owned by the run for
// its duration; the caller opens the connection before Run and closes it
// after, on all paths.
type Runner struct {
	Conn    *engine.Conn
	Queries []catalog.Query
	Writer  *artifact.Writer
	Report  report.Options
	Logger  *slog.Logger
}

// Run processes every catalog query in order and returns the tally.
//
// Run never returns an error: every failure is caught at its stage,
// recorded against the query, and surfaced in the summary.
func (p *Runner) Run(ctx context.Context) *Summary {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Summary{
		RunID:   uuid.Must(uuid.NewV7()).String(),
		Tag:     p.Conn.Tag(),
		Started: time.Now(),
	}
	log.Info("run starting", "run_id", s.RunID, "engine", s.Tag, "queries", len(p.Queries))

	for _, q := range p.Queries {
		s.Results = append(s.Results, p.runQuery(ctx, log, q))
	}

	s.Elapsed = time.Since(s.Started)
	log.Info("run done",
		"run_id", s.RunID,
		"succeeded", s.SucceededCount(),
		"failed", s.FailedCount(),
		"elapsed", s.Elapsed)
	return s
}

func (p *Runner) runQuery(ctx context.Context, log *slog.Logger, q catalog.Query) QueryResult {
	result := QueryResult{Name: q.Name}

	log.Debug("executing query", "query", q.Name)
	tbl, err := p.Conn.Execute(ctx, q)
	if err != nil {
		log.Warn("query failed", "query", q.Name, "error", err)
		result.Stage = StageExecute
		result.Err = err
		return result
	}
	result.Rows = tbl.NumRows()
	log.Debug("query reduced", "query", q.Name, "rows", tbl.NumRows())

	roles := table.Classify(tbl, q.RoleHints())
	for _, a := range report.Plan(tbl, roles, q.Name, p.Report) {
		path, err := p.Writer.Write(a)
		if err != nil {
			log.Warn("artifact failed", "query", q.Name, "artifact", a.Kind, "error", err)
			result.Artifacts = append(result.Artifacts, ArtifactResult{Kind: a.Kind, Err: err})
			continue
		}
		result.Artifacts = append(result.Artifacts, ArtifactResult{Kind: a.Kind, Path: path})
	}

	if !result.Succeeded() {
		result.Stage = StageReport
	}
	return result
}
