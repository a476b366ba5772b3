package report

import (
	"fmt"
	"io"

	"github.com/roach88/eddy/internal/table"
)

// DefaultCategoryCap bounds the number of bars on a count plot before the
// long tail collapses into the "other" bucket.
const DefaultCategoryCap = 20

// Artifact is one planned report output: a deterministic kind plus a
// deferred render function. Planning an artifact does no work; rendering
// happens when the writer streams Render into the destination file, so a
// render failure is naturally scoped to its one artifact.
type Artifact struct {
	// Query is the catalog query this artifact belongs to.
	Query string

	// Kind names the artifact within its query, e.g. "summary",
	// "hist_total_revenue", "correlation".
	Kind string

	// Ext is the file extension without the dot: "txt" or "png".
	Ext string

	// Render writes the artifact's content.
	Render func(w io.Writer) error
}

// Options tunes report planning.
type Options struct {
	// CategoryCap caps count-plot categories. Zero means
	// DefaultCategoryCap; negative disables capping.
	CategoryCap int
}

func (o Options) categoryCap() int {
	if o.CategoryCap == 0 {
		return DefaultCategoryCap
	}
	return o.CategoryCap
}

// Plan selects the report strategies for one classified table and returns
// the artifact descriptors in a fixed order: the summary first, then the
// per-column plots in result-set column order, then the correlation
// heatmap. The plan for a given table and role mapping is deterministic.
func Plan(t *table.Table, roles map[string]table.Role, queryName string, opts Options) []Artifact {
	artifacts := []Artifact{{
		Query: queryName,
		Kind:  "summary",
		Ext:   "txt",
		Render: func(w io.Writer) error {
			return writeSummary(w, t, roles, queryName)
		},
	}}

	for _, col := range t.Columns {
		switch roles[col] {
		case table.RoleNumeric:
			artifacts = append(artifacts, histArtifact(t, col, queryName), boxArtifact(t, col, queryName))
		case table.RoleCategorical:
			artifacts = append(artifacts, countsArtifact(t, col, queryName, opts.categoryCap()))
		}
		// Temporal columns appear in the summary only; identifier and
		// unknown columns are skipped.
	}

	if numeric := columnsWithRole(t, roles, table.RoleNumeric); len(numeric) >= 2 {
		kind := "correlation"
		artifacts = append(artifacts, Artifact{
			Query: queryName,
			Kind:  kind,
			Ext:   "png",
			Render: func(w io.Writer) error {
				return writeCorrelationHeatmap(w, t, numeric, queryName, kind)
			},
		})
	}

	return artifacts
}

func histArtifact(t *table.Table, col, queryName string) Artifact {
	kind := fmt.Sprintf("hist_%s", col)
	return Artifact{
		Query: queryName,
		Kind:  kind,
		Ext:   "png",
		Render: func(w io.Writer) error {
			return writeHistogram(w, t, col, queryName, kind)
		},
	}
}

func boxArtifact(t *table.Table, col, queryName string) Artifact {
	kind := fmt.Sprintf("box_%s", col)
	return Artifact{
		Query: queryName,
		Kind:  kind,
		Ext:   "png",
		Render: func(w io.Writer) error {
			return writeBoxplot(w, t, col, queryName, kind)
		},
	}
}

func countsArtifact(t *table.Table, col, queryName string, categoryCap int) Artifact {
	kind := fmt.Sprintf("counts_%s", col)
	return Artifact{
		Query: queryName,
		Kind:  kind,
		Ext:   "png",
		Render: func(w io.Writer) error {
			return writeCountPlot(w, t, col, queryName, kind, categoryCap)
		},
	}
}
