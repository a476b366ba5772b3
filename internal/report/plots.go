package report

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/roach88/eddy/internal/table"
)

// Plot dimensions. Fixed so reruns produce structurally identical images.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
	histBins   = 30
)

// writePNG renders a finished plot into w as PNG.
func writePNG(w io.Writer, p *plot.Plot, artifact string) error {
	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return &ReportError{Code: ErrCodeRenderFailed, Artifact: artifact, Err: err}
	}
	if _, err := wt.WriteTo(w); err != nil {
		return &ReportError{Code: ErrCodeRenderFailed, Artifact: artifact, Err: err}
	}
	return nil
}

// writeHistogram renders a histogram of the column's non-null values.
func writeHistogram(w io.Writer, t *table.Table, col, queryName, artifact string) error {
	vals, _ := t.Float64s(col)
	if len(vals) == 0 {
		return &ReportError{Code: ErrCodeDegenerateData, Artifact: artifact, Err: fmt.Errorf("column %q has no non-null values", col)}
	}

	h, err := plotter.NewHist(plotter.Values(vals), histBins)
	if err != nil {
		return &ReportError{Code: ErrCodeRenderFailed, Artifact: artifact, Err: err}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Histogram of %s (%s)", col, queryName)
	p.X.Label.Text = col
	p.Y.Label.Text = "count"
	p.Add(h)

	return writePNG(w, p, artifact)
}

// writeBoxplot renders a boxplot of the column's non-null values.
func writeBoxplot(w io.Writer, t *table.Table, col, queryName, artifact string) error {
	vals, _ := t.Float64s(col)
	if len(vals) == 0 {
		return &ReportError{Code: ErrCodeDegenerateData, Artifact: artifact, Err: fmt.Errorf("column %q has no non-null values", col)}
	}

	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(vals))
	if err != nil {
		return &ReportError{Code: ErrCodeRenderFailed, Artifact: artifact, Err: err}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Boxplot of %s (%s)", col, queryName)
	p.Y.Label.Text = col
	p.NominalX(col)
	p.Add(b)

	return writePNG(w, p, artifact)
}

// writeCountPlot renders a horizontal bar chart of category frequencies,
// descending, with the long tail beyond categoryCap collapsed into the
// "other" bucket.
func writeCountPlot(w io.Writer, t *table.Table, col, queryName, artifact string, categoryCap int) error {
	counts := CapCategories(Frequencies(t, col), categoryCap)
	if len(counts) == 0 {
		return &ReportError{Code: ErrCodeDegenerateData, Artifact: artifact, Err: fmt.Errorf("column %q has no non-null values", col)}
	}

	// Reverse so the most frequent category draws at the top.
	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		j := len(counts) - 1 - i
		values[j] = float64(c.Count)
		labels[j] = c.Value
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return &ReportError{Code: ErrCodeRenderFailed, Artifact: artifact, Err: err}
	}
	bars.Horizontal = true

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Counts of %s (%s)", col, queryName)
	p.X.Label.Text = "count"
	p.Add(bars)
	p.NominalY(labels...)

	return writePNG(w, p, artifact)
}

// writeCorrelationHeatmap renders the pairwise correlation matrix over the
// given numeric columns. Rows containing a null in any of the columns are
// excluded; at least two complete rows are required.
func writeCorrelationHeatmap(w io.Writer, t *table.Table, cols []string, queryName, artifact string) error {
	data, ok := completeRows(t, cols)
	if !ok {
		return &ReportError{Code: ErrCodeDegenerateData, Artifact: artifact, Err: fmt.Errorf("fewer than two complete rows across %v", cols)}
	}

	corr := mat.NewSymDense(len(cols), nil)
	stat.CorrelationMatrix(corr, data, nil)

	grid := &corrGrid{m: corr}
	hm := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(255))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Correlation matrix (%s)", queryName)
	p.X.Tick.Marker = nameTicks(cols)
	p.Y.Tick.Marker = nameTicks(cols)
	p.Add(hm)

	return writePNG(w, p, artifact)
}

// completeRows builds the samples-by-variables matrix for correlation,
// dropping rows with a null in any listed column.
func completeRows(t *table.Table, cols []string) (*mat.Dense, bool) {
	var data []float64
	n := 0
rows:
	for _, row := range t.Rows {
		vals := make([]float64, len(cols))
		for i, col := range cols {
			v, ok := table.AsFloat64(row[col])
			if !ok {
				continue rows
			}
			vals[i] = v
		}
		data = append(data, vals...)
		n++
	}
	if n < 2 {
		return nil, false
	}
	return mat.NewDense(n, len(cols), data), true
}

// corrGrid adapts a symmetric correlation matrix to plotter.GridXYZ.
type corrGrid struct {
	m *mat.SymDense
}

func (g *corrGrid) Dims() (c, r int) {
	n, _ := g.m.Dims()
	return n, n
}

func (g *corrGrid) Z(c, r int) float64 { return g.m.At(r, c) }

func (g *corrGrid) X(c int) float64 { return float64(c) }

func (g *corrGrid) Y(r int) float64 { return float64(r) }

// nameTicks labels integer axis positions with column names.
type nameTicks []string

func (n nameTicks) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(n))
	for i, name := range n {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}
	return ticks
}
