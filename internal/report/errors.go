package report

import (
	"errors"
	"fmt"
)

// ReportErrorCode categorizes report generation failures.
type ReportErrorCode string

const (
	// ErrCodeDegenerateData indicates a column had no usable values for
	// its strategy (entirely null, or too few points).
	ErrCodeDegenerateData ReportErrorCode = "DEGENERATE_DATA"

	// ErrCodeRenderFailed indicates the plotting layer could not produce
	// the artifact.
	ErrCodeRenderFailed ReportErrorCode = "RENDER_FAILED"
)

// ReportError is a per-artifact failure. It is recovered at the artifact
// level: the artifact is skipped and recorded, siblings still render.
type ReportError struct {
	Code     ReportErrorCode
	Artifact string // artifact kind, e.g. "hist_total_revenue"
	Err      error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: artifact %q: %v", e.Code, e.Artifact, e.Err)
	}
	return fmt.Sprintf("%s: artifact %q", e.Code, e.Artifact)
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// IsReportError reports whether err is a ReportError with the given code.
func IsReportError(err error, code ReportErrorCode) bool {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}
