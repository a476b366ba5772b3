package engine

import (
	"errors"
	"fmt"
)

// QueryErrorCode categorizes query execution failures.
type QueryErrorCode string

const (
	// ErrCodeSourceMissing indicates the dataset path does not exist.
	ErrCodeSourceMissing QueryErrorCode = "SOURCE_MISSING"

	// ErrCodeExecuteFailed indicates the engine rejected or could not run
	// the query (syntax, type, or I/O error).
	ErrCodeExecuteFailed QueryErrorCode = "EXECUTE_FAILED"

	// ErrCodeScanFailed indicates a row could not be read from the
	// engine's result set.
	ErrCodeScanFailed QueryErrorCode = "SCAN_FAILED"

	// ErrCodeResultTooLarge indicates the result exceeded the hard safety
	// cap. The executor fails rather than dropping rows.
	ErrCodeResultTooLarge QueryErrorCode = "RESULT_TOO_LARGE"

	// ErrCodeBadDriver indicates an unsupported engine driver name.
	ErrCodeBadDriver QueryErrorCode = "BAD_DRIVER"
)

// QueryError is a per-query execution failure. It is recovered at the
// query level by the orchestrator: the query is recorded as failed and the
// run continues.
type QueryError struct {
	// Code identifies the failure category.
	Code QueryErrorCode

	// Query names the catalog query that failed. Empty for failures that
	// precede query execution (connection setup).
	Query string

	// Err is the underlying engine error, if any.
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Query != "" && e.Err != nil {
		return fmt.Sprintf("%s: query %q: %v", e.Code, e.Query, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: query %q", e.Code, e.Query)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError reports whether err is a QueryError with the given code.
// Uses errors.As to handle wrapped errors.
func IsQueryError(err error, code QueryErrorCode) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code == code
	}
	return false
}
