package services

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the upload → analyze → persist pipeline. Controllers
// map these to HTTP statuses with errors.Is / errors.As.
var (
	// ErrAnalyzerTimeout: the webhook did not answer within the deadline.
	ErrAnalyzerTimeout = errors.New("analyzer webhook timed out")

	// ErrMalformedResponse: the webhook answered 2xx but the body is not
	// JSON, or the JSON does not match any known response envelope.
	ErrMalformedResponse = errors.New("analyzer returned a malformed response")

	// ErrAnalysisFailed: the analyzer itself reported success=false.
	ErrAnalysisFailed = errors.New("AI analysis failed")

	// ErrEmptyResult: normalization produced no items or no summary.
	ErrEmptyResult = errors.New("analysis result contains no food items")
)

// UpstreamError carries the analyzer's non-2xx status and body for
// diagnostics. The body is for logs, never for end users.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analyzer webhook failed: %d", e.StatusCode)
}

// Stages of the persistence write, carried in PersistenceError.
const (
	PersistStageLog      = "log"
	PersistStageItem     = "item"
	PersistStageNutrient = "nutrient"
)

// PersistenceError tags a storage failure with the insert stage that hit it.
type PersistenceError struct {
	Stage string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save %s records: %v", e.Stage, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
