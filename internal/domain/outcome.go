package domain

import (
	"time"

	"github.com/pkg/errors"
)

// OutcomeStatus result of processing a single stock file.
type OutcomeStatus string

const (
	OutcomeOK               OutcomeStatus = "ok"
	OutcomeSourceNotFound   OutcomeStatus = "source_not_found"
	OutcomeDataInsufficient OutcomeStatus = "data_insufficient"
	OutcomeEmptyWindow      OutcomeStatus = "empty_window"
	OutcomeMalformedRow     OutcomeStatus = "malformed_row"
	OutcomeWriteFailed      OutcomeStatus = "write_failed"
)

// Failed reports whether the file produced no output.
func (s OutcomeStatus) Failed() bool {
	return s != OutcomeOK
}

// StatusFor maps a file-level error to its outcome status.
// Errors that match no known condition are reported as write failures.
func StatusFor(err error) OutcomeStatus {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrSourceNotFound):
		return OutcomeSourceNotFound
	case errors.Is(err, ErrDataInsufficient):
		return OutcomeDataInsufficient
	case errors.Is(err, ErrEmptyWindow):
		return OutcomeEmptyWindow
	case errors.Is(err, ErrMalformedRow):
		return OutcomeMalformedRow
	default:
		return OutcomeWriteFailed
	}
}

// FileOutcome record of what happened to one stock file during a run.
type FileOutcome struct {
	RunID     string        `json:"run_id"`
	Exchange  string        `json:"exchange"`
	Stock     string        `json:"stock"`
	Status    OutcomeStatus `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Rows      int           `json:"rows"`
	Timestamp time.Time     `json:"ts"`
}

// NewFileOutcome creates a FileOutcome from the processing error (nil on success).
func NewFileOutcome(runID, exchange, stock string, rows int, err error, ts time.Time) FileOutcome {
	outcome := FileOutcome{
		RunID:     runID,
		Exchange:  exchange,
		Stock:     stock,
		Status:    StatusFor(err),
		Rows:      rows,
		Timestamp: ts,
	}
	if err != nil {
		outcome.Reason = err.Error()
		outcome.Rows = 0
	}
	return outcome
}
