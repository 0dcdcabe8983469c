// Package report summarizes the outcome of a batch run.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/vadiminshakov/stockcast/internal/domain"
)

// Report outcomes of one batch run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []domain.FileOutcome
}

// New creates an empty report for the run.
func New(runID string, startedAt time.Time) *Report {
	return &Report{RunID: runID, StartedAt: startedAt}
}

// Add records a file outcome.
func (r *Report) Add(outcome domain.FileOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Counts returns the number of files per status.
func (r *Report) Counts() map[domain.OutcomeStatus]int {
	counts := make(map[domain.OutcomeStatus]int)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// Failed returns the number of files that produced no output.
func (r *Report) Failed() int {
	failed := 0
	for _, o := range r.Outcomes {
		if o.Status.Failed() {
			failed++
		}
	}
	return failed
}

// Render writes the outcome table followed by a totals line.
func (r *Report) Render(w io.Writer) {
	RenderOutcomes(w, r.Outcomes)

	fmt.Fprintf(w, "run %s: %d files, %d written, %d skipped in %s\n",
		r.RunID, len(r.Outcomes), len(r.Outcomes)-r.Failed(), r.Failed(),
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}

// RenderOutcomes writes outcomes as a table.
func RenderOutcomes(w io.Writer, outcomes []domain.FileOutcome) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Exchange", "Stock", "Status", "Rows", "Reason"})
	table.SetAutoWrapText(false)

	for _, o := range outcomes {
		table.Append([]string{o.Exchange, o.Stock, string(o.Status), strconv.Itoa(o.Rows), o.Reason})
	}

	table.Render()
}
