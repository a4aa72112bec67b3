package report

import (
	"time"

	"field-comparator/core/compare"
)

// Summary aggregates the results of one run.
type Summary struct {
	Rules       int `json:"rules"`
	Succeeded   int `json:"succeeded"`
	Partial     int `json:"partial"`
	Failed      int `json:"failed"`
	Differences int `json:"differences"`
}

// Report is the exported document for one run.
type Report struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     Summary           `json:"summary"`
	Results     []*compare.Result `json:"results"`
}

// Summarize counts results by status and totals their differences.
func Summarize(results []*compare.Result) Summary {
	s := Summary{Rules: len(results)}
	for _, r := range results {
		switch r.Status() {
		case compare.StatusSuccess:
			s.Succeeded++
		case compare.StatusPartial:
			s.Partial++
		case compare.StatusFailed:
			s.Failed++
		}
		s.Differences += r.DifferenceCount()
	}
	return s
}

// New builds the report for a finished run.
func New(runID string, results []*compare.Result) Report {
	if results == nil {
		results = []*compare.Result{}
	}
	return Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Summary:     Summarize(results),
		Results:     results,
	}
}
