package compare

import (
	"encoding/json"
	"time"
)

// Status is the outcome of one rule execution.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
	// StatusPartial means the comparison finished but some rows could not be keyed
	// reliably (duplicate or NULL keys). See Result.Warnings.
	StatusPartial Status = "PARTIAL"
)

// Result is the outcome of executing one rule. It is filled in once by the
// executor and read-only afterwards; every count is derived from the
// recorded differences.
type Result struct {
	ruleName        string
	ruleDescription string
	startTime       time.Time
	endTime         time.Time
	status          Status
	errorMessage    string
	err             error
	strategy        Strategy
	sourceCount     int64
	targetCount     int64
	differences     []Difference
	warnings        []string
}

func newResult(rule Rule, start time.Time) *Result {
	return &Result{
		ruleName:        rule.Name,
		ruleDescription: rule.Description,
		startTime:       start,
	}
}

func (r *Result) fail(err error, end time.Time) {
	r.status = StatusFailed
	r.err = err
	r.errorMessage = err.Error()
	r.differences = nil
	r.endTime = end
}

func (r *Result) complete(o *outcome, end time.Time) {
	r.strategy = o.strategy
	r.sourceCount = o.sourceCount
	r.targetCount = o.targetCount
	r.differences = o.differences
	r.warnings = o.warnings
	r.status = StatusSuccess
	if len(o.warnings) > 0 {
		r.status = StatusPartial
	}
	r.endTime = end
}

func (r *Result) RuleName() string        { return r.ruleName }
func (r *Result) RuleDescription() string { return r.ruleDescription }
func (r *Result) StartTime() time.Time    { return r.startTime }
func (r *Result) EndTime() time.Time      { return r.endTime }
func (r *Result) Status() Status          { return r.status }
func (r *Result) ErrorMessage() string    { return r.errorMessage }
func (r *Result) Strategy() Strategy      { return r.strategy }
func (r *Result) SourceCount() int64      { return r.sourceCount }
func (r *Result) TargetCount() int64      { return r.targetCount }

// Err returns the error that failed the rule, nil unless Status is FAILED.
func (r *Result) Err() error { return r.err }

// ExecutionTime is EndTime - StartTime.
func (r *Result) ExecutionTime() time.Duration {
	if r.endTime.IsZero() {
		return 0
	}
	return r.endTime.Sub(r.startTime)
}

// Differences returns a copy of the recorded differences.
func (r *Result) Differences() []Difference {
	out := make([]Difference, len(r.differences))
	copy(out, r.differences)
	return out
}

// Warnings returns the data-quality warnings raised during the comparison.
func (r *Result) Warnings() []string {
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

func (r *Result) DifferenceCount() int    { return len(r.differences) }
func (r *Result) SourceOnlyCount() int    { return r.countKind(SourceOnly) }
func (r *Result) TargetOnlyCount() int    { return r.countKind(TargetOnly) }
func (r *Result) ValueMismatchCount() int { return r.countKind(ValueMismatch) }

// TotalRecords is the number of distinct keys seen across both tables:
// every source row plus the keys found only in the target.
func (r *Result) TotalRecords() int64 {
	total := r.sourceCount + int64(r.TargetOnlyCount())
	return max(total, r.sourceCount, r.targetCount)
}

func (r *Result) countKind(k Kind) int {
	n := 0
	for _, d := range r.differences {
		if d.Kind == k {
			n++
		}
	}
	return n
}

type resultJSON struct {
	RuleName           string       `json:"rule_name"`
	RuleDescription    string       `json:"rule_description,omitempty"`
	Status             Status       `json:"status"`
	ErrorMessage       string       `json:"error_message,omitempty"`
	Strategy           Strategy     `json:"strategy,omitempty"`
	StartTime          time.Time    `json:"start_time"`
	EndTime            time.Time    `json:"end_time"`
	ExecutionTimeMs    int64        `json:"execution_time_ms"`
	SourceCount        int64        `json:"source_count"`
	TargetCount        int64        `json:"target_count"`
	TotalRecords       int64        `json:"total_records"`
	DifferenceCount    int          `json:"difference_count"`
	SourceOnlyCount    int          `json:"source_only_count"`
	TargetOnlyCount    int          `json:"target_only_count"`
	ValueMismatchCount int          `json:"value_mismatch_count"`
	Warnings           []string     `json:"warnings,omitempty"`
	Differences        []Difference `json:"differences"`
}

// MarshalJSON emits the recorded fields together with every derived count.
func (r *Result) MarshalJSON() ([]byte, error) {
	diffs := r.differences
	if diffs == nil {
		diffs = []Difference{}
	}
	return json.Marshal(resultJSON{
		RuleName:           r.ruleName,
		RuleDescription:    r.ruleDescription,
		Status:             r.status,
		ErrorMessage:       r.errorMessage,
		Strategy:           r.strategy,
		StartTime:          r.startTime,
		EndTime:            r.endTime,
		ExecutionTimeMs:    r.ExecutionTime().Milliseconds(),
		SourceCount:        r.sourceCount,
		TargetCount:        r.targetCount,
		TotalRecords:       r.TotalRecords(),
		DifferenceCount:    r.DifferenceCount(),
		SourceOnlyCount:    r.SourceOnlyCount(),
		TargetOnlyCount:    r.TargetOnlyCount(),
		ValueMismatchCount: r.ValueMismatchCount(),
		Warnings:           r.warnings,
		Differences:        diffs,
	})
}
