package runner

import "field-comparator/core/compare"

// RuleInfo describes a configured rule for listings.
type RuleInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	KeyField     string `json:"key_field"`
	CompareField string `json:"compare_field"`
	Predicate    string `json:"predicate,omitempty"`
	Enabled      bool   `json:"enabled"`
}

// Rules lists the configured rules in configuration order.
func (r *Runner) Rules() []RuleInfo {
	out := make([]RuleInfo, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, RuleInfo{
			Name:         rule.Name,
			Description:  rule.Description,
			Source:       describeTable(rule.Source),
			Target:       describeTable(rule.Target),
			KeyField:     rule.KeyField,
			CompareField: rule.CompareField,
			Predicate:    rule.Predicate,
			Enabled:      rule.IsEnabled(),
		})
	}
	return out
}

func describeTable(t compare.TableRef) string {
	return t.Connection + ":" + t.QualifiedName()
}
