package compare

import (
	"errors"
	"fmt"
	"strings"
)

// TableRef identifies a table on a named connection.
type TableRef struct {
	Connection string `mapstructure:"connection" json:"connection"`
	Table      string `mapstructure:"table" json:"table"`
	Schema     string `mapstructure:"schema" json:"schema,omitempty"`
}

// QualifiedName returns "schema.table", or just "table" when no schema is set.
func (t TableRef) QualifiedName() string {
	if t.Schema == "" {
		return t.Table
	}
	return t.Schema + "." + t.Table
}

func (t TableRef) validate(side string) error {
	var errs []error
	if strings.TrimSpace(t.Connection) == "" {
		errs = append(errs, fmt.Errorf("%s connection is required", side))
	}
	if strings.TrimSpace(t.Table) == "" {
		errs = append(errs, fmt.Errorf("%s table is required", side))
	}
	return errors.Join(errs...)
}

// Rule describes one field comparison between a source and a target table.
//
// KeyField, CompareField and Predicate are interpolated into SQL verbatim and
// must come from trusted configuration. Set QuoteIdentifiers to have table and
// column names quoted for the connection's dialect instead.
type Rule struct {
	Name             string   `mapstructure:"name" json:"name"`
	Description      string   `mapstructure:"description" json:"description,omitempty"`
	Source           TableRef `mapstructure:"source" json:"source"`
	Target           TableRef `mapstructure:"target" json:"target"`
	KeyField         string   `mapstructure:"key_field" json:"key_field"`
	CompareField     string   `mapstructure:"compare_field" json:"compare_field"`
	Predicate        string   `mapstructure:"predicate" json:"predicate,omitempty"`
	Enabled          *bool    `mapstructure:"enabled" json:"enabled,omitempty"`
	QuoteIdentifiers bool     `mapstructure:"quote_identifiers" json:"quote_identifiers,omitempty"`
}

// IsEnabled reports whether the rule takes part in "run all". Unset means enabled.
func (r Rule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Validate checks that the rule carries everything needed to build its queries.
func (r Rule) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errors.New("rule name is required"))
	}
	if strings.TrimSpace(r.KeyField) == "" {
		errs = append(errs, errors.New("key field is required"))
	}
	if strings.TrimSpace(r.CompareField) == "" {
		errs = append(errs, errors.New("compare field is required"))
	}
	if err := r.Source.validate("source"); err != nil {
		errs = append(errs, err)
	}
	if err := r.Target.validate("target"); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: rule %q: %w", ErrConfiguration, r.Name, err)
	}
	return nil
}

// ValidateRules validates every rule and rejects duplicate names.
func ValidateRules(rules []Rule) error {
	var errs []error
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := seen[r.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: duplicate rule name %q", ErrConfiguration, r.Name))
			continue
		}
		seen[r.Name] = struct{}{}
	}
	return errors.Join(errs...)
}
