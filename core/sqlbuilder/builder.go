package sqlbuilder

import "strings"

// Table identifies the relation a statement reads from.
// Schema and Name are embedded as given; callers that want quoting pass
// names that went through EscapeIdentifier.
type Table struct {
	Schema string
	Name   string
}

// Qualified returns "schema.name", or "name" when no schema is set.
func (t Table) Qualified() string {
	if strings.TrimSpace(t.Schema) != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// Select builds "SELECT fields FROM table [WHERE predicate]".
func Select(t Table, fields []string, predicate string) string {
	var sb strings.Builder
	writeSelect(&sb, t, fields, predicate)
	return sb.String()
}

// PagedSelect builds a Select followed by ORDER BY orderBy (when given) and the
// dialect's pagination clause. A nil dialect falls back to LIMIT/OFFSET.
func PagedSelect(t Table, fields []string, predicate, orderBy string, offset, limit int, d Dialect) string {
	if d == nil {
		d = Unknown
	}
	var sb strings.Builder
	writeSelect(&sb, t, fields, predicate)
	hasOrder := strings.TrimSpace(orderBy) != ""
	if hasOrder {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}
	sb.WriteString(d.Paginate(hasOrder, offset, limit))
	return sb.String()
}

// Count builds "SELECT COUNT(*) FROM table [WHERE predicate]".
func Count(t Table, predicate string) string {
	return Select(t, []string{"COUNT(*)"}, predicate)
}

// InCondition builds "field IN (?, ?, ...)" with n placeholders.
// For n <= 0 it returns "1=0", a predicate that matches no rows.
func InCondition(field string, n int) string {
	if n <= 0 {
		return "1=0"
	}
	var sb strings.Builder
	sb.Grow(len(field) + 6 + n*3)
	sb.WriteString(field)
	sb.WriteString(" IN (")
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('?')
	}
	sb.WriteByte(')')
	return sb.String()
}

// And joins the non-blank predicates with AND. With more than one predicate
// each is parenthesised so OR clauses in configured filters keep their meaning.
func And(predicates ...string) string {
	var parts []string
	for _, p := range predicates {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return "(" + strings.Join(parts, ") AND (") + ")"
}

func writeSelect(sb *strings.Builder, t Table, fields []string, predicate string) {
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(fields, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(t.Qualified())
	if strings.TrimSpace(predicate) != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(predicate)
	}
}
