package compare

import (
	"fmt"

	"field-comparator/core/database"
	"field-comparator/core/sqlbuilder"

	"gorm.io/gorm"
)

// side is one resolved table of a rule: its handle, dialect and the SQL
// fragments used to address it.
type side struct {
	label   string
	ref     TableRef
	db      *gorm.DB
	dialect sqlbuilder.Dialect
	table   sqlbuilder.Table
	key     string
	value   string
}

func newSide(label string, ref TableRef, db *gorm.DB, rule Rule) *side {
	d := sqlbuilder.InferDialect(db.Dialector.Name())
	s := &side{
		label:   label,
		ref:     ref,
		db:      db,
		dialect: d,
		table:   sqlbuilder.Table{Schema: ref.Schema, Name: ref.Table},
		key:     rule.KeyField,
		value:   rule.CompareField,
	}
	if rule.QuoteIdentifiers {
		if ref.Schema != "" {
			s.table.Schema = sqlbuilder.EscapeIdentifier(ref.Schema, d)
		}
		s.table.Name = sqlbuilder.EscapeIdentifier(ref.Table, d)
		s.key = sqlbuilder.EscapeIdentifier(rule.KeyField, d)
		s.value = sqlbuilder.EscapeIdentifier(rule.CompareField, d)
	}
	return s
}

func (s *side) fields() []string {
	return []string{s.key, s.value}
}

// checkSchema verifies the table and both columns exist.
func (s *side) checkSchema(rule Rule) error {
	table := s.ref.QualifiedName()
	if !database.TableExists(s.db, table) {
		return fmt.Errorf("%w: %s table %s not found on connection %q", ErrConfiguration, s.label, table, s.ref.Connection)
	}
	for _, col := range []string{rule.KeyField, rule.CompareField} {
		if !database.ColumnExists(s.db, table, col) {
			return fmt.Errorf("%w: %s column %s.%s not found on connection %q", ErrConfiguration, s.label, table, col, s.ref.Connection)
		}
	}
	return nil
}

type sideStats struct {
	duplicates int
	nullKeys   int
}

func (st *sideStats) add(set *rowSet) {
	st.duplicates += set.duplicates
	st.nullKeys += set.nullKeys
}

// quality collects the data-quality problems met while reading both sides.
type quality struct {
	source sideStats
	target sideStats
}

func (q *quality) warnings() []string {
	var out []string
	for _, s := range []struct {
		label string
		stats sideStats
	}{{"source", q.source}, {"target", q.target}} {
		if s.stats.duplicates > 0 {
			out = append(out, fmt.Sprintf("%s: %d rows repeat an earlier key, last value kept", s.label, s.stats.duplicates))
		}
		if s.stats.nullKeys > 0 {
			out = append(out, fmt.Sprintf("%s: %d rows with a NULL key skipped", s.label, s.stats.nullKeys))
		}
	}
	return out
}
