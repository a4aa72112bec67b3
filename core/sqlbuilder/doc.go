// Package sqlbuilder turns table descriptors, field lists and predicates into
// SQL text for the dialects the comparator talks to.
//
// All functions are pure. Values never end up in the generated text: key sets
// are passed as bind parameters through InCondition, and the placeholders are
// always written as "?" so that gorm can rewrite them into the bind syntax of
// the connection's dialector ($1 for Postgres, @p1 for SQL Server).
//
// # Dialects
//
// Dialect is a sealed interface with one variant per SQL family:
//
//   - MySQL: backtick quoting, LIMIT/OFFSET
//   - Postgres: double-quote quoting, LIMIT/OFFSET
//   - Oracle: double-quote quoting, OFFSET ... FETCH NEXT ... ROWS ONLY
//   - SQLServer: bracket quoting, OFFSET ... FETCH NEXT ... ROWS ONLY
//   - Unknown: no quoting, LIMIT/OFFSET
//
// InferDialect maps a driver name, gorm dialector name or connection URL to
// one of the variants.
//
// # Trust boundary
//
// Predicates come from configuration and are inserted verbatim. They are not
// sanitised and must never be sourced from end-user input.
package sqlbuilder
