// Package compare detects discrepancies in one field between a source and a
// target table, joined on a shared key.
//
// # Rules
//
// A Rule names the two tables (each on a configured connection), the key
// column, the compared column and an optional predicate applied to both
// sides. Rules are validated before any query runs; duplicate names are
// rejected by ValidateRules.
//
// # Execution
//
// Executor.Execute moves a rule through validating, counting, comparing and
// finalizing, and always returns a Result. Any failure stops the rule and
// yields a FAILED result with the error message and no differences. Errors
// are classified as ErrConfiguration, ErrConnectivity or ErrData.
//
// # Strategies
//
// When both row counts are at or below the threshold the direct strategy
// loads both key→value maps and runs Diff. Otherwise the batched strategy
// pages the source ordered by key, looks the page keys up on the target in
// IN lists sized for the target dialect, and then pages the target against
// the source key set to find keys missing from the source. Differences are
// de-duplicated by (key, kind, field) across pages.
//
// # Values
//
// Driver values are normalised (integers to int64, []byte to string) before
// they are used as keys or compared. SQL NULL is nil and is distinct from an
// absent key: two NULLs are equal, NULL against a value is a mismatch.
// Rows with a NULL key are skipped; they and duplicate keys mark the result
// PARTIAL with a warning.
package compare
