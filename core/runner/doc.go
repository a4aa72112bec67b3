// Package runner orchestrates the execution of configured comparison rules.
//
// A Runner executes rules either one after another or on a worker pool
// bounded by the configured pool size. Results are always returned in the
// order the rules were requested, regardless of completion order.
//
// # Selection
//
//   - RunAll runs every enabled rule.
//   - Run and RunNamed run rules by name, including disabled ones. Unknown
//     names fail with ErrRuleNotFound before any rule starts.
//   - RunAllAsync starts RunAll in the background and returns a Job that can
//     be looked up by id and waited on.
//
// Rule failures never abort a run; they are reported as FAILED results.
package runner
