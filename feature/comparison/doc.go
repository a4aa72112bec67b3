// Package comparison exposes comparison runs over HTTP.
//
// # HTTP Endpoints
//
//   - POST /api/comparison/execute-all : Runs every enabled rule.
//   - POST /api/comparison/execute-all-async : Starts a background run, returns its job id.
//   - GET /api/comparison/jobs/:id : Reports an async run, with its report once finished.
//   - POST /api/comparison/execute/:ruleName : Runs one rule (404 for unknown names).
//   - POST /api/comparison/execute-batch : Runs the rules named in a JSON array body.
//   - GET /api/comparison/rules : Lists the configured rules.
//
// Finished async runs are exported to object storage when report export is enabled.
package comparison
