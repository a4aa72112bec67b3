// Package connections reports on the configured database connections.
//
// # HTTP Endpoints
//
//   - GET /health : Liveness probe (public).
//   - GET /api/connections/validate : Runs SELECT 1 on every connection.
//   - GET /api/connections/:name/statistics : Server version, server time and pool usage.
package connections
