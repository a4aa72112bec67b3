// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the listen port, the API key protecting the comparison endpoints and the
// graceful shutdown bound.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start.go to configure Fiber.
package server
