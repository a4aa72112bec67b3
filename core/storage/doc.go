// Package storage wraps the MinIO Go client for the object storage operations
// report export needs.
//
// The Client interface is satisfied directly by *minio.Client, so the same
// code works against AWS S3 and self-hosted MinIO. core/storage/mocks holds
// a testify mock for unit tests.
//
// NewClient strips any http:// or https:// scheme from the endpoint and
// installs a transport whose dial, TLS handshake and response header
// timeouts follow Config.TimeoutSeconds (30s when unset).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "comparisons")
package storage
