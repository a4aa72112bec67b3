// Package report exports comparison runs to object storage.
//
// A Report wraps the results of one run with a summary. The Exporter encodes
// it as JSON, optionally compresses it (gzip or zstd) and uploads it under
// <prefix>/<run id>.json[.gz|.zst]. The bucket must exist unless
// Config.CreateBucket is set. List returns the stored reports newest first.
package report
