package report

// Config holds configuration for report export.
type Config struct {
	// Enabled turns on export of finished runs to object storage.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Bucket overrides the storage bucket. Empty means storage.bucket.
	Bucket string `mapstructure:"bucket" default:""`
	// Prefix is the object key prefix reports are written under.
	Prefix string `mapstructure:"prefix" default:"reports"`
	// CreateBucket creates the bucket on first export when it is missing.
	CreateBucket bool `mapstructure:"create_bucket" default:"false"`
	// Compression is one of none, gzip or zstd.
	Compression string `mapstructure:"compression" default:"zstd"`
}
