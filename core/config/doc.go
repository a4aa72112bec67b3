// Package config provides configuration management for the field comparator.
//
// It utilizes Viper for loading configuration from an optional config.yaml,
// a .env file and environment variables.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Report: report export switch, prefix and compression
//   - Comparison: batch size, strategy threshold, parallelism and the rules
//   - Connections: named database connections
//
// Scalar settings take their defaults from `default` struct tags and can be
// overridden by environment variables (COMPARISON_BATCH_SIZE -> comparison.batch_size).
// Rules and connections are lists and come from config.yaml only.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Comparison.BatchSize)
package config
