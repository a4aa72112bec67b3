package compare

import "time"

// Config holds the comparison settings and the configured rules.
type Config struct {
	// BatchSize is the page size used by the batched comparator.
	BatchSize int `mapstructure:"batch_size" default:"1000"`
	// BatchThreshold is the row count above which the batched strategy is used.
	// Zero means BatchSize.
	BatchThreshold int `mapstructure:"batch_threshold" default:"0"`
	// Parallel runs rules concurrently when true.
	Parallel bool `mapstructure:"parallel" default:"true"`
	// PoolSize bounds the number of rules executing at once in parallel mode.
	PoolSize int `mapstructure:"pool_size" default:"10"`
	// ValidateSchema checks table and column existence before counting.
	ValidateSchema bool `mapstructure:"validate_schema" default:"true"`
	// RuleTimeoutSeconds cancels a single rule after this many seconds. Zero disables it.
	RuleTimeoutSeconds int `mapstructure:"rule_timeout_seconds" default:"0"`
	// Rules are the configured comparison rules.
	Rules []Rule `mapstructure:"rules"`
}

const (
	defaultBatchSize = 1000
	defaultPoolSize  = 10
)

// PageSize returns BatchSize, falling back to the default when unset.
func (c Config) PageSize() int {
	if c.BatchSize <= 0 {
		return defaultBatchSize
	}
	return c.BatchSize
}

// Threshold returns the strategy threshold.
func (c Config) Threshold() int {
	if c.BatchThreshold > 0 {
		return c.BatchThreshold
	}
	return c.PageSize()
}

// Workers returns PoolSize, falling back to the default when unset.
func (c Config) Workers() int {
	if c.PoolSize <= 0 {
		return defaultPoolSize
	}
	return c.PoolSize
}

// RuleTimeout returns the per-rule timeout, zero when disabled.
func (c Config) RuleTimeout() time.Duration {
	if c.RuleTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RuleTimeoutSeconds) * time.Second
}
